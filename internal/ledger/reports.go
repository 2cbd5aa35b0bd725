package ledger

import (
	"slices"
	"strings"

	"github.com/safar/coronas-ledger/internal/models"
	"github.com/shopspring/decimal"
)

const DefaultTopSoldLimit = 5

// DateLayout is the rendering SearchByDate matches against.
const DateLayout = "2006-01-02"

type ItemSales struct {
	Item     models.Item
	Quantity int
}

// TotalIncome sums the totals of sale transactions.
func (l *Ledger) TotalIncome() decimal.Decimal {
	return l.sumOf(models.TransactionSale)
}

// TotalExpenses sums the totals of purchase transactions.
func (l *Ledger) TotalExpenses() decimal.Decimal {
	return l.sumOf(models.TransactionPurchase)
}

func (l *Ledger) sumOf(t models.TransactionType) decimal.Decimal {
	total := decimal.Zero
	for _, tx := range l.transactions {
		if tx.Type == t {
			total = total.Add(tx.TotalAmount)
		}
	}
	return total
}

// TopSoldItems aggregates sold quantities per item id and returns the
// largest limit of them, highest first. The item snapshot is the first one
// seen while scanning. A limit below one falls back to DefaultTopSoldLimit.
func (l *Ledger) TopSoldItems(limit int) []ItemSales {
	if limit < 1 {
		limit = DefaultTopSoldLimit
	}

	var sales []ItemSales
	index := make(map[string]int)
	for _, tx := range l.transactions {
		if tx.Type != models.TransactionSale {
			continue
		}
		for _, line := range tx.Items {
			if i, ok := index[line.Item.ID]; ok {
				sales[i].Quantity += line.Quantity
				continue
			}
			index[line.Item.ID] = len(sales)
			sales = append(sales, ItemSales{Item: line.Item, Quantity: line.Quantity})
		}
	}

	slices.SortStableFunc(sales, func(a, b ItemSales) int {
		return b.Quantity - a.Quantity
	})
	if len(sales) > limit {
		sales = sales[:limit]
	}
	return sales
}

func (l *Ledger) SearchByType(t models.TransactionType) []models.Transaction {
	return l.filter(func(tx models.Transaction) bool { return tx.Type == t })
}

// SearchByDate matches term against the transaction date formatted with
// DateLayout in the date's own location.
func (l *Ledger) SearchByDate(term string) []models.Transaction {
	term = strings.TrimSpace(term)
	return l.filter(func(tx models.Transaction) bool {
		return strings.Contains(tx.Date.Format(DateLayout), term)
	})
}
