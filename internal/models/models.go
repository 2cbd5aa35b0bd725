package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Item struct {
	ID          string          `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Material    string          `json:"material"`
	Weight      float64         `json:"weight"`
	Value       decimal.Decimal `json:"value"`
}

type Customer struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Race     string `json:"race"`
	Location string `json:"location"`
}

type Merchant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Location string `json:"location"`
}

// StockEntry is the on-hand record for one item id. Quantity is always >= 1
// while the entry is held by an inventory store.
type StockEntry struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// LineItem holds a value copy of the item so a transaction keeps its
// snapshot after the catalog entry is edited or removed.
type LineItem struct {
	Item     Item `json:"item"`
	Quantity int  `json:"quantity"`
}

// Subtotal is the item value times the quantity.
func (l LineItem) Subtotal() decimal.Decimal {
	return l.Item.Value.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

type TransactionType string

const (
	TransactionSale     TransactionType = "sale"
	TransactionPurchase TransactionType = "purchase"
	TransactionReturn   TransactionType = "return"
)

// Outflow reports whether the type removes goods from stock when registered.
// Returns share the polarity of sales.
func (t TransactionType) Outflow() bool {
	return t == TransactionSale || t == TransactionReturn
}

func (t TransactionType) Valid() bool {
	switch t {
	case TransactionSale, TransactionPurchase, TransactionReturn:
		return true
	}
	return false
}

type Transaction struct {
	ID          string          `json:"id"`
	Date        time.Time       `json:"date"`
	Items       []LineItem      `json:"items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Participant Participant     `json:"-"`
	Type        TransactionType `json:"type"`
}

// TotalOf sums value times quantity over the lines.
func TotalOf(lines []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.Subtotal())
	}
	return total
}
