package ledger

import (
	"slices"
	"time"

	"github.com/google/uuid"
	"github.com/safar/coronas-ledger/internal/models"
	"go.uber.org/zap"
)

// StockKeeper is the stock gatekeeper the ledger delegates to. RemoveItem is
// the only way the ledger decreases stock.
type StockKeeper interface {
	AddItem(item models.Item, quantity int)
	RemoveItem(itemID string, quantity int) bool
}

// Ledger is the ordered record of transactions. It does not own the stock;
// every stock effect goes through the StockKeeper it was built with.
// A Ledger is not safe for concurrent use.
type Ledger struct {
	stock        StockKeeper
	transactions []models.Transaction
	logger       *zap.Logger
	now          func() time.Time
	newID        func() string
}

type Option func(*Ledger)

func WithLogger(logger *zap.Logger) Option {
	return func(l *Ledger) {
		if logger != nil {
			l.logger = logger
		}
	}
}

func WithClock(now func() time.Time) Option {
	return func(l *Ledger) {
		l.now = now
	}
}

func WithIDGenerator(newID func() string) Option {
	return func(l *Ledger) {
		l.newID = newID
	}
}

func New(stock StockKeeper, opts ...Option) *Ledger {
	l := &Ledger{
		stock:  stock,
		logger: zap.NewNop(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Register applies the stock effect of lines and appends a new transaction.
//
// Outflow types (sale, return) remove stock line by line and stop at the
// first line the stock cannot cover, returning false. Lines already removed
// in that call stay removed. Purchases add every line. An empty or invalid
// line list is refused before any stock effect.
func (l *Ledger) Register(participant models.Participant, lines []models.LineItem, txType models.TransactionType) (models.Transaction, bool) {
	if len(lines) == 0 || !txType.Valid() {
		return models.Transaction{}, false
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			l.logger.Warn("transaction refused: invalid line",
				zap.String("item_id", line.Item.ID),
				zap.Error(err))
			return models.Transaction{}, false
		}
	}

	total := models.TotalOf(lines)

	if txType.Outflow() {
		for i, line := range lines {
			if !l.stock.RemoveItem(line.Item.ID, line.Quantity) {
				l.logger.Warn("transaction refused: insufficient stock",
					zap.String("type", string(txType)),
					zap.String("item_id", line.Item.ID),
					zap.String("item_name", line.Item.Name),
					zap.Int("quantity", line.Quantity),
					zap.Int("applied_lines", i))
				return models.Transaction{}, false
			}
		}
	} else {
		for _, line := range lines {
			l.stock.AddItem(line.Item, line.Quantity)
		}
	}

	tx := models.Transaction{
		ID:          l.newID(),
		Date:        l.now(),
		Items:       slices.Clone(lines),
		TotalAmount: total,
		Participant: participant,
		Type:        txType,
	}
	l.transactions = append(l.transactions, tx)

	l.logger.Debug("transaction registered",
		zap.String("transaction_id", tx.ID),
		zap.String("type", string(tx.Type)),
		zap.String("total", tx.TotalAmount.String()))
	return tx, true
}

// Remove deletes the transaction and reverses its stock effect. A purchase
// line whose stock was consumed since registration is skipped; the other
// lines are still reversed and the record is still deleted.
func (l *Ledger) Remove(transactionID string) bool {
	i := slices.IndexFunc(l.transactions, func(tx models.Transaction) bool {
		return tx.ID == transactionID
	})
	if i < 0 {
		return false
	}

	tx := l.transactions[i]
	if tx.Type.Outflow() {
		for _, line := range tx.Items {
			l.stock.AddItem(line.Item, line.Quantity)
		}
	} else {
		for _, line := range tx.Items {
			if !l.stock.RemoveItem(line.Item.ID, line.Quantity) {
				l.logger.Warn("purchase reversal left stock in place",
					zap.String("transaction_id", tx.ID),
					zap.String("item_id", line.Item.ID),
					zap.Int("quantity", line.Quantity))
			}
		}
	}

	l.transactions = slices.Delete(l.transactions, i, i+1)
	l.logger.Debug("transaction removed", zap.String("transaction_id", tx.ID))
	return true
}

// History returns every transaction in append order. The result shares no
// memory with the ledger.
func (l *Ledger) History() []models.Transaction {
	return l.filter(func(models.Transaction) bool { return true })
}

func (l *Ledger) HistoryByParticipant(participantID string) []models.Transaction {
	return l.filter(func(tx models.Transaction) bool {
		return tx.Participant != nil && tx.Participant.ParticipantID() == participantID
	})
}

func (l *Ledger) Find(id string) (models.Transaction, bool) {
	i := slices.IndexFunc(l.transactions, func(tx models.Transaction) bool { return tx.ID == id })
	if i < 0 {
		return models.Transaction{}, false
	}
	return cloneTransaction(l.transactions[i]), true
}

func (l *Ledger) Len() int {
	return len(l.transactions)
}

func (l *Ledger) filter(keep func(models.Transaction) bool) []models.Transaction {
	var out []models.Transaction
	for _, tx := range l.transactions {
		if keep(tx) {
			out = append(out, cloneTransaction(tx))
		}
	}
	return out
}

func cloneTransaction(tx models.Transaction) models.Transaction {
	tx.Items = slices.Clone(tx.Items)
	return tx
}

// LinesFromItems turns bare items into one-unit lines.
func LinesFromItems(items ...models.Item) []models.LineItem {
	lines := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		lines = append(lines, models.LineItem{Item: item, Quantity: 1})
	}
	return lines
}
