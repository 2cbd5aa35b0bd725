package inventory

import (
	"slices"

	"github.com/safar/coronas-ledger/internal/models"
	"go.uber.org/zap"
)

// Store owns the stock, customer and merchant tables. It is the only place
// where on-hand quantities change. A Store is not safe for concurrent use;
// callers run one operation at a time.
//
// Besides the stock it keeps the catalog of known goods. A good stays in
// the catalog when its stock runs out and leaves it only through DeleteItem.
type Store struct {
	stock     map[string]*models.StockEntry
	order     []string
	catalog   map[string]models.Item
	known     []string
	customers []models.Customer
	merchants []models.Merchant
	logger    *zap.Logger
}

type Option func(*Store)

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		stock:   make(map[string]*models.StockEntry),
		catalog: make(map[string]models.Item),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem increments the quantity of an existing entry, ignoring the passed
// item's fields, or inserts a new entry with the given item. A quantity
// below one is ignored.
func (s *Store) AddItem(item models.Item, quantity int) {
	if err := models.ValidateQuantity(quantity); err != nil {
		s.logger.Warn("stock addition ignored", zap.String("item_id", item.ID), zap.Error(err))
		return
	}
	if entry, ok := s.stock[item.ID]; ok {
		entry.Quantity += quantity
		s.logger.Debug("stock increased",
			zap.String("item_id", item.ID),
			zap.Int("quantity", quantity),
			zap.Int("on_hand", entry.Quantity))
		return
	}

	s.stock[item.ID] = &models.StockEntry{Item: item, Quantity: quantity}
	s.order = append(s.order, item.ID)
	s.remember(item)
	s.logger.Debug("stock entry created",
		zap.String("item_id", item.ID),
		zap.Int("quantity", quantity))
}

// RemoveItem decrements stock for itemID. It returns false and leaves stock
// untouched when the entry is missing or holds fewer than quantity units.
// An entry that reaches zero is deleted.
func (s *Store) RemoveItem(itemID string, quantity int) bool {
	if models.ValidateQuantity(quantity) != nil {
		return false
	}
	entry, ok := s.stock[itemID]
	if !ok {
		s.logger.Debug("stock removal refused: unknown item", zap.String("item_id", itemID))
		return false
	}
	if entry.Quantity < quantity {
		s.logger.Debug("stock removal refused: insufficient stock",
			zap.String("item_id", itemID),
			zap.Int("requested", quantity),
			zap.Int("on_hand", entry.Quantity))
		return false
	}

	entry.Quantity -= quantity
	if entry.Quantity == 0 {
		s.deleteEntry(itemID)
	}
	s.logger.Debug("stock decreased",
		zap.String("item_id", itemID),
		zap.Int("quantity", quantity))
	return true
}

// DeleteItem drops the good from the stock and the catalog regardless of
// its quantity. It reports whether the good was known.
func (s *Store) DeleteItem(id string) bool {
	_, inStock := s.stock[id]
	_, known := s.catalog[id]
	if !inStock && !known {
		return false
	}
	if inStock {
		s.deleteEntry(id)
	}
	if known {
		delete(s.catalog, id)
		if i := slices.Index(s.known, id); i >= 0 {
			s.known = slices.Delete(s.known, i, i+1)
		}
	}
	s.logger.Debug("item deleted", zap.String("item_id", id))
	return true
}

// remember records item in the catalog, replacing any earlier definition
// while keeping its position.
func (s *Store) remember(item models.Item) {
	if _, ok := s.catalog[item.ID]; !ok {
		s.known = append(s.known, item.ID)
	}
	s.catalog[item.ID] = item
}

func (s *Store) deleteEntry(id string) {
	delete(s.stock, id)
	if i := slices.Index(s.order, id); i >= 0 {
		s.order = slices.Delete(s.order, i, i+1)
	}
}

// ListStock returns copies of the entries in order of first appearance.
func (s *Store) ListStock() []models.StockEntry {
	entries := make([]models.StockEntry, 0, len(s.order))
	for _, id := range s.order {
		entries = append(entries, *s.stock[id])
	}
	return entries
}

func (s *Store) FindItem(id string) (models.StockEntry, bool) {
	entry, ok := s.stock[id]
	if !ok {
		return models.StockEntry{}, false
	}
	return *entry, true
}

// KnownItem looks id up in the catalog, whether or not it is in stock.
func (s *Store) KnownItem(id string) (models.Item, bool) {
	item, ok := s.catalog[id]
	return item, ok
}

// ListCatalog returns every known good in order of first appearance,
// including goods with no stock left.
func (s *Store) ListCatalog() []models.Item {
	items := make([]models.Item, 0, len(s.known))
	for _, id := range s.known {
		items = append(items, s.catalog[id])
	}
	return items
}

// TotalUnits returns the on-hand quantity for id, zero when absent.
func (s *Store) TotalUnits(id string) int {
	if entry, ok := s.stock[id]; ok {
		return entry.Quantity
	}
	return 0
}

// UpdateItem replaces the stored definition of item.ID in the catalog and,
// when in stock, in its entry, keeping the quantity. Recorded transactions
// keep their own copies.
func (s *Store) UpdateItem(item models.Item) bool {
	if _, ok := s.catalog[item.ID]; !ok {
		return false
	}
	s.catalog[item.ID] = item
	if entry, ok := s.stock[item.ID]; ok {
		entry.Item = item
	}
	s.logger.Debug("item updated", zap.String("item_id", item.ID))
	return true
}
