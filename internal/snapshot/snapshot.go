// Package snapshot reads and writes the persisted catalogs and moves them in
// and out of an inventory store. Transactions are never persisted.
package snapshot

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/safar/coronas-ledger/internal/inventory"
)

// LoadQuantity is the stock every persisted item starts with; the document
// carries no on-hand counts.
const LoadQuantity = 1

var ErrSnapshotNotFound = errors.New("snapshot not found")

type Store interface {
	Load(ctx context.Context) (Document, error)
	Save(ctx context.Context, doc Document) error
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Bootstrap loads the document, writing and returning an empty one when the
// store has none yet.
func Bootstrap(ctx context.Context, store Store) (Document, bool, error) {
	doc, err := store.Load(ctx)
	if err == nil {
		return doc, false, nil
	}
	if !errors.Is(err, ErrSnapshotNotFound) {
		return Document{}, false, fmt.Errorf("load snapshot: %w", err)
	}

	doc = Empty()
	if err := store.Save(ctx, doc); err != nil {
		return Document{}, false, fmt.Errorf("write empty snapshot: %w", err)
	}
	return doc, true, nil
}

func Validate(doc Document) error {
	if err := validate.Struct(doc); err != nil {
		return fmt.Errorf("invalid snapshot: %w", err)
	}
	return nil
}

// Apply validates doc and fills store with it. Every item enters stock with
// LoadQuantity units. Nothing is inserted when validation fails.
func Apply(doc Document, store *inventory.Store) error {
	if err := Validate(doc); err != nil {
		return err
	}

	for _, r := range doc.Bienes {
		store.AddItem(r.Item(), LoadQuantity)
	}
	for _, r := range doc.Clientes {
		store.AddCustomer(r.Customer())
	}
	for _, r := range doc.Mercaderes {
		store.AddMerchant(r.Merchant())
	}
	return nil
}

// Capture builds a document from the current store contents. Goods come
// from the catalog, so a good whose stock ran out is still saved.
func Capture(store *inventory.Store) Document {
	doc := Empty()
	for _, item := range store.ListCatalog() {
		doc.Bienes = append(doc.Bienes, NewItemRecord(item))
	}
	for _, m := range store.ListMerchants() {
		doc.Mercaderes = append(doc.Mercaderes, NewMerchantRecord(m))
	}
	for _, c := range store.ListCustomers() {
		doc.Clientes = append(doc.Clientes, NewCustomerRecord(c))
	}
	return doc
}
