package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/safar/coronas-ledger/internal/database"
	"github.com/shopspring/decimal"
)

// PostgresStore keeps the document in the bienes, mercaderes and clientes
// tables. Row order is kept in a position column and a single snapshot_meta
// row marks that a snapshot has been saved.
type PostgresStore struct {
	db     *sql.DB
	txOpts database.TxOptions
}

type PostgresOption func(*PostgresStore)

// WithTxOptions replaces the transaction options Save runs with.
func WithTxOptions(opts database.TxOptions) PostgresOption {
	return func(s *PostgresStore) {
		s.txOpts = opts
	}
}

func NewPostgresStore(db *sql.DB, opts ...PostgresOption) *PostgresStore {
	s := &PostgresStore{db: db, txOpts: database.SnapshotTxOptions()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *PostgresStore) Load(ctx context.Context) (Document, error) {
	var savedAt sql.NullTime
	err := s.db.QueryRowContext(ctx, `SELECT saved_at FROM snapshot_meta WHERE id = 1`).Scan(&savedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrSnapshotNotFound
		}
		return Document{}, fmt.Errorf("read snapshot meta: %w", database.Translate(err))
	}

	doc := Empty()

	doc.Bienes, err = s.loadItems(ctx)
	if err != nil {
		return Document{}, err
	}
	doc.Mercaderes, err = s.loadMerchants(ctx)
	if err != nil {
		return Document{}, err
	}
	doc.Clientes, err = s.loadCustomers(ctx)
	if err != nil {
		return Document{}, err
	}

	return doc, nil
}

func (s *PostgresStore) loadItems(ctx context.Context) ([]ItemRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, description, material, weight, value
		FROM bienes
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list bienes: %w", database.Translate(err))
	}
	defer rows.Close()

	items := []ItemRecord{}
	for rows.Next() {
		var r ItemRecord
		var value decimal.Decimal
		if err := rows.Scan(&r.ID, &r.Name, &r.Description, &r.Material, &r.Weight, &value); err != nil {
			return nil, fmt.Errorf("scan bien: %w", err)
		}
		r.Value, _ = value.Float64()
		items = append(items, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return items, nil
}

func (s *PostgresStore) loadMerchants(ctx context.Context) ([]MerchantRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, type, location
		FROM mercaderes
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list mercaderes: %w", database.Translate(err))
	}
	defer rows.Close()

	merchants := []MerchantRecord{}
	for rows.Next() {
		var r MerchantRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Type, &r.Location); err != nil {
			return nil, fmt.Errorf("scan mercader: %w", err)
		}
		merchants = append(merchants, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return merchants, nil
}

func (s *PostgresStore) loadCustomers(ctx context.Context) ([]CustomerRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, race, location
		FROM clientes
		ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("list clientes: %w", database.Translate(err))
	}
	defer rows.Close()

	customers := []CustomerRecord{}
	for rows.Next() {
		var r CustomerRecord
		if err := rows.Scan(&r.ID, &r.Name, &r.Race, &r.Location); err != nil {
			return nil, fmt.Errorf("scan cliente: %w", err)
		}
		customers = append(customers, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}
	return customers, nil
}

// Save replaces every row in one transaction, serializable by default. A
// lock held past the configured timeout surfaces as database.ErrLockTimeout
// once the retries are spent.
func (s *PostgresStore) Save(ctx context.Context, doc Document) error {
	err := database.WithRetry(ctx, s.db, s.txOpts, func(tx *sql.Tx) error {
		for _, table := range []string{"bienes", "mercaderes", "clientes"} {
			if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
				return fmt.Errorf("clear %s: %w", table, err)
			}
		}

		for i, r := range doc.Bienes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO bienes (position, id, name, description, material, weight, value)
				 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
				i, r.ID, r.Name, r.Description, r.Material, r.Weight, decimal.NewFromFloat(r.Value))
			if err != nil {
				return fmt.Errorf("insert bien %s: %w", r.ID, err)
			}
		}
		for i, r := range doc.Mercaderes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO mercaderes (position, id, name, type, location)
				 VALUES ($1, $2, $3, $4, $5)`,
				i, r.ID, r.Name, r.Type, r.Location)
			if err != nil {
				return fmt.Errorf("insert mercader %s: %w", r.ID, err)
			}
		}
		for i, r := range doc.Clientes {
			_, err := tx.ExecContext(ctx,
				`INSERT INTO clientes (position, id, name, race, location)
				 VALUES ($1, $2, $3, $4, $5)`,
				i, r.ID, r.Name, r.Race, r.Location)
			if err != nil {
				return fmt.Errorf("insert cliente %s: %w", r.ID, err)
			}
		}

		_, err := tx.ExecContext(ctx,
			`INSERT INTO snapshot_meta (id, saved_at) VALUES (1, NOW())
			 ON CONFLICT (id) DO UPDATE SET saved_at = EXCLUDED.saved_at`)
		if err != nil {
			return fmt.Errorf("mark snapshot saved: %w", err)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("save snapshot: %w", database.Translate(err))
	}
	return nil
}
