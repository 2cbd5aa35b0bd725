// Package menu is the interactive terminal front end of the shop. It owns
// every operator-facing message, including uniqueness checks for new ids
// and the explanation of refused transactions.
package menu

import (
	"context"
	"errors"
	"io"

	"github.com/safar/coronas-ledger/internal/inventory"
	"github.com/safar/coronas-ledger/internal/ledger"
	"go.uber.org/zap"
)

// SaveFunc persists the catalogs after a mutation.
type SaveFunc func(ctx context.Context) error

type Menu struct {
	p            *prompter
	store        *inventory.Store
	ledger       *ledger.Ledger
	save         SaveFunc
	logger       *zap.Logger
	topSoldLimit int
}

type Option func(*Menu)

func WithSaver(save SaveFunc) Option {
	return func(m *Menu) {
		m.save = save
	}
}

func WithLogger(logger *zap.Logger) Option {
	return func(m *Menu) {
		if logger != nil {
			m.logger = logger
		}
	}
}

func WithTopSoldLimit(limit int) Option {
	return func(m *Menu) {
		m.topSoldLimit = limit
	}
}

func New(store *inventory.Store, l *ledger.Ledger, in io.Reader, out io.Writer, opts ...Option) *Menu {
	m := &Menu{
		p:            newPrompter(in, out),
		store:        store,
		ledger:       l,
		logger:       zap.NewNop(),
		topSoldLimit: ledger.DefaultTopSoldLimit,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run loops over the main menu until the operator exits, the input ends or
// ctx is cancelled. End of input is a clean exit.
func (m *Menu) Run(ctx context.Context) error {
	m.p.println("Bienvenido al sistema de gestión de inventario.")

	sections := []struct {
		label string
		run   func(context.Context) error
	}{
		{"Bienes", m.goodsMenu},
		{"Clientes", m.customersMenu},
		{"Mercaderes", m.merchantsMenu},
		{"Transacciones", m.transactionsMenu},
		{"Informes", m.reportsMenu},
	}
	labels := make([]string, 0, len(sections)+1)
	for _, s := range sections {
		labels = append(labels, s.label)
	}
	labels = append(labels, "Salir")

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		choice, err := m.p.choose("Menú principal", labels)
		if err != nil {
			return m.exit(err)
		}
		if choice == len(sections) {
			return m.exit(nil)
		}
		if err := sections[choice].run(ctx); err != nil {
			return m.exit(err)
		}
	}
}

func (m *Menu) exit(err error) error {
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	m.p.println("Saliendo del sistema...")
	return nil
}

// persist saves the catalogs. A failed save is reported but does not undo
// the in-memory change.
func (m *Menu) persist(ctx context.Context) {
	if m.save == nil {
		return
	}
	if err := m.save(ctx); err != nil {
		m.logger.Error("snapshot save failed", zap.Error(err))
		m.p.printf("No se pudo guardar la base de datos: %v\n", err)
	}
}
