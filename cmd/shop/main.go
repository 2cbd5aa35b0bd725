package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/safar/coronas-ledger/internal/config"
	"github.com/safar/coronas-ledger/internal/database"
	"github.com/safar/coronas-ledger/internal/inventory"
	"github.com/safar/coronas-ledger/internal/ledger"
	"github.com/safar/coronas-ledger/internal/logging"
	"github.com/safar/coronas-ledger/internal/menu"
	"github.com/safar/coronas-ledger/internal/seed"
	"github.com/safar/coronas-ledger/internal/snapshot"
	"go.uber.org/zap"
)

const version = "1.0.0"

type flags struct {
	snapshotPath string
	seed         bool
	showVersion  bool
}

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdin, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "coronas: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	f, err := parseFlags(args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil
		}
		return err
	}
	if f.showVersion {
		fmt.Fprintf(out, "coronas %s\n", version)
		return nil
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if f.snapshotPath != "" {
		cfg.Snapshot.Path = f.snapshotPath
	}

	logger, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	defer logger.Sync()

	store, closeStore, err := openSnapshotStore(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeStore()

	if f.seed {
		doc, err := seed.Document()
		if err != nil {
			return err
		}
		if err := store.Save(ctx, doc); err != nil {
			return fmt.Errorf("write seed snapshot: %w", err)
		}
		logger.Info("seed fixture written",
			zap.Int("bienes", len(doc.Bienes)),
			zap.Int("mercaderes", len(doc.Mercaderes)),
			zap.Int("clientes", len(doc.Clientes)))
	}

	doc, created, err := snapshot.Bootstrap(ctx, store)
	if err != nil {
		return err
	}
	if created {
		logger.Info("snapshot was empty, initialized with empty catalogs")
	}

	inv := inventory.NewStore(inventory.WithLogger(logger.Named("inventory")))
	if err := snapshot.Apply(doc, inv); err != nil {
		return err
	}
	led := ledger.New(inv, ledger.WithLogger(logger.Named("ledger")))

	logger.Info("inventory loaded",
		zap.String("backend", cfg.Snapshot.Backend),
		zap.String("path", cfg.Snapshot.Path),
		zap.Int("bienes", len(doc.Bienes)),
		zap.Int("mercaderes", len(doc.Mercaderes)),
		zap.Int("clientes", len(doc.Clientes)))

	m := menu.New(inv, led, in, out,
		menu.WithLogger(logger.Named("menu")),
		menu.WithTopSoldLimit(cfg.Reports.TopSoldLimit),
		menu.WithSaver(func(ctx context.Context) error {
			return store.Save(ctx, snapshot.Capture(inv))
		}),
	)
	return m.Run(ctx)
}

func parseFlags(args []string) (flags, error) {
	set := flag.NewFlagSet("coronas", flag.ContinueOnError)

	var f flags
	set.StringVar(&f.snapshotPath, "snapshot", "", "Path of the JSON snapshot; overrides SNAPSHOT_PATH.")
	set.BoolVar(&f.seed, "seed", false, "Write the starter catalog to the snapshot before loading it.")
	set.BoolVar(&f.showVersion, "version", false, "Show the application version.")

	if err := set.Parse(args); err != nil {
		return flags{}, err
	}
	return f, nil
}

func openSnapshotStore(ctx context.Context, cfg *config.Config) (snapshot.Store, func(), error) {
	switch cfg.Snapshot.Backend {
	case config.BackendPostgres:
		db, err := database.Open(ctx, cfg.Database)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		txOpts := database.SnapshotTxOptions()
		txOpts.LockTimeout = cfg.Database.LockTimeout
		return snapshot.NewPostgresStore(db, snapshot.WithTxOptions(txOpts)), func() { closeDB(db) }, nil
	default:
		return snapshot.NewFileStore(cfg.Snapshot.Path), func() {}, nil
	}
}

func closeDB(db *sql.DB) {
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "coronas: close database: %v\n", err)
	}
}
