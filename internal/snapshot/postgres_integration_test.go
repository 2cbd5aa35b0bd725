//go:build integration

package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/safar/coronas-ledger/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

func setupTestDB(t *testing.T) (*sql.DB, func()) {
	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "postgres:14-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "testuser",
			"POSTGRES_PASSWORD": "testpass",
			"POSTGRES_DB":       "testdb",
		},
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	postgres, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start postgres container: %v", err)
	}

	host, err := postgres.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}

	port, err := postgres.MappedPort(ctx, "5432")
	if err != nil {
		t.Fatalf("Failed to get container port: %v", err)
	}

	dsn := fmt.Sprintf("postgres://testuser:testpass@%s:%s/testdb?sslmode=disable", host, port.Port())

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.Ping(); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	cleanup := func() {
		if err := db.Close(); err != nil {
			t.Logf("Failed to close database: %v", err)
		}
		if err := postgres.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate container: %v", err)
		}
	}

	return db, cleanup
}

func runMigrations(db *sql.DB, direction string) error {
	migrationDir := "../../migrations"
	files, err := os.ReadDir(migrationDir)
	if err != nil {
		return fmt.Errorf("read migration directory: %w", err)
	}

	var migrationFiles []string
	for _, file := range files {
		if !file.IsDir() && strings.HasSuffix(file.Name(), "."+direction+".sql") {
			migrationFiles = append(migrationFiles, file.Name())
		}
	}

	sort.Strings(migrationFiles)
	if direction == "down" {
		sort.Sort(sort.Reverse(sort.StringSlice(migrationFiles)))
	}

	for _, filename := range migrationFiles {
		content, err := os.ReadFile(filepath.Join(migrationDir, filename))
		if err != nil {
			return fmt.Errorf("read migration file %s: %w", filename, err)
		}

		if _, err := db.Exec(string(content)); err != nil {
			return fmt.Errorf("execute migration %s: %w", filename, err)
		}
	}

	return nil
}

func migratedStore(t *testing.T) (*PostgresStore, *sql.DB, func()) {
	db, cleanup := setupTestDB(t)
	if err := runMigrations(db, "up"); err != nil {
		cleanup()
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return NewPostgresStore(db), db, cleanup
}

func TestPostgresBootstrapWritesEmptySnapshot(t *testing.T) {
	store, _, cleanup := migratedStore(t)
	defer cleanup()

	ctx := context.Background()

	if _, err := store.Load(ctx); !errors.Is(err, ErrSnapshotNotFound) {
		t.Fatalf("Expected ErrSnapshotNotFound, got %v", err)
	}

	doc, created, err := Bootstrap(ctx, store)
	if err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if !created {
		t.Error("Expected Bootstrap to create the snapshot")
	}
	if len(doc.Bienes) != 0 || len(doc.Mercaderes) != 0 || len(doc.Clientes) != 0 {
		t.Errorf("Expected empty document, got %+v", doc)
	}

	_, created, err = Bootstrap(ctx, store)
	if err != nil {
		t.Fatalf("Second bootstrap: %v", err)
	}
	if created {
		t.Error("Second bootstrap should load the existing snapshot")
	}
}

func TestPostgresSaveLoadRoundTrip(t *testing.T) {
	store, _, cleanup := migratedStore(t)
	defer cleanup()

	ctx := context.Background()

	doc := Document{
		Bienes: []ItemRecord{
			{ID: "20", Name: "Lámpara de Djinn", Description: "Artefacto con esencia mágica", Material: "Vidrio encantado", Weight: 1.8, Value: 750},
			{ID: "3", Name: "Elixir de Golondrina", Description: "Regenera salud", Material: "Hierbas místicas", Weight: 0.5, Value: 150.25},
		},
		Mercaderes: []MerchantRecord{{ID: "1", Name: "Hattori", Type: "Herrero", Location: "Novigrado"}},
		Clientes:   []CustomerRecord{{ID: "1", Name: "Geralt de Rivia", Race: "Brujo", Location: "Kaer Morhen"}},
	}

	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if len(loaded.Bienes) != 2 {
		t.Fatalf("Expected 2 bienes, got %d", len(loaded.Bienes))
	}
	if loaded.Bienes[0].ID != "20" || loaded.Bienes[1].ID != "3" {
		t.Errorf("Expected saved order to be kept, got %s, %s", loaded.Bienes[0].ID, loaded.Bienes[1].ID)
	}
	if loaded.Bienes[1].Value != 150.25 {
		t.Errorf("Expected value 150.25, got %v", loaded.Bienes[1].Value)
	}
	if loaded.Mercaderes[0] != doc.Mercaderes[0] {
		t.Errorf("Expected merchant %+v, got %+v", doc.Mercaderes[0], loaded.Mercaderes[0])
	}
	if loaded.Clientes[0] != doc.Clientes[0] {
		t.Errorf("Expected customer %+v, got %+v", doc.Clientes[0], loaded.Clientes[0])
	}

	if err := store.Save(ctx, Empty()); err != nil {
		t.Fatalf("Save empty: %v", err)
	}
	loaded, err = store.Load(ctx)
	if err != nil {
		t.Fatalf("Load after overwrite: %v", err)
	}
	if len(loaded.Bienes) != 0 {
		t.Errorf("Expected overwrite to clear bienes, got %d", len(loaded.Bienes))
	}
}

func TestPostgresConcurrentSaves(t *testing.T) {
	store, _, cleanup := migratedStore(t)
	defer cleanup()

	ctx := context.Background()

	if err := store.Save(ctx, Document{Bienes: []ItemRecord{{ID: "seed", Name: "Semilla"}}}); err != nil {
		t.Fatalf("Initial save: %v", err)
	}

	writers := 3
	var wg sync.WaitGroup
	results := make(chan error, writers)

	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			doc := Empty()
			for i := 0; i <= w; i++ {
				doc.Bienes = append(doc.Bienes, ItemRecord{
					ID:   fmt.Sprintf("w%d-%d", w, i),
					Name: fmt.Sprintf("Bien %d de %d", i, w),
				})
			}
			results <- store.Save(ctx, doc)
		}(w)
	}

	wg.Wait()
	close(results)

	for err := range results {
		if err != nil {
			t.Errorf("Concurrent save failed: %v", err)
		}
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Bienes) == 0 {
		t.Fatal("Expected one writer's bienes to survive")
	}

	writer := strings.SplitN(loaded.Bienes[0].ID, "-", 2)[0]
	for _, b := range loaded.Bienes {
		if !strings.HasPrefix(b.ID, writer+"-") {
			t.Errorf("Snapshot mixes writers: %s next to %s", b.ID, writer)
		}
	}
	if want := int(writer[1]-'0') + 1; len(loaded.Bienes) != want {
		t.Errorf("Expected %d bienes from %s, got %d", want, writer, len(loaded.Bienes))
	}
}

func TestPostgresMissingSchema(t *testing.T) {
	store, db, cleanup := migratedStore(t)
	defer cleanup()

	if err := runMigrations(db, "down"); err != nil {
		t.Fatalf("Failed to roll back migrations: %v", err)
	}

	_, err := store.Load(context.Background())
	if !errors.Is(err, database.ErrSchemaMissing) {
		t.Errorf("Expected ErrSchemaMissing, got %v", err)
	}
}

func TestPostgresSaveTimesOutOnHeldLock(t *testing.T) {
	_, db, cleanup := migratedStore(t)
	defer cleanup()

	ctx := context.Background()
	opts := database.SnapshotTxOptions()
	opts.LockTimeout = 200 * time.Millisecond
	opts.MaxRetries = 0
	store := NewPostgresStore(db, WithTxOptions(opts))

	if err := store.Save(ctx, Document{Bienes: []ItemRecord{{ID: "1", Name: "Espada de Acero"}}}); err != nil {
		t.Fatalf("Initial save: %v", err)
	}

	holder, err := db.BeginTx(ctx, nil)
	if err != nil {
		t.Fatalf("Failed to begin lock holder: %v", err)
	}
	defer holder.Rollback()
	if _, err := holder.ExecContext(ctx, "LOCK TABLE bienes IN ACCESS EXCLUSIVE MODE"); err != nil {
		t.Fatalf("Failed to lock bienes: %v", err)
	}

	start := time.Now()
	err = store.Save(ctx, Empty())
	if !errors.Is(err, database.ErrLockTimeout) {
		t.Fatalf("Expected ErrLockTimeout, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("Save waited %v for the lock", elapsed)
	}

	if err := holder.Rollback(); err != nil {
		t.Fatalf("Failed to release lock: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Bienes) != 1 || loaded.Bienes[0].ID != "1" {
		t.Errorf("Expected the earlier snapshot to survive, got %+v", loaded.Bienes)
	}
}
