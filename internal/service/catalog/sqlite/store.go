package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/zhouzirui/restaurant-stars/backend/internal/model/catalog"
)

var ErrStoreClosed = errors.New("catalog store is closed")

// Store implements catalog.Store on top of a SQLite database.
type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	closed bool
}

// New opens (or creates) the catalog database at dbPath.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog database: %w", err)
	}

	store, err := NewWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

// NewWithDB creates a store using an existing database connection.
func NewWithDB(db *sql.DB) (*Store, error) {
	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize catalog tables: %w", err)
	}
	return store, nil
}

// NewInMemory creates an in-memory catalog (useful for testing).
func NewInMemory() (*Store, error) {
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to open in-memory database: %w", err)
	}
	// every pooled connection would otherwise get its own empty database
	db.SetMaxOpenConns(1)

	store, err := NewWithDB(db)
	if err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
		CREATE TABLE IF NOT EXISTS restaurants (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			cuisine TEXT NOT NULL DEFAULT '',
			neighborhood TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL DEFAULT 0
		);

		CREATE INDEX IF NOT EXISTS idx_restaurants_position ON restaurants(position);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Insert upserts restaurants, keeping the order in which they are first added.
func (s *Store) Insert(ctx context.Context, items ...catalog.Restaurant) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin catalog insert: %w", err)
	}
	defer tx.Rollback()

	var next int64
	if err := tx.QueryRowContext(ctx, "SELECT COALESCE(MAX(position), 0) FROM restaurants").Scan(&next); err != nil {
		return fmt.Errorf("failed to read catalog position: %w", err)
	}

	for _, r := range items {
		next++
		_, err := tx.ExecContext(ctx, `
			INSERT INTO restaurants (id, name, cuisine, neighborhood, position)
			VALUES (?, ?, ?, ?, ?)
			ON CONFLICT(id) DO UPDATE SET
				name = excluded.name,
				cuisine = excluded.cuisine,
				neighborhood = excluded.neighborhood
		`, r.ID, r.Name, r.Cuisine, r.Neighborhood, next)
		if err != nil {
			return fmt.Errorf("failed to insert restaurant %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// List returns every restaurant in insertion order. Query failures are logged
// and yield an empty list.
func (s *Store) List() []catalog.Restaurant {
	items, err := s.ListContext(context.Background())
	if err != nil {
		log.Printf("[catalog] list failed: %v", err)
		return nil
	}
	return items
}

// ListContext is List with error reporting.
func (s *Store) ListContext(ctx context.Context) ([]catalog.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, name, cuisine, neighborhood FROM restaurants ORDER BY position, id",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list restaurants: %w", err)
	}
	defer rows.Close()

	var items []catalog.Restaurant
	for rows.Next() {
		var r catalog.Restaurant
		if err := rows.Scan(&r.ID, &r.Name, &r.Cuisine, &r.Neighborhood); err != nil {
			return nil, fmt.Errorf("failed to scan restaurant: %w", err)
		}
		items = append(items, r)
	}
	return items, rows.Err()
}

// FindByID looks up a restaurant. Query failures are logged and reported as
// not found.
func (s *Store) FindByID(id string) (catalog.Restaurant, bool) {
	r, err := s.FindByIDContext(context.Background(), id)
	if err != nil {
		if !errors.Is(err, sql.ErrNoRows) {
			log.Printf("[catalog] lookup %s failed: %v", id, err)
		}
		return catalog.Restaurant{}, false
	}
	return r, true
}

// FindByIDContext is FindByID with error reporting; a missing row yields
// sql.ErrNoRows.
func (s *Store) FindByIDContext(ctx context.Context, id string) (catalog.Restaurant, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return catalog.Restaurant{}, ErrStoreClosed
	}

	var r catalog.Restaurant
	err := s.db.QueryRowContext(ctx,
		"SELECT id, name, cuisine, neighborhood FROM restaurants WHERE id = ?",
		id,
	).Scan(&r.ID, &r.Name, &r.Cuisine, &r.Neighborhood)
	if err != nil {
		return catalog.Restaurant{}, err
	}
	return r, nil
}

// Close closes the store.
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
