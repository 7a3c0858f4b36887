package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// LoadPreferences returns every stored preference for owner.
func (db *DB) LoadPreferences(ctx context.Context, owner string) (map[string]bool, error) {
	rows, err := db.pool.Query(ctx,
		`SELECT key, value FROM preferences WHERE owner = $1`,
		owner,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	defer rows.Close()

	prefs := make(map[string]bool)
	for rows.Next() {
		var (
			key   string
			value bool
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan preference: %w", err)
		}
		prefs[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return prefs, nil
}

// SavePreferences upserts every value for owner in one transaction.
func (db *DB) SavePreferences(ctx context.Context, owner string, values map[string]bool) error {
	if len(values) == 0 {
		return nil
	}

	batch := &pgx.Batch{}
	for key, value := range values {
		batch.Queue(
			`INSERT INTO preferences (owner, key, value, updated_at)
			 VALUES ($1, $2, $3, NOW())
			 ON CONFLICT (owner, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()`,
			owner, key, value,
		)
	}

	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit preferences: %w", err)
	}
	return nil
}

// PreferenceBackend adapts the preferences table to settings.Backend for a
// single owner.
type PreferenceBackend struct {
	db    *DB
	owner string
}

// PreferenceBackend returns a settings backend bound to owner.
func (db *DB) PreferenceBackend(owner string) *PreferenceBackend {
	return &PreferenceBackend{db: db, owner: owner}
}

// Load implements settings.Backend.
func (b *PreferenceBackend) Load(ctx context.Context) (map[string]bool, error) {
	return b.db.LoadPreferences(ctx, b.owner)
}

// Save implements settings.Backend.
func (b *PreferenceBackend) Save(ctx context.Context, values map[string]bool) error {
	return b.db.SavePreferences(ctx, b.owner, values)
}
