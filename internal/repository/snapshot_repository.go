package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lacson1/UK-property-management/internal/database"
	"github.com/lacson1/UK-property-management/internal/store"
)

// DefaultSnapshotRetention is how many snapshots Save keeps.
const DefaultSnapshotRetention = 50

// SnapshotRepository persists application state as JSONB snapshots.
type SnapshotRepository interface {
	// Save appends a snapshot and prunes all but the newest retained rows.
	Save(ctx context.Context, state store.State) error

	// Load returns the newest snapshot.
	// Returns nil, nil if no snapshot exists (not an error).
	Load(ctx context.Context) (*store.State, error)

	// Ping checks that the database is reachable.
	Ping(ctx context.Context) error
}

// snapshotRepository is the concrete implementation of SnapshotRepository.
type snapshotRepository struct {
	db        *database.Database
	retention int
}

// NewSnapshotRepository creates a new instance of SnapshotRepository.
func NewSnapshotRepository(db *database.Database, retention int) SnapshotRepository {
	if retention < 1 {
		retention = DefaultSnapshotRetention
	}
	return &snapshotRepository{db: db, retention: retention}
}

func (r *snapshotRepository) Save(ctx context.Context, state store.State) error {
	payload, err := encodeState(state)
	if err != nil {
		return err
	}

	tx, err := r.db.Pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `INSERT INTO portfolio_snapshots (state) VALUES ($1)`, payload); err != nil {
		return fmt.Errorf("failed to insert snapshot: %w", err)
	}

	prune := `
		DELETE FROM portfolio_snapshots
		WHERE id NOT IN (
			SELECT id FROM portfolio_snapshots
			ORDER BY id DESC
			LIMIT $1
		)
	`
	if _, err := tx.Exec(ctx, prune, r.retention); err != nil {
		return fmt.Errorf("failed to prune snapshots: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return nil
}

func (r *snapshotRepository) Load(ctx context.Context) (*store.State, error) {
	var payload []byte
	err := r.db.Pool.QueryRow(ctx, `
		SELECT state
		FROM portfolio_snapshots
		ORDER BY id DESC
		LIMIT 1
	`).Scan(&payload)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to query latest snapshot: %w", err)
	}

	return decodeState(payload)
}

func (r *snapshotRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func encodeState(state store.State) ([]byte, error) {
	payload, err := json.Marshal(state)
	if err != nil {
		return nil, fmt.Errorf("failed to encode snapshot: %w", err)
	}
	return payload, nil
}

func decodeState(payload []byte) (*store.State, error) {
	var state store.State
	if err := json.Unmarshal(payload, &state); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	return &state, nil
}
