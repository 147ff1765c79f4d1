// Package snapshot persists compatibility snapshots in SQLite.
package snapshot

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

// ErrNotFound is returned when no snapshot has the requested id.
var ErrNotFound = errors.New("snapshot: not found")

const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// #region schema
const schema = `
CREATE TABLE IF NOT EXISTS compatibility_snapshots (
	snapshot_id    TEXT PRIMARY KEY,
	user_a_id      TEXT NOT NULL,
	user_b_id      TEXT,
	model_version  TEXT NOT NULL,
	strategy       TEXT NOT NULL,
	score_overall  REAL NOT NULL,
	tier           TEXT NOT NULL,
	soulmate_flag  INTEGER NOT NULL,
	axes_json      TEXT NOT NULL,
	payload_json   TEXT NOT NULL,
	created_at     TEXT NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_snapshots_user_a ON compatibility_snapshots(user_a_id, created_at);
CREATE INDEX IF NOT EXISTS idx_snapshots_user_b ON compatibility_snapshots(user_b_id, created_at);
`

// #endregion schema

// #region store
// Store reads and writes snapshots on a shared database handle.
type Store struct {
	db *sql.DB
}

// NewStore migrates the snapshot table on db. The caller owns db.
func NewStore(db *sql.DB) (*Store, error) {
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("migrate snapshots: %w", err)
	}
	return &Store{db: db}, nil
}

// #endregion store

// #region save
// Save assigns an id and timestamp when missing and writes the snapshot.
// It returns the snapshot as stored.
func (s *Store) Save(ctx context.Context, snap Snapshot) (Snapshot, error) {
	if snap.SnapshotID == "" {
		snap.SnapshotID = uuid.New().String()
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = time.Now().UTC()
	}

	axes, err := json.Marshal(snap.Axes)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal axes: %w", err)
	}
	payload, err := json.Marshal(snap)
	if err != nil {
		return Snapshot{}, fmt.Errorf("marshal snapshot: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO compatibility_snapshots
		 (snapshot_id, user_a_id, user_b_id, model_version, strategy, score_overall, tier, soulmate_flag, axes_json, payload_json, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.SnapshotID,
		snap.UserA,
		nullIfEmpty(snap.UserB),
		snap.ModelVersion,
		snap.Strategy,
		snap.Overall,
		string(snap.Tier),
		snap.SoulmateFlag,
		string(axes),
		string(payload),
		snap.CreatedAt.Format(timeLayout),
	)
	if err != nil {
		return Snapshot{}, fmt.Errorf("insert snapshot: %w", err)
	}
	return snap, nil
}

// #endregion save

// #region read
// Get returns one snapshot by id.
func (s *Store) Get(ctx context.Context, id string) (Snapshot, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload_json FROM compatibility_snapshots WHERE snapshot_id = ?`, id,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("snapshot %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("get snapshot %s: %w", id, err)
	}
	return decode(payload)
}

// List returns the newest snapshots first.
func (s *Store) List(ctx context.Context, limit int) ([]Snapshot, error) {
	return s.query(ctx,
		`SELECT payload_json FROM compatibility_snapshots ORDER BY created_at DESC, rowid DESC LIMIT ?`, limit)
}

// ListForUser returns the newest snapshots where userID is either side of the pair.
func (s *Store) ListForUser(ctx context.Context, userID string, limit int) ([]Snapshot, error) {
	return s.query(ctx,
		`SELECT payload_json FROM compatibility_snapshots
		 WHERE user_a_id = ? OR user_b_id = ?
		 ORDER BY created_at DESC, rowid DESC LIMIT ?`, userID, userID, limit)
}

func (s *Store) query(ctx context.Context, q string, args ...any) ([]Snapshot, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []Snapshot
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		snap, err := decode(payload)
		if err != nil {
			return nil, err
		}
		out = append(out, snap)
	}
	return out, rows.Err()
}

// #endregion read

// #region helpers
func decode(payload string) (Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(payload), &snap); err != nil {
		return Snapshot{}, fmt.Errorf("decode snapshot: %w", err)
	}
	return snap, nil
}

func nullIfEmpty(s string) interface{} {
	if s == "" {
		return nil
	}
	return s
}

// #endregion helpers
