// Package storage persists profile snapshots in SQLite.
package storage

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/pressly/goose/v3"

	"github.com/okian/fairway/pkg/logger"
	"github.com/okian/fairway/pkg/metrics"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

const (
	maxOpenConns    = 4
	connMaxLifetime = time.Hour
)

// gooseMu guards goose's package-level base FS and dialect.
var gooseMu sync.Mutex

// Snapshot is one persisted profile computation.
type Snapshot struct {
	ID               string          `json:"id"`
	PlayerID         string          `json:"player_id"`
	Handicap         float64         `json:"handicap"`
	OverallScore     float64         `json:"overall_score"`
	ArchetypeID      string          `json:"archetype_id"`
	FitScore         float64         `json:"fit_score"`
	DataCompleteness float64         `json:"data_completeness"`
	Payload          json.RawMessage `json:"payload"`
	CreatedAt        time.Time       `json:"created_at"`
}

// History is the snapshot store used by the service.
type History interface {
	// Save persists s, assigning an id and timestamp when missing.
	Save(ctx context.Context, s Snapshot) (Snapshot, error)
	// ListByPlayer returns at most limit snapshots for a player, newest first.
	ListByPlayer(ctx context.Context, playerID string, limit int) ([]Snapshot, error)
	// Prune deletes snapshots created before the cutoff and returns how many were removed.
	Prune(ctx context.Context, before time.Time) (int64, error)
	// Count returns the number of stored snapshots.
	Count(ctx context.Context) (int64, error)
	Close() error
}

// SQLiteStore implements History on top of database/sql and go-sqlite3.
type SQLiteStore struct {
	db     *sql.DB
	logger logger.Logger
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
}

var _ History = (*SQLiteStore)(nil)

// Open connects to the database at path, applies pragmas and runs migrations.
func Open(ctx context.Context, path string, opts ...Option) (*SQLiteStore, error) {
	s := &SQLiteStore{
		logger: logger.Get(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.logger = s.logger.Named("history")

	s.logger.Info(ctx, "opening history database", logger.String("path", path))

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)
	db.SetConnMaxLifetime(connMaxLifetime)
	s.db = db

	if err := s.optimize(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to optimize SQLite: %w", err)
	}
	if err := migrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	if n, err := s.Count(ctx); err == nil {
		metrics.UpdateHistoryRows(n)
	}
	return s, nil
}

// dsn adds per-connection settings to the file path so every pooled connection gets them.
func dsn(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	return path + sep + "_busy_timeout=5000&_foreign_keys=on&_synchronous=NORMAL"
}

func (s *SQLiteStore) optimize(ctx context.Context) error {
	pragmas := []struct {
		name  string
		value string
	}{
		{"journal_mode", "WAL"},
		{"cache_size", "-16000"},
		{"temp_store", "MEMORY"},
	}
	for _, p := range pragmas {
		if _, err := s.db.ExecContext(ctx, fmt.Sprintf("PRAGMA %s = %s", p.name, p.value)); err != nil {
			return fmt.Errorf("failed to set PRAGMA %s: %w", p.name, err)
		}
		s.logger.Debug(ctx, "SQLite pragma set", logger.String("pragma", p.name), logger.String("value", p.value))
	}
	return nil
}

func migrate(ctx context.Context, db *sql.DB) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(embedMigrations)
	defer goose.SetBaseFS(nil)
	goose.SetLogger(goose.NopLogger())

	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("failed to run goose migrations: %w", err)
	}
	return nil
}

// Save inserts a snapshot.
func (s *SQLiteStore) Save(ctx context.Context, snap Snapshot) (Snapshot, error) { //nolint:gocritic // hugeParam: snapshot is returned by value
	if snap.PlayerID == "" || len(snap.Payload) == 0 {
		return Snapshot{}, ErrInvalidSnapshot
	}
	if err := s.checkOpen(); err != nil {
		return Snapshot{}, err
	}
	defer s.mu.RUnlock()

	if snap.ID == "" {
		id, err := gonanoid.New()
		if err != nil {
			return Snapshot{}, fmt.Errorf("failed to generate nanoid: %w", err)
		}
		snap.ID = id
	}
	if snap.CreatedAt.IsZero() {
		snap.CreatedAt = s.now()
	}
	snap.CreatedAt = snap.CreatedAt.UTC().Truncate(time.Millisecond)

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO profile_snapshots
			(id, player_id, handicap, overall_score, archetype_id, fit_score, data_completeness, payload, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		snap.ID, snap.PlayerID, snap.Handicap, snap.OverallScore, snap.ArchetypeID,
		snap.FitScore, snap.DataCompleteness, []byte(snap.Payload), snap.CreatedAt.UnixMilli(),
	)
	if err != nil {
		metrics.RecordHistoryError()
		return Snapshot{}, fmt.Errorf("failed to insert snapshot: %w", err)
	}
	metrics.RecordHistoryWrite()
	return snap, nil
}

// ListByPlayer returns a player's snapshots, newest first.
func (s *SQLiteStore) ListByPlayer(ctx context.Context, playerID string, limit int) ([]Snapshot, error) {
	if limit <= 0 {
		return nil, ErrInvalidLimit
	}
	if err := s.checkOpen(); err != nil {
		return nil, err
	}
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, player_id, handicap, overall_score, archetype_id, fit_score, data_completeness, payload, created_at
		FROM profile_snapshots
		WHERE player_id = ?
		ORDER BY created_at DESC, rowid DESC
		LIMIT ?`, playerID, limit)
	if err != nil {
		metrics.RecordHistoryError()
		return nil, fmt.Errorf("failed to query snapshots: %w", err)
	}
	defer func() { _ = rows.Close() }()

	out := make([]Snapshot, 0, min(limit, 64))
	for rows.Next() {
		var (
			snap    Snapshot
			payload []byte
			created int64
		)
		if err := rows.Scan(&snap.ID, &snap.PlayerID, &snap.Handicap, &snap.OverallScore, &snap.ArchetypeID,
			&snap.FitScore, &snap.DataCompleteness, &payload, &created); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		snap.Payload = json.RawMessage(payload)
		snap.CreatedAt = time.UnixMilli(created).UTC()
		out = append(out, snap)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate snapshots: %w", err)
	}
	return out, nil
}

// Prune removes snapshots created strictly before the cutoff.
func (s *SQLiteStore) Prune(ctx context.Context, before time.Time) (int64, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	defer s.mu.RUnlock()

	res, err := s.db.ExecContext(ctx, `DELETE FROM profile_snapshots WHERE created_at < ?`, before.UTC().UnixMilli())
	if err != nil {
		metrics.RecordHistoryError()
		return 0, fmt.Errorf("failed to prune snapshots: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read pruned rows: %w", err)
	}
	metrics.RecordHistoryPruned(n)
	if n > 0 {
		s.logger.Info(ctx, "pruned history", logger.Int64("rows", n), logger.String("before", before.UTC().Format(time.RFC3339)))
	}
	return n, nil
}

// Count returns the number of stored snapshots.
func (s *SQLiteStore) Count(ctx context.Context) (int64, error) {
	if err := s.checkOpen(); err != nil {
		return 0, err
	}
	defer s.mu.RUnlock()

	var n int64
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM profile_snapshots`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count snapshots: %w", err)
	}
	return n, nil
}

// Close closes the database. Further calls return ErrClosed.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	if err := s.db.Close(); err != nil && !errors.Is(err, sql.ErrConnDone) {
		return fmt.Errorf("failed to close database: %w", err)
	}
	return nil
}

// checkOpen read-locks the store; callers must RUnlock when it returns nil.
func (s *SQLiteStore) checkOpen() error {
	s.mu.RLock()
	if s.closed {
		s.mu.RUnlock()
		return ErrClosed
	}
	return nil
}
