package store

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/nhle/munchie/internal/model"
)

// SQLiteStore implements the Store interface using a local SQLite database.
type SQLiteStore struct {
	db *sqlx.DB
}

// NewSQLiteStore opens (or creates) a SQLite database at dbPath,
// enables WAL mode, and runs any pending schema migrations.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sqlx.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}

	// Every connection to ":memory:" is a separate database.
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling WAL mode: %w", err)
	}

	s := &SQLiteStore{db: db}
	if err := s.runMigrations(); err != nil {
		db.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close closes the underlying database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// runMigrations checks the current schema version and applies any
// outstanding migrations in order.
func (s *SQLiteStore) runMigrations() error {
	currentVersion := 0

	var tableCount int
	err := s.db.Get(
		&tableCount,
		"SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='schema_version'",
	)
	if err != nil {
		return fmt.Errorf("checking schema_version table: %w", err)
	}

	if tableCount > 0 {
		err = s.db.Get(&currentVersion, "SELECT COALESCE(MAX(version), 0) FROM schema_version")
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
	}

	for _, m := range migrations {
		if m.version <= currentVersion {
			continue
		}
		if _, err := s.db.Exec(m.sql); err != nil {
			return fmt.Errorf("applying migration v%d: %w", m.version, err)
		}
	}

	return nil
}

// RecordAck appends one outcome to the journal. A missing ID or timestamp
// is filled in.
func (s *SQLiteStore) RecordAck(ctx context.Context, rec model.AckRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now()
	}
	rec.CreatedAt = rec.CreatedAt.UTC()
	if rec.BatchID == "" {
		return fmt.Errorf("recording ack for notification %d: batch id must not be empty", rec.NotificationID)
	}

	_, err := s.db.NamedExecContext(ctx, `
		INSERT INTO ack_log (
			id, batch_id, notification_id, award_id, status, error, created_at
		) VALUES (
			:id, :batch_id, :notification_id, :award_id, :status, :error, :created_at
		)`,
		rec,
	)
	if err != nil {
		return fmt.Errorf("recording ack for notification %d: %w", rec.NotificationID, err)
	}
	return nil
}

// ListAcks returns journal rows matching filter, newest first.
func (s *SQLiteStore) ListAcks(ctx context.Context, filter AckFilter) ([]model.AckRecord, error) {
	var conditions []string
	var args []interface{}

	if filter.BatchID != nil {
		conditions = append(conditions, "batch_id = ?")
		args = append(args, *filter.BatchID)
	}
	if filter.Status != nil {
		conditions = append(conditions, "status = ?")
		args = append(args, string(*filter.Status))
	}

	query := "SELECT id, batch_id, notification_id, award_id, status, error, created_at FROM ack_log"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, rowid DESC"
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d", filter.Limit)
	}

	var recs []model.AckRecord
	if err := s.db.SelectContext(ctx, &recs, query, args...); err != nil {
		return nil, fmt.Errorf("querying acks: %w", err)
	}
	return recs, nil
}

// CountAcks returns the number of journal rows per status.
func (s *SQLiteStore) CountAcks(ctx context.Context) (map[model.AckStatus]int, error) {
	var rows []struct {
		Status string `db:"status"`
		N      int    `db:"n"`
	}
	err := s.db.SelectContext(ctx, &rows,
		"SELECT status, COUNT(*) AS n FROM ack_log GROUP BY status")
	if err != nil {
		return nil, fmt.Errorf("counting acks: %w", err)
	}

	counts := make(map[model.AckStatus]int, len(rows))
	for _, r := range rows {
		counts[model.AckStatus(r.Status)] = r.N
	}
	return counts, nil
}

// PruneAcks deletes journal rows older than before and reports how many
// were removed.
func (s *SQLiteStore) PruneAcks(ctx context.Context, before time.Time) (int64, error) {
	result, err := s.db.ExecContext(ctx,
		"DELETE FROM ack_log WHERE created_at < ?", before.UTC())
	if err != nil {
		return 0, fmt.Errorf("pruning acks: %w", err)
	}
	n, _ := result.RowsAffected()
	return n, nil
}
