//go:generate mockgen -source=store.go -destination=store_mock.go -package=store
package store

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "github.com/duckdb/duckdb-go/v2"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"logpane/internal/app/errors"
	"logpane/internal/config"
	"logpane/internal/config/logger"
)

// Record is one persisted transformation log entry
type Record struct {
	ID        string
	TestID    int64
	RunID     int64 // zero when the entry belongs to no run
	Level     int
	Timestamp int64 // epoch milliseconds
	Message   string
}

// Query selects the records of one test, optionally narrowed to a run
type Query struct {
	TestID   int64
	RunID    int64 // zero matches every run
	MinLevel int
}

// Window bounds a delete by epoch milliseconds, inclusive; nil is unbounded
type Window struct {
	From *int64
	To   *int64
}

// Store persists transformation logs
type Store interface {
	Insert(ctx context.Context, records []Record) error
	Count(ctx context.Context, q Query) (int, error)
	Page(ctx context.Context, q Query, page, limit int) ([]Record, error)
	Delete(ctx context.Context, q Query, w Window) (int64, error)
	Close() error
}

// sqlStore is a Store backed by database/sql with the sqlite or duckdb driver
type sqlStore struct {
	db           *sql.DB
	mu           sync.RWMutex
	closed       bool
	queryTimeout time.Duration
	log          logger.Logger
}

// NewStore opens the database configured under server.* and applies pending migrations
func NewStore(cfg *config.Config, log logger.Logger) (Store, error) {
	return Open(cfg.Server.Driver, cfg.Server.DSN, cfg.Server.QueryTimeout, log)
}

// Open opens driver at dsn and applies pending migrations
func Open(driver, dsn string, queryTimeout time.Duration, log logger.Logger) (Store, error) {
	log = log.WithComponent("STORE")

	if dsn != "" && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:") {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}

	if driver == config.DriverSQLite {
		// a single writer avoids SQLITE_BUSY under concurrent handlers
		db.SetMaxOpenConns(1)
	}

	if err := NewMigrator(db).Run(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	if queryTimeout <= 0 {
		queryTimeout = config.DefaultQueryTimeout
	}

	log.Info().Msgf("Opened %s store at '%s'", driver, dsn)

	return &sqlStore{db: db, queryTimeout: queryTimeout, log: log}, nil
}

// Insert writes records in one transaction, assigning ids to records without one
func (s *sqlStore) Insert(ctx context.Context, records []Record) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return errors.ErrStoreClosed
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, "INSERT INTO transformation_log (id, test_id, run_id, level, ts, message) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for i := range records {
		if records[i].ID == "" {
			records[i].ID = uuid.NewString()
		}

		r := records[i]
		if _, err := stmt.ExecContext(ctx, r.ID, r.TestID, nullRun(r.RunID), r.Level, r.Timestamp, r.Message); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("insert %s: %w", r.ID, err)
		}
	}

	return tx.Commit()
}

// Count returns the number of records matching q
func (s *sqlStore) Count(ctx context.Context, q Query) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, errors.ErrStoreClosed
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	where, args := q.where(Window{})

	var count int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM transformation_log WHERE "+where, args...).Scan(&count); err != nil {
		return 0, err
	}

	return count, nil
}

// Page returns one page of records matching q, oldest first
func (s *sqlStore) Page(ctx context.Context, q Query, page, limit int) ([]Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return nil, errors.ErrStoreClosed
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	where, args := q.where(Window{})
	args = append(args, limit, page*limit)

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, test_id, run_id, level, ts, message FROM transformation_log WHERE "+where+
			" ORDER BY ts, id LIMIT ? OFFSET ?", args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]Record, 0, limit)

	for rows.Next() {
		var (
			r     Record
			runID sql.NullInt64
		)

		if err := rows.Scan(&r.ID, &r.TestID, &runID, &r.Level, &r.Timestamp, &r.Message); err != nil {
			return nil, err
		}

		r.RunID = runID.Int64
		records = append(records, r)
	}

	return records, rows.Err()
}

// Delete removes the records of q's test (and run, when set) inside w. MinLevel is ignored.
func (s *sqlStore) Delete(ctx context.Context, q Query, w Window) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.closed {
		return 0, errors.ErrStoreClosed
	}

	ctx, cancel := context.WithTimeout(ctx, s.queryTimeout)
	defer cancel()

	q.MinLevel = 0
	where, args := q.where(w)

	res, err := s.db.ExecContext(ctx, "DELETE FROM transformation_log WHERE "+where, args...)
	if err != nil {
		return 0, err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}

	s.log.Debug().Msgf("Deleted %d records of test %d", n, q.TestID)

	return n, nil
}

// Close closes the database; later calls fail with ErrStoreClosed
func (s *sqlStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil
	}

	s.closed = true

	return s.db.Close()
}

func (q Query) where(w Window) (string, []any) {
	clauses := []string{"test_id = ?", "level >= ?"}
	args := []any{q.TestID, q.MinLevel}

	if q.RunID != 0 {
		clauses = append(clauses, "run_id = ?")
		args = append(args, q.RunID)
	}

	if w.From != nil {
		clauses = append(clauses, "ts >= ?")
		args = append(args, *w.From)
	}

	if w.To != nil {
		clauses = append(clauses, "ts <= ?")
		args = append(args, *w.To)
	}

	return strings.Join(clauses, " AND "), args
}

func nullRun(runID int64) sql.NullInt64 {
	return sql.NullInt64{Int64: runID, Valid: runID != 0}
}
