package store

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"sort"
	"strconv"
	"strings"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Migrator applies the versioned schema migrations embedded in the binary
type Migrator struct {
	db *sql.DB
}

// NewMigrator creates a migrator for db
func NewMigrator(db *sql.DB) *Migrator {
	return &Migrator{db: db}
}

type migration struct {
	version int
	name    string
	sql     string
}

func loadMigrations() ([]migration, error) {
	entries, err := fs.ReadDir(migrations, "migrations")
	if err != nil {
		return nil, fmt.Errorf("reading embedded migrations: %w", err)
	}

	var migs []migration

	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}

		prefix, _, ok := strings.Cut(e.Name(), "_")
		if !ok {
			continue
		}

		version, err := strconv.Atoi(prefix)
		if err != nil {
			return nil, fmt.Errorf("parsing version from %s: %w", e.Name(), err)
		}

		data, err := migrations.ReadFile("migrations/" + e.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", e.Name(), err)
		}

		migs = append(migs, migration{version: version, name: e.Name(), sql: string(data)})
	}

	sort.Slice(migs, func(i, j int) bool { return migs[i].version < migs[j].version })

	return migs, nil
}

func (m *Migrator) bootstrap(ctx context.Context) error {
	_, err := m.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version    INTEGER PRIMARY KEY,
		name       VARCHAR NOT NULL,
		applied_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
	)`)

	return err
}

func (m *Migrator) appliedVersion(ctx context.Context) (int, error) {
	var v sql.NullInt64
	if err := m.db.QueryRowContext(ctx, "SELECT MAX(version) FROM schema_migrations").Scan(&v); err != nil {
		return 0, err
	}

	return int(v.Int64), nil
}

// Run applies every pending migration in its own transaction
func (m *Migrator) Run(ctx context.Context) error {
	if err := m.bootstrap(ctx); err != nil {
		return fmt.Errorf("bootstrap schema_migrations: %w", err)
	}

	migs, err := loadMigrations()
	if err != nil {
		return err
	}

	current, err := m.appliedVersion(ctx)
	if err != nil {
		return fmt.Errorf("reading applied version: %w", err)
	}

	for _, mig := range migs {
		if mig.version <= current {
			continue
		}

		if err := m.apply(ctx, mig); err != nil {
			return err
		}
	}

	return nil
}

func (m *Migrator) apply(ctx context.Context, mig migration) error {
	tx, err := m.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for %s: %w", mig.name, err)
	}

	for _, stmt := range splitStatements(mig.sql) {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("executing %s: %w", mig.name, err)
		}
	}

	if _, err := tx.ExecContext(ctx, "INSERT INTO schema_migrations (version, name) VALUES (?, ?)", mig.version, mig.name); err != nil {
		_ = tx.Rollback()
		return fmt.Errorf("recording %s: %w", mig.name, err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit %s: %w", mig.name, err)
	}

	return nil
}

// Status returns the applied version and the number of pending migrations
func (m *Migrator) Status(ctx context.Context) (current int, pending int, err error) {
	if err = m.bootstrap(ctx); err != nil {
		return 0, 0, fmt.Errorf("bootstrap schema_migrations: %w", err)
	}

	current, err = m.appliedVersion(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("reading applied version: %w", err)
	}

	migs, err := loadMigrations()
	if err != nil {
		return 0, 0, err
	}

	for _, mig := range migs {
		if mig.version > current {
			pending++
		}
	}

	return current, pending, nil
}

// splitStatements splits a migration file on ';' so drivers without multi-statement Exec work too
func splitStatements(script string) []string {
	var stmts []string

	for _, part := range strings.Split(script, ";") {
		if stmt := strings.TrimSpace(part); stmt != "" {
			stmts = append(stmts, stmt)
		}
	}

	return stmts
}
