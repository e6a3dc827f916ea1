package persistence

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

// SQLiteStore records run history so reruns are auditable.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(path string) (*SQLiteStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("db path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	store := &SQLiteStore{db: db}
	if err := store.init(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

func (s *SQLiteStore) init(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, "PRAGMA journal_mode = WAL;"); err != nil {
		return fmt.Errorf("set WAL mode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, "PRAGMA busy_timeout = 5000;"); err != nil {
		return fmt.Errorf("set busy timeout: %w", err)
	}
	// Bootstrap schema_migrations table so we can track applied versions.
	if _, err := s.db.ExecContext(ctx, `CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);`); err != nil {
		return fmt.Errorf("create schema_migrations: %w", err)
	}

	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations: %w", err)
	}
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Name() < entries[j].Name()
	})
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		version := migrationVersion(entry.Name())
		if version <= 0 {
			continue
		}
		var exists int
		if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM schema_migrations WHERE version = ?`, version).Scan(&exists); err != nil {
			return fmt.Errorf("check migration %s: %w", entry.Name(), err)
		}
		if exists > 0 {
			continue
		}
		content, err := migrationFiles.ReadFile(filepath.Join("migrations", entry.Name()))
		if err != nil {
			return fmt.Errorf("read migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("apply migration %s: %w", entry.Name(), err)
		}
		if _, err := s.db.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, version); err != nil {
			return fmt.Errorf("record migration %s: %w", entry.Name(), err)
		}
	}
	return nil
}

// migrationVersion extracts the leading integer from a migration filename (e.g. "001_init.sql" → 1).
func migrationVersion(name string) int {
	for i, c := range name {
		if c < '0' || c > '9' {
			if i == 0 {
				return 0
			}
			n, _ := strconv.Atoi(name[:i])
			return n
		}
	}
	n, _ := strconv.Atoi(name)
	return n
}

// SaveRun persists a run record and its failures in one transaction.
func (s *SQLiteStore) SaveRun(ctx context.Context, rec RunRecord, failures []RunFailure) error {
	if strings.TrimSpace(rec.ID) == "" {
		return fmt.Errorf("run id is required")
	}
	targetsJSON, err := json.Marshal(orEmpty(rec.Targets))
	if err != nil {
		return err
	}
	skippedJSON, err := json.Marshal(orEmpty(rec.Skipped))
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	if _, err = tx.ExecContext(
		ctx,
		`INSERT INTO runs (
			id, product, primary_locale, targets_json, skipped_json,
			successful, failed, written, dry_run, started_at, finished_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID,
		rec.Product,
		rec.Primary,
		string(targetsJSON),
		string(skippedJSON),
		rec.Successful,
		rec.Failed,
		rec.Written,
		boolToInt(rec.DryRun),
		rec.StartedAt.UTC(),
		rec.FinishedAt.UTC(),
	); err != nil {
		return err
	}

	for _, f := range failures {
		if _, err = tx.ExecContext(
			ctx,
			`INSERT INTO run_failures (run_id, path, reason) VALUES (?, ?, ?)`,
			rec.ID,
			f.Path,
			f.Reason,
		); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// ListRuns returns the most recent runs, newest first. An empty product
// filter matches every product; limit <= 0 means no limit.
func (s *SQLiteStore) ListRuns(ctx context.Context, product string, limit int) ([]RunRecord, error) {
	query := `SELECT id, product, primary_locale, targets_json, skipped_json,
		successful, failed, written, dry_run, started_at, finished_at
		FROM runs`
	args := make([]any, 0, 2)
	if product != "" {
		query += ` WHERE product = ?`
		args = append(args, product)
	}
	query += ` ORDER BY started_at DESC, id DESC`
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]RunRecord, 0)
	for rows.Next() {
		var item RunRecord
		var targetsJSON, skippedJSON string
		var dryRun int
		if err := rows.Scan(
			&item.ID,
			&item.Product,
			&item.Primary,
			&targetsJSON,
			&skippedJSON,
			&item.Successful,
			&item.Failed,
			&item.Written,
			&dryRun,
			&item.StartedAt,
			&item.FinishedAt,
		); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(targetsJSON), &item.Targets); err != nil {
			return nil, err
		}
		if err := json.Unmarshal([]byte(skippedJSON), &item.Skipped); err != nil {
			return nil, err
		}
		item.DryRun = dryRun == 1
		ret = append(ret, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

// LoadFailures returns the failures of one run in insertion order.
func (s *SQLiteStore) LoadFailures(ctx context.Context, runID string) ([]RunFailure, error) {
	rows, err := s.db.QueryContext(
		ctx,
		`SELECT run_id, path, reason
		 FROM run_failures
		 WHERE run_id = ?
		 ORDER BY id ASC`,
		runID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	ret := make([]RunFailure, 0)
	for rows.Next() {
		var item RunFailure
		if err := rows.Scan(&item.RunID, &item.Path, &item.Reason); err != nil {
			return nil, err
		}
		ret = append(ret, item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return ret, nil
}

func orEmpty(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}
