package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"profilesave/internal/database/migrations"
	"profilesave/internal/model"
	"profilesave/internal/profile"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// SQLiteHistory implements profile.History on a SQLite database.
type SQLiteHistory struct {
	db   *sql.DB
	path string
}

// NewSQLiteHistory opens the history database at path, creating it and
// applying pending migrations as needed. path can be ":memory:".
func NewSQLiteHistory(path string) (*SQLiteHistory, error) {
	db, err := OpenConnection(path)
	if err != nil {
		return nil, err
	}

	if err := migrations.MigrateUp(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrating history database: %w", err)
	}

	return &SQLiteHistory{db: db, path: path}, nil
}

// OpenConnection opens and configures a SQLite database connection with appropriate PRAGMAs.
func OpenConnection(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer at a time, and :memory: is per-connection.
	db.SetMaxOpenConns(1)

	// Enable foreign key constraints (SQLite default is OFF for backward compatibility)
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// CreateRun stores a new run.
func (s *SQLiteHistory) CreateRun(run *model.Run) error {
	_, err := s.db.ExecContext(context.Background(),
		`INSERT INTO runs (id, action, root, account, started_at, status) VALUES (?, ?, ?, ?, ?, ?)`,
		run.ID, run.Action, run.Root, run.Account, run.StartedAt.UTC(), run.Status)
	if err != nil {
		return fmt.Errorf("creating run: %w", err)
	}
	return nil
}

// FinishRun records the final status and item outcomes of a run in one transaction.
func (s *SQLiteHistory) FinishRun(runID string, status string, finishedAt time.Time, items []model.RunItem) error {
	tx, err := s.db.BeginTx(context.Background(), nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(`UPDATE runs SET status = ?, finished_at = ? WHERE id = ?`, status, finishedAt.UTC(), runID)
	if err != nil {
		return fmt.Errorf("finishing run: %w", err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("run not found: %s", runID)
	}

	for i, it := range items {
		_, err := tx.Exec(`INSERT INTO run_items (run_id, position, item_key, outcome, files, reason) VALUES (?, ?, ?, ?, ?, ?)`,
			runID, i, it.ItemKey, it.Outcome, it.Files, it.Reason)
		if err != nil {
			return fmt.Errorf("recording item %s: %w", it.ItemKey, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing run: %w", err)
	}
	return nil
}

// ListRuns returns up to limit runs, newest first, with their items.
// A limit of zero or less returns every run.
func (s *SQLiteHistory) ListRuns(limit int) ([]*model.Run, error) {
	if limit <= 0 {
		limit = -1
	}
	rows, err := s.db.Query(`SELECT id, action, root, account, started_at, finished_at, status
		FROM runs ORDER BY started_at DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("listing runs: %w", err)
	}

	var runs []*model.Run
	for rows.Next() {
		r := &model.Run{}
		if err := rows.Scan(&r.ID, &r.Action, &r.Root, &r.Account, &r.StartedAt, &r.FinishedAt, &r.Status); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scanning run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("listing runs: %w", err)
	}
	rows.Close()

	// Items are loaded after the runs cursor is closed; the pool has a single connection.
	for _, r := range runs {
		items, err := s.runItems(r.ID)
		if err != nil {
			return nil, err
		}
		r.Items = items
	}
	return runs, nil
}

func (s *SQLiteHistory) runItems(runID string) ([]model.RunItem, error) {
	rows, err := s.db.Query(`SELECT item_key, outcome, files, reason FROM run_items WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return nil, fmt.Errorf("listing run items: %w", err)
	}
	defer rows.Close()

	var items []model.RunItem
	for rows.Next() {
		it := model.RunItem{RunID: runID}
		if err := rows.Scan(&it.ItemKey, &it.Outcome, &it.Files, &it.Reason); err != nil {
			return nil, fmt.Errorf("scanning run item: %w", err)
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

// CheckMigrations verifies the schema is at the latest version.
func (s *SQLiteHistory) CheckMigrations() error {
	return migrations.CheckDBMigrationStatus(s.db)
}

// Close closes the database connection.
func (s *SQLiteHistory) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Compile-time check that SQLiteHistory implements profile.History interface
var _ profile.History = (*SQLiteHistory)(nil)
