package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         TEXT PRIMARY KEY,
	filename   TEXT NOT NULL,
	text_hash  TEXT NOT NULL,
	role       TEXT,
	company    TEXT,
	score      REAL NOT NULL,
	grade      TEXT NOT NULL,
	result     BLOB NOT NULL,
	created_at TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_text_hash ON runs(text_hash);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// SQLiteStore is the default single-file backend.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and migrates) the database at path.
func OpenSQLite(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, eris.Wrap(err, "store: open sqlite")
	}

	// WAL keeps the serve command's concurrent reads from blocking writes.
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
	} {
		if _, err := db.Exec(pragma); err != nil {
			return nil, eris.Wrapf(err, "store: exec %s", pragma)
		}
	}

	if _, err := db.Exec(sqliteSchema); err != nil {
		return nil, eris.Wrap(err, "store: migrate sqlite schema")
	}

	zap.L().Info("store: sqlite opened", zap.String("path", path))
	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO runs (id, filename, text_hash, role, company, score, grade, result, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Filename, run.TextHash, run.Role, run.Company,
		run.Score, run.Grade, run.Result, run.CreatedAt)
	if err != nil {
		return eris.Wrap(err, "store: save run")
	}
	return nil
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, text_hash, role, company, score, grade, result, created_at
		 FROM runs WHERE id = ?`, id)
	return scanRun(row)
}

func (s *SQLiteStore) FindByHash(ctx context.Context, textHash string) (*Run, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, filename, text_hash, role, company, score, grade, result, created_at
		 FROM runs WHERE text_hash = ? ORDER BY created_at DESC LIMIT 1`, textHash)
	return scanRun(row)
}

func (s *SQLiteStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, filename, text_hash, role, company, score, grade, result, created_at
		 FROM runs ORDER BY created_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, eris.Wrap(err, "store: list runs")
	}
	defer rows.Close()

	var out []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Filename, &r.TextHash, &r.Role, &r.Company,
			&r.Score, &r.Grade, &r.Result, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "store: scan run")
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "store: iterate runs")
}

func (s *SQLiteStore) Close() error {
	return eris.Wrap(s.db.Close(), "store: close sqlite")
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRun(row rowScanner) (*Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.Filename, &r.TextHash, &r.Role, &r.Company,
		&r.Score, &r.Grade, &r.Result, &r.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: scan run")
	}
	return &r, nil
}
