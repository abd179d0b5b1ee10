package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"
)

const postgresSchema = `
CREATE TABLE IF NOT EXISTS runs (
	id         UUID PRIMARY KEY,
	filename   TEXT NOT NULL,
	text_hash  TEXT NOT NULL,
	role       TEXT,
	company    TEXT,
	score      DOUBLE PRECISION NOT NULL,
	grade      TEXT NOT NULL,
	result     JSONB NOT NULL,
	created_at TIMESTAMPTZ NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_runs_text_hash ON runs(text_hash);
CREATE INDEX IF NOT EXISTS idx_runs_created_at ON runs(created_at);
`

// pgxPool is the subset of pgxpool.Pool the store uses; pgxmock satisfies
// it in tests.
type pgxPool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Close()
}

// PostgresStore is the shared-deployment backend.
type PostgresStore struct {
	pool pgxPool
}

// OpenPostgres connects and migrates.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, eris.Wrap(err, "store: connect postgres")
	}
	s := &PostgresStore{pool: pool}
	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "store: migrate postgres schema")
	}
	zap.L().Info("store: postgres connected")
	return s, nil
}

// NewPostgresWithPool wires an existing pool; tests use this with pgxmock.
func NewPostgresWithPool(pool pgxPool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

func (s *PostgresStore) SaveRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO runs (id, filename, text_hash, role, company, score, grade, result, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		run.ID, run.Filename, run.TextHash, run.Role, run.Company,
		run.Score, run.Grade, run.Result, run.CreatedAt)
	if err != nil {
		return eris.Wrap(err, "store: save run")
	}
	return nil
}

func (s *PostgresStore) GetRun(ctx context.Context, id string) (*Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, filename, text_hash, role, company, score, grade, result, created_at
		 FROM runs WHERE id = $1`, id)
	return scanPgRun(row)
}

func (s *PostgresStore) FindByHash(ctx context.Context, textHash string) (*Run, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, filename, text_hash, role, company, score, grade, result, created_at
		 FROM runs WHERE text_hash = $1 ORDER BY created_at DESC LIMIT 1`, textHash)
	return scanPgRun(row)
}

func (s *PostgresStore) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, filename, text_hash, role, company, score, grade, result, created_at
		 FROM runs ORDER BY created_at DESC LIMIT $1`, limit)
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

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func scanPgRun(row pgx.Row) (*Run, error) {
	var r Run
	err := row.Scan(&r.ID, &r.Filename, &r.TextHash, &r.Role, &r.Company,
		&r.Score, &r.Grade, &r.Result, &r.CreatedAt)
	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "store: scan run")
	}
	return &r, nil
}
