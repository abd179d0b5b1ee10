package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRun() *Run {
	return &Run{
		Filename: "offer.pdf",
		TextHash: "abc123",
		Role:     "Software Engineer",
		Company:  "Acme Technologies Pvt. Ltd.",
		Score:    72.5,
		Grade:    "GOOD",
		Result:   []byte(`{"scoring":{"overall_score":72.5}}`),
	}
}

func TestSQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "fairdeal.db"))
	require.NoError(t, err)
	defer s.Close()

	run := testRun()
	require.NoError(t, s.SaveRun(ctx, run))
	assert.NotEmpty(t, run.ID, "save assigns an id")
	assert.False(t, run.CreatedAt.IsZero())

	got, err := s.GetRun(ctx, run.ID)
	require.NoError(t, err)
	assert.Equal(t, run.Filename, got.Filename)
	assert.Equal(t, run.Score, got.Score)
	assert.Equal(t, run.Result, got.Result)

	byHash, err := s.FindByHash(ctx, "abc123")
	require.NoError(t, err)
	assert.Equal(t, run.ID, byHash.ID)

	_, err = s.FindByHash(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	runs, err := s.ListRuns(ctx, 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1)
}

func TestSQLiteGetMissing(t *testing.T) {
	s, err := OpenSQLite(filepath.Join(t.TempDir(), "fairdeal.db"))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.GetRun(context.Background(), "no-such-id")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresSaveRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)
	run := testRun()

	mock.ExpectExec("INSERT INTO runs").
		WithArgs(pgxmock.AnyArg(), run.Filename, run.TextHash, run.Role, run.Company,
			run.Score, run.Grade, run.Result, pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	require.NoError(t, s.SaveRun(context.Background(), run))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetRun(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)
	now := time.Now().UTC()

	columns := []string{"id", "filename", "text_hash", "role", "company", "score", "grade", "result", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM runs WHERE id").
		WithArgs("run-1").
		WillReturnRows(pgxmock.NewRows(columns).
			AddRow("run-1", "offer.pdf", "abc123", "SDE", "Acme", 65.0, "FAIR", []byte(`{}`), now))

	got, err := s.GetRun(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "run-1", got.ID)
	assert.Equal(t, 65.0, got.Score)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresGetMissing(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	s := NewPostgresWithPool(mock)

	columns := []string{"id", "filename", "text_hash", "role", "company", "score", "grade", "result", "created_at"}
	mock.ExpectQuery("SELECT (.+) FROM runs WHERE id").
		WithArgs("ghost").
		WillReturnRows(pgxmock.NewRows(columns))

	_, err = s.GetRun(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}
