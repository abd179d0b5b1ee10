// Package store persists analysis runs so repeated uploads of the same
// contract are served from cache and past analyses remain queryable.
package store

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/YagYk/FairDeal/internal/config"
)

// Run is one persisted analysis.
type Run struct {
	ID        string    `json:"id"`
	Filename  string    `json:"filename"`
	TextHash  string    `json:"text_hash"`
	Role      string    `json:"role"`
	Company   string    `json:"company"`
	Score     float64   `json:"score"`
	Grade     string    `json:"grade"`
	Result    []byte    `json:"result"`
	CreatedAt time.Time `json:"created_at"`
}

// Store is the persistence interface. ErrNotFound distinguishes a cache
// miss from a backend failure.
type Store interface {
	SaveRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, id string) (*Run, error)
	FindByHash(ctx context.Context, textHash string) (*Run, error)
	ListRuns(ctx context.Context, limit int) ([]Run, error)
	Close() error
}

// ErrNotFound is returned when no run matches.
var ErrNotFound = eris.New("store: run not found")

// Open dispatches on the configured driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "sqlite", "":
		return OpenSQLite(cfg.DatabaseURL)
	case "postgres":
		return OpenPostgres(ctx, cfg.DatabaseURL)
	}
	return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
}
