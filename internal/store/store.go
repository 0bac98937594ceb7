// Package store persists aggregation runs and their organizations.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/contact-finder/internal/config"
	"github.com/sells-group/contact-finder/internal/model"
)

// ErrNotFound is returned when a requested run does not exist.
var ErrNotFound = eris.New("store: not found")

// Store defines the persistence interface for aggregation runs.
type Store interface {
	CreateRun(ctx context.Context, run *model.Run) error
	GetRun(ctx context.Context, runID string) (*model.Run, error)
	ListRuns(ctx context.Context, limit int) ([]model.Run, error)

	SaveOrganizations(ctx context.Context, runID string, orgs []model.Organization) error
	GetOrganizations(ctx context.Context, runID string) ([]model.Organization, error)

	Migrate(ctx context.Context) error
	Close() error
}

// Open constructs the store named by the configuration driver.
func Open(ctx context.Context, cfg config.StoreConfig) (Store, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return NewSQLite(cfg.DatabaseURL)
	case "postgres":
		return NewPostgres(ctx, cfg.DatabaseURL)
	default:
		return nil, eris.Errorf("store: unknown driver %q", cfg.Driver)
	}
}
