package store

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/aryannaik/advocate-directory/internal/advocate"
)

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("unknown store driver")

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverFile     = "file"
)

// Store persists advocates. Insert must be safe for concurrent use.
type Store interface {
	Insert(ctx context.Context, batch []advocate.NewAdvocate) ([]advocate.Advocate, error)
	List(ctx context.Context) ([]advocate.Advocate, error)
	Count(ctx context.Context) (int, error)
	Driver() string
	Close() error
}

// Config selects and configures a Store.
type Config struct {
	Driver      string
	DataDir     string
	DatabaseURL string
}

// Open returns the store named by cfg.Driver.
func Open(ctx context.Context, cfg Config, logger *zap.Logger) (Store, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	switch cfg.Driver {
	case DriverSQLite, "":
		return NewSQLite(ctx, filepath.Join(cfg.DataDir, "advocates.db"), logger)
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return nil, fmt.Errorf("open postgres store: DATABASE_URL is required")
		}
		return NewPostgres(ctx, cfg.DatabaseURL, logger)
	case DriverFile:
		return NewFile(cfg.DataDir, logger)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}
