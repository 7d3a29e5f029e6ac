package store

import (
	"context"
	"fmt"

	"github.com/StellarisJAY/workflow-ai/pkg/workflow/config"
)

// Compile-time interface checks.
var (
	_ Store = (*MemoryStore)(nil)
	_ Store = (*SQLiteStore)(nil)
	_ Store = (*PostgresStore)(nil)
)

// Open returns the store selected by settings.Driver. Connecting is bounded
// by settings.ConnectTimeout when it is set. PostgreSQL connections are
// attempted up to settings.ConnectAttempts times.
func Open(ctx context.Context, settings config.StoreSettings) (Store, error) {
	if settings.ConnectTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, settings.ConnectTimeout)
		defer cancel()
	}

	switch settings.Driver {
	case "", config.DriverMemory:
		return NewMemoryStore(), nil
	case config.DriverSQLite:
		return NewSQLiteStore(ctx, settings.DSN)
	case config.DriverPostgres:
		retry := DefaultRetry
		retry.MaxAttempts = settings.ConnectAttempts
		return openPostgres(ctx, settings.DSN, retry)
	default:
		return nil, fmt.Errorf("unsupported store driver: %q", settings.Driver)
	}
}
