// Package services contains the server-side business logic. Each resource
// gets its own service; all of them share a Store bundling the primary
// database handle, the backend managers and the data access facade.
package services

import (
	"context"
	"database/sql"

	"github.com/campushub/campushub/internal/dbx"
	"github.com/campushub/campushub/internal/logging"
	"github.com/campushub/campushub/internal/server/facade"
	"github.com/campushub/campushub/internal/server/models"
	"github.com/campushub/campushub/internal/server/repositories/repomanager"
)

// Store is the data-access bundle shared by every service. Fallback may be
// nil, which disables degraded reads entirely.
type Store struct {
	DB       *sql.DB
	Primary  repomanager.RepositoryManager
	Fallback repomanager.RepositoryManager
	Facade   *facade.Facade
	Logger   logging.Logger
}

// fallbackOp adapts a repository read against the fallback backend into a
// facade fallback, or returns nil when no fallback is configured.
func fallbackOp[T any](s *Store, op func(ctx context.Context, m repomanager.RepositoryManager) (T, error)) facade.Op[T] {
	if s.Fallback == nil {
		return nil
	}
	return func(ctx context.Context) (T, error) {
		return op(ctx, s.Fallback)
	}
}

// handle picks the database handle for a manager: the primary gets the
// real connection, any other backend ignores it.
func (s *Store) handle(m repomanager.RepositoryManager) dbx.DBTX {
	if m == s.Primary {
		return s.DB
	}
	return nil
}

// withTx runs fn inside a database transaction when a database handle is
// present. Backends without one (the memory manager) run fn directly.
func (s *Store) withTx(ctx context.Context, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	if s.DB == nil {
		return fn(ctx, nil)
	}
	return dbx.WithTx(ctx, s.DB, nil, fn)
}

// paginate derives the page descriptor for a list response.
func paginate(total, current, size int) models.Pagination {
	pages := total / size
	if total%size != 0 {
		pages++
	}
	return models.Pagination{Total: total, Pages: pages, Current: current, Size: size}
}

func offsetFor(page, limit int) int {
	return (page - 1) * limit
}
