// Package pgerr translates PostgreSQL driver errors into the shared
// sentinel taxonomy so every repository classifies failures the same way.
package pgerr

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/campushub/campushub/internal/common"
)

// SQLSTATE classes handled explicitly.
const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
	codeCheckViolation      = "23514"
)

// Translate maps a database error onto the sentinel taxonomy:
//
//	sql.ErrNoRows            → common.ErrNotFound
//	unique violation (23505) → common.ErrConflict
//	FK violation (23503)     → common.ErrNotFound (referenced record is gone)
//	check violation (23514)  → common.ErrConflict
//	connection-class codes   → common.ErrUnavailable
//
// Anything else is wrapped as a plain db error and classified unknown.
func Translate(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return common.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case codeUniqueViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, common.ErrConflict)
		case codeForeignKeyViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, common.ErrNotFound)
		case codeCheckViolation:
			return fmt.Errorf("%s: %w", pgErr.ConstraintName, common.ErrConflict)
		}
		// Class 08 covers connection exceptions, 57P0x shutdown states.
		if len(pgErr.Code) >= 2 && (pgErr.Code[:2] == "08" || pgErr.Code[:2] == "57") {
			return fmt.Errorf("%s: %w", pgErr.Code, common.ErrUnavailable)
		}
	}

	return fmt.Errorf("db error: %w", err)
}
