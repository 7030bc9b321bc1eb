package postgres

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jengacredit/loanbook/internal/domain/valueobject"
)

// scannable abstracts pgx.Row and pgx.Rows for the scan helpers.
type scannable interface {
	Scan(dest ...any) error
}

// uniqueViolation is the Postgres error code for a unique constraint breach.
const uniqueViolation = "23505"

// mapFindErr translates driver-level not-found into the domain sentinel.
func mapFindErr(err error, what, id string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s %s: %w", what, id, valueobject.ErrNotFound)
	}
	return fmt.Errorf("scan %s: %w", what, err)
}

// isUniqueViolation reports whether err is a unique constraint breach,
// optionally on a specific constraint name.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) || pgErr.Code != uniqueViolation {
		return false
	}
	return constraint == "" || pgErr.ConstraintName == constraint
}
