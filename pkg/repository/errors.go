package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const pgUniqueViolation = "23505"

// MapError translates database errors to domain errors: sql.ErrNoRows to
// notFoundErr, PostgreSQL unique violations to duplicateErr. Anything else
// passes through unchanged.
func MapError(err error, notFoundErr, duplicateErr error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return notFoundErr
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return duplicateErr
	}

	return err
}
