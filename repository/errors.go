package repository

import (
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyViolation  = "23503"
	pgInvalidTextRepresent = "22P02"
)

// translate maps driver errors to the package sentinels. A malformed uuid
// cannot match any row, so it is reported as not found.
func translate(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}
	switch pgErr.Code {
	case pgForeignKeyViolation:
		return ErrInvalidReference
	case pgInvalidTextRepresent:
		return ErrNotFound
	}
	return err
}

// validID reports whether id can identify a row. Ids are uuids.
func validID(id string) bool {
	return uuid.Validate(id) == nil
}
