package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

// PostgreSQL SQLSTATE codes.
const (
	codeUniqueViolation = "23505"
	codeCheckViolation  = "23514"
)

// ErrorMap translates driver errors into a domain's sentinel errors.
// A nil field leaves the matching driver error untouched.
type ErrorMap struct {
	NotFound  error
	Duplicate error
	Check     error
}

// Map returns the domain error for err, or err itself when nothing matches.
func (m ErrorMap) Map(err error) error {
	switch {
	case err == nil:
		return nil
	case m.NotFound != nil && errors.Is(err, sql.ErrNoRows):
		return m.NotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case m.Duplicate != nil && pgErr.Code == codeUniqueViolation:
		return m.Duplicate
	case m.Check != nil && pgErr.Code == codeCheckViolation:
		return m.Check
	}
	return err
}
