// Package store implements the persistence interfaces of the lifecycle and
// careerplan services on PostgreSQL, with Redis as a read-through cache for
// scoring signals.
package store

import (
	"context"
	"database/sql"
	stderrors "errors"

	"recruit-workers/internal/common/errors"

	"github.com/lib/pq"
)

const uniqueViolation = "23505"

// queryer is satisfied by both *sql.DB and *sql.Tx.
type queryer interface {
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return stderrors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}

// lookupError maps sql.ErrNoRows to NOT_FOUND and anything else to a
// retryable database error.
func lookupError(err error, entity, id string) error {
	if stderrors.Is(err, sql.ErrNoRows) {
		return errors.NewNotFoundError(entity, id)
	}
	return errors.NewDatabaseError("load "+entity, err)
}

// passThrough keeps StandardErrors raised inside a transaction and wraps
// everything else as a database error.
func passThrough(err error, operation string) error {
	if err == nil {
		return nil
	}
	var stdErr *errors.StandardError
	if stderrors.As(err, &stdErr) {
		return err
	}
	return errors.NewDatabaseError(operation, err)
}
