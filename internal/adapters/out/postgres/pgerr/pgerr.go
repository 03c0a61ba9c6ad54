// Package pgerr translates PostgreSQL failures into the errs taxonomy.
package pgerr

import (
	"errors"

	"storefront/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	serializationFailure = "40001"
	deadlockDetected     = "40P01"
	lockNotAvailable     = "55P03"
	uniqueViolation      = "23505"
)

// Classify turns serialization failures, deadlocks, lock timeouts and unique
// violations into errs.TransactionConflictError so the caller can retry the
// unit of work. Other errors are returned unchanged.
func Classify(err error, resource string) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case serializationFailure, deadlockDetected, lockNotAvailable, uniqueViolation:
		return errs.NewTransactionConflictErrorWithCause(resource, err)
	default:
		return err
	}
}
