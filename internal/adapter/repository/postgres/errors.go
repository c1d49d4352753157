package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/wagerpool/ledger/internal/domain"
)

// PostgreSQL error codes that mark the whole unit of work as retryable.
const (
	pgErrSerializationFailure = "40001"
	pgErrDeadlockDetected     = "40P01"
	pgErrLockNotAvailable     = "55P03"
)

// wrapTransient tags lock timeouts, serialization conflicts and connection
// failures with domain.ErrTransientStore. These always roll back the whole
// unit of work, so callers can retry the operation from the start.
func wrapTransient(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgErrSerializationFailure, pgErrDeadlockDetected, pgErrLockNotAvailable:
			return fmt.Errorf("%w: %v", domain.ErrTransientStore, err)
		}
		return err
	}

	if pgconn.SafeToRetry(err) || errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", domain.ErrTransientStore, err)
	}

	return err
}
