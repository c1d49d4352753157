package usecase

import (
	"context"
	"time"

	"github.com/wagerpool/ledger/internal/domain"
)

// FindOpts controls visibility of soft-deleted records on lookups.
type FindOpts struct {
	IncludeDeleted bool
}

// WalletFindOpts extends FindOpts with owner scoping. When OwnerID is set, a
// wallet that exists but belongs to a different owner is indistinguishable
// from a missing one.
type WalletFindOpts struct {
	OwnerID        string
	IncludeDeleted bool
}

// WalletRepository defines data access for wallets.
type WalletRepository interface {
	GetByID(ctx context.Context, id string, opts WalletFindOpts) (*domain.Wallet, error)
	GetByOwner(ctx context.Context, ownerID string, opts FindOpts) (*domain.Wallet, error)
	// GetByIDsForUpdate locks the wallet rows in ascending id order and
	// returns them. Soft-deleted wallets are never locked or returned.
	GetByIDsForUpdate(ctx context.Context, tx Transaction, ids []string) ([]*domain.Wallet, error)
	UpdateBalance(ctx context.Context, tx Transaction, id string, balance int64) error
	SoftDelete(ctx context.Context, id string) error
}

// TransactionRepository defines data access for transfer records.
type TransactionRepository interface {
	Create(ctx context.Context, tx Transaction, txn *domain.Transaction) error
	GetByID(ctx context.Context, id string, opts FindOpts) (*domain.Transaction, error)
	SoftDelete(ctx context.Context, id string) error
}

// Transaction represents a database transaction. Not to be confused with
// domain.Transaction, which is a committed transfer record.
type Transaction interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TransactionManager handles database transaction lifecycle.
type TransactionManager interface {
	Begin(ctx context.Context) (Transaction, error)
}

// IDGenerator generates unique entity ids for a given prefix.
type IDGenerator interface {
	Generate(prefix string) string
}

// Retrier re-runs an operation that failed transiently. The transfer
// orchestrator never retries on its own; callers wrap it with this.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
