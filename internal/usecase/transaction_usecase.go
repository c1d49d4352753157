package usecase

import (
	"context"
	"errors"

	"github.com/wagerpool/ledger/internal/domain"
)

// TransactionUseCase is the read side for transfer records. It never mutates
// balances; the only write it offers is the soft-delete flag.
type TransactionUseCase struct {
	txnRepo TransactionRepository
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(txnRepo TransactionRepository) *TransactionUseCase {
	return &TransactionUseCase{txnRepo: txnRepo}
}

// FindOne retrieves a transaction by id. Absence is not an error; callers get
// (nil, nil) when no record matches the id and deleted filter.
func (uc *TransactionUseCase) FindOne(ctx context.Context, id string, opts FindOpts) (*domain.Transaction, error) {
	txn, err := uc.txnRepo.GetByID(ctx, id, opts)
	if err != nil {
		if errors.Is(err, domain.ErrTransactionNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return txn, nil
}

// FindOneOrFail retrieves a transaction by id, failing with
// domain.ErrTransactionNotFound when no record matches.
func (uc *TransactionUseCase) FindOneOrFail(ctx context.Context, id string, opts FindOpts) (*domain.Transaction, error) {
	return uc.txnRepo.GetByID(ctx, id, opts)
}

// SoftDelete marks a transaction deleted without removing it; the audit trail
// stays intact. Double deletion fails with domain.ErrTransactionNotFound.
func (uc *TransactionUseCase) SoftDelete(ctx context.Context, id string) error {
	return uc.txnRepo.SoftDelete(ctx, id)
}
