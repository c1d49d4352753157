package usecase

import (
	"context"

	"github.com/wagerpool/ledger/internal/domain"
)

// TransferUseCase moves value between two wallets. The debit, the credit and
// the transaction record are written in one atomic unit of work; no partial
// outcome is ever observable.
type TransferUseCase struct {
	txManager  TransactionManager
	walletRepo WalletRepository
	txnRepo    TransactionRepository
	idGen      IDGenerator
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TransactionManager,
	walletRepo WalletRepository,
	txnRepo TransactionRepository,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:  txManager,
		walletRepo: walletRepo,
		txnRepo:    txnRepo,
		idGen:      idGen,
	}
}

// CreateTransferInput represents input for creating a transfer.
type CreateTransferInput struct {
	FromWalletID string
	ToWalletID   string
	Amount       int64
}

// CreateTransfer debits the source wallet, credits the destination wallet and
// records the transfer. Both wallet rows are locked in ascending id order
// regardless of transfer direction, so two opposite transfers on the same
// pair cannot deadlock. On any error the whole unit rolls back.
//
// Transient store failures are not retried here; the caller owns the retry,
// which is safe because a rolled-back attempt leaves no side effect.
func (uc *TransferUseCase) CreateTransfer(ctx context.Context, input CreateTransferInput) (*domain.Transaction, error) {
	// Fail fast before any lock is taken.
	if input.Amount <= 0 {
		return nil, domain.ErrInvalidAmount
	}

	lockIDs := canonicalLockOrder(input.FromWalletID, input.ToWalletID)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	wallets, err := uc.walletRepo.GetByIDsForUpdate(ctx, tx, lockIDs)
	if err != nil {
		return nil, err
	}

	if len(wallets) != len(lockIDs) {
		return nil, domain.ErrWalletNotFound
	}

	walletMap := make(map[string]*domain.Wallet, len(wallets))
	for _, w := range wallets {
		walletMap[w.ID] = w
	}

	from := walletMap[input.FromWalletID]
	to := walletMap[input.ToWalletID]

	if from == nil || to == nil {
		return nil, domain.ErrWalletNotFound
	}

	// The sufficiency check reads the balance fetched under the held lock;
	// nothing cached is ever consulted.
	if err := from.ValidateDebit(input.Amount); err != nil {
		return nil, err
	}

	txn := &domain.Transaction{
		ID:           uc.idGen.Generate(domain.TransactionIDPrefix),
		Amount:       input.Amount,
		FromWalletID: input.FromWalletID,
		ToWalletID:   input.ToWalletID,
	}

	if err := txn.Validate(); err != nil {
		return nil, err
	}

	// A self-transfer cancels out on balance but still produces a record.
	if input.FromWalletID != input.ToWalletID {
		if err := uc.walletRepo.UpdateBalance(ctx, tx, from.ID, from.ApplyDebit(input.Amount)); err != nil {
			return nil, err
		}

		if err := uc.walletRepo.UpdateBalance(ctx, tx, to.ID, to.ApplyCredit(input.Amount)); err != nil {
			return nil, err
		}
	}

	if err := uc.txnRepo.Create(ctx, tx, txn); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	// Re-read after commit to return server-assigned timestamps.
	return uc.txnRepo.GetByID(ctx, txn.ID, FindOpts{})
}

// canonicalLockOrder returns the wallet ids to lock, smallest first. A single
// id comes back for a self-transfer so the row is locked exactly once.
func canonicalLockOrder(fromID, toID string) []string {
	switch {
	case fromID == toID:
		return []string{fromID}
	case toID < fromID:
		return []string{toID, fromID}
	default:
		return []string{fromID, toID}
	}
}
