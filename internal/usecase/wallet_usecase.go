package usecase

import (
	"context"
	"errors"

	"github.com/wagerpool/ledger/internal/domain"
)

// WalletUseCase handles wallet lookups. Balance mutation is deliberately
// absent here: balances change only inside TransferUseCase's locked unit of
// work.
type WalletUseCase struct {
	walletRepo WalletRepository
}

// NewWalletUseCase creates a new WalletUseCase.
func NewWalletUseCase(walletRepo WalletRepository) *WalletUseCase {
	return &WalletUseCase{walletRepo: walletRepo}
}

// FindOwnedBy resolves the wallet owned by ownerID. Absence is not an error;
// callers get (nil, nil) when the owner has no visible wallet.
func (uc *WalletUseCase) FindOwnedBy(ctx context.Context, ownerID string, opts FindOpts) (*domain.Wallet, error) {
	wallet, err := uc.walletRepo.GetByOwner(ctx, ownerID, opts)
	if err != nil {
		if errors.Is(err, domain.ErrWalletNotFound) {
			return nil, nil
		}

		return nil, err
	}

	return wallet, nil
}

// FindOrFail retrieves a wallet by id, failing with domain.ErrWalletNotFound
// when no wallet matches the id, owner scope and deleted filter.
func (uc *WalletUseCase) FindOrFail(ctx context.Context, id string, opts WalletFindOpts) (*domain.Wallet, error) {
	return uc.walletRepo.GetByID(ctx, id, opts)
}

// SoftDelete marks a wallet deleted. Deleting a missing or already deleted
// wallet fails with domain.ErrWalletNotFound; double deletion is an error,
// not a no-op.
func (uc *WalletUseCase) SoftDelete(ctx context.Context, id string) error {
	return uc.walletRepo.SoftDelete(ctx, id)
}
