package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wagerpool/ledger/internal/domain"
	"github.com/wagerpool/ledger/internal/usecase"
)

const walletColumns = "id, balance, owner_id, deleted, date_created, date_modified"

// Every lookup carries the soft-delete predicate; include_deleted widens it
// instead of call sites dropping the filter.
const (
	getWalletByID = `SELECT ` + walletColumns + ` FROM wallets
WHERE id = $1 AND (deleted = FALSE OR $2) AND ($3 = '' OR owner_id = $3)`

	getWalletByOwner = `SELECT ` + walletColumns + ` FROM wallets
WHERE owner_id = $1 AND (deleted = FALSE OR $2)
LIMIT 1`

	getWalletsByIDsForUpdate = `SELECT ` + walletColumns + ` FROM wallets
WHERE id = ANY($1::text[]) AND deleted = FALSE
ORDER BY id
FOR UPDATE`

	updateWalletBalance = `UPDATE wallets
SET balance = $2, date_modified = now()
WHERE id = $1`

	softDeleteWallet = `UPDATE wallets
SET deleted = TRUE, date_modified = now()
WHERE id = $1 AND deleted = FALSE`
)

// WalletRepository implements usecase.WalletRepository.
type WalletRepository struct {
	pool *pgxpool.Pool
}

// NewWalletRepository creates a new WalletRepository.
func NewWalletRepository(pool *pgxpool.Pool) *WalletRepository {
	return &WalletRepository{pool: pool}
}

// GetByID retrieves a wallet by id. A wallet owned by someone other than
// opts.OwnerID is reported as not found, same as a missing row.
func (r *WalletRepository) GetByID(ctx context.Context, id string, opts usecase.WalletFindOpts) (*domain.Wallet, error) {
	row := r.pool.QueryRow(ctx, getWalletByID, id, opts.IncludeDeleted, opts.OwnerID)

	wallet, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, wrapTransient(err)
	}

	return wallet, nil
}

// GetByOwner retrieves the wallet owned by ownerID.
func (r *WalletRepository) GetByOwner(ctx context.Context, ownerID string, opts usecase.FindOpts) (*domain.Wallet, error) {
	row := r.pool.QueryRow(ctx, getWalletByOwner, ownerID, opts.IncludeDeleted)

	wallet, err := scanWallet(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrWalletNotFound
		}

		return nil, wrapTransient(err)
	}

	return wallet, nil
}

// GetByIDsForUpdate locks the wallet rows with SELECT ... FOR UPDATE and
// returns them. The ORDER BY makes the database acquire the locks in
// ascending id order, matching the canonical order callers sort by.
func (r *WalletRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Transaction, ids []string) ([]*domain.Wallet, error) {
	pgxTx := tx.(*Tx).PgxTx()

	rows, err := pgxTx.Query(ctx, getWalletsByIDsForUpdate, ids)
	if err != nil {
		return nil, wrapTransient(err)
	}
	defer rows.Close()

	wallets := make([]*domain.Wallet, 0, len(ids))
	for rows.Next() {
		wallet, err := scanWallet(rows)
		if err != nil {
			return nil, wrapTransient(err)
		}

		wallets = append(wallets, wallet)
	}

	if err := rows.Err(); err != nil {
		return nil, wrapTransient(err)
	}

	return wallets, nil
}

// UpdateBalance writes a wallet's balance inside the caller's transaction.
// Only the transfer unit of work may call this, with the row lock held.
func (r *WalletRepository) UpdateBalance(ctx context.Context, tx usecase.Transaction, id string, balance int64) error {
	pgxTx := tx.(*Tx).PgxTx()

	tag, err := pgxTx.Exec(ctx, updateWalletBalance, id, balance)
	if err != nil {
		return wrapTransient(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

// SoftDelete marks a wallet deleted. A missing or already deleted wallet
// fails with domain.ErrWalletNotFound.
func (r *WalletRepository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, softDeleteWallet, id)
	if err != nil {
		return wrapTransient(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrWalletNotFound
	}

	return nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	var w domain.Wallet

	err := row.Scan(
		&w.ID,
		&w.Balance,
		&w.OwnerID,
		&w.Deleted,
		&w.DateCreated,
		&w.DateModified,
	)
	if err != nil {
		return nil, err
	}

	return &w, nil
}
