package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wagerpool/ledger/internal/domain"
	"github.com/wagerpool/ledger/internal/usecase"
)

const transactionColumns = "id, amount, from_wallet_id, to_wallet_id, deleted, date_created, date_modified"

const (
	createTransaction = `INSERT INTO transactions (id, amount, from_wallet_id, to_wallet_id)
VALUES ($1, $2, $3, $4)`

	getTransactionByID = `SELECT ` + transactionColumns + ` FROM transactions
WHERE id = $1 AND (deleted = FALSE OR $2)`

	softDeleteTransaction = `UPDATE transactions
SET deleted = TRUE, date_modified = now()
WHERE id = $1 AND deleted = FALSE`
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

// Create inserts a transfer record inside the caller's transaction.
// date_created and date_modified are assigned by the database.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Transaction, txn *domain.Transaction) error {
	pgxTx := tx.(*Tx).PgxTx()

	_, err := pgxTx.Exec(ctx, createTransaction,
		txn.ID,
		txn.Amount,
		txn.FromWalletID,
		txn.ToWalletID,
	)

	return wrapTransient(err)
}

// GetByID retrieves a transaction by id.
func (r *TransactionRepository) GetByID(ctx context.Context, id string, opts usecase.FindOpts) (*domain.Transaction, error) {
	row := r.pool.QueryRow(ctx, getTransactionByID, id, opts.IncludeDeleted)

	var t domain.Transaction
	err := row.Scan(
		&t.ID,
		&t.Amount,
		&t.FromWalletID,
		&t.ToWalletID,
		&t.Deleted,
		&t.DateCreated,
		&t.DateModified,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrTransactionNotFound
		}

		return nil, wrapTransient(err)
	}

	return &t, nil
}

// SoftDelete marks a transaction deleted; the row itself is never removed.
func (r *TransactionRepository) SoftDelete(ctx context.Context, id string) error {
	tag, err := r.pool.Exec(ctx, softDeleteTransaction, id)
	if err != nil {
		return wrapTransient(err)
	}

	if tag.RowsAffected() == 0 {
		return domain.ErrTransactionNotFound
	}

	return nil
}
