package dto

import (
	"time"

	"github.com/wagerpool/ledger/internal/domain"
)

// TransactionResponse represents a transfer record in API responses.
type TransactionResponse struct {
	ID           string    `json:"id"`
	Amount       int64     `json:"amount"`
	FromWalletID string    `json:"from_wallet_id"`
	ToWalletID   string    `json:"to_wallet_id"`
	Deleted      bool      `json:"deleted"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	return &TransactionResponse{
		ID:           t.ID,
		Amount:       t.Amount,
		FromWalletID: t.FromWalletID,
		ToWalletID:   t.ToWalletID,
		Deleted:      t.Deleted,
		DateCreated:  t.DateCreated,
		DateModified: t.DateModified,
	}
}

// WalletResponse represents a wallet in API responses.
type WalletResponse struct {
	ID           string    `json:"id"`
	Balance      int64     `json:"balance"`
	OwnerID      string    `json:"owner_id"`
	Deleted      bool      `json:"deleted"`
	DateCreated  time.Time `json:"date_created"`
	DateModified time.Time `json:"date_modified"`
}

// WalletFromDomain converts a domain wallet to a response.
func WalletFromDomain(w *domain.Wallet) *WalletResponse {
	return &WalletResponse{
		ID:           w.ID,
		Balance:      w.Balance,
		OwnerID:      w.OwnerID,
		Deleted:      w.Deleted,
		DateCreated:  w.DateCreated,
		DateModified: w.DateModified,
	}
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
