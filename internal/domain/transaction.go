package domain

import "time"

// Transaction is an immutable record of one completed transfer between two
// wallets. It is only ever soft-deleted, never mutated or physically removed.
type Transaction struct {
	ID           string
	Amount       int64
	FromWalletID string
	ToWalletID   string
	Deleted      bool
	DateCreated  time.Time
	DateModified time.Time
}

// Validate validates a transfer request. A transfer from a wallet to itself
// is permitted; it leaves the balance unchanged but still produces a record.
func (t *Transaction) Validate() error {
	if t.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
