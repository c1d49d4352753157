package domain

import "time"

// Wallet is an account holding a non-negative balance in minor currency units.
type Wallet struct {
	ID           string
	OwnerID      string
	Balance      int64
	Deleted      bool
	DateCreated  time.Time
	DateModified time.Time
}

// ValidateDebit checks if the wallet can be debited by amount without going negative.
func (w *Wallet) ValidateDebit(amount int64) error {
	if w.Balance < amount {
		return ErrInsufficientBalance
	}
	return nil
}

// ApplyDebit returns the balance after a debit.
func (w *Wallet) ApplyDebit(amount int64) int64 {
	return w.Balance - amount
}

// ApplyCredit returns the balance after a credit.
func (w *Wallet) ApplyCredit(amount int64) int64 {
	return w.Balance + amount
}
