package dto

// CreateTransferRequest represents a request to create a transfer. The source
// wallet is never part of the payload; it is resolved from the authenticated
// caller so nobody can draw funds from an arbitrary wallet.
type CreateTransferRequest struct {
	ToWalletID string `json:"to_wallet_id"`
	Amount     int64  `json:"amount"`
}
