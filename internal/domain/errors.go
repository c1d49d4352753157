package domain

import "errors"

var (
	// Wallet errors
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrInsufficientBalance = errors.New("insufficient balance")

	// Transfer errors
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrTransientStore marks lock timeouts, serialization conflicts and
	// connection failures inside the atomic unit. The whole operation rolled
	// back, so the caller may safely retry it from the start.
	ErrTransientStore = errors.New("transient store failure")

	// Auth errors
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token expired")
)
