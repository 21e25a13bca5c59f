package domain

import "errors"

var (
	// Account errors
	ErrAccountNotFound   = errors.New("account not found")
	ErrAccountInactive   = errors.New("account is deactivated")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("amount must be positive")
	ErrInvalidUserID     = errors.New("invalid user id")

	// Wager errors
	ErrInvalidStake   = errors.New("stake must be positive")
	ErrWagerNotFound  = errors.New("wager not found")
	ErrUnknownOutcome = errors.New("unknown outcome class")

	// Ledger errors
	ErrInvalidEntryType = errors.New("invalid entry type")

	// Outcome table configuration errors
	ErrEmptyOutcomeTable = errors.New("outcome table has no classes")
	ErrInvalidWeight     = errors.New("outcome weight must be positive")
	ErrInvalidMultiplier = errors.New("outcome multiplier cannot be negative")
	ErrDuplicateOutcome  = errors.New("outcome labels must be unique and non-empty")

	// Storage errors
	ErrStorageTimeout     = errors.New("storage operation timed out")
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Authentication errors
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)
