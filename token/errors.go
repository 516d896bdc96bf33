package token

import "errors"

var (
	// Issuance errors
	ErrNameTooLong   = errors.New("token: name exceeds 64 bytes")
	ErrTickerTooLong = errors.New("token: ticker exceeds 32 bytes")
	ErrAlreadyIssued = errors.New("token: token already issued")

	// Transfer errors
	ErrInsufficientBalance   = errors.New("token: insufficient balance")
	ErrInsufficientAllowance = errors.New("token: insufficient allowance")

	// Arithmetic errors
	ErrOverflow = errors.New("token: arithmetic overflow")

	// Invariant errors
	ErrConservation = errors.New("token: balance sum does not equal total supply")
)
