package mixer

import (
	"errors"
	"fmt"
)

// Error is a domain error with a stable numeric code. Codes never change
// once assigned; the API layer maps them onto its own error space.
type Error struct {
	Err  error
	Code int
}

// Error returns the error message.
func (e Error) Error() string {
	return e.Err.Error()
}

// Unwrap exposes the inner error.
func (e Error) Unwrap() error {
	return e.Err
}

// Is matches two Errors by code, so errors.Is works across WithErr/Withf
// copies.
func (e Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.Code == e.Code
}

// Withf returns a copy of the error with an appended formatted detail.
func (e Error) Withf(format string, args ...any) Error {
	return Error{
		Err:  fmt.Errorf("%w: %v", e.Err, fmt.Sprintf(format, args...)),
		Code: e.Code,
	}
}

// WithErr returns a copy of the error with an appended inner error detail.
func (e Error) WithErr(err error) Error {
	return Error{
		Err:  fmt.Errorf("%w: %v", e.Err, err),
		Code: e.Code,
	}
}

// The complete domain error taxonomy. Kept in a single block so codes stay
// unique and visible at a glance.
var (
	ErrNotInitialized          = Error{Code: 1001, Err: errors.New("mixer not initialized")}
	ErrAlreadyInitialized      = Error{Code: 1002, Err: errors.New("mixer already initialized")}
	ErrPoolNotFound            = Error{Code: 1003, Err: errors.New("pool not found")}
	ErrDuplicatePool           = Error{Code: 1004, Err: errors.New("pool already exists")}
	ErrWrongDenomination       = Error{Code: 1005, Err: errors.New("amount does not match pool denomination")}
	ErrUnsupportedDenomination = Error{Code: 1006, Err: errors.New("unsupported denomination")}
	ErrPoolPaused              = Error{Code: 1007, Err: errors.New("mixer is paused")}
	ErrTreeFull                = Error{Code: 1008, Err: errors.New("commitment tree is full")}
	ErrInvalidCommitment       = Error{Code: 1009, Err: errors.New("invalid commitment")}
	ErrInvalidNullifier        = Error{Code: 1010, Err: errors.New("invalid nullifier hash")}
	ErrUnknownRoot             = Error{Code: 1011, Err: errors.New("unknown or stale merkle root")}
	ErrTimeLockNotElapsed      = Error{Code: 1012, Err: errors.New("time lock not elapsed")}
	ErrInvalidProof            = Error{Code: 1013, Err: errors.New("invalid withdrawal proof")}
	ErrDoubleSpend             = Error{Code: 1014, Err: errors.New("nullifier already spent")}
	ErrNotAuthority            = Error{Code: 1015, Err: errors.New("signer is not the authority")}
	ErrSignerMismatch          = Error{Code: 1016, Err: errors.New("cannot recover signer")}
	ErrAnonymitySetTooSmall    = Error{Code: 1017, Err: errors.New("anonymity set too small")}
	ErrInsufficientPoolBalance = Error{Code: 1018, Err: errors.New("insufficient pool balance")}
	ErrPoolNotEmpty            = Error{Code: 1019, Err: errors.New("pool is not empty")}
	ErrNoteTooLarge            = Error{Code: 1020, Err: errors.New("encrypted note too large")}
)
