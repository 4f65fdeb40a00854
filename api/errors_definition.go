//nolint:lll
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/zkmixer/zkmixer/mixer"
)

// The custom Error type satisfies the error interface.
// Error() returns a human-readable description of the error.
//
// Error codes in the 40001-49999 range are the user's fault,
// and they return HTTP Status 400 or 404 (or even 204), whatever is most appropriate.
//
// Error codes 50001-59999 are the server's fault
// and they return HTTP Status 500 or 503, or something else if appropriate.
//
// NEVER change any of the current error codes, only append new errors after the current last 4XXX or 5XXX
// If you notice there's a gap (say, error code 4010, 4011 and 4013 exist, 4012 is missing) DON'T fill in the gap,
// that code was used in the past for some error (not anymore) and shouldn't be reused.
// There's no correlation between Code and HTTP Status.
var (
	ErrResourceNotFound        = Error{Code: 40001, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("resource not found")}
	ErrMalformedBody           = Error{Code: 40004, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed JSON body")}
	ErrInvalidSignature        = Error{Code: 40005, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid signature")}
	ErrMalformedPoolID         = Error{Code: 40006, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("malformed pool ID")}
	ErrPoolNotFound            = Error{Code: 40007, HTTPstatus: http.StatusNotFound, Err: fmt.Errorf("pool not found")}
	ErrNotInitialized          = Error{Code: 40008, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("mixer not initialized")}
	ErrAlreadyInitialized      = Error{Code: 40009, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("mixer already initialized")}
	ErrDuplicatePool           = Error{Code: 40010, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("pool already exists")}
	ErrWrongDenomination       = Error{Code: 40011, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("amount does not match pool denomination")}
	ErrUnsupportedDenomination = Error{Code: 40012, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("unsupported denomination")}
	ErrMixerPaused             = Error{Code: 40013, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("mixer is paused")}
	ErrTreeFull                = Error{Code: 40014, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("commitment tree is full")}
	ErrInvalidCommitment       = Error{Code: 40015, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid commitment")}
	ErrInvalidNullifier        = Error{Code: 40016, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid nullifier hash")}
	ErrUnknownRoot             = Error{Code: 40017, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("unknown or stale merkle root")}
	ErrTimeLockNotElapsed      = Error{Code: 40018, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("time lock not elapsed")}
	ErrInvalidProof            = Error{Code: 40019, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("invalid withdrawal proof")}
	ErrDoubleSpend             = Error{Code: 40020, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("nullifier already spent")}
	ErrUnauthorized            = Error{Code: 40021, HTTPstatus: http.StatusUnauthorized, Err: fmt.Errorf("signer is not the authority")}
	ErrAnonymitySetTooSmall    = Error{Code: 40022, HTTPstatus: http.StatusForbidden, Err: fmt.Errorf("anonymity set too small")}
	ErrInsufficientPoolBalance = Error{Code: 40023, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("insufficient pool balance")}
	ErrPoolNotEmpty            = Error{Code: 40024, HTTPstatus: http.StatusConflict, Err: fmt.Errorf("pool is not empty")}
	ErrNoteTooLarge            = Error{Code: 40025, HTTPstatus: http.StatusBadRequest, Err: fmt.Errorf("encrypted note too large")}

	ErrMarshalingServerJSONFailed = Error{Code: 50001, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("marshaling (server-side) JSON failed")}
	ErrGenericInternalServerError = Error{Code: 50002, HTTPstatus: http.StatusInternalServerError, Err: fmt.Errorf("internal server error")}
)

// mixerErrorMap routes each domain error code to its API error.
var mixerErrorMap = map[int]Error{
	mixer.ErrNotInitialized.Code:          ErrNotInitialized,
	mixer.ErrAlreadyInitialized.Code:      ErrAlreadyInitialized,
	mixer.ErrPoolNotFound.Code:            ErrPoolNotFound,
	mixer.ErrDuplicatePool.Code:           ErrDuplicatePool,
	mixer.ErrWrongDenomination.Code:       ErrWrongDenomination,
	mixer.ErrUnsupportedDenomination.Code: ErrUnsupportedDenomination,
	mixer.ErrPoolPaused.Code:              ErrMixerPaused,
	mixer.ErrTreeFull.Code:                ErrTreeFull,
	mixer.ErrInvalidCommitment.Code:       ErrInvalidCommitment,
	mixer.ErrInvalidNullifier.Code:        ErrInvalidNullifier,
	mixer.ErrUnknownRoot.Code:             ErrUnknownRoot,
	mixer.ErrTimeLockNotElapsed.Code:      ErrTimeLockNotElapsed,
	mixer.ErrInvalidProof.Code:            ErrInvalidProof,
	mixer.ErrDoubleSpend.Code:             ErrDoubleSpend,
	mixer.ErrNotAuthority.Code:            ErrUnauthorized,
	mixer.ErrSignerMismatch.Code:          ErrInvalidSignature,
	mixer.ErrAnonymitySetTooSmall.Code:    ErrAnonymitySetTooSmall,
	mixer.ErrInsufficientPoolBalance.Code: ErrInsufficientPoolBalance,
	mixer.ErrPoolNotEmpty.Code:            ErrPoolNotEmpty,
	mixer.ErrNoteTooLarge.Code:            ErrNoteTooLarge,
}

// fromMixerError maps a domain error to its API error, keeping the domain
// error's full message. Anything unmapped is a server fault.
func fromMixerError(err error) Error {
	var merr mixer.Error
	if !errors.As(err, &merr) {
		return ErrGenericInternalServerError.WithErr(err)
	}
	apiErr, ok := mixerErrorMap[merr.Code]
	if !ok {
		return ErrGenericInternalServerError.WithErr(err)
	}
	return Error{Err: merr.Err, Code: apiErr.Code, HTTPstatus: apiErr.HTTPstatus}
}
