package ledger

import "errors"

var (
	// ErrValidation covers missing or malformed caller input.
	ErrValidation = errors.New("validation failed")
	// ErrNotFound means the referenced ledger entry or payer is absent.
	ErrNotFound = errors.New("not found")
	// ErrAuthenticity means the submitted signature does not match.
	// Kept distinct from validation so the client can tell bad input
	// from a tampered confirmation.
	ErrAuthenticity = errors.New("invalid signature")
	// ErrExternal means the gateway or another upstream call failed.
	ErrExternal = errors.New("external service failure")
	// ErrConflict means a duplicate request (idempotency key reuse).
	ErrConflict = errors.New("duplicate request")
	// ErrUnavailable means the backing store missed its deadline.
	ErrUnavailable = errors.New("backend unavailable")
)
