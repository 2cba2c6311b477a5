package sentinel

import "errors"

// Sentinel errors for infrastructure facts. Stores return these (optionally
// wrapped) and services translate them into domain errors.
//
//   - ErrNotFound: entity does not exist in the store
//   - ErrConflict: a uniqueness constraint would be violated
//   - ErrInvalidState: entity is in the wrong state for the requested mutation
//   - ErrExpired: token or credential is past its expiry
//   - ErrUnavailable: backing service temporarily unavailable
//
// Validation failures (missing fields, bad formats) use pkg/domain-errors directly.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrInvalidState = errors.New("invalid state")
	ErrExpired      = errors.New("expired")
	ErrUnavailable  = errors.New("unavailable")
)
