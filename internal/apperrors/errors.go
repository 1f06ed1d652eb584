package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrStoreUnavailable indicates that a backing store call failed or timed out.
// Callers may retry, but retrying a posting needs an idempotency key supplied
// by the caller: the original call may have committed before the failure was
// observed.
var ErrStoreUnavailable = errors.New("store unavailable")

// ErrCommitFailed indicates a failure inside the movement commit unit
// (movement insert + account balance update). Unlike validation failures it
// can leave the stores needing reconciliation, so it is surfaced distinctly.
var ErrCommitFailed = errors.New("commit failed")
