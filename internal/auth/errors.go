package auth

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced by the session manager
var (
	// ErrInvalidCredentials covers both unknown mobile and wrong password,
	// deliberately indistinguishable to the caller.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrDuplicateMobile means the mobile number is already registered.
	ErrDuplicateMobile = errors.New("mobile number already registered")

	// ErrInvalidToken means a session token is malformed, tampered or expired.
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ValidationError reports a missing or malformed registration field
type ValidationError struct {
	Field  string // Offending field
	Reason string // Human-readable reason
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Reason
}

// StoreError wraps an underlying credential store failure
type StoreError struct {
	Op  string // Failed store operation
	Err error  // Underlying error
}

// Error implements the error interface
func (e *StoreError) Error() string {
	return fmt.Sprintf("store %s: %v", e.Op, e.Err)
}

// Unwrap exposes the underlying error to errors.Is/As
func (e *StoreError) Unwrap() error {
	return e.Err
}

// storeErr wraps err into a StoreError unless it already carries a known kind
func storeErr(op string, err error) error {
	if errors.Is(err, ErrDuplicateMobile) {
		return ErrDuplicateMobile
	}
	return &StoreError{Op: op, Err: err}
}
