package bank

import (
	"errors"
	"fmt"
)

// Failure kinds returned by Bank operations. Every error a Bank returns wraps
// exactly one of them; test with errors.Is.
var (
	ErrDuplicateName     = errors.New("account with the same name already exists")
	ErrAccountNotFound   = errors.New("account not found")
	ErrWrongPin          = errors.New("wrong pin")
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInvalidAmount the amount is negative, NaN or infinite
	ErrInvalidAmount = errors.New("amount must be a non-negative finite number")
)

// Role which side of a transfer an error refers to
type Role string

const (
	RoleSource      Role = "source"
	RoleDestination Role = "destination"
)

// Error a failed ledger operation
type Error struct {
	// Op the operation, e.g. "withdraw"
	Op string
	// Name the account the failure refers to
	Name string
	// Role is set by transfer only
	Role Role
	Err  error
}

func (e *Error) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("%s [%v] (%s): %v", e.Op, e.Name, e.Role, e.Err)
	}
	return fmt.Sprintf("%s [%v]: %v", e.Op, e.Name, e.Err)
}

// Unwrap returns the failure kind for errors.Is support
func (e *Error) Unwrap() error {
	return e.Err
}

// RoleOf returns the transfer side err refers to, or "" if err is not tied
// to one side of a transfer.
func RoleOf(err error) Role {
	var e *Error
	if errors.As(err, &e) {
		return e.Role
	}
	return ""
}
