package db

import "errors"

// Business-rule and lookup failures surfaced to controllers. Lookup errors
// map to 404, ErrNotOwner to 403, the rest to 409.
var (
	ErrBookNotFound = errors.New("book not found")
	ErrUserNotFound = errors.New("user not found")
	ErrLoanNotFound = errors.New("loan not found")

	ErrBookNotAvailable = errors.New("book not available")
	ErrBookLoaned       = errors.New("book is currently loaned")
	ErrLoanNotActive    = errors.New("loan not active")
	ErrLoanOverdue      = errors.New("loan is overdue")
	ErrExtensionLimit   = errors.New("extension limit reached")
	ErrLoanLimit        = errors.New("active loan limit reached")
	ErrHasOpenLoans     = errors.New("user has open loans")
	ErrDuplicate        = errors.New("record already exists")

	ErrNotOwner = errors.New("loan belongs to another user")
)
