package domain

import "errors"

// ErrValidation is the base error for all input validation failures.
// The sentinels below wrap it, so callers can match either the exact
// constraint or the whole class with errors.Is.
var ErrValidation = errors.New("validation failed")

var (
	// Journal entry errors
	ErrEmptyLegs         = wrapValidation("entry must have at least one leg")
	ErrNonPositiveAmount = wrapValidation("leg amount must be positive")
	ErrUnbalancedEntry   = wrapValidation("debits and credits must be equal")

	// Journal errors
	ErrEmptyJournalName = wrapValidation("journal name cannot be empty")
	ErrNilEntry         = wrapValidation("entry cannot be nil")

	// Ledger errors
	ErrEmptyLedgerName     = wrapValidation("ledger name cannot be empty")
	ErrNilPosting          = wrapValidation("posting cannot be nil")
	ErrEmptyAccountID      = wrapValidation("account ID cannot be empty")
	ErrEmptyJournalEntryID = wrapValidation("journal entry ID cannot be empty")

	// Account errors
	ErrEmptyAccountName   = wrapValidation("account name cannot be empty")
	ErrInvalidAccountType = wrapValidation("invalid account type")
	ErrInvalidEntryKind   = wrapValidation("entry kind must be DEBIT or CREDIT")

	// Lookup errors
	ErrAccountNotFound = errors.New("account not found")
	ErrAccountExists   = errors.New("account already exists")
	ErrEntryNotFound   = errors.New("journal entry not found")
)

type validationError struct {
	msg string
}

func (e *validationError) Error() string { return e.msg }

func (e *validationError) Unwrap() error { return ErrValidation }

func wrapValidation(msg string) error {
	return &validationError{msg: msg}
}
