package domain

import "time"

// AccountType classifies an account for reporting purposes. The ledger
// itself ignores classification; reports use it to pick sections and to
// reinterpret raw debit-positive balances for presentation.
type AccountType string

const (
	Asset     AccountType = "ASSET"
	Liability AccountType = "LIABILITY"
	Equity    AccountType = "EQUITY"
	Revenue   AccountType = "REVENUE"
	Expense   AccountType = "EXPENSE"
)

// Valid reports whether the type is one of the known variants.
func (t AccountType) Valid() bool {
	switch t {
	case Asset, Liability, Equity, Revenue, Expense:
		return true
	}

	return false
}

// NormalSide returns the side on which the account type normally
// carries its balance.
func (t AccountType) NormalSide() EntryKind {
	switch t {
	case Asset, Expense:
		return Debit
	default:
		return Credit
	}
}

// ParseAccountType converts a wire string to an AccountType.
func ParseAccountType(s string) (AccountType, error) {
	t := AccountType(s)
	if !t.Valid() {
		return "", ErrInvalidAccountType
	}

	return t, nil
}

// Account is a chart-of-accounts record. It carries only an id, a name
// and a classification; balances live in the ledger and related
// entities are resolved through repositories by id.
type Account struct {
	ID        string
	Name      string
	Type      AccountType
	CreatedAt time.Time
}

// Validate checks the account's fields.
func (a *Account) Validate() error {
	if a.Name == "" {
		return ErrEmptyAccountName
	}
	if !a.Type.Valid() {
		return ErrInvalidAccountType
	}

	return nil
}
