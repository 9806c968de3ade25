package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind indicates whether a leg debits or credits its account.
type EntryKind string

const (
	Debit  EntryKind = "DEBIT"
	Credit EntryKind = "CREDIT"
)

// Valid reports whether the kind is one of the two known variants.
func (k EntryKind) Valid() bool {
	switch k {
	case Debit, Credit:
		return true
	}

	return false
}

// ParseEntryKind converts a wire string to an EntryKind.
func ParseEntryKind(s string) (EntryKind, error) {
	k := EntryKind(s)
	if !k.Valid() {
		return "", ErrInvalidEntryKind
	}

	return k, nil
}

// Leg is one side of a balanced transaction: an account, a debit/credit
// kind and a strictly positive amount. The sign of the movement is
// carried by Kind, never by the amount.
type Leg struct {
	AccountID   string
	Kind        EntryKind
	Amount      decimal.Decimal
	Description string
}

// JournalEntry is an immutable, validated group of legs representing a
// single transaction event. The double-entry invariant (total debits
// equal total credits, exact decimal comparison) is enforced once at
// construction and never re-checked.
type JournalEntry struct {
	id            string
	transactionID string
	legs          []Leg
	description   string
	createdAt     time.Time
}

// NewJournalEntry validates legs and builds an immutable JournalEntry.
// Construction is all-or-nothing: on any validation failure nothing is
// allocated from the id source and no partial entry is observable.
func NewJournalEntry(ids IDSource, transactionID string, legs []Leg, description string) (*JournalEntry, error) {
	if len(legs) == 0 {
		return nil, ErrEmptyLegs
	}

	debits := decimal.Zero
	credits := decimal.Zero

	for _, leg := range legs {
		if leg.Amount.LessThanOrEqual(decimal.Zero) {
			return nil, ErrNonPositiveAmount
		}

		switch leg.Kind {
		case Debit:
			debits = debits.Add(leg.Amount)
		case Credit:
			credits = credits.Add(leg.Amount)
		default:
			return nil, ErrInvalidEntryKind
		}
	}

	// Exact comparison, no epsilon: an entry is balanced or it is not.
	if !debits.Equal(credits) {
		return nil, ErrUnbalancedEntry
	}

	own := make([]Leg, len(legs))
	copy(own, legs)

	return &JournalEntry{
		id:            ids.Next(),
		transactionID: transactionID,
		legs:          own,
		description:   description,
		createdAt:     time.Now(),
	}, nil
}

// ID returns the entry's unique identifier.
func (e *JournalEntry) ID() string { return e.id }

// TransactionID returns the opaque transaction identifier. Several
// entries may share one transaction id (corrections, reversals).
func (e *JournalEntry) TransactionID() string { return e.transactionID }

// Legs returns a copy of the legs in their original order.
func (e *JournalEntry) Legs() []Leg {
	legs := make([]Leg, len(e.legs))
	copy(legs, e.legs)

	return legs
}

// Description returns the optional entry description.
func (e *JournalEntry) Description() string { return e.description }

// CreatedAt returns the creation timestamp stamped by the factory.
func (e *JournalEntry) CreatedAt() time.Time { return e.createdAt }
