package domain

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// LedgerEntry is the ledger-side projection of a single leg: one
// posting against one account, holding a back-reference to the journal
// entry that produced it. Immutable once created.
type LedgerEntry struct {
	id             string
	accountID      string
	journalEntryID string
	kind           EntryKind
	amount         decimal.Decimal
	timestamp      time.Time
}

// NewLedgerEntry validates and builds a posting. The check here is
// deliberately narrower than the journal's double-entry invariant: the
// ledger is a projection and trusts that a validated journal entry's
// legs are posted together.
func NewLedgerEntry(ids IDSource, accountID, journalEntryID string, kind EntryKind, amount decimal.Decimal) (*LedgerEntry, error) {
	if accountID == "" {
		return nil, ErrEmptyAccountID
	}
	if journalEntryID == "" {
		return nil, ErrEmptyJournalEntryID
	}
	if !kind.Valid() {
		return nil, ErrInvalidEntryKind
	}
	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrNonPositiveAmount
	}

	return &LedgerEntry{
		id:             ids.Next(),
		accountID:      accountID,
		journalEntryID: journalEntryID,
		kind:           kind,
		amount:         amount,
		timestamp:      time.Now(),
	}, nil
}

// ID returns the posting's identifier.
func (p *LedgerEntry) ID() string { return p.id }

// AccountID returns the account the posting belongs to.
func (p *LedgerEntry) AccountID() string { return p.accountID }

// JournalEntryID returns the id of the originating journal entry.
func (p *LedgerEntry) JournalEntryID() string { return p.journalEntryID }

// Kind returns whether the posting debits or credits the account.
func (p *LedgerEntry) Kind() EntryKind { return p.kind }

// Amount returns the posting's positive amount.
func (p *LedgerEntry) Amount() decimal.Decimal { return p.amount }

// Timestamp returns when the posting was recorded.
func (p *LedgerEntry) Timestamp() time.Time { return p.timestamp }

// Ledger holds append-only, per-account posting sequences and answers
// balance and range queries. Postings are ordered by append time;
// under the single-writer assumption append order equals timestamp
// order, which the as-of balance computation depends on.
type Ledger struct {
	mu         sync.RWMutex
	id         string
	name       string
	postingIDs IDSource
	accounts   map[string][]*LedgerEntry
}

// NewLedger creates an empty ledger. postingIDs is used by Post to
// allocate identifiers for derived postings.
func NewLedger(ids, postingIDs IDSource, name string) (*Ledger, error) {
	if name == "" {
		return nil, ErrEmptyLedgerName
	}

	return &Ledger{
		id:         ids.Next(),
		name:       name,
		postingIDs: postingIDs,
		accounts:   make(map[string][]*LedgerEntry),
	}, nil
}

// ID returns the ledger's identifier.
func (l *Ledger) ID() string { return l.id }

// Name returns the ledger's name.
func (l *Ledger) Name() string { return l.name }

// AddEntry appends a posting to its account's sequence.
func (l *Ledger) AddEntry(posting *LedgerEntry) error {
	if posting == nil {
		return ErrNilPosting
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.accounts[posting.accountID] = append(l.accounts[posting.accountID], posting)

	return nil
}

// Post derives one posting per leg of a committed journal entry, in leg
// order, and appends them all in a single critical section. Posting
// timestamps are never earlier than the entry's creation time.
func (l *Ledger) Post(entry *JournalEntry) ([]*LedgerEntry, error) {
	if entry == nil {
		return nil, ErrNilEntry
	}

	postings := make([]*LedgerEntry, 0, len(entry.legs))
	for _, leg := range entry.legs {
		posting, err := NewLedgerEntry(l.postingIDs, leg.AccountID, entry.id, leg.Kind, leg.Amount)
		if err != nil {
			return nil, err
		}
		if posting.timestamp.Before(entry.createdAt) {
			posting.timestamp = entry.createdAt
		}
		postings = append(postings, posting)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	for _, posting := range postings {
		l.accounts[posting.accountID] = append(l.accounts[posting.accountID], posting)
	}

	return postings, nil
}

// Balance returns the account's balance as of now.
func (l *Ledger) Balance(accountID string) decimal.Decimal {
	return l.BalanceAsOf(accountID, time.Now())
}

// BalanceAsOf returns the signed sum of the account's postings with
// timestamp at or before asOf: DEBIT adds, CREDIT subtracts, regardless
// of the account's classification. An unknown account has balance zero.
func (l *Ledger) BalanceAsOf(accountID string, asOf time.Time) decimal.Decimal {
	l.mu.RLock()
	defer l.mu.RUnlock()

	balance := decimal.Zero
	for _, posting := range l.accounts[accountID] {
		if posting.timestamp.After(asOf) {
			continue
		}

		switch posting.kind {
		case Debit:
			balance = balance.Add(posting.amount)
		case Credit:
			balance = balance.Sub(posting.amount)
		}
	}

	return balance
}

// Entries returns the account's postings in append order. The returned
// slice is a snapshot.
func (l *Ledger) Entries(accountID string) []*LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	postings := l.accounts[accountID]
	if len(postings) == 0 {
		return nil
	}

	result := make([]*LedgerEntry, len(postings))
	copy(result, postings)

	return result
}

// EntriesBetween returns the account's postings with timestamp in
// [start, end], both bounds inclusive, in append order.
func (l *Ledger) EntriesBetween(accountID string, start, end time.Time) []*LedgerEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()

	var result []*LedgerEntry
	for _, posting := range l.accounts[accountID] {
		if posting.timestamp.Before(start) || posting.timestamp.After(end) {
			continue
		}
		result = append(result, posting)
	}

	return result
}
