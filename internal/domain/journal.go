package domain

import (
	"sync"
	"time"
)

// Journal is an append-only, insertion-ordered log of journal entries
// with two derived indices for fast lookup by account and by
// transaction id. Entries are never removed or mutated; corrections are
// new, separate entries.
//
// A single RWMutex guards the log and both indices, so an append is
// observed as one atomic step: no reader ever sees the log updated
// without the indices.
type Journal struct {
	mu            sync.RWMutex
	id            string
	name          string
	entries       []*JournalEntry
	byAccount     map[string][]int
	byTransaction map[string][]int
}

// NewJournal creates an empty journal.
func NewJournal(ids IDSource, name string) (*Journal, error) {
	if name == "" {
		return nil, ErrEmptyJournalName
	}

	return &Journal{
		id:            ids.Next(),
		name:          name,
		byAccount:     make(map[string][]int),
		byTransaction: make(map[string][]int),
	}, nil
}

// ID returns the journal's identifier.
func (j *Journal) ID() string { return j.id }

// Name returns the journal's name.
func (j *Journal) Name() string { return j.name }

// Append adds an entry at the next sequence position and updates the
// per-account and per-transaction indices in the same critical section.
func (j *Journal) Append(entry *JournalEntry) error {
	if entry == nil {
		return ErrNilEntry
	}

	j.mu.Lock()
	defer j.mu.Unlock()

	pos := len(j.entries)
	j.entries = append(j.entries, entry)

	// One index position per distinct account: an entry with two legs
	// for the same account is listed once.
	seen := make(map[string]struct{}, len(entry.legs))
	for _, leg := range entry.legs {
		if _, ok := seen[leg.AccountID]; ok {
			continue
		}
		seen[leg.AccountID] = struct{}{}
		j.byAccount[leg.AccountID] = append(j.byAccount[leg.AccountID], pos)
	}

	j.byTransaction[entry.transactionID] = append(j.byTransaction[entry.transactionID], pos)

	return nil
}

// Entries returns all entries in append order. The returned slice is a
// snapshot: later appends do not affect it.
func (j *Journal) Entries() []*JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	entries := make([]*JournalEntry, len(j.entries))
	copy(entries, j.entries)

	return entries
}

// Len returns the number of entries in the journal.
func (j *Journal) Len() int {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return len(j.entries)
}

// EntriesByAccount returns every entry containing at least one leg for
// the account, in original append order.
func (j *Journal) EntriesByAccount(accountID string) []*JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return j.collect(j.byAccount[accountID])
}

// EntriesByTransaction returns every entry sharing the transaction id,
// in append order.
func (j *Journal) EntriesByTransaction(transactionID string) []*JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	return j.collect(j.byTransaction[transactionID])
}

// EntriesByDateRange returns entries created in [start, end], both
// bounds inclusive, in append order. Under the single-writer assumption
// append order is chronological, so a linear scan preserves ordering.
func (j *Journal) EntriesByDateRange(start, end time.Time) []*JournalEntry {
	j.mu.RLock()
	defer j.mu.RUnlock()

	var result []*JournalEntry
	for _, entry := range j.entries {
		if entry.createdAt.Before(start) || entry.createdAt.After(end) {
			continue
		}
		result = append(result, entry)
	}

	return result
}

// EntryByID returns the entry with the given id.
func (j *Journal) EntryByID(id string) (*JournalEntry, error) {
	j.mu.RLock()
	defer j.mu.RUnlock()

	for _, entry := range j.entries {
		if entry.id == id {
			return entry, nil
		}
	}

	return nil, ErrEntryNotFound
}

func (j *Journal) collect(positions []int) []*JournalEntry {
	if len(positions) == 0 {
		return nil
	}

	result := make([]*JournalEntry, 0, len(positions))
	for _, pos := range positions {
		result = append(result, j.entries[pos])
	}

	return result
}
