package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func newTestLedger(t *testing.T) *Ledger {
	t.Helper()

	ledger, err := NewLedger(NewSequence("LDG", 12), NewSequence("LEN", 12), "general")
	if err != nil {
		t.Fatalf("failed to build ledger: %v", err)
	}

	return ledger
}

func TestNewLedger_EmptyName(t *testing.T) {
	_, err := NewLedger(NewSequence("LDG", 12), NewSequence("LEN", 12), "")
	if !errors.Is(err, ErrEmptyLedgerName) {
		t.Fatalf("expected ErrEmptyLedgerName, got %v", err)
	}
}

func TestNewLedgerEntry(t *testing.T) {
	tests := []struct {
		name           string
		accountID      string
		journalEntryID string
		kind           EntryKind
		amount         decimal.Decimal
		expectError    error
	}{
		{
			name:           "valid posting",
			accountID:      "ACC001",
			journalEntryID: "JEN000000000001",
			kind:           Debit,
			amount:         decimal.NewFromInt(100),
		},
		{
			name:           "empty account id",
			accountID:      "",
			journalEntryID: "JEN000000000001",
			kind:           Debit,
			amount:         decimal.NewFromInt(100),
			expectError:    ErrEmptyAccountID,
		},
		{
			name:           "empty journal entry id",
			accountID:      "ACC001",
			journalEntryID: "",
			kind:           Credit,
			amount:         decimal.NewFromInt(100),
			expectError:    ErrEmptyJournalEntryID,
		},
		{
			name:           "zero amount",
			accountID:      "ACC001",
			journalEntryID: "JEN000000000001",
			kind:           Debit,
			amount:         decimal.Zero,
			expectError:    ErrNonPositiveAmount,
		},
		{
			name:           "invalid kind",
			accountID:      "ACC001",
			journalEntryID: "JEN000000000001",
			kind:           EntryKind("REFUND"),
			amount:         decimal.NewFromInt(100),
			expectError:    ErrInvalidEntryKind,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ids := NewSequence("LEN", 12)
			posting, err := NewLedgerEntry(ids, tt.accountID, tt.journalEntryID, tt.kind, tt.amount)

			if tt.expectError != nil {
				if !errors.Is(err, tt.expectError) {
					t.Fatalf("expected error %v, got %v", tt.expectError, err)
				}

				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if posting.ID() == "" {
				t.Error("expected non-empty posting ID")
			}
			if posting.JournalEntryID() != tt.journalEntryID {
				t.Errorf("expected back-reference %s, got %s", tt.journalEntryID, posting.JournalEntryID())
			}
		})
	}
}

func TestLedger_AddEntryNil(t *testing.T) {
	ledger := newTestLedger(t)

	if err := ledger.AddEntry(nil); !errors.Is(err, ErrNilPosting) {
		t.Fatalf("expected ErrNilPosting, got %v", err)
	}
}

func TestLedger_BalanceUnknownAccount(t *testing.T) {
	ledger := newTestLedger(t)

	if balance := ledger.Balance("ACC404"); !balance.IsZero() {
		t.Errorf("expected zero balance for unknown account, got %s", balance)
	}
}

func TestLedger_Post(t *testing.T) {
	ledger := newTestLedger(t)
	entry := testEntry(t, NewSequence("JEN", 12), "TRX001",
		Leg{AccountID: "ACC001", Kind: Debit, Amount: decimal.NewFromInt(1000)},
		Leg{AccountID: "ACC003", Kind: Credit, Amount: decimal.NewFromInt(1000)},
	)

	postings, err := ledger.Post(entry)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(postings) != 2 {
		t.Fatalf("expected one posting per leg, got %d", len(postings))
	}

	// Postings follow leg order and reference the originating entry.
	if postings[0].AccountID() != "ACC001" || postings[1].AccountID() != "ACC003" {
		t.Errorf("postings out of leg order: %s, %s", postings[0].AccountID(), postings[1].AccountID())
	}
	for _, p := range postings {
		if p.JournalEntryID() != entry.ID() {
			t.Errorf("posting %s references %s, want %s", p.ID(), p.JournalEntryID(), entry.ID())
		}
		if p.Timestamp().Before(entry.CreatedAt()) {
			t.Errorf("posting %s timestamped before entry creation", p.ID())
		}
	}

	if balance := ledger.Balance("ACC001"); !balance.Equal(decimal.NewFromInt(1000)) {
		t.Errorf("expected ACC001 balance 1000, got %s", balance)
	}
	if balance := ledger.Balance("ACC003"); !balance.Equal(decimal.NewFromInt(-1000)) {
		t.Errorf("expected ACC003 balance -1000, got %s", balance)
	}
}

func TestLedger_PostNil(t *testing.T) {
	ledger := newTestLedger(t)

	if _, err := ledger.Post(nil); !errors.Is(err, ErrNilEntry) {
		t.Fatalf("expected ErrNilEntry, got %v", err)
	}
}

func TestLedger_BalanceAsOf(t *testing.T) {
	ledger := newTestLedger(t)
	ids := NewSequence("LEN", 12)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	first, _ := NewLedgerEntry(ids, "ACC001", "JEN000000000001", Debit, decimal.NewFromInt(1000))
	second, _ := NewLedgerEntry(ids, "ACC001", "JEN000000000002", Credit, decimal.NewFromInt(400))
	third, _ := NewLedgerEntry(ids, "ACC001", "JEN000000000003", Debit, decimal.NewFromInt(50))

	first.timestamp = base
	second.timestamp = base.Add(time.Hour)
	third.timestamp = base.Add(2 * time.Hour)

	for _, p := range []*LedgerEntry{first, second, third} {
		if err := ledger.AddEntry(p); err != nil {
			t.Fatalf("add entry failed: %v", err)
		}
	}

	tests := []struct {
		name   string
		asOf   time.Time
		expect int64
	}{
		{name: "before any posting", asOf: base.Add(-time.Minute), expect: 0},
		{name: "exactly at first posting", asOf: base, expect: 1000},
		{name: "between first and second", asOf: base.Add(30 * time.Minute), expect: 1000},
		{name: "exactly at second posting", asOf: base.Add(time.Hour), expect: 600},
		{name: "after all postings", asOf: base.Add(3 * time.Hour), expect: 650},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			balance := ledger.BalanceAsOf("ACC001", tt.asOf)
			if !balance.Equal(decimal.NewFromInt(tt.expect)) {
				t.Errorf("expected balance %d, got %s", tt.expect, balance)
			}
		})
	}
}

func TestLedger_ReadsAreDeterministic(t *testing.T) {
	ledger := newTestLedger(t)
	entry := testEntry(t, NewSequence("JEN", 12), "TRX001", balancedLegs("ACC001", "ACC002", 750)...)

	if _, err := ledger.Post(entry); err != nil {
		t.Fatalf("post failed: %v", err)
	}

	asOf := time.Now()
	firstBalance := ledger.BalanceAsOf("ACC001", asOf)
	firstEntries := ledger.Entries("ACC001")

	for i := 0; i < 5; i++ {
		if balance := ledger.BalanceAsOf("ACC001", asOf); !balance.Equal(firstBalance) {
			t.Fatalf("balance changed between reads: %s vs %s", firstBalance, balance)
		}
		entries := ledger.Entries("ACC001")
		if len(entries) != len(firstEntries) {
			t.Fatalf("entries changed between reads")
		}
		for j := range entries {
			if entries[j].ID() != firstEntries[j].ID() {
				t.Fatalf("entry order changed between reads")
			}
		}
	}
}

func TestLedger_EntriesBetween_InclusiveBounds(t *testing.T) {
	ledger := newTestLedger(t)
	ids := NewSequence("LEN", 12)
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	timestamps := []time.Time{
		base.Add(-time.Hour),
		base,
		base.Add(30 * time.Minute),
		base.Add(time.Hour),
		base.Add(2 * time.Hour),
	}
	for i, ts := range timestamps {
		posting, err := NewLedgerEntry(ids, "ACC001", "JEN000000000001", Debit, decimal.NewFromInt(int64(i+1)))
		if err != nil {
			t.Fatalf("failed to build posting: %v", err)
		}
		posting.timestamp = ts
		ledger.AddEntry(posting)
	}

	got := ledger.EntriesBetween("ACC001", base, base.Add(time.Hour))
	if len(got) != 3 {
		t.Fatalf("expected 3 postings in range, got %d", len(got))
	}
	if !got[0].Timestamp().Equal(base) || !got[2].Timestamp().Equal(base.Add(time.Hour)) {
		t.Errorf("range bounds not inclusive: %v .. %v", got[0].Timestamp(), got[2].Timestamp())
	}
}

func TestLedger_EntriesSnapshot(t *testing.T) {
	ledger := newTestLedger(t)
	entry := testEntry(t, NewSequence("JEN", 12), "TRX001", balancedLegs("ACC001", "ACC002", 10)...)
	ledger.Post(entry)

	snapshot := ledger.Entries("ACC001")

	second := testEntry(t, NewSequence("JEN2", 12), "TRX002", balancedLegs("ACC001", "ACC002", 20)...)
	ledger.Post(second)

	if len(snapshot) != 1 {
		t.Fatalf("snapshot affected by later post: %d postings", len(snapshot))
	}
	if got := ledger.Entries("ACC001"); len(got) != 2 {
		t.Fatalf("expected 2 postings, got %d", len(got))
	}
}
