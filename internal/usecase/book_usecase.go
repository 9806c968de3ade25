package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/infrastructure/metrics"
)

// LegInput is one side of a transaction as supplied by the caller.
type LegInput struct {
	AccountID   string
	Kind        string
	Amount      decimal.Decimal
	Description string
}

// RecordEntryInput is the input for recording a balanced transaction.
type RecordEntryInput struct {
	TransactionID string
	Description   string
	Legs          []LegInput
}

// RecordEntryResult is the committed entry together with the postings
// derived from it.
type RecordEntryResult struct {
	Entry    *domain.JournalEntry
	Postings []*domain.LedgerEntry
}

// BookUseCase owns one journal and the ledger projected from it. All
// writes go through RecordEntry, which validates, appends to the
// journal and posts to the ledger under one mutex, so the ledger never
// lags the journal from a reader's point of view.
type BookUseCase struct {
	mu      sync.Mutex
	journal *domain.Journal
	ledger  *domain.Ledger
	entry   domain.IDSource
	txnIDs  IDGenerator
	logger  zerolog.Logger
	metrics *metrics.Metrics
}

// NewBookUseCase creates a new BookUseCase. metrics may be nil.
func NewBookUseCase(journal *domain.Journal, ledger *domain.Ledger, entryIDs domain.IDSource, txnIDs IDGenerator, logger zerolog.Logger, m *metrics.Metrics) *BookUseCase {
	return &BookUseCase{
		journal: journal,
		ledger:  ledger,
		entry:   entryIDs,
		txnIDs:  txnIDs,
		logger:  logger,
		metrics: m,
	}
}

// Ledger exposes the ledger's query contract for report construction.
func (uc *BookUseCase) Ledger() *domain.Ledger { return uc.ledger }

// RecordEntry validates the legs, constructs an immutable journal
// entry, appends it to the journal and posts one ledger posting per
// leg. Either everything is recorded or nothing is. When the caller
// supplies no transaction id, a fresh one is generated.
func (uc *BookUseCase) RecordEntry(ctx context.Context, input RecordEntryInput) (*RecordEntryResult, error) {
	legs := make([]domain.Leg, 0, len(input.Legs))
	for _, in := range input.Legs {
		kind, err := domain.ParseEntryKind(in.Kind)
		if err != nil {
			uc.countRejection(err)
			return nil, err
		}
		legs = append(legs, domain.Leg{
			AccountID:   in.AccountID,
			Kind:        kind,
			Amount:      in.Amount,
			Description: in.Description,
		})
	}

	transactionID := input.TransactionID
	if transactionID == "" {
		transactionID = uc.txnIDs.Generate()
	}

	entry, err := domain.NewJournalEntry(uc.entry, transactionID, legs, input.Description)
	if err != nil {
		uc.countRejection(err)
		uc.logger.Warn().
			Err(err).
			Str("transaction_id", transactionID).
			Int("legs", len(input.Legs)).
			Msg("journal entry rejected")

		return nil, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	if err := uc.journal.Append(entry); err != nil {
		return nil, err
	}

	postings, err := uc.ledger.Post(entry)
	if err != nil {
		// The entry passed the same checks the posting factory applies,
		// so this only fires on a programming error.
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.EntriesRecorded.Inc()
		uc.metrics.PostingsWritten.Add(float64(len(postings)))
		uc.metrics.EntryLegs.Observe(float64(len(postings)))
		uc.metrics.EntryAmount.Observe(debitTotal(entry).InexactFloat64())
	}

	uc.logger.Info().
		Str("entry_id", entry.ID()).
		Str("transaction_id", entry.TransactionID()).
		Int("postings", len(postings)).
		Msg("journal entry recorded")

	return &RecordEntryResult{Entry: entry, Postings: postings}, nil
}

// Balance returns an account's balance, as of the given time when asOf
// is non-nil, otherwise as of now.
func (uc *BookUseCase) Balance(ctx context.Context, accountID string, asOf *time.Time) decimal.Decimal {
	if uc.metrics != nil {
		uc.metrics.BalanceQueries.Inc()
	}

	if asOf != nil {
		return uc.ledger.BalanceAsOf(accountID, *asOf)
	}

	return uc.ledger.Balance(accountID)
}

// Entries returns all journal entries in append order.
func (uc *BookUseCase) Entries(ctx context.Context) []*domain.JournalEntry {
	return uc.journal.Entries()
}

// EntriesByAccount returns journal entries touching the account.
func (uc *BookUseCase) EntriesByAccount(ctx context.Context, accountID string) []*domain.JournalEntry {
	return uc.journal.EntriesByAccount(accountID)
}

// EntriesByTransaction returns journal entries sharing the transaction id.
func (uc *BookUseCase) EntriesByTransaction(ctx context.Context, transactionID string) []*domain.JournalEntry {
	return uc.journal.EntriesByTransaction(transactionID)
}

// EntriesByDateRange returns journal entries created in [from, to].
func (uc *BookUseCase) EntriesByDateRange(ctx context.Context, from, to time.Time) []*domain.JournalEntry {
	return uc.journal.EntriesByDateRange(from, to)
}

// EntryByID returns a single journal entry.
func (uc *BookUseCase) EntryByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return uc.journal.EntryByID(id)
}

// Postings returns an account's ledger postings, optionally restricted
// to [from, to].
func (uc *BookUseCase) Postings(ctx context.Context, accountID string, from, to *time.Time) []*domain.LedgerEntry {
	if from != nil || to != nil {
		start := time.Time{}
		if from != nil {
			start = *from
		}
		end := time.Now()
		if to != nil {
			end = *to
		}

		return uc.ledger.EntriesBetween(accountID, start, end)
	}

	return uc.ledger.Entries(accountID)
}

func (uc *BookUseCase) countRejection(err error) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.EntriesRejected.WithLabelValues(rejectionReason(err)).Inc()
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrEmptyLegs):
		return "empty_legs"
	case errors.Is(err, domain.ErrNonPositiveAmount):
		return "non_positive_amount"
	case errors.Is(err, domain.ErrUnbalancedEntry):
		return "unbalanced"
	case errors.Is(err, domain.ErrInvalidEntryKind):
		return "invalid_kind"
	default:
		return "other"
	}
}

func debitTotal(entry *domain.JournalEntry) decimal.Decimal {
	total := decimal.Zero
	for _, leg := range entry.Legs() {
		if leg.Kind == domain.Debit {
			total = total.Add(leg.Amount)
		}
	}

	return total
}
