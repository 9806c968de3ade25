package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/adapter/http/dto"
	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

// JournalService defines the behavior needed by JournalHandler.
type JournalService interface {
	RecordEntry(ctx context.Context, input usecase.RecordEntryInput) (*usecase.RecordEntryResult, error)
	Entries(ctx context.Context) []*domain.JournalEntry
	EntriesByAccount(ctx context.Context, accountID string) []*domain.JournalEntry
	EntriesByTransaction(ctx context.Context, transactionID string) []*domain.JournalEntry
	EntriesByDateRange(ctx context.Context, from, to time.Time) []*domain.JournalEntry
	EntryByID(ctx context.Context, id string) (*domain.JournalEntry, error)
	Balance(ctx context.Context, accountID string, asOf *time.Time) decimal.Decimal
	Postings(ctx context.Context, accountID string, from, to *time.Time) []*domain.LedgerEntry
}

// JournalHandler handles journal and balance HTTP requests.
type JournalHandler struct {
	bookUC JournalService
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(bookUC JournalService) *JournalHandler {
	return &JournalHandler{bookUC: bookUC}
}

// Record records a balanced journal entry.
func (h *JournalHandler) Record(w http.ResponseWriter, r *http.Request) {
	var req dto.RecordEntryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	result, err := h.bookUC.RecordEntry(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeError(w, mapDomainError(err), "failed to record entry", err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, dto.RecordEntryResponse{
		Entry:    dto.EntryFromDomain(result.Entry),
		Postings: dto.PostingsFromDomain(result.Postings),
	})
}

// List lists journal entries, optionally filtered by account,
// transaction or date range.
func (h *JournalHandler) List(w http.ResponseWriter, r *http.Request) {
	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from parameter", err.Error())
		return
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to parameter", err.Error())
		return
	}

	var entries []*domain.JournalEntry
	switch {
	case r.URL.Query().Get("account_id") != "":
		entries = h.bookUC.EntriesByAccount(r.Context(), r.URL.Query().Get("account_id"))
	case r.URL.Query().Get("transaction_id") != "":
		entries = h.bookUC.EntriesByTransaction(r.Context(), r.URL.Query().Get("transaction_id"))
	case from != nil && to != nil:
		entries = h.bookUC.EntriesByDateRange(r.Context(), *from, *to)
	default:
		entries = h.bookUC.Entries(r.Context())
	}

	writeJSON(w, http.StatusOK, dto.ListEntriesResponse{
		Entries: dto.EntriesFromDomain(entries),
		Total:   int64(len(entries)),
	})
}

// Get retrieves a journal entry by ID.
func (h *JournalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing entry ID", "")
		return
	}

	entry, err := h.bookUC.EntryByID(r.Context(), id)
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get entry", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EntryFromDomain(entry))
}

// Balance returns an account's balance, as of an optional point in
// time.
func (h *JournalHandler) Balance(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	asOf, err := parseTimeQuery(r, "as_of")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid as_of parameter", err.Error())
		return
	}

	balance := h.bookUC.Balance(r.Context(), id, asOf)

	at := time.Now()
	if asOf != nil {
		at = *asOf
	}

	writeJSON(w, http.StatusOK, dto.BalanceResponse{
		AccountID: id,
		Balance:   balance,
		AsOf:      at,
	})
}

// Postings lists an account's ledger postings, optionally bounded by a
// time window.
func (h *JournalHandler) Postings(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing account ID", "")
		return
	}

	from, err := parseTimeQuery(r, "from")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid from parameter", err.Error())
		return
	}
	to, err := parseTimeQuery(r, "to")
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid to parameter", err.Error())
		return
	}

	postings := h.bookUC.Postings(r.Context(), id, from, to)

	writeJSON(w, http.StatusOK, dto.ListPostingsResponse{
		Postings: dto.PostingsFromDomain(postings),
		Total:    int64(len(postings)),
	})
}
