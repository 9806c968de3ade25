package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/adapter/http/dto"
	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

type journalServiceStub struct {
	recordFn   func(ctx context.Context, input usecase.RecordEntryInput) (*usecase.RecordEntryResult, error)
	balanceFn  func(ctx context.Context, accountID string, asOf *time.Time) decimal.Decimal
	entryFn    func(ctx context.Context, id string) (*domain.JournalEntry, error)
	entriesFn  func(ctx context.Context) []*domain.JournalEntry
	byAccount  func(ctx context.Context, accountID string) []*domain.JournalEntry
	byTxn      func(ctx context.Context, transactionID string) []*domain.JournalEntry
	byRange    func(ctx context.Context, from, to time.Time) []*domain.JournalEntry
	postingsFn func(ctx context.Context, accountID string, from, to *time.Time) []*domain.LedgerEntry
}

func (s *journalServiceStub) RecordEntry(ctx context.Context, input usecase.RecordEntryInput) (*usecase.RecordEntryResult, error) {
	return s.recordFn(ctx, input)
}

func (s *journalServiceStub) Entries(ctx context.Context) []*domain.JournalEntry {
	return s.entriesFn(ctx)
}

func (s *journalServiceStub) EntriesByAccount(ctx context.Context, accountID string) []*domain.JournalEntry {
	return s.byAccount(ctx, accountID)
}

func (s *journalServiceStub) EntriesByTransaction(ctx context.Context, transactionID string) []*domain.JournalEntry {
	return s.byTxn(ctx, transactionID)
}

func (s *journalServiceStub) EntriesByDateRange(ctx context.Context, from, to time.Time) []*domain.JournalEntry {
	return s.byRange(ctx, from, to)
}

func (s *journalServiceStub) EntryByID(ctx context.Context, id string) (*domain.JournalEntry, error) {
	return s.entryFn(ctx, id)
}

func (s *journalServiceStub) Balance(ctx context.Context, accountID string, asOf *time.Time) decimal.Decimal {
	return s.balanceFn(ctx, accountID, asOf)
}

func (s *journalServiceStub) Postings(ctx context.Context, accountID string, from, to *time.Time) []*domain.LedgerEntry {
	return s.postingsFn(ctx, accountID, from, to)
}

func testJournalEntry(t *testing.T) *domain.JournalEntry {
	t.Helper()

	entry, err := domain.NewJournalEntry(domain.NewSequence("JEN", 6), "TRX001", []domain.Leg{
		{AccountID: "ACC001", Kind: domain.Debit, Amount: decimal.NewFromInt(1000)},
		{AccountID: "ACC003", Kind: domain.Credit, Amount: decimal.NewFromInt(1000)},
	}, "cash sale")
	if err != nil {
		t.Fatalf("failed to build entry: %v", err)
	}

	return entry
}

func TestJournalHandler_Record_Success(t *testing.T) {
	entry := testJournalEntry(t)

	var captured usecase.RecordEntryInput
	handler := NewJournalHandler(&journalServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordEntryInput) (*usecase.RecordEntryResult, error) {
			captured = input
			return &usecase.RecordEntryResult{Entry: entry}, nil
		},
	})

	body, _ := json.Marshal(dto.RecordEntryRequest{
		TransactionID: "TRX001",
		Legs: []dto.LegRequest{
			{AccountID: "ACC001", Kind: "DEBIT", Amount: decimal.NewFromInt(1000)},
			{AccountID: "ACC003", Kind: "CREDIT", Amount: decimal.NewFromInt(1000)},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/journal/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Record(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if captured.TransactionID != "TRX001" || len(captured.Legs) != 2 {
		t.Fatalf("expected input to match request, got %+v", captured)
	}
}

func TestJournalHandler_Record_Unbalanced(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordEntryInput) (*usecase.RecordEntryResult, error) {
			return nil, domain.ErrUnbalancedEntry
		},
	})

	body, _ := json.Marshal(dto.RecordEntryRequest{
		Legs: []dto.LegRequest{
			{AccountID: "ACC001", Kind: "DEBIT", Amount: decimal.NewFromInt(1000)},
			{AccountID: "ACC003", Kind: "CREDIT", Amount: decimal.NewFromInt(999)},
		},
	})
	req := httptest.NewRequest(http.MethodPost, "/journal/entries", bytes.NewReader(body))
	rec := httptest.NewRecorder()

	handler.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJournalHandler_Record_InvalidJSON(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		recordFn: func(ctx context.Context, input usecase.RecordEntryInput) (*usecase.RecordEntryResult, error) {
			t.Fatal("RecordEntry should not be called for invalid payload")
			return nil, nil
		},
	})

	req := httptest.NewRequest(http.MethodPost, "/journal/entries", bytes.NewBufferString("{broken"))
	rec := httptest.NewRecorder()

	handler.Record(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJournalHandler_List_FiltersByAccount(t *testing.T) {
	entry := testJournalEntry(t)

	handler := NewJournalHandler(&journalServiceStub{
		byAccount: func(ctx context.Context, accountID string) []*domain.JournalEntry {
			if accountID != "ACC001" {
				t.Fatalf("expected account ACC001, got %s", accountID)
			}
			return []*domain.JournalEntry{entry}
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/journal/entries?account_id=ACC001", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListEntriesResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 1 {
		t.Fatalf("expected 1 entry, got %d", resp.Total)
	}
}

func TestJournalHandler_List_FiltersByDateRange(t *testing.T) {
	var gotFrom, gotTo time.Time
	handler := NewJournalHandler(&journalServiceStub{
		byRange: func(ctx context.Context, from, to time.Time) []*domain.JournalEntry {
			gotFrom, gotTo = from, to
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/journal/entries?from=2024-01-01T00:00:00Z&to=2024-12-31T23:59:59Z", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	if gotFrom.IsZero() || gotTo.IsZero() {
		t.Fatalf("expected date range forwarded, got from=%v to=%v", gotFrom, gotTo)
	}
}

func TestJournalHandler_List_RejectsBadTimestamp(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/journal/entries?from=yesterday", nil)
	rec := httptest.NewRecorder()

	handler.List(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJournalHandler_Get_NotFound(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		entryFn: func(ctx context.Context, id string) (*domain.JournalEntry, error) {
			return nil, domain.ErrEntryNotFound
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/journal/entries/JEN999999", nil)
	req = setChiURLParam(req, "id", "JEN999999")
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestJournalHandler_Balance(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		balanceFn: func(ctx context.Context, accountID string, asOf *time.Time) decimal.Decimal {
			if accountID != "ACC001" {
				t.Fatalf("expected account ACC001, got %s", accountID)
			}
			if asOf != nil {
				t.Fatalf("expected nil asOf, got %v", asOf)
			}
			return decimal.NewFromInt(1000)
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/ACC001/balance", nil)
	req = setChiURLParam(req, "id", "ACC001")
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !resp.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected balance 1000, got %s", resp.Balance)
	}
}

func TestJournalHandler_Balance_AsOf(t *testing.T) {
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)

	handler := NewJournalHandler(&journalServiceStub{
		balanceFn: func(ctx context.Context, accountID string, asOf *time.Time) decimal.Decimal {
			if asOf == nil || !asOf.Equal(want) {
				t.Fatalf("expected asOf %v, got %v", want, asOf)
			}
			return decimal.Zero
		},
	})

	req := httptest.NewRequest(http.MethodGet,
		"/accounts/ACC001/balance?as_of=2024-06-01T00:00:00Z", nil)
	req = setChiURLParam(req, "id", "ACC001")
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestJournalHandler_Balance_BadAsOf(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{})

	req := httptest.NewRequest(http.MethodGet, "/accounts/ACC001/balance?as_of=june", nil)
	req = setChiURLParam(req, "id", "ACC001")
	rec := httptest.NewRecorder()

	handler.Balance(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestJournalHandler_Postings(t *testing.T) {
	handler := NewJournalHandler(&journalServiceStub{
		postingsFn: func(ctx context.Context, accountID string, from, to *time.Time) []*domain.LedgerEntry {
			return nil
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/accounts/ACC001/postings", nil)
	req = setChiURLParam(req, "id", "ACC001")
	rec := httptest.NewRecorder()

	handler.Postings(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp dto.ListPostingsResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Total != 0 {
		t.Fatalf("expected no postings, got %d", resp.Total)
	}
}
