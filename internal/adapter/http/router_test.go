package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/adapter/http/dto"
	"github.com/iho/ledgerbook/internal/adapter/http/handler"
	"github.com/iho/ledgerbook/internal/adapter/repository/memory"
	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/usecase"
)

func newRouterConfig(t *testing.T, opts ...func(*RouterConfig)) RouterConfig {
	t.Helper()

	journal, err := domain.NewJournal(domain.NewSequence("JNL", 3), "general journal")
	if err != nil {
		t.Fatalf("failed to build journal: %v", err)
	}
	ledger, err := domain.NewLedger(domain.NewSequence("LDG", 3), domain.NewSequence("LEN", 6), "general ledger")
	if err != nil {
		t.Fatalf("failed to build ledger: %v", err)
	}

	repo := memory.NewAccountRepository()
	bookUC := usecase.NewBookUseCase(journal, ledger, domain.NewSequence("JEN", 6), memory.NewULIDGenerator(), zerolog.Nop(), nil)
	accountUC := usecase.NewAccountUseCase(repo, domain.NewSequence("ACC", 3), nil)
	reportUC := usecase.NewReportUseCase(bookUC.Ledger(), repo, nil)

	cfg := RouterConfig{
		AccountHandler: handler.NewAccountHandler(accountUC),
		JournalHandler: handler.NewJournalHandler(bookUC),
		ReportHandler:  handler.NewReportHandler(reportUC),
		HealthHandler:  handler.NewHealthHandler(nil),
		Logger:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	return cfg
}

func TestNewRouter_HealthEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /health to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_MetricsEndpointAvailable(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected /metrics to return 200, got %d", rec.Code)
	}
}

func TestNewRouter_RecordAndQueryFlow(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	// Register accounts
	for _, body := range []string{
		`{"id":"ACC001","name":"Cash","type":"ASSET"}`,
		`{"id":"ACC003","name":"Sales Revenue","type":"REVENUE"}`,
	} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusCreated {
			t.Fatalf("expected account creation to return 201, got %d: %s", rec.Code, rec.Body.String())
		}
	}

	// Record a balanced entry
	entryBody, _ := json.Marshal(dto.RecordEntryRequest{
		TransactionID: "TRX001",
		Description:   "cash sale",
		Legs: []dto.LegRequest{
			{AccountID: "ACC001", Kind: "DEBIT", Amount: decimal.NewFromInt(1000)},
			{AccountID: "ACC003", Kind: "CREDIT", Amount: decimal.NewFromInt(1000)},
		},
	})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries/", bytes.NewReader(entryBody))
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected entry recording to return 201, got %d: %s", rec.Code, rec.Body.String())
	}

	// Query the debited account's balance
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/accounts/ACC001/balance", nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected balance query to return 200, got %d", rec.Code)
	}

	var balance dto.BalanceResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &balance); err != nil {
		t.Fatalf("failed to decode balance: %v", err)
	}
	if !balance.Balance.Equal(decimal.NewFromInt(1000)) {
		t.Fatalf("expected balance 1000, got %s", balance.Balance)
	}

	// Render the trial balance
	rec = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/api/v1/reports/trial-balance", nil)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected report to return 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "Cash") {
		t.Fatalf("expected report to mention Cash, got %q", rec.Body.String())
	}
}

func TestNewRouter_UnbalancedEntryRejected(t *testing.T) {
	router := NewRouter(newRouterConfig(t))

	body := `{"transaction_id":"TRX001","legs":[` +
		`{"account_id":"ACC001","kind":"DEBIT","amount":"1000"},` +
		`{"account_id":"ACC003","kind":"CREDIT","amount":"999"}]}`

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/journal/entries/", strings.NewReader(body))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

type stubIdempotencyStore struct {
	checkCalls int
}

func (s *stubIdempotencyStore) CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error) {
	s.checkCalls++
	return false, nil, nil
}

func (s *stubIdempotencyStore) Update(ctx context.Context, key string, response []byte, ttl time.Duration) error {
	return nil
}

func TestNewRouter_IdempotencyMiddlewareInvokesStore(t *testing.T) {
	store := &stubIdempotencyStore{}
	router := NewRouter(newRouterConfig(t, func(cfg *RouterConfig) {
		cfg.IdempotencyStore = store
		cfg.IdempotencyTTL = time.Hour
	}))

	body := `{"id":"ACC001","name":"Cash","type":"ASSET"}`
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/accounts/", strings.NewReader(body))
	req.Header.Set("Idempotency-Key", "create-acc001")
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	if store.checkCalls != 1 {
		t.Fatalf("expected idempotency store consulted once, got %d", store.checkCalls)
	}
}
