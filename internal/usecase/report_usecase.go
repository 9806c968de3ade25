package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/infrastructure/metrics"
	"github.com/iho/ledgerbook/internal/report"
)

// ReportKind identifies a report variant.
type ReportKind string

const (
	ReportTrialBalance    ReportKind = "trial-balance"
	ReportIncomeStatement ReportKind = "income-statement"
	ReportCashFlow        ReportKind = "cash-flow"
	ReportBalanceSheet    ReportKind = "balance-sheet"
)

// ErrUnknownReport is returned for unrecognized report kinds.
var ErrUnknownReport = errors.New("unknown report kind")

// ReportUseCase builds reports from the ledger's balance contract and
// the chart of accounts. Reports read balances only; they never see the
// journal or raw postings.
type ReportUseCase struct {
	ledger   report.BalanceReader
	accounts AccountRepository
	cache    Cache
	cacheTTL time.Duration
	metrics  *metrics.Metrics
}

// NewReportUseCase creates a new ReportUseCase. metrics may be nil.
func NewReportUseCase(ledger report.BalanceReader, accounts AccountRepository, m *metrics.Metrics) *ReportUseCase {
	return &ReportUseCase{ledger: ledger, accounts: accounts, metrics: m}
}

// WithCache enables caching of rendered text output.
func (uc *ReportUseCase) WithCache(cache Cache, ttl time.Duration) *ReportUseCase {
	uc.cache = cache
	uc.cacheTTL = ttl

	return uc
}

// TrialBalance builds a trial balance over every registered account.
func (uc *ReportUseCase) TrialBalance(ctx context.Context, asOf time.Time, showEmpty bool) (*report.TrialBalance, error) {
	accounts, err := uc.refsAll(ctx)
	if err != nil {
		return nil, err
	}

	uc.observe(ReportTrialBalance)

	return report.NewTrialBalance(uc.ledger, accounts, asOf, showEmpty), nil
}

// IncomeStatement builds an income statement from revenue and expense
// accounts.
func (uc *ReportUseCase) IncomeStatement(ctx context.Context, asOf time.Time, showEmpty bool) (*report.IncomeStatement, error) {
	revenue, err := uc.refsByType(ctx, domain.Revenue)
	if err != nil {
		return nil, err
	}
	expenses, err := uc.refsByType(ctx, domain.Expense)
	if err != nil {
		return nil, err
	}

	uc.observe(ReportIncomeStatement)

	return report.NewIncomeStatement(uc.ledger, revenue, expenses, asOf, showEmpty), nil
}

// CashFlow builds a cash flow statement over asset accounts; each
// account's balance sign decides whether it is an inflow or an outflow.
func (uc *ReportUseCase) CashFlow(ctx context.Context, asOf time.Time, showEmpty bool) (*report.CashFlowStatement, error) {
	cash, err := uc.refsByType(ctx, domain.Asset)
	if err != nil {
		return nil, err
	}

	uc.observe(ReportCashFlow)

	return report.NewCashFlowStatement(uc.ledger, cash, cash, asOf, showEmpty), nil
}

// BalanceSheet builds a balance sheet from asset, liability and equity
// accounts.
func (uc *ReportUseCase) BalanceSheet(ctx context.Context, asOf time.Time) (*report.BalanceSheet, error) {
	assets, err := uc.refsByType(ctx, domain.Asset)
	if err != nil {
		return nil, err
	}
	liabilities, err := uc.refsByType(ctx, domain.Liability)
	if err != nil {
		return nil, err
	}
	equity, err := uc.refsByType(ctx, domain.Equity)
	if err != nil {
		return nil, err
	}

	uc.observe(ReportBalanceSheet)

	return report.NewBalanceSheet(uc.ledger, assets, liabilities, equity, asOf), nil
}

// Build constructs the report variant named by kind.
func (uc *ReportUseCase) Build(ctx context.Context, kind ReportKind, asOf time.Time, showEmpty bool) (report.Report, error) {
	if uc.metrics != nil {
		start := time.Now()
		defer func() {
			uc.metrics.ReportDuration.WithLabelValues(string(kind)).Observe(time.Since(start).Seconds())
		}()
	}

	switch kind {
	case ReportTrialBalance:
		return uc.TrialBalance(ctx, asOf, showEmpty)
	case ReportIncomeStatement:
		return uc.IncomeStatement(ctx, asOf, showEmpty)
	case ReportCashFlow:
		return uc.CashFlow(ctx, asOf, showEmpty)
	case ReportBalanceSheet:
		return uc.BalanceSheet(ctx, asOf)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownReport, kind)
	}
}

// GenerateText builds the report and returns its text rendering,
// served from cache when one is configured.
func (uc *ReportUseCase) GenerateText(ctx context.Context, kind ReportKind, asOf time.Time, showEmpty bool) (string, error) {
	cacheKey := fmt.Sprintf("report:%s:%d:%t", kind, asOf.Unix(), showEmpty)
	if uc.cache != nil {
		if cached, err := uc.cache.Get(ctx, cacheKey); err == nil && cached != "" {
			return cached, nil
		}
	}

	r, err := uc.Build(ctx, kind, asOf, showEmpty)
	if err != nil {
		return "", err
	}

	var sb strings.Builder
	if err := r.Generate(&sb); err != nil {
		return "", err
	}
	text := sb.String()

	if uc.cache != nil {
		// Best effort; a failed cache write never fails the report.
		_ = uc.cache.Set(ctx, cacheKey, text, uc.cacheTTL)
	}

	return text, nil
}

func (uc *ReportUseCase) refsAll(ctx context.Context) ([]report.AccountRef, error) {
	accounts, err := uc.accounts.List(ctx)
	if err != nil {
		return nil, err
	}

	return toRefs(accounts), nil
}

func (uc *ReportUseCase) refsByType(ctx context.Context, accountType domain.AccountType) ([]report.AccountRef, error) {
	accounts, err := uc.accounts.ListByType(ctx, accountType)
	if err != nil {
		return nil, err
	}

	return toRefs(accounts), nil
}

func toRefs(accounts []*domain.Account) []report.AccountRef {
	refs := make([]report.AccountRef, 0, len(accounts))
	for _, acc := range accounts {
		refs = append(refs, report.AccountRef{ID: acc.ID, Name: acc.Name})
	}

	return refs
}

func (uc *ReportUseCase) observe(kind ReportKind) {
	if uc.metrics == nil {
		return
	}
	uc.metrics.ReportsGenerated.WithLabelValues(string(kind)).Inc()
}
