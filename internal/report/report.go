// Package report implements read-only accounting reports on top of the
// ledger's balance contract. Reports never touch the journal or raw
// postings; the BalanceReader interface is the only coupling point, so
// new variants can be added without changing the core.
package report

import (
	"io"
	"time"

	"github.com/shopspring/decimal"
)

// BalanceReader is the slice of the ledger consumed by reports.
type BalanceReader interface {
	Balance(accountID string) decimal.Decimal
	BalanceAsOf(accountID string, asOf time.Time) decimal.Decimal
}

// Report is the capability implemented by every report variant.
type Report interface {
	Name() string
	Generate(w io.Writer) error
}

// AccountRef names an account feeding a report.
type AccountRef struct {
	ID   string
	Name string
}

// Line is one account row in a single-column report.
type Line struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	Amount      decimal.Decimal `json:"amount"`
}
