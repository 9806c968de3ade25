package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

// TrialBalanceLine is one account row with the raw balance split into
// its debit or credit column.
type TrialBalanceLine struct {
	AccountID   string          `json:"account_id"`
	AccountName string          `json:"account_name"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TrialBalance lists every account's raw ledger balance: positive
// balances in the debit column, negative in the credit column (as
// absolute values). Balances are computed once, at construction.
type TrialBalance struct {
	asOf         time.Time
	lines        []TrialBalanceLine
	totalDebits  decimal.Decimal
	totalCredits decimal.Decimal
}

// NewTrialBalance computes a trial balance over the given accounts as
// of the given time. Accounts with zero balance are skipped unless
// showEmpty is set.
func NewTrialBalance(ledger BalanceReader, accounts []AccountRef, asOf time.Time, showEmpty bool) *TrialBalance {
	tb := &TrialBalance{
		asOf:         asOf,
		totalDebits:  decimal.Zero,
		totalCredits: decimal.Zero,
	}

	for _, acc := range accounts {
		balance := ledger.BalanceAsOf(acc.ID, asOf)
		if balance.IsZero() && !showEmpty {
			continue
		}

		line := TrialBalanceLine{
			AccountID:   acc.ID,
			AccountName: acc.Name,
			Debit:       decimal.Zero,
			Credit:      decimal.Zero,
		}
		if balance.IsNegative() {
			line.Credit = balance.Neg()
			tb.totalCredits = tb.totalCredits.Add(line.Credit)
		} else {
			line.Debit = balance
			tb.totalDebits = tb.totalDebits.Add(balance)
		}

		tb.lines = append(tb.lines, line)
	}

	return tb
}

// Name implements Report.
func (tb *TrialBalance) Name() string { return "Trial Balance" }

// Lines returns the account rows in input order.
func (tb *TrialBalance) Lines() []TrialBalanceLine { return tb.lines }

// TotalDebits returns the sum of the debit column.
func (tb *TrialBalance) TotalDebits() decimal.Decimal { return tb.totalDebits }

// TotalCredits returns the sum of the credit column.
func (tb *TrialBalance) TotalCredits() decimal.Decimal { return tb.totalCredits }

// Balanced reports whether the debit and credit columns agree.
func (tb *TrialBalance) Balanced() bool { return tb.totalDebits.Equal(tb.totalCredits) }

// AsOf returns the report's point in time.
func (tb *TrialBalance) AsOf() time.Time { return tb.asOf }

// Generate implements Report, writing a fixed-width text rendering.
func (tb *TrialBalance) Generate(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "TRIAL BALANCE (as of %s)\n", tb.asOf.Format(time.RFC3339))
	fmt.Fprintln(tw, "Account ID\tAccount Name\tDebit\tCredit")
	for _, line := range tb.lines {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", line.AccountID, line.AccountName, line.Debit, line.Credit)
	}
	fmt.Fprintf(tw, "TOTALS\t\t%s\t%s\n", tb.totalDebits, tb.totalCredits)

	if tb.Balanced() {
		fmt.Fprintln(tw, "BALANCED")
	} else {
		fmt.Fprintln(tw, "NOT BALANCED")
	}

	return tw.Flush()
}
