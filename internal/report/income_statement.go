package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

// IncomeStatement presents revenue against expenses for the period up
// to asOf. Raw ledger balances are debit-positive, so revenue accounts
// (credit-normal) are shown negated and expense accounts (debit-normal)
// as-is; only accounts that carry a balance on their normal side are
// listed.
type IncomeStatement struct {
	asOf          time.Time
	revenueLines  []Line
	expenseLines  []Line
	totalRevenue  decimal.Decimal
	totalExpenses decimal.Decimal
}

// NewIncomeStatement computes an income statement from the given
// revenue and expense accounts.
func NewIncomeStatement(ledger BalanceReader, revenue, expenses []AccountRef, asOf time.Time, showEmpty bool) *IncomeStatement {
	is := &IncomeStatement{
		asOf:          asOf,
		totalRevenue:  decimal.Zero,
		totalExpenses: decimal.Zero,
	}

	for _, acc := range revenue {
		balance := ledger.BalanceAsOf(acc.ID, asOf)
		if balance.IsZero() && !showEmpty {
			continue
		}
		if balance.IsNegative() {
			amount := balance.Neg()
			is.revenueLines = append(is.revenueLines, Line{AccountID: acc.ID, AccountName: acc.Name, Amount: amount})
			is.totalRevenue = is.totalRevenue.Add(amount)
		}
	}

	for _, acc := range expenses {
		balance := ledger.BalanceAsOf(acc.ID, asOf)
		if balance.IsZero() && !showEmpty {
			continue
		}
		if balance.IsPositive() {
			is.expenseLines = append(is.expenseLines, Line{AccountID: acc.ID, AccountName: acc.Name, Amount: balance})
			is.totalExpenses = is.totalExpenses.Add(balance)
		}
	}

	return is
}

// Name implements Report.
func (is *IncomeStatement) Name() string { return "Income Statement" }

// RevenueLines returns the revenue rows.
func (is *IncomeStatement) RevenueLines() []Line { return is.revenueLines }

// ExpenseLines returns the expense rows.
func (is *IncomeStatement) ExpenseLines() []Line { return is.expenseLines }

// TotalRevenue returns the revenue total.
func (is *IncomeStatement) TotalRevenue() decimal.Decimal { return is.totalRevenue }

// TotalExpenses returns the expense total.
func (is *IncomeStatement) TotalExpenses() decimal.Decimal { return is.totalExpenses }

// NetIncome returns revenue minus expenses.
func (is *IncomeStatement) NetIncome() decimal.Decimal { return is.totalRevenue.Sub(is.totalExpenses) }

// AsOf returns the report's point in time.
func (is *IncomeStatement) AsOf() time.Time { return is.asOf }

// Generate implements Report, writing a fixed-width text rendering.
func (is *IncomeStatement) Generate(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "INCOME STATEMENT (as of %s)\n", is.asOf.Format(time.RFC3339))
	fmt.Fprintln(tw, "REVENUE")
	for _, line := range is.revenueLines {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", line.AccountID, line.AccountName, line.Amount)
	}
	fmt.Fprintf(tw, "Total Revenue\t\t%s\n", is.totalRevenue)

	fmt.Fprintln(tw, "EXPENSES")
	for _, line := range is.expenseLines {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", line.AccountID, line.AccountName, line.Amount)
	}
	fmt.Fprintf(tw, "Total Expenses\t\t%s\n", is.totalExpenses)
	fmt.Fprintf(tw, "Net Income\t\t%s\n", is.NetIncome())

	return tw.Flush()
}
