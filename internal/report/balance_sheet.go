package report

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/shopspring/decimal"
)

// Section is one balance sheet section with its normalized total.
type Section struct {
	Name  string          `json:"name"`
	Lines []Line          `json:"lines"`
	Total decimal.Decimal `json:"total"`
}

// BalanceSheet presents assets against liabilities and equity as of a
// point in time. Asset lines carry the raw (debit-positive) balance;
// liability and equity lines are negated so credit-heavy accounts show
// positive, which makes the accounting equation directly checkable.
type BalanceSheet struct {
	asOf        time.Time
	assets      Section
	liabilities Section
	equity      Section
}

// NewBalanceSheet computes a balance sheet from the given account
// sections as of the given time.
func NewBalanceSheet(ledger BalanceReader, assets, liabilities, equity []AccountRef, asOf time.Time) *BalanceSheet {
	bs := &BalanceSheet{asOf: asOf}
	bs.assets = buildSection("Assets", ledger, assets, asOf, false)
	bs.liabilities = buildSection("Liabilities", ledger, liabilities, asOf, true)
	bs.equity = buildSection("Equity", ledger, equity, asOf, true)

	return bs
}

func buildSection(name string, ledger BalanceReader, accounts []AccountRef, asOf time.Time, creditNormal bool) Section {
	section := Section{Name: name, Total: decimal.Zero}

	for _, acc := range accounts {
		balance := ledger.BalanceAsOf(acc.ID, asOf)
		if creditNormal {
			balance = balance.Neg()
		}
		section.Lines = append(section.Lines, Line{AccountID: acc.ID, AccountName: acc.Name, Amount: balance})
		section.Total = section.Total.Add(balance)
	}

	return section
}

// Name implements Report.
func (bs *BalanceSheet) Name() string { return "Balance Sheet" }

// Assets returns the assets section.
func (bs *BalanceSheet) Assets() Section { return bs.assets }

// Liabilities returns the liabilities section.
func (bs *BalanceSheet) Liabilities() Section { return bs.liabilities }

// Equity returns the equity section.
func (bs *BalanceSheet) Equity() Section { return bs.equity }

// TotalAssets returns the assets total.
func (bs *BalanceSheet) TotalAssets() decimal.Decimal { return bs.assets.Total }

// TotalLiabilities returns the liabilities total.
func (bs *BalanceSheet) TotalLiabilities() decimal.Decimal { return bs.liabilities.Total }

// TotalEquity returns the equity total.
func (bs *BalanceSheet) TotalEquity() decimal.Decimal { return bs.equity.Total }

// Balanced reports whether assets equal liabilities plus equity.
func (bs *BalanceSheet) Balanced() bool {
	return bs.assets.Total.Equal(bs.liabilities.Total.Add(bs.equity.Total))
}

// AsOf returns the report's point in time.
func (bs *BalanceSheet) AsOf() time.Time { return bs.asOf }

// Generate implements Report, writing a fixed-width text rendering.
func (bs *BalanceSheet) Generate(w io.Writer) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)

	fmt.Fprintf(tw, "BALANCE SHEET (as of %s)\n", bs.asOf.Format(time.RFC3339))
	for _, section := range []Section{bs.assets, bs.liabilities, bs.equity} {
		fmt.Fprintln(tw, section.Name)
		for _, line := range section.Lines {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", line.AccountID, line.AccountName, line.Amount)
		}
		fmt.Fprintf(tw, "Total %s\t\t%s\n", section.Name, section.Total)
	}

	if bs.Balanced() {
		fmt.Fprintln(tw, "BALANCED")
	} else {
		fmt.Fprintln(tw, "NOT BALANCED")
	}

	return tw.Flush()
}
