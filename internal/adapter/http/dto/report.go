package dto

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/report"
)

// TrialBalanceResponse is the JSON form of a trial balance.
type TrialBalanceResponse struct {
	Report       string                    `json:"report"`
	AsOf         time.Time                 `json:"as_of"`
	Lines        []report.TrialBalanceLine `json:"lines"`
	TotalDebits  decimal.Decimal           `json:"total_debits"`
	TotalCredits decimal.Decimal           `json:"total_credits"`
	Balanced     bool                      `json:"balanced"`
}

// IncomeStatementResponse is the JSON form of an income statement.
type IncomeStatementResponse struct {
	Report        string          `json:"report"`
	AsOf          time.Time       `json:"as_of"`
	Revenue       []report.Line   `json:"revenue"`
	Expenses      []report.Line   `json:"expenses"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetIncome     decimal.Decimal `json:"net_income"`
}

// CashFlowResponse is the JSON form of a cash flow statement.
type CashFlowResponse struct {
	Report        string          `json:"report"`
	AsOf          time.Time       `json:"as_of"`
	Inflows       []report.Line   `json:"inflows"`
	Outflows      []report.Line   `json:"outflows"`
	TotalInflows  decimal.Decimal `json:"total_inflows"`
	TotalOutflows decimal.Decimal `json:"total_outflows"`
	NetCashFlow   decimal.Decimal `json:"net_cash_flow"`
}

// BalanceSheetResponse is the JSON form of a balance sheet.
type BalanceSheetResponse struct {
	Report      string         `json:"report"`
	AsOf        time.Time      `json:"as_of"`
	Assets      report.Section `json:"assets"`
	Liabilities report.Section `json:"liabilities"`
	Equity      report.Section `json:"equity"`
	Balanced    bool           `json:"balanced"`
}

// ReportFromDomain converts a built report into its JSON response form.
func ReportFromDomain(rep report.Report) (any, error) {
	switch r := rep.(type) {
	case *report.TrialBalance:
		return TrialBalanceResponse{
			Report:       r.Name(),
			AsOf:         r.AsOf(),
			Lines:        r.Lines(),
			TotalDebits:  r.TotalDebits(),
			TotalCredits: r.TotalCredits(),
			Balanced:     r.Balanced(),
		}, nil
	case *report.IncomeStatement:
		return IncomeStatementResponse{
			Report:        r.Name(),
			AsOf:          r.AsOf(),
			Revenue:       r.RevenueLines(),
			Expenses:      r.ExpenseLines(),
			TotalRevenue:  r.TotalRevenue(),
			TotalExpenses: r.TotalExpenses(),
			NetIncome:     r.NetIncome(),
		}, nil
	case *report.CashFlowStatement:
		return CashFlowResponse{
			Report:        r.Name(),
			AsOf:          r.AsOf(),
			Inflows:       r.InflowLines(),
			Outflows:      r.OutflowLines(),
			TotalInflows:  r.TotalInflows(),
			TotalOutflows: r.TotalOutflows(),
			NetCashFlow:   r.NetCashFlow(),
		}, nil
	case *report.BalanceSheet:
		return BalanceSheetResponse{
			Report:      r.Name(),
			AsOf:        r.AsOf(),
			Assets:      r.Assets(),
			Liabilities: r.Liabilities(),
			Equity:      r.Equity(),
			Balanced:    r.Balanced(),
		}, nil
	default:
		return nil, fmt.Errorf("unsupported report type %T", rep)
	}
}
