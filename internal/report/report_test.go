package report

import (
	"time"

	"github.com/shopspring/decimal"
)

// stubLedger serves fixed raw balances regardless of as-of time.
type stubLedger struct {
	balances map[string]decimal.Decimal
}

func (s *stubLedger) Balance(accountID string) decimal.Decimal {
	return s.BalanceAsOf(accountID, time.Now())
}

func (s *stubLedger) BalanceAsOf(accountID string, _ time.Time) decimal.Decimal {
	if balance, ok := s.balances[accountID]; ok {
		return balance
	}

	return decimal.Zero
}

func amounts(pairs map[string]int64) map[string]decimal.Decimal {
	balances := make(map[string]decimal.Decimal, len(pairs))
	for id, amount := range pairs {
		balances[id] = decimal.NewFromInt(amount)
	}

	return balances
}
