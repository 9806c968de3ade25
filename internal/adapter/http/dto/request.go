package dto

import (
	"github.com/iho/ledgerbook/internal/usecase"
	"github.com/shopspring/decimal"
)

// CreateAccountRequest represents a request to register an account.
type CreateAccountRequest struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name"`
	Type string `json:"type"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		ID:   r.ID,
		Name: r.Name,
		Type: r.Type,
	}
}

// LegRequest represents one side of a journal entry.
type LegRequest struct {
	AccountID   string          `json:"account_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// RecordEntryRequest represents a request to record a balanced
// transaction in the journal.
type RecordEntryRequest struct {
	TransactionID string       `json:"transaction_id,omitempty"`
	Description   string       `json:"description,omitempty"`
	Legs          []LegRequest `json:"legs"`
}

// ToUseCaseInput converts to use case input.
func (r *RecordEntryRequest) ToUseCaseInput() usecase.RecordEntryInput {
	legs := make([]usecase.LegInput, len(r.Legs))
	for i, leg := range r.Legs {
		legs[i] = usecase.LegInput{
			AccountID:   leg.AccountID,
			Kind:        leg.Kind,
			Amount:      leg.Amount,
			Description: leg.Description,
		}
	}

	return usecase.RecordEntryInput{
		TransactionID: r.TransactionID,
		Description:   r.Description,
		Legs:          legs,
	}
}
