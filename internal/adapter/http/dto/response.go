package dto

import (
	"time"

	"github.com/iho/ledgerbook/internal/domain"
	"github.com/shopspring/decimal"
)

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	CreatedAt time.Time `json:"created_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:        a.ID,
		Name:      a.Name,
		Type:      string(a.Type),
		CreatedAt: a.CreatedAt,
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// ListAccountsResponse represents a list of accounts.
type ListAccountsResponse struct {
	Accounts []*AccountResponse `json:"accounts"`
	Total    int64              `json:"total"`
}

// LegResponse represents one side of a journal entry.
type LegResponse struct {
	AccountID   string          `json:"account_id"`
	Kind        string          `json:"kind"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description,omitempty"`
}

// EntryResponse represents a journal entry in API responses.
type EntryResponse struct {
	ID            string        `json:"id"`
	TransactionID string        `json:"transaction_id"`
	Description   string        `json:"description,omitempty"`
	Legs          []LegResponse `json:"legs"`
	CreatedAt     time.Time     `json:"created_at"`
}

// EntryFromDomain converts a domain journal entry to a response.
func EntryFromDomain(e *domain.JournalEntry) *EntryResponse {
	legs := e.Legs()
	out := make([]LegResponse, len(legs))
	for i, leg := range legs {
		out[i] = LegResponse{
			AccountID:   leg.AccountID,
			Kind:        string(leg.Kind),
			Amount:      leg.Amount,
			Description: leg.Description,
		}
	}

	return &EntryResponse{
		ID:            e.ID(),
		TransactionID: e.TransactionID(),
		Description:   e.Description(),
		Legs:          out,
		CreatedAt:     e.CreatedAt(),
	}
}

// EntriesFromDomain converts domain journal entries to responses.
func EntriesFromDomain(entries []*domain.JournalEntry) []*EntryResponse {
	result := make([]*EntryResponse, len(entries))
	for i, e := range entries {
		result[i] = EntryFromDomain(e)
	}
	return result
}

// ListEntriesResponse represents a list of journal entries.
type ListEntriesResponse struct {
	Entries []*EntryResponse `json:"entries"`
	Total   int64            `json:"total"`
}

// PostingResponse represents a ledger posting in API responses.
type PostingResponse struct {
	ID             string          `json:"id"`
	AccountID      string          `json:"account_id"`
	JournalEntryID string          `json:"journal_entry_id"`
	Kind           string          `json:"kind"`
	Amount         decimal.Decimal `json:"amount"`
	Timestamp      time.Time       `json:"timestamp"`
}

// PostingFromDomain converts a domain ledger posting to a response.
func PostingFromDomain(p *domain.LedgerEntry) *PostingResponse {
	return &PostingResponse{
		ID:             p.ID(),
		AccountID:      p.AccountID(),
		JournalEntryID: p.JournalEntryID(),
		Kind:           string(p.Kind()),
		Amount:         p.Amount(),
		Timestamp:      p.Timestamp(),
	}
}

// PostingsFromDomain converts domain ledger postings to responses.
func PostingsFromDomain(postings []*domain.LedgerEntry) []*PostingResponse {
	result := make([]*PostingResponse, len(postings))
	for i, p := range postings {
		result[i] = PostingFromDomain(p)
	}
	return result
}

// ListPostingsResponse represents a list of ledger postings.
type ListPostingsResponse struct {
	Postings []*PostingResponse `json:"postings"`
	Total    int64              `json:"total"`
}

// RecordEntryResponse represents a recorded entry and its postings.
type RecordEntryResponse struct {
	Entry    *EntryResponse     `json:"entry"`
	Postings []*PostingResponse `json:"postings"`
}

// BalanceResponse represents an account balance in API responses.
type BalanceResponse struct {
	AccountID string          `json:"account_id"`
	Balance   decimal.Decimal `json:"balance"`
	AsOf      time.Time       `json:"as_of"`
}
