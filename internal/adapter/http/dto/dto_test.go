package dto

import (
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/ledgerbook/internal/domain"
)

func TestRecordEntryRequestToUseCaseInput(t *testing.T) {
	req := RecordEntryRequest{
		TransactionID: "TRX001",
		Description:   "cash sale",
		Legs: []LegRequest{
			{AccountID: "ACC001", Kind: "DEBIT", Amount: decimal.NewFromInt(1000)},
			{AccountID: "ACC003", Kind: "CREDIT", Amount: decimal.NewFromInt(1000), Description: "sale"},
		},
	}

	input := req.ToUseCaseInput()

	if input.TransactionID != "TRX001" {
		t.Errorf("expected TRX001, got %s", input.TransactionID)
	}
	if len(input.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(input.Legs))
	}
	if input.Legs[1].Description != "sale" {
		t.Errorf("expected leg description carried over, got %q", input.Legs[1].Description)
	}
}

func TestEntryFromDomain(t *testing.T) {
	ids := domain.NewSequence("JEN", 6)
	entry, err := domain.NewJournalEntry(ids, "TRX001", []domain.Leg{
		{AccountID: "ACC001", Kind: domain.Debit, Amount: decimal.NewFromInt(100)},
		{AccountID: "ACC003", Kind: domain.Credit, Amount: decimal.NewFromInt(100)},
	}, "test entry")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	resp := EntryFromDomain(entry)

	if resp.ID != "JEN000001" {
		t.Errorf("expected id JEN000001, got %s", resp.ID)
	}
	if resp.TransactionID != "TRX001" {
		t.Errorf("expected transaction TRX001, got %s", resp.TransactionID)
	}
	if len(resp.Legs) != 2 {
		t.Fatalf("expected 2 legs, got %d", len(resp.Legs))
	}
	if resp.Legs[0].Kind != "DEBIT" || resp.Legs[1].Kind != "CREDIT" {
		t.Errorf("expected leg kinds preserved, got %s and %s", resp.Legs[0].Kind, resp.Legs[1].Kind)
	}
}

func TestAccountsFromDomainPreservesOrder(t *testing.T) {
	accounts := []*domain.Account{
		{ID: "ACC001", Name: "Cash", Type: domain.Asset},
		{ID: "ACC002", Name: "Equipment", Type: domain.Asset},
	}

	out := AccountsFromDomain(accounts)

	if len(out) != 2 || out[0].ID != "ACC001" || out[1].ID != "ACC002" {
		t.Fatalf("expected order preserved, got %+v", out)
	}
}
