// Package memory provides map-backed repositories for the memory
// resident deployment mode.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/iho/ledgerbook/internal/domain"
)

// AccountRepository implements usecase.AccountRepository with an
// in-process map. Accounts are returned in ID order so listings are
// stable across calls.
type AccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository() *AccountRepository {
	return &AccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

// Create registers a new account. Registering an ID twice fails.
func (r *AccountRepository) Create(ctx context.Context, account *domain.Account) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountExists, account.ID)
	}

	copied := *account
	r.accounts[account.ID] = &copied

	return nil
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	account, ok := r.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}

	copied := *account

	return &copied, nil
}

// List returns all accounts ordered by ID.
func (r *AccountRepository) List(ctx context.Context) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(*domain.Account) bool { return true }), nil
}

// ListByType returns all accounts of the given type ordered by ID.
func (r *AccountRepository) ListByType(ctx context.Context, accountType domain.AccountType) ([]*domain.Account, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.collect(func(a *domain.Account) bool { return a.Type == accountType }), nil
}

func (r *AccountRepository) collect(keep func(*domain.Account) bool) []*domain.Account {
	out := make([]*domain.Account, 0, len(r.accounts))
	for _, account := range r.accounts {
		if !keep(account) {
			continue
		}
		copied := *account
		out = append(out, &copied)
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

	return out
}
