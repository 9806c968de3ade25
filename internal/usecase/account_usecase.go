package usecase

import (
	"context"
	"time"

	"github.com/iho/ledgerbook/internal/domain"
	"github.com/iho/ledgerbook/internal/infrastructure/metrics"
)

// CreateAccountInput represents input for creating an account. ID is
// optional; a fresh identifier is allocated when it is empty.
type CreateAccountInput struct {
	ID   string
	Name string
	Type string
}

// AccountUseCase handles chart-of-accounts business logic.
type AccountUseCase struct {
	repo    AccountRepository
	ids     domain.IDSource
	metrics *metrics.Metrics
}

// NewAccountUseCase creates a new AccountUseCase. metrics may be nil.
func NewAccountUseCase(repo AccountRepository, ids domain.IDSource, m *metrics.Metrics) *AccountUseCase {
	return &AccountUseCase{repo: repo, ids: ids, metrics: m}
}

// CreateAccount validates and registers a new account.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	accountType, err := domain.ParseAccountType(input.Type)
	if err != nil {
		return nil, err
	}

	id := input.ID
	if id == "" {
		id = uc.ids.Next()
	}

	account := &domain.Account{
		ID:        id,
		Name:      input.Name,
		Type:      accountType,
		CreatedAt: time.Now(),
	}
	if err := account.Validate(); err != nil {
		return nil, err
	}

	if err := uc.repo.Create(ctx, account); err != nil {
		return nil, err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return account, nil
}

// GetAccount retrieves an account by id.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.repo.GetByID(ctx, id)
}

// ListAccounts returns all registered accounts.
func (uc *AccountUseCase) ListAccounts(ctx context.Context) ([]*domain.Account, error) {
	return uc.repo.List(ctx)
}
