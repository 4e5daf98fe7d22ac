package ports

import (
	"context"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

// ListAccountsPage carries the pagination parameters for listing accounts.
// PageNumber is 1-based; PageSize is capped by the service layer.
type ListAccountsPage struct {
	PageNumber int
	PageSize   int
}

// AccountRepository defines persistence operations for accounts.
type AccountRepository interface {
	Create(ctx context.Context, a *domain.Account) error
	FindByID(ctx context.Context, id string) (*domain.Account, error)
	FindByEmail(ctx context.Context, email string) (*domain.Account, error)
	Update(ctx context.Context, a *domain.Account) error
	Delete(ctx context.Context, id string) error
	// Count returns the total number of accounts in the store.
	Count(ctx context.Context) (int64, error)
	// List returns a page of accounts ordered by creation time plus the
	// total count across all pages.
	List(ctx context.Context, page ListAccountsPage) ([]*domain.Account, int64, error)
}
