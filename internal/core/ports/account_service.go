package ports

import (
	"context"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

// RegisterInput carries the already-validated registration payload.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// RegisterResult reports the created account and the role it received.
// Role is domain.RoleAdmin only for the very first account ever created.
type RegisterResult struct {
	Account *domain.Account
	Role    string
}

// UpdateInput carries a partial profile update. Blank fields are left
// untouched on the stored account.
type UpdateInput struct {
	Username  string
	Email     string
	FirstName string
	LastName  string
	Password  string
}

// ListResult is one page of the admin account listing.
type ListResult struct {
	Accounts   []*domain.Account
	TotalUsers int64
	PageNumber int
	PageSize   int
}

// AccountService is the identity and access-control core.
type AccountService interface {
	Register(ctx context.Context, in RegisterInput) (*RegisterResult, error)
	Login(ctx context.Context, email, password string) (string, *domain.Account, error)
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	// Update applies a partial update to the target account. callerID is
	// the authenticated principal; only the target itself or an Admin may
	// proceed.
	Update(ctx context.Context, callerID, targetID string, in UpdateInput) (*domain.Account, error)
	// Delete removes the target account under the same policy as Update.
	Delete(ctx context.Context, callerID, targetID string) error
	List(ctx context.Context, pageNumber, pageSize int) (*ListResult, error)
}

// TokenIssuer signs a bearer token asserting an account's identity and
// roles for a fixed validity window.
type TokenIssuer interface {
	Issue(account *domain.Account) (string, error)
}
