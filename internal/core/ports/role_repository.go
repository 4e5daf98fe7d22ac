package ports

import (
	"context"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

// RoleRepository defines persistence operations for the role registry.
type RoleRepository interface {
	// Count returns the number of roles currently registered.
	Count(ctx context.Context) (int64, error)
	// Create registers a role. Creating a role that already exists is
	// not an error; bootstrap relies on this idempotence.
	Create(ctx context.Context, role *domain.Role) error
}
