package ports

import (
	"context"

	"github.com/techacademy/user-management-api/internal/core/domain"
)

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuditEvent) error
}

// AuditService processes a single audit event end to end.
type AuditService interface {
	Record(ctx context.Context, event domain.AuditEvent) error
}

// SessionRecorder tracks session establishment (login or registration)
// per account. Tokens themselves stay stateless; the recorder is an
// observability side effect, so failures are logged and ignored.
type SessionRecorder interface {
	Record(ctx context.Context, accountID string) error
	Clear(ctx context.Context, accountID string) error
}
