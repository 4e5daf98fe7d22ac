package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/techacademy/user-management-api/internal/core/domain"
	"github.com/techacademy/user-management-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the
// audit trail.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists a single audit event.
func (s *auditService) Record(ctx context.Context, event domain.AuditEvent) error {
	if err := s.repo.Insert(ctx, &event); err != nil {
		return fmt.Errorf("record audit event: %w", err)
	}

	s.log.Debug().
		Str("account_id", event.AccountID).
		Str("action", string(event.Action)).
		Msg("audit event recorded")
	return nil
}
