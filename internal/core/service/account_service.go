package service

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/techacademy/user-management-api/internal/core/domain"
	"github.com/techacademy/user-management-api/internal/core/ports"
)

const maxPageSize = 100

// AuditSink accepts audit events for asynchronous persistence.
type AuditSink interface {
	Enqueue(event domain.AuditEvent)
}

// AccountService implements registration, authentication and the
// ownership/role authorization policy on account mutations.
type AccountService struct {
	accounts ports.AccountRepository
	roles    ports.RoleRepository
	tokens   ports.TokenIssuer
	sessions ports.SessionRecorder
	audit    AuditSink
	log      zerolog.Logger

	// bootstrapMu serializes the count-then-insert window so exactly one
	// account can ever observe an empty collection and become Admin. The
	// unique indexes on username/email are the storage-level backstop.
	bootstrapMu sync.Mutex
}

func NewAccountService(
	accounts ports.AccountRepository,
	roles ports.RoleRepository,
	tokens ports.TokenIssuer,
	sessions ports.SessionRecorder,
	audit AuditSink,
	log zerolog.Logger,
) *AccountService {
	return &AccountService{
		accounts: accounts,
		roles:    roles,
		tokens:   tokens,
		sessions: sessions,
		audit:    audit,
		log:      log,
	}
}

// Register creates a new account. The very first account ever created
// receives the Admin role; every later one receives User. When the role
// registry is empty both roles are created first (idempotent bootstrap).
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	s.bootstrapMu.Lock()
	defer s.bootstrapMu.Unlock()

	if err := s.bootstrapRoles(ctx); err != nil {
		return nil, err
	}

	// Point-in-time count taken before this account's insertion decides
	// the promotion; the mutex above keeps it race-free in-process.
	existing, err := s.accounts.Count(ctx)
	if err != nil {
		return nil, err
	}
	role := domain.RoleUser
	if existing == 0 {
		role = domain.RoleAdmin
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	account := &domain.Account{
		ID:           uuid.NewString(),
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: string(hash),
		Roles:        []string{role},
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.accounts.Create(ctx, account); err != nil {
		return nil, err
	}

	s.establishSession(ctx, account.ID)
	s.audit.Enqueue(domain.AuditEvent{
		AccountID: account.ID,
		Actor:     account.ID,
		Action:    domain.AuditRegistered,
		Timestamp: now,
	})

	s.log.Info().
		Str("account_id", account.ID).
		Str("username", account.Username).
		Str("role", role).
		Msg("account registered")

	return &ports.RegisterResult{Account: account, Role: role}, nil
}

// bootstrapRoles creates Admin and User when the registry is empty.
// Role creation tolerates duplicate inserts, so a lost race with another
// process still converges on exactly one document per role.
func (s *AccountService) bootstrapRoles(ctx context.Context) error {
	n, err := s.roles.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	now := time.Now().UTC()
	for _, name := range []string{domain.RoleAdmin, domain.RoleUser} {
		if err := s.roles.Create(ctx, &domain.Role{Name: name, CreatedAt: now}); err != nil {
			return err
		}
	}
	s.log.Info().Msg("role registry bootstrapped")
	return nil
}

// Login authenticates by email and password and issues a session token.
// An unknown email is reported as not found rather than a generic
// credentials failure; that disclosure is a deliberate, tested policy.
func (s *AccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	account, err := s.accounts.FindByEmail(ctx, email)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) && de.Kind == domain.KindNotFound {
			return "", nil, domain.NotFound("This email is not registered.")
		}
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.Unauthorized("Invalid email or password.")
	}

	token, err := s.tokens.Issue(account)
	if err != nil {
		return "", nil, err
	}

	s.establishSession(ctx, account.ID)
	s.audit.Enqueue(domain.AuditEvent{
		AccountID: account.ID,
		Actor:     account.ID,
		Action:    domain.AuditLoggedIn,
		Timestamp: time.Now().UTC(),
	})

	return token, account, nil
}

// GetByID returns the account for the given id.
func (s *AccountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.accounts.FindByID(ctx, id)
}

// Update applies a partial profile update. Only non-blank fields
// overwrite stored values; UpdatedAt always advances on success.
func (s *AccountService) Update(ctx context.Context, callerID, targetID string, in ports.UpdateInput) (*domain.Account, error) {
	target, err := s.accounts.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if err := s.authorize(ctx, callerID, targetID, "You are not allowed to update other users."); err != nil {
		return nil, err
	}

	if v := strings.TrimSpace(in.Username); v != "" {
		target.Username = v
	}
	if v := strings.TrimSpace(in.Email); v != "" {
		target.Email = v
	}
	if v := strings.TrimSpace(in.FirstName); v != "" {
		target.FirstName = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		target.LastName = v
	}
	if v := strings.TrimSpace(in.Password); v != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(v), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		target.PasswordHash = string(hash)
	}
	target.UpdatedAt = time.Now().UTC()

	if err := s.accounts.Update(ctx, target); err != nil {
		return nil, err
	}

	s.audit.Enqueue(domain.AuditEvent{
		AccountID: target.ID,
		Actor:     callerID,
		Action:    domain.AuditUpdated,
		Timestamp: target.UpdatedAt,
	})

	return target, nil
}

// Delete removes the target account. Deletion is final; the session
// marker is cleared but issued tokens simply age out.
func (s *AccountService) Delete(ctx context.Context, callerID, targetID string) error {
	if err := s.authorize(ctx, callerID, targetID, "You are not allowed to delete other users."); err != nil {
		return err
	}

	if _, err := s.accounts.FindByID(ctx, targetID); err != nil {
		return err
	}
	if err := s.accounts.Delete(ctx, targetID); err != nil {
		return err
	}

	if err := s.sessions.Clear(ctx, targetID); err != nil {
		s.log.Warn().Err(err).Str("account_id", targetID).Msg("failed to clear session marker")
	}
	s.audit.Enqueue(domain.AuditEvent{
		AccountID: targetID,
		Actor:     callerID,
		Action:    domain.AuditDeleted,
		Timestamp: time.Now().UTC(),
	})

	s.log.Info().Str("account_id", targetID).Str("actor", callerID).Msg("account deleted")
	return nil
}

// List returns one page of accounts plus the total count. Callers reach
// this only through the Admin route gate.
func (s *AccountService) List(ctx context.Context, pageNumber, pageSize int) (*ports.ListResult, error) {
	if pageNumber < 1 || pageSize < 1 {
		return nil, domain.Validation("invalid pagination parameters",
			"pageNumber and pageSize must be at least 1")
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	accounts, total, err := s.accounts.List(ctx, ports.ListAccountsPage{
		PageNumber: pageNumber,
		PageSize:   pageSize,
	})
	if err != nil {
		return nil, err
	}

	return &ports.ListResult{
		Accounts:   accounts,
		TotalUsers: total,
		PageNumber: pageNumber,
		PageSize:   pageSize,
	}, nil
}

// authorize resolves the caller freshly from the store and allows the
// mutation when the caller is the target or currently holds Admin. The
// fresh lookup means a role revoked after token issuance is effective
// immediately, for deletes as well as updates.
func (s *AccountService) authorize(ctx context.Context, callerID, targetID, denied string) error {
	if callerID == targetID {
		return nil
	}
	caller, err := s.accounts.FindByID(ctx, callerID)
	if err != nil {
		var de *domain.Error
		if errors.As(err, &de) && de.Kind == domain.KindNotFound {
			return domain.Unauthorized("authenticated account no longer exists")
		}
		return err
	}
	if !caller.IsAdmin() {
		return domain.Forbidden(denied)
	}
	return nil
}

// establishSession records the login side effect; failures are logged
// and swallowed because the token itself is the source of truth.
func (s *AccountService) establishSession(ctx context.Context, accountID string) {
	if err := s.sessions.Record(ctx, accountID); err != nil {
		s.log.Warn().Err(err).Str("account_id", accountID).Msg("failed to record session")
	}
}
