package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/techacademy/user-management-api/internal/core/domain"
	"github.com/techacademy/user-management-api/internal/core/ports"
)

// stubAccountService replays the access-control policy at the boundary
// so the full request pipeline (routing, auth middleware, RBAC, fault
// translation) can be exercised without a database.
type stubAccountService struct {
	registerFn func(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error)
	loginFn    func(ctx context.Context, email, password string) (string, *domain.Account, error)
	getFn      func(ctx context.Context, id string) (*domain.Account, error)
	updateFn   func(ctx context.Context, callerID, targetID string, in ports.UpdateInput) (*domain.Account, error)
	deleteFn   func(ctx context.Context, callerID, targetID string) error
	listFn     func(ctx context.Context, pageNumber, pageSize int) (*ports.ListResult, error)
}

func (s *stubAccountService) Register(ctx context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
	return s.registerFn(ctx, in)
}

func (s *stubAccountService) Login(ctx context.Context, email, password string) (string, *domain.Account, error) {
	return s.loginFn(ctx, email, password)
}

func (s *stubAccountService) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return s.getFn(ctx, id)
}

func (s *stubAccountService) Update(ctx context.Context, callerID, targetID string, in ports.UpdateInput) (*domain.Account, error) {
	return s.updateFn(ctx, callerID, targetID, in)
}

func (s *stubAccountService) Delete(ctx context.Context, callerID, targetID string) error {
	return s.deleteFn(ctx, callerID, targetID)
}

func (s *stubAccountService) List(ctx context.Context, pageNumber, pageSize int) (*ports.ListResult, error) {
	return s.listFn(ctx, pageNumber, pageSize)
}

const (
	testSecret   = "test-secret"
	testIssuer   = "test-issuer"
	testAudience = "test-audience"
)

func newTestRouter(svc ports.AccountService) *echo.Echo {
	return NewRouter(svc, nil, nil, JWTParams{
		Secret:   testSecret,
		Issuer:   testIssuer,
		Audience: testAudience,
	}, prometheus.NewRegistry(), zerolog.Nop())
}

func signToken(t *testing.T, sub string, roles []string) string {
	t.Helper()
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   sub,
		"email": sub + "@example.com",
		"name":  sub,
		"roles": roles,
		"iss":   testIssuer,
		"aud":   testAudience,
		"iat":   now.Unix(),
		"exp":   now.Add(time.Hour).Unix(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json: %v (%s)", err, rec.Body.String())
	}
	return body
}

func TestRegister_FirstAccountWelcomeMessage(t *testing.T) {
	svc := &stubAccountService{
		registerFn: func(_ context.Context, in ports.RegisterInput) (*ports.RegisterResult, error) {
			if in.Username != "newUser" || in.Email != "newuser@example.com" {
				t.Fatalf("unexpected input: %+v", in)
			}
			return &ports.RegisterResult{
				Account: &domain.Account{ID: "1", Username: in.Username, Roles: []string{domain.RoleAdmin}},
				Role:    domain.RoleAdmin,
			}, nil
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodPost, "/account/register",
		`{"username":"newUser","email":"newuser@example.com","password":"StrongPassword123!"}`, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Admin registered successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestRegister_InvalidPayloadReturnsFieldErrors(t *testing.T) {
	svc := &stubAccountService{
		registerFn: func(_ context.Context, _ ports.RegisterInput) (*ports.RegisterResult, error) {
			t.Fatalf("service must not be called on invalid payload")
			return nil, nil
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodPost, "/account/register",
		`{"username":"x!","email":"not-an-email","password":"p"}`, "")

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
	body := decodeBody(t, rec)
	if errs, ok := body["errors"].([]any); !ok || len(errs) == 0 {
		t.Fatalf("expected field errors, got %v", body)
	}
}

func TestLogin_UnknownEmailReturns404(t *testing.T) {
	svc := &stubAccountService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Account, error) {
			return "", nil, domain.NotFound("This email is not registered.")
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodPost, "/account/login",
		`{"email":"ghost@example.com","password":"whatever"}`, "")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "This email is not registered." {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestLogin_WrongPasswordReturns401(t *testing.T) {
	svc := &stubAccountService{
		loginFn: func(_ context.Context, _, _ string) (string, *domain.Account, error) {
			return "", nil, domain.Unauthorized("Invalid email or password.")
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodPost, "/account/login",
		`{"email":"user@example.com","password":"wrong-password"}`, "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "Invalid email or password." {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestLogin_SuccessReturnsToken(t *testing.T) {
	svc := &stubAccountService{
		loginFn: func(_ context.Context, email, password string) (string, *domain.Account, error) {
			return "token123", &domain.Account{ID: "1", Email: email}, nil
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodPost, "/account/login",
		`{"email":"user@example.com","password":"Str0ngP@ss2025"}`, "")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if token := decodeBody(t, rec)["token"]; token != "token123" {
		t.Fatalf("unexpected token: %v", token)
	}
}

func TestGetByID_UnknownIDReturns404(t *testing.T) {
	svc := &stubAccountService{
		getFn: func(_ context.Context, id string) (*domain.Account, error) {
			return nil, domain.NotFound("User not found")
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodGet, "/account/nonexistent-id", "",
		signToken(t, "1", []string{domain.RoleUser}))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "User not found" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestGetByID_WithoutTokenReturns401(t *testing.T) {
	svc := &stubAccountService{
		getFn: func(_ context.Context, id string) (*domain.Account, error) {
			t.Fatalf("service must not be reached without a token")
			return nil, nil
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodGet, "/account/1", "", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestUpdate_OtherUserReturns403(t *testing.T) {
	svc := &stubAccountService{
		updateFn: func(_ context.Context, callerID, targetID string, _ ports.UpdateInput) (*domain.Account, error) {
			if callerID != "3" || targetID != "2" {
				t.Fatalf("unexpected caller/target: %s/%s", callerID, targetID)
			}
			return nil, domain.Forbidden("You are not allowed to update other users.")
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodPut, "/account/2",
		`{"username":"updatedName"}`, signToken(t, "3", []string{domain.RoleUser}))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "You are not allowed to update other users." {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestDelete_Success(t *testing.T) {
	svc := &stubAccountService{
		deleteFn: func(_ context.Context, callerID, targetID string) error {
			if callerID != "1" || targetID != "1" {
				t.Fatalf("unexpected caller/target: %s/%s", callerID, targetID)
			}
			return nil
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodDelete, "/account/1", "",
		signToken(t, "1", []string{domain.RoleUser}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if msg := decodeBody(t, rec)["message"]; msg != "User deleted successfully" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestList_AdminSeesPage(t *testing.T) {
	svc := &stubAccountService{
		listFn: func(_ context.Context, pageNumber, pageSize int) (*ports.ListResult, error) {
			if pageNumber != 2 || pageSize != 10 {
				t.Fatalf("unexpected pagination: %d/%d", pageNumber, pageSize)
			}
			return &ports.ListResult{
				Accounts: []*domain.Account{
					{ID: "1", Username: "alice", Email: "alice@example.com"},
				},
				TotalUsers: 11,
				PageNumber: pageNumber,
				PageSize:   pageSize,
			}, nil
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodGet, "/account/list?pageNumber=2&pageSize=10", "",
		signToken(t, "1", []string{domain.RoleAdmin}))

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := decodeBody(t, rec)
	if body["totalUsers"].(float64) != 11 {
		t.Fatalf("unexpected totalUsers: %v", body["totalUsers"])
	}
	users, ok := body["users"].([]any)
	if !ok || len(users) != 1 {
		t.Fatalf("expected one user, got %v", body["users"])
	}
	first := users[0].(map[string]any)
	if first["username"] != "alice" || first["email"] != "alice@example.com" {
		t.Fatalf("unexpected projection: %v", first)
	}
	if _, leaked := first["firstName"]; leaked {
		t.Fatalf("listing must project only id, username, email")
	}
}

func TestList_NonAdminReturns403(t *testing.T) {
	svc := &stubAccountService{
		listFn: func(_ context.Context, _, _ int) (*ports.ListResult, error) {
			t.Fatalf("service must not be reached for non-admin")
			return nil, nil
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodGet, "/account/list", "",
		signToken(t, "3", []string{domain.RoleUser}))

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
}

func TestList_UnauthenticatedReturns401(t *testing.T) {
	svc := &stubAccountService{
		listFn: func(_ context.Context, _, _ int) (*ports.ListResult, error) {
			t.Fatalf("service must not be reached without a token")
			return nil, nil
		},
	}
	e := newTestRouter(svc)

	rec := doJSON(e, http.MethodGet, "/account/list", "", "")

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
