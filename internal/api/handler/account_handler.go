package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/techacademy/user-management-api/internal/api/metrics"
	"github.com/techacademy/user-management-api/internal/core/domain"
	"github.com/techacademy/user-management-api/internal/core/ports"
)

const (
	defaultPageNumber = 1
	defaultPageSize   = 5
)

// AccountHandler handles HTTP requests for account operations. All
// failures are returned untranslated; the central error handler is the
// single place where they become status codes and JSON bodies.
type AccountHandler struct {
	service ports.AccountService
}

func NewAccountHandler(service ports.AccountService) *AccountHandler {
	return &AccountHandler{service: service}
}

// Register creates a new account. The first account ever registered is
// promoted to Admin; everyone after that becomes a regular User.
//
// @Summary      Register a new account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "Registration details"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Router       /account/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.service.Register(c.Request().Context(), ports.RegisterInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.WithLabelValues(result.Role).Inc()

	msg := "User registered successfully"
	if result.Role == domain.RoleAdmin {
		msg = "Admin registered successfully"
	}
	return c.JSON(http.StatusOK, messageResponse{Message: msg})
}

// Login authenticates by email and password and returns a signed token.
//
// @Summary      Login
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  loginResponse
// @Failure      401   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Router       /account/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, _, err := h.service.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		metrics.LoginsTotal.WithLabelValues("failure").Inc()
		return err
	}

	metrics.LoginsTotal.WithLabelValues("success").Inc()
	return c.JSON(http.StatusOK, loginResponse{Token: token})
}

// GetByID returns one account's profile.
//
// @Summary      Get an account by id
// @Tags         account
// @Produce      json
// @Param        id  path      string  true  "Account id"
// @Success      200 {object}  userResponse
// @Failure      401 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Security     BearerAuth
// @Router       /account/{id} [get]
func (h *AccountHandler) GetByID(c echo.Context) error {
	account, err := h.service.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, toUserResponse(account))
}

// Update applies a partial profile update. Only the account itself or an
// Admin may update; blank fields keep their stored values.
//
// @Summary      Update an account
// @Tags         account
// @Accept       json
// @Produce      json
// @Param        id    path      string         true  "Account id"
// @Param        body  body      updateRequest  true  "Fields to update"
// @Success      200   {object}  messageResponse
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Security     BearerAuth
// @Router       /account/{id} [put]
func (h *AccountHandler) Update(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	var req updateRequest
	if err := c.Bind(&req); err != nil {
		return domain.Validation("invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	_, err = h.service.Update(c.Request().Context(), caller, c.Param("id"), ports.UpdateInput{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Password:  req.Password,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, messageResponse{Message: "User profile updated successfully."})
}

// Delete removes an account. Same policy as Update; deletion is final.
//
// @Summary      Delete an account
// @Tags         account
// @Produce      json
// @Param        id  path      string  true  "Account id"
// @Success      200 {object}  messageResponse
// @Failure      403 {object}  errorResponse
// @Failure      404 {object}  errorResponse
// @Security     BearerAuth
// @Router       /account/{id} [delete]
func (h *AccountHandler) Delete(c echo.Context) error {
	caller, err := callerID(c)
	if err != nil {
		return err
	}

	if err := h.service.Delete(c.Request().Context(), caller, c.Param("id")); err != nil {
		return err
	}

	metrics.AccountsDeletedTotal.Inc()
	return c.JSON(http.StatusOK, messageResponse{Message: "User deleted successfully"})
}

// List returns a page of accounts. Admin only.
//
// @Summary      List accounts (Admin)
// @Tags         account
// @Produce      json
// @Param        pageNumber  query     int  false  "Page number (default 1)"
// @Param        pageSize    query     int  false  "Page size (default 5)"
// @Success      200         {object}  listUsersResponse
// @Failure      401         {object}  errorResponse
// @Failure      403         {object}  errorResponse
// @Security     BearerAuth
// @Router       /account/list [get]
func (h *AccountHandler) List(c echo.Context) error {
	pageNumber, err := queryInt(c, "pageNumber", defaultPageNumber)
	if err != nil {
		return err
	}
	pageSize, err := queryInt(c, "pageSize", defaultPageSize)
	if err != nil {
		return err
	}

	result, err := h.service.List(c.Request().Context(), pageNumber, pageSize)
	if err != nil {
		return err
	}

	users := make([]userSummary, 0, len(result.Accounts))
	for _, a := range result.Accounts {
		users = append(users, userSummary{ID: a.ID, Username: a.Username, Email: a.Email})
	}

	return c.JSON(http.StatusOK, listUsersResponse{
		TotalUsers: result.TotalUsers,
		PageNumber: result.PageNumber,
		PageSize:   result.PageSize,
		Users:      users,
	})
}

func toUserResponse(a *domain.Account) userResponse {
	return userResponse{
		ID:        a.ID,
		Username:  a.Username,
		Email:     a.Email,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
		UpdatedAt: a.UpdatedAt,
	}
}

func queryInt(c echo.Context, name string, fallback int) (int, error) {
	raw := c.QueryParam(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, domain.Validation("invalid pagination parameters", name+" must be an integer")
	}
	return n, nil
}
