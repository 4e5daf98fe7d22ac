package handler

import "time"

// --- Request types ---

type registerRequest struct {
	Username string `json:"username" validate:"required,min=3,max=20,alphanum"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type loginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// updateRequest carries a partial profile update: every field is
// optional, and blank fields leave the stored value untouched.
type updateRequest struct {
	Username  string `json:"username,omitempty"  validate:"omitempty,min=3,max=20,alphanum"`
	Email     string `json:"email,omitempty"     validate:"omitempty,email"`
	FirstName string `json:"firstName,omitempty" validate:"omitempty,min=3"`
	LastName  string `json:"lastName,omitempty"  validate:"omitempty,min=3"`
	Password  string `json:"password,omitempty"  validate:"omitempty,min=6,max=100"`
}

// --- Response types ---
// Owned by the transport layer so the JSON contract is not coupled to
// internal domain changes.

type messageResponse struct {
	Message string `json:"message"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userResponse struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	FirstName string    `json:"firstName,omitempty"`
	LastName  string    `json:"lastName,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type userSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type listUsersResponse struct {
	TotalUsers int64         `json:"totalUsers"`
	PageNumber int           `json:"pageNumber"`
	PageSize   int           `json:"pageSize"`
	Users      []userSummary `json:"users"`
}
