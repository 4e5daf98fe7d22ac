package domain

import (
	"slices"
	"time"
)

const (
	RoleAdmin = "Admin"
	RoleUser  = "User"
)

// Account models a registered identity.
type Account struct {
	ID           string    `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email" bson:"email"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	FirstName    string    `json:"first_name,omitempty" bson:"first_name,omitempty"`
	LastName     string    `json:"last_name,omitempty" bson:"last_name,omitempty"`
	Roles        []string  `json:"roles" bson:"roles"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" bson:"updated_at"`
}

// HasRole reports whether the account holds the given role.
func (a *Account) HasRole(role string) bool {
	return slices.Contains(a.Roles, role)
}

// IsAdmin reports whether the account holds the Admin role.
func (a *Account) IsAdmin() bool {
	return a.HasRole(RoleAdmin)
}

// Role is a named permission tier. Only RoleAdmin and RoleUser exist;
// both are created lazily the first time the registry is found empty.
type Role struct {
	Name      string    `json:"name" bson:"name"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}
