package domain

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Role is the closed set of roles the remote API assigns to an account.
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts only the two known roles (case-insensitive).
func ParseRole(s string) (Role, error) {
	switch Role(strings.ToUpper(strings.TrimSpace(s))) {
	case RoleUser:
		return RoleUser, nil
	case RoleAdmin:
		return RoleAdmin, nil
	}
	return "", fmt.Errorf("%w: unknown role %q", ErrValidation, s)
}

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// User is the account record served by /users.
type User struct {
	ID          int64      `json:"id"`
	Name        string     `json:"name"`
	Email       string     `json:"email"`
	Role        Role       `json:"role"`
	ManagerID   *int64     `json:"managerId,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	LastLoginAt *time.Time `json:"lastLoginAt,omitempty"`
}

func (u User) GetID() int64 { return u.ID }

// CreateUserInput is the body of POST /users. Admins only create regular users
// that they manage.
type CreateUserInput struct {
	Name      string `json:"name"      validate:"required,max=150"`
	Email     string `json:"email"     validate:"required,email"`
	Password  string `json:"password"  validate:"required,min=6"`
	Role      Role   `json:"role,omitempty"`
	ManagerID int64  `json:"managerId"`
}

// UpdateUserInput is the body of PUT /users/:id. Nil fields are omitted;
// ClearManager sends an explicit null managerId.
type UpdateUserInput struct {
	Name         *string `json:"name,omitempty"`
	Email        *string `json:"email,omitempty"`
	Password     *string `json:"password,omitempty"`
	Role         *Role   `json:"role,omitempty"`
	ManagerID    *int64  `json:"-"`
	ClearManager bool    `json:"-"`
}

func (in UpdateUserInput) MarshalJSON() ([]byte, error) {
	body := make(map[string]any, 5)
	if in.Name != nil {
		body["name"] = *in.Name
	}
	if in.Email != nil {
		body["email"] = *in.Email
	}
	if in.Password != nil && *in.Password != "" {
		body["password"] = *in.Password
	}
	if in.Role != nil {
		body["role"] = *in.Role
	}
	switch {
	case in.ClearManager:
		body["managerId"] = nil
	case in.ManagerID != nil:
		body["managerId"] = *in.ManagerID
	}
	return json.Marshal(body)
}

// RegisterInput is the body of POST /auth/register.
type RegisterInput struct {
	Name     string `json:"name"     validate:"required,max=150"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// LoginInput is the body of POST /auth/login.
type LoginInput struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResult is the body returned by POST /auth/login.
type LoginResult struct {
	AccessToken string `json:"accessToken"`
	ID          int64  `json:"id"`
	Email       string `json:"email"`
	Role        Role   `json:"role"`
}
