package model

import "time"

type UserRole string

const (
	RoleUser       UserRole = "user"
	RoleAdmin      UserRole = "admin"
	RoleSuperAdmin UserRole = "super_admin"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleUser, RoleAdmin, RoleSuperAdmin:
		return true
	}
	return false
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin || r == RoleSuperAdmin
}

// User document. The password hash never serializes to JSON.
type User struct {
	ID        string    `json:"id" bson:"id"`
	Email     string    `json:"email" bson:"email"`
	Phone     string    `json:"phone" bson:"phone"`
	Name      string    `json:"name" bson:"name"`
	Password  string    `json:"-" bson:"password,omitempty"`
	Role      UserRole  `json:"role" bson:"role"`
	IsActive  bool      `json:"is_active" bson:"is_active"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

type UserCreate struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// UserLogin accepts an email or a phone number as identifier.
type UserLogin struct {
	Identifier string `json:"identifier" validate:"required"`
	Password   string `json:"password" validate:"required"`
}

// Password match and length are business checks in the service, not schema
// rules, so mismatches come back as 400 rather than 422.
type ResetPasswordRequest struct {
	Identifier      string `json:"identifier" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required"`
	ConfirmPassword string `json:"confirm_password" validate:"required"`
}

type ResetPasswordResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type TokenResponse struct {
	AccessToken string `json:"access_token"`
	User        *User  `json:"user"`
}

// SetupStatus tells the deployment UI whether the one-time admin
// bootstrap is still open.
type SetupStatus struct {
	AdminExists    bool `json:"admin_exists"`
	SetupAvailable bool `json:"setup_available"`
}

type AdminSummary struct {
	Email string   `json:"email"`
	Name  string   `json:"name"`
	Role  UserRole `json:"role"`
}

type AdminInfo struct {
	AdminCount int            `json:"admin_count"`
	Admins     []AdminSummary `json:"admins"`
}

// InitialAdminRequest bootstraps the very first super_admin account.
type InitialAdminRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"required,min=10"`
	Name     string `json:"name" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
	SetupKey string `json:"setup_key" validate:"required"`
}

type UserPage struct {
	Users      []User `json:"users"`
	Total      int64  `json:"total"`
	Page       int    `json:"page"`
	PageSize   int    `json:"page_size"`
	TotalPages int64  `json:"total_pages"`
}
