package types

import (
	"strings"
	"time"
)

// Role is an admin user's permission level.
type Role string

// Roles, most privileged first.
const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleEditor     Role = "editor"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleEditor:
		return true
	}
	return false
}

// AdminUser is a back-office operator.
type AdminUser struct {
	ID        string         `json:"id"`
	Username  string         `json:"username"`
	Email     string         `json:"email"`
	Role      Role           `json:"role"`
	Status    ActivityStatus `json:"status"`
	CreatedAt time.Time      `json:"createdAt"`
	LastLogin *time.Time     `json:"lastLogin,omitempty"`
}

// AdminUserDraft is an admin user submitted for creation. Password is
// optional; accounts without one cannot log in.
type AdminUserDraft struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	Password string `json:"password,omitempty"`
}

// Validate checks the email and role.
func (d AdminUserDraft) Validate() error {
	if !strings.Contains(d.Email, "@") {
		return ErrInvalidData
	}
	if d.Role != "" && !d.Role.Valid() {
		return ErrInvalidData
	}
	return nil
}

// AdminUserPatch carries a partial admin update; nil fields are not written.
type AdminUserPatch struct {
	Username *string `json:"username,omitempty"`
	Email    *string `json:"email,omitempty"`
	Role     *Role   `json:"role,omitempty"`
}

// LoginStatus is the outcome of a login attempt.
type LoginStatus string

// Login outcomes.
const (
	LoginSuccess LoginStatus = "success"
	LoginFailed  LoginStatus = "failed"
)

// LoginLog is one audited login attempt.
type LoginLog struct {
	ID        string      `json:"id"`
	UserID    string      `json:"userId"`
	Username  string      `json:"username"`
	IP        string      `json:"ip"`
	Status    LoginStatus `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
}

// UsernameFromEmail returns the local part of an email address, or fallback
// when the address has none.
func UsernameFromEmail(email, fallback string) string {
	local, _, ok := strings.Cut(email, "@")
	if !ok || local == "" {
		return fallback
	}
	return local
}
