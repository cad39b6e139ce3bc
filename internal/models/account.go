package models

import "time"

// AccountRole represents the available roles for the RBAC system.
type AccountRole string

const (
	RoleAdmin    AccountRole = "ADMIN"
	RoleStandard AccountRole = "USER"
)

// AccountStatus represents whether an account may authenticate.
type AccountStatus string

const (
	AccountActive  AccountStatus = "ACTIVE"
	AccountBlocked AccountStatus = "BLOCKED"
)

// Account represents a staff account persisted in the record store.
// PasswordHash is part of the persisted document but must never reach
// API responses; handlers return AccountInfo instead.
type Account struct {
	ID           string        `json:"id"`
	Username     string        `json:"username"`
	PasswordHash string        `json:"password_hash"`
	Role         AccountRole   `json:"role"`
	Status       AccountStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
}

// AccountInfo describes an account in API responses.
type AccountInfo struct {
	ID        string        `json:"id"`
	Username  string        `json:"username"`
	Role      AccountRole   `json:"role"`
	Status    AccountStatus `json:"status"`
	CreatedAt time.Time     `json:"created_at"`
}

// Info strips the credential hash from an account.
func (a *Account) Info() AccountInfo {
	return AccountInfo{
		ID:        a.ID,
		Username:  a.Username,
		Role:      a.Role,
		Status:    a.Status,
		CreatedAt: a.CreatedAt,
	}
}
