package models

import (
	"time"
)

// Role IDs seeded as static reference data.
const (
	RoleStudent int64 = 1
	RoleAdmin   int64 = 2
)

// Account defines the account model based on the 'accounts' table
type Account struct {
	ID           int64     `json:"id" db:"id"`
	FullName     string    `json:"fullName" db:"full_name"`
	Email        string    `json:"email" db:"email"`
	PasswordHash string    `json:"-" db:"password_hash"` // Excluded from JSON
	RoleID       int64     `json:"roleId" db:"role_id"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
}

// Role defines static reference data from the 'roles' table
type Role struct {
	ID   int64  `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}
