package models

import (
	"fmt"

	"github.com/google/uuid"
)

// Role is the closed set of roles an account can hold.
type Role string

const (
	RoleUser   Role = "user"
	RoleEditor Role = "editor"
	RoleAdmin  Role = "admin"
)

func (r Role) Valid() bool {
	switch r {
	case RoleUser, RoleEditor, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

func ParseRole(s string) (Role, error) {
	r := Role(s)
	if !r.Valid() {
		return "", fmt.Errorf("unknown role %q", s)
	}
	return r, nil
}

type Account struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"   json:"id"`
	FirstName    string    `gorm:"not null"               json:"firstname"`
	LastName     string    `gorm:"not null"               json:"lastname"`
	Username     string    `gorm:"unique;not null"        json:"username"`
	Email        string    `gorm:"unique;not null"        json:"email"`
	PasswordHash string    `gorm:"not null"               json:"-"`
	Role         Role      `gorm:"not null;default:user"  json:"role"`
}
