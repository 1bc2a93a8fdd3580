package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleAgent   = "agent"
)

var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrUserNotFound = errors.New("user not found")

// ValidRole reports whether s is one of the three known roles.
func ValidRole(s string) bool {
	return s == RoleAdmin || s == RoleManager || s == RoleAgent
}

// User models an authenticated actor in the system. Agents carry a ManagerID
// referencing the manager they report to; admins and managers leave it nil.
type User struct {
	ID           int64     `json:"id" bson:"_id"`
	Username     string    `json:"username" bson:"username"`
	Email        string    `json:"email,omitempty" bson:"email,omitempty"`
	FullName     string    `json:"full_name,omitempty" bson:"full_name,omitempty"`
	PasswordHash string    `json:"-" bson:"password_hash"`
	Role         string    `json:"role" bson:"role"`
	IsActive     bool      `json:"is_active" bson:"is_active"`
	ManagerID    *int64    `json:"manager_id,omitempty" bson:"manager_id,omitempty"`
	CreatedAt    time.Time `json:"created_at" bson:"created_at"`
}
