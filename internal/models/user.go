// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRole classifies a user's access level.
type UserRole string

// User roles.
const (
	RoleAdmin UserRole = "ADMIN"
	RoleUser  UserRole = "USER"
)

// Valid reports whether the role is one of the known values.
func (r UserRole) Valid() bool {
	return r == RoleAdmin || r == RoleUser
}

// UserStatus classifies a user account's standing.
type UserStatus string

// User account statuses.
const (
	UserActive  UserStatus = "ACTIVE"
	UserBlocked UserStatus = "BLOCKED"
)

// User represents a registered author or administrator.
type User struct {
	ID            string     `gorm:"primaryKey;type:uuid" json:"id"`
	Name          string     `gorm:"not null" json:"name"`
	Email         string     `gorm:"uniqueIndex;not null" json:"email"`
	Password      string     `gorm:"not null" json:"-"`
	Role          UserRole   `gorm:"type:varchar(16);not null;default:USER" json:"role"`
	Status        UserStatus `gorm:"type:varchar(16);not null;default:ACTIVE" json:"status"`
	EmailVerified bool       `gorm:"not null;default:false" json:"emailVerified"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// BeforeCreate assigns a UUID primary key when none was provided.
func (u *User) BeforeCreate(*gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// CanMutateContent reports whether the account passes the mutation gate:
// only email-verified, active users may create or change content.
func (u *User) CanMutateContent() bool {
	return u.EmailVerified && u.Status == UserActive
}
