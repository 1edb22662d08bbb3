package models

import (
	"time"

	"gorm.io/gorm"
)

type UserAccount struct {
	ID           uint           `json:"id" gorm:"primaryKey"`
	Email        string         `json:"email" gorm:"unique;not null"`
	PasswordHash string         `json:"-" gorm:"not null"`
	FirstName    string         `json:"first_name" gorm:"not null"`
	LastName     string         `json:"last_name"`
	Telephone    string         `json:"telephone" gorm:"size:15"`
	Location     string         `json:"location" gorm:"size:100"`
	Role         string         `json:"role" gorm:"default:'CLIENT'"` // CLIENT, PROVIDER
	IsActive     bool           `json:"is_active" gorm:"default:true"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	DeletedAt    gorm.DeletedAt `json:"deleted_at" gorm:"index"`
}

type UserRole string

const (
	RoleClient   UserRole = "CLIENT"
	RoleProvider UserRole = "PROVIDER"
)

// ValidRole reports whether role is one of the supported account roles.
// Legacy role strings from older data are a cleanup concern, not a variant.
func ValidRole(role string) bool {
	return role == string(RoleClient) || role == string(RoleProvider)
}

func (u *UserAccount) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}
