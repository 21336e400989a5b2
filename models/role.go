package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RoleAdmin   = "admin"
	RolePatient = "patient"
	// RoleMember is the fallback for identities that have no role record,
	// e.g. accounts provisioned out-of-band.
	RoleMember = "member"
)

type Role struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	Name        string         `json:"name" gorm:"unique"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}
