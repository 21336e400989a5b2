package models

import (
	"time"
)

type User struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name"`
	Email     string    `json:"email" gorm:"unique"`
	Password  string    `json:"password,omitempty"`
	RoleID    uint      `json:"role_id"`
	Role      Role      `json:"role,omitempty" gorm:"foreignKey:RoleID"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// RoleName returns the user's role, defaulting to "member" when no role
// record is linked to the account.
func (u *User) RoleName() string {
	if u.Role.Name == "" {
		return RoleMember
	}
	return u.Role.Name
}
