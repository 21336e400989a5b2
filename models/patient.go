package models

import (
	"gorm.io/gorm"
)

// Patient is the domain profile, distinct from the User identity. AuthUID
// links the profile back to the account that registered it; admin-created
// patients have no linked account and keep AuthUID zero. Deleting a patient
// does not cascade to its User.
type Patient struct {
	gorm.Model
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	DOB     string `json:"dob"` // "YYYY-MM-DD", as submitted by the form
	Address string `json:"address"`
	AuthUID uint   `json:"auth_uid" gorm:"index"`
}
