package models

import (
	"gorm.io/gorm"
)

type Doctor struct {
	gorm.Model
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	PhotoURL  string `json:"photo_url"`
}
