package db

import (
	"fmt"
	"log"

	"github.com/opscheduler/opscheduler-api/models"
)

func Migrate() {
	err := DB.AutoMigrate(
		&models.User{},
		&models.Role{},
		&models.Patient{},
		&models.Doctor{},
		&models.Schedule{},
	)
	if err != nil {
		log.Fatal("Failed to run migrations: ", err)
	}

	seedRoles()

	fmt.Println("✅ Migrations applied successfully!")
}

// seedRoles makes sure the role records exist before any role-gated
// request is served.
func seedRoles() {
	roles := []models.Role{
		{Name: models.RoleAdmin, Description: "Administrator with full dashboard access"},
		{Name: models.RolePatient, Description: "Patient with self-service access"},
		{Name: models.RoleMember, Description: "Account with no assigned role"},
	}

	for _, role := range roles {
		var existing models.Role
		if DB.Where("name = ?", role.Name).First(&existing).RowsAffected == 0 {
			DB.Create(&role)
		}
	}
}
