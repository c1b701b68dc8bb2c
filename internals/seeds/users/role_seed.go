package users

import (
	"log"

	"onboardku_backend/internals/constants"
	usermodel "onboardku_backend/internals/features/users/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func SeedRoles(db *gorm.DB) {
	for _, role := range constants.AllRoles {
		row := usermodel.RoleModel{Role: role}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			log.Printf("❌ Failed to seed role %q: %v", role, err)
		}
	}
	log.Println("✅ Roles seeded")
}
