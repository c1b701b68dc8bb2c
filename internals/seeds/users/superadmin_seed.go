package users

import (
	"log"
	"time"

	"onboardku_backend/internals/configs"
	"onboardku_backend/internals/constants"
	usermodel "onboardku_backend/internals/features/users/model"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedSuperadmin creates the bootstrap superadmin account once.
func SeedSuperadmin(db *gorm.DB) {
	email := configs.GetEnv("SUPERADMIN_EMAIL", "superadmin@onboardku.id")
	password := configs.GetEnv("SUPERADMIN_PASSWORD", "")
	if password == "" {
		log.Println("⚠️ SUPERADMIN_PASSWORD is not set, skipping superadmin seed")
		return
	}

	var existing int64
	if err := db.Model(&usermodel.CredentialModel{}).
		Where("email = ?", email).Count(&existing).Error; err != nil {
		log.Printf("❌ Superadmin lookup failed: %v", err)
		return
	}
	if existing > 0 {
		log.Println("✅ Superadmin already seeded")
		return
	}

	var role usermodel.RoleModel
	if err := db.Where("role = ?", constants.RoleSuperadmin).First(&role).Error; err != nil {
		log.Printf("❌ Superadmin role missing: %v", err)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Printf("❌ Failed to hash superadmin password: %v", err)
		return
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		user := usermodel.UserModel{
			RoleID:      role.ID,
			FirstName:   "Super",
			LastName:    "Admin",
			DOB:         time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC),
			Address:     "Head Office",
			Gender:      "male",
			Nationality: "Indonesia",
		}
		if err := tx.Create(&user).Error; err != nil {
			return err
		}
		cred := usermodel.CredentialModel{
			UserID:      user.ID,
			Email:       email,
			Username:    "superadmin",
			PhoneNumber: "+620000000000",
			Password:    string(hash),
		}
		return tx.Create(&cred).Error
	})
	if err != nil {
		log.Printf("❌ Failed to seed superadmin: %v", err)
		return
	}
	log.Println("✅ Superadmin seeded")
}
