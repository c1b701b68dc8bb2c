package onboarding

import (
	"log"

	systemmodel "onboardku_backend/internals/features/systems/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var defaultSystems = []struct {
	Name        string
	Description string
}{
	{"POS", "Point-of-sale system for retail clients"},
	{"HRIS", "Human resource information system"},
	{"Accounting", "Bookkeeping and financial reporting"},
}

func SeedSystems(db *gorm.DB) {
	for _, s := range defaultSystems {
		desc := s.Description
		row := systemmodel.SystemModel{
			Name:        s.Name,
			Description: &desc,
			IsActive:    true,
		}
		if err := db.Clauses(clause.OnConflict{DoNothing: true}).Create(&row).Error; err != nil {
			log.Printf("❌ Failed to seed system %q: %v", s.Name, err)
		}
	}
	log.Println("✅ Systems seeded")
}
