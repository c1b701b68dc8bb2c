package onboarding

import (
	"log"

	stagemodel "onboardku_backend/internals/features/onboarding/stages/model"
	systemmodel "onboardku_backend/internals/features/systems/model"

	"gorm.io/gorm"
)

var defaultStages = []struct {
	Name         string
	Description  string
	DurationDays int
}{
	{"Kickoff", "Introduction call and requirement gathering", 2},
	{"Installation", "System installation and account provisioning", 3},
	{"Training", "Hands-on user training sessions", 7},
	{"Go-Live", "Production cutover and first-week supervision", 5},
}

// SeedStages gives every system the default stage sequence, skipping
// systems that already have stages.
func SeedStages(db *gorm.DB) {
	var systems []systemmodel.SystemModel
	if err := db.Where("is_active = ?", true).Find(&systems).Error; err != nil {
		log.Printf("❌ Failed to load systems for stage seed: %v", err)
		return
	}

	for _, system := range systems {
		var count int64
		if err := db.Model(&stagemodel.OnboardingStageModel{}).
			Where("system_id = ?", system.ID).Count(&count).Error; err != nil {
			log.Printf("❌ Stage lookup failed for system %q: %v", system.Name, err)
			continue
		}
		if count > 0 {
			continue
		}

		for i, s := range defaultStages {
			desc := s.Description
			days := s.DurationDays
			row := stagemodel.OnboardingStageModel{
				Name:                  s.Name,
				Description:           &desc,
				SequenceOrder:         i + 1,
				EstimatedDurationDays: &days,
				SystemID:              system.ID,
				IsActive:              true,
			}
			if err := db.Create(&row).Error; err != nil {
				log.Printf("❌ Failed to seed stage %q for system %q: %v", s.Name, system.Name, err)
			}
		}
	}
	log.Println("✅ Stages seeded")
}
