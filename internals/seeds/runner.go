package seeds

import (
	"log"

	"onboardku_backend/internals/seeds/onboarding"
	"onboardku_backend/internals/seeds/users"

	"gorm.io/gorm"
)

// RunAllSeeds seeds reference data. Every seeder is idempotent, so running
// the binary with SEED=true more than once is safe.
func RunAllSeeds(db *gorm.DB) {
	log.Println("🌱 Running seeds...")

	users.SeedRoles(db)
	users.SeedSuperadmin(db)

	onboarding.SeedSystems(db)
	onboarding.SeedStages(db)

	log.Println("🌱 Seeds done.")
}
