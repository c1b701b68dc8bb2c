// Standalone seeder: go run ./cmd/seeder
package main

import (
	"onboardku_backend/internals/configs"
	"onboardku_backend/internals/seeds"
)

func main() {
	configs.LoadEnv()
	db := configs.InitSeederDB()
	seeds.RunAllSeeds(db)
}
