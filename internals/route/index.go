// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	activityroute "onboardku_backend/internals/features/activity/route"
	clientroute "onboardku_backend/internals/features/clients/route"
	mediaroute "onboardku_backend/internals/features/media/route"
	notifroute "onboardku_backend/internals/features/notifications/route"
	asgroute "onboardku_backend/internals/features/onboarding/assignments/route"
	reqroute "onboardku_backend/internals/features/onboarding/requests/route"
	onboardingsvc "onboardku_backend/internals/features/onboarding/service"
	sessroute "onboardku_backend/internals/features/onboarding/sessions/route"
	stageroute "onboardku_backend/internals/features/onboarding/stages/route"
	systemroute "onboardku_backend/internals/features/systems/route"
	authroute "onboardku_backend/internals/features/users/auth/route"
	userroute "onboardku_backend/internals/features/users/user/route"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	api := app.Group("/api")

	// One orchestrator instance shared by every workflow route.
	orch := onboardingsvc.BuildOrchestrator(db)

	log.Println("[INFO] Mounting Auth routes...")
	authroute.AuthRoutes(api, db)

	log.Println("[INFO] Mounting User routes...")
	userroute.UserRoutes(api, db)

	log.Println("[INFO] Mounting Client routes...")
	clientroute.ClientRoutes(api, db)

	log.Println("[INFO] Mounting System routes...")
	systemroute.SystemRoutes(api, db)

	log.Println("[INFO] Mounting Onboarding routes...")
	reqroute.RequestRoutes(api, db, orch)
	asgroute.AssignmentRoutes(api, db, orch)
	sessroute.SessionRoutes(api, db, orch)
	stageroute.StageRoutes(api, db, orch)

	log.Println("[INFO] Mounting Notification routes...")
	notifroute.NotificationRoutes(api, db)

	log.Println("[INFO] Mounting Activity routes...")
	activityroute.ActivityRoutes(api, db)

	log.Println("[INFO] Mounting Media routes...")
	mediaroute.MediaRoutes(api, db)
}
