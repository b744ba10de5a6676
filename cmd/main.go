package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/getsentry/sentry-go"

	"nutritrack-backend/config"
	"nutritrack-backend/controllers"
	"nutritrack-backend/monitoring"
	"nutritrack-backend/routes"
	"nutritrack-backend/services"
	"nutritrack-backend/utils"
)

func main() {
	config.LoadEnv()

	if dsn := os.Getenv("SENTRY_DSN"); dsn != "" {
		if err := utils.InitSentry(dsn); err != nil {
			log.Printf("Sentry disabled: %v", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	db, err := config.InitDB()
	if err != nil {
		log.Fatalf("Database initialization failed: %v", err)
	}

	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}
	verifier := utils.NewJWTVerifier([]byte(jwtSecret))

	// Optional infrastructure: the service degrades gracefully without it.
	var cache utils.RedisClient
	if c, err := utils.NewRedisClient(); err != nil {
		log.Printf("Redis disabled: %v", err)
	} else {
		cache = c
		defer cache.Close()
	}

	var events utils.KafkaProducer
	if p, err := utils.NewKafkaProducer(); err != nil {
		log.Printf("Kafka disabled: %v", err)
	} else {
		events = p
		defer events.Close()
	}

	var uploader *utils.S3Uploader
	if os.Getenv("S3_BUCKET") != "" {
		if u, err := utils.NewS3Uploader(context.Background()); err != nil {
			log.Printf("S3 uploads disabled: %v", err)
		} else {
			uploader = u
		}
	}

	monitoring.Init()

	authService := services.NewAuthService(db, []byte(jwtSecret))
	userService := services.NewUserService(db, uploader, events)
	consultantService := services.NewConsultantService(db, cache, events)
	goalService := services.NewGoalService(db, events)
	noteService := services.NewNoteService(db)
	trackingService := services.NewTrackingService(db)
	adminService := services.NewAdminService(db, cache)

	router := routes.SetupRouter(routes.Controllers{
		Auth:       controllers.NewAuthController(authService),
		Users:      controllers.NewUserController(userService),
		Consultant: controllers.NewConsultantController(consultantService),
		Goals:      controllers.NewGoalController(goalService),
		Notes:      controllers.NewNoteController(noteService),
		Tracking:   controllers.NewTrackingController(trackingService),
		Admin:      controllers.NewAdminController(adminService),
	}, verifier, db)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Printf("Starting server on port %s", port)
	if err := router.Run(":" + port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
