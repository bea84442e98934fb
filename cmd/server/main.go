package main

import (
	"os"

	"carecircle/internal/auth"
	"carecircle/internal/database"
	"carecircle/internal/handlers"
	"carecircle/internal/reminders"
	"carecircle/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	if os.Getenv("GIN_MODE") != "release" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	// Initialize database
	if err := database.InitDB(); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}

	// Reminder dispatch engine and its in-process scheduler
	engine := reminders.NewEngine(database.GetDB(), services.NewEmailService(), services.NewSMSService())
	if os.Getenv("DISABLE_REMINDER_WORKER") != "true" {
		worker := reminders.NewWorker(engine)
		if err := worker.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start reminder worker")
		}
		defer worker.Stop()
	}

	// Initialize Gin router
	router := gin.Default()
	router.SetTrustedProxies([]string{"127.0.0.1"})

	corsConfig := cors.DefaultConfig()
	if origin := os.Getenv("CORS_ALLOW_ORIGIN"); origin != "" {
		corsConfig.AllowOrigins = []string{origin}
	} else {
		corsConfig.AllowOrigins = []string{"http://localhost:5173"}
	}
	corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
	router.Use(cors.New(corsConfig))

	// Basic routes
	router.GET("/", handlers.HomeHandler)
	router.GET("/health", handlers.HealthHandler)

	// Account creation and invite acceptance (no auth required)
	router.POST("/accounts", handlers.SignUp)
	router.GET("/team/accept", handlers.AcceptInvite)

	// Scheduler-facing job endpoints, guarded by the cron secret
	jobHandlers := handlers.NewJobHandlers(engine)
	jobs := router.Group("/jobs")
	jobs.Use(auth.CronSecretMiddleware())
	{
		jobs.POST("/appointment-reminders", jobHandlers.RunAppointmentReminders)
		jobs.POST("/refill-reminders", jobHandlers.RunMedicationRefillReminders)
		jobs.POST("/trial-reminders", jobHandlers.RunTrialReminders)
	}

	// Protected routes (auth required)
	api := router.Group("/api")
	api.Use(auth.AuthMiddleware())
	{
		api.GET("/profile", handlers.GetProfile)
		api.PATCH("/profile", handlers.UpdateProfile)

		api.POST("/subjects", handlers.CreateSubject)
		api.GET("/subjects", handlers.GetSubjects)

		api.POST("/appointments", handlers.CreateAppointment)
		api.GET("/appointments", handlers.GetAppointments)
		api.POST("/appointments/:id/cancel", handlers.CancelAppointment)

		api.POST("/medications", handlers.CreateMedication)
		api.GET("/medications", handlers.GetMedications)
		api.PATCH("/medications/:id/refills", handlers.UpdateMedicationRefills)

		api.POST("/team/invites", handlers.InviteTeamMember)
		api.GET("/team", handlers.GetTeamMembers)

		api.GET("/notifications", handlers.GetNotifications)
		api.POST("/notifications/:id/read", handlers.MarkNotificationRead)

		api.POST("/documents", handlers.UploadDocument)
		api.GET("/documents", handlers.GetDocuments)

		api.GET("/locations/search", handlers.SearchLocations)
	}

	// Start the server
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	log.Info().Str("port", port).Msg("Server starting")
	if err := router.Run(":" + port); err != nil {
		log.Fatal().Err(err).Msg("Server exited")
	}
}
