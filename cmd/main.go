package main

import (
	"fmt"
	"os"
	"time"

	"github.com/mindscribe/mindscribe-backend/internal/db"
	"github.com/mindscribe/mindscribe-backend/internal/handlers"
	"github.com/mindscribe/mindscribe-backend/internal/logger"
	"github.com/mindscribe/mindscribe-backend/internal/middleware"
	"github.com/mindscribe/mindscribe-backend/internal/repos"
	"github.com/mindscribe/mindscribe-backend/internal/server"
	"github.com/mindscribe/mindscribe-backend/internal/services"
	"github.com/mindscribe/mindscribe-backend/internal/utils"
)

func main() {
	// Logger
	logMode := os.Getenv("LOG_MODE")
	if logMode == "" {
		logMode = "development"
	}
	log, err := logger.New(logMode)
	if err != nil {
		fmt.Printf("Failed to init logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	// Env
	log.Info("Loading environment variables from main...")
	jwtSecretKey := utils.GetEnv("JWT_SECRET_KEY", "defaultsecret", log)
	accessTokenTTL := utils.GetEnvAsInt("ACCESS_TOKEN_TTL", 3600, log)
	refreshTokenTTL := utils.GetEnvAsInt("REFRESH_TOKEN_TTL", 86400, log)

	// Database
	dbService, err := db.New(log)
	if err != nil {
		log.Error("Database init failed", "error", err)
		os.Exit(1)
	}
	if err = dbService.AutoMigrateAll(); err != nil {
		log.Error("Database auto migration failed", "error", err)
		os.Exit(1)
	}
	theDB := dbService.DB()

	// Repos
	log.Info("Setting up repos from main...")
	therapistRepo := repos.NewTherapistRepo(theDB, log)
	therapistTokenRepo := repos.NewTherapistTokenRepo(theDB, log)
	patientRepo := repos.NewPatientRepo(theDB, log)
	sessionNoteRepo := repos.NewSessionNoteRepo(theDB, log)

	// Services
	log.Info("Setting up services from main...")
	scorer := services.NewEmotionScorer(log)
	authService := services.NewAuthService(theDB, log, therapistRepo, therapistTokenRepo, jwtSecretKey, time.Duration(accessTokenTTL)*time.Second, time.Duration(refreshTokenTTL)*time.Second)
	therapistService := services.NewTherapistService(log, therapistRepo)
	patientService := services.NewPatientService(theDB, log, patientRepo, sessionNoteRepo)
	noteService := services.NewNoteService(log, patientRepo, sessionNoteRepo, scorer)
	trendsService := services.NewTrendsService(log, patientRepo, sessionNoteRepo)
	exportService := services.NewExportService(log)

	// Handlers
	log.Info("Setting up handlers from main...")
	authHandler := handlers.NewAuthHandler(authService)
	therapistHandler := handlers.NewTherapistHandler(therapistService)
	patientHandler := handlers.NewPatientHandler(log, patientService)
	noteHandler := handlers.NewNoteHandler(log, noteService)
	trendsHandler := handlers.NewTrendsHandler(log, trendsService)
	exportHandler := handlers.NewExportHandler(log, patientService, noteService, exportService)

	// Middleware
	log.Info("Setting up middleware from main...")
	authMiddleware := middleware.NewAuthMiddleware(log, authService)

	// Router
	log.Info("Setting up router from main...")
	router := server.NewRouter(server.RouterConfig{
		AuthHandler:      authHandler,
		AuthMiddleware:   authMiddleware,
		TherapistHandler: therapistHandler,
		PatientHandler:   patientHandler,
		NoteHandler:      noteHandler,
		TrendsHandler:    trendsHandler,
		ExportHandler:    exportHandler,
	})

	port := utils.GetEnv("PORT", "8080", log)
	log.Info("Server listening", "port", port)
	if err := router.Run(":" + port); err != nil {
		log.Error("Server failed", "error", err)
	}
}
