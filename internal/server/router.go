package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/mindscribe/mindscribe-backend/internal/handlers"
	"github.com/mindscribe/mindscribe-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler      *handlers.AuthHandler
	AuthMiddleware   *middleware.AuthMiddleware
	TherapistHandler *handlers.TherapistHandler
	PatientHandler   *handlers.PatientHandler
	NoteHandler      *handlers.NoteHandler
	TrendsHandler    *handlers.TrendsHandler
	ExportHandler    *handlers.ExportHandler
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	// Cors
	router.Use(cors.New(cors.Config{
		AllowOrigins: []string{
			"http://localhost:80",
			"http://localhost:3000",
			"http://localhost:5174",
		},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	// ===============
	// || Public    ||
	// ===============
	router.GET("/healthcheck", handlers.HealthCheck)
	router.POST("/register", cfg.AuthHandler.Register)
	router.POST("/login", cfg.AuthHandler.Login)

	// ===============
	// || Protected ||
	// ===============
	protected := router.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	// Auth
	protected.POST("/refresh", cfg.AuthHandler.Refresh)
	protected.POST("/logout", cfg.AuthHandler.Logout)
	// Therapist
	protected.GET("/therapist", cfg.TherapistHandler.GetMe)
	// Patients
	protected.POST("/patients", cfg.PatientHandler.Create)
	protected.GET("/patients", cfg.PatientHandler.List)
	protected.GET("/patients/:id", cfg.PatientHandler.Get)
	protected.PUT("/patients/:id", cfg.PatientHandler.Update)
	protected.DELETE("/patients/:id", cfg.PatientHandler.Delete)
	// Session notes
	protected.POST("/patients/:id/notes", cfg.NoteHandler.Create)
	protected.GET("/patients/:id/notes", cfg.NoteHandler.List)
	// Trends
	protected.GET("/patients/:id/trends/series", cfg.TrendsHandler.TimeSeries)
	protected.GET("/patients/:id/trends/dominant", cfg.TrendsHandler.DominantCounts)
	protected.GET("/patients/:id/trends/summary", cfg.TrendsHandler.Summary)
	protected.GET("/patients/:id/trends/direction", cfg.TrendsHandler.Trend)
	// Exports
	protected.GET("/patients/:id/export/csv", cfg.ExportHandler.CSV)
	protected.GET("/patients/:id/export/report", cfg.ExportHandler.Report)

	return router
}
