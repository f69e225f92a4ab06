// @title           Coopuertos Carnet Backend API
// @version         1.0.0
// @description     Backend API for the Coopuertos transportation cooperative. Manages drivers, card templates and batch ID-card (carnet) generation with QR codes, with polling-based progress tracking and zip archive download.

// @contact.name   API Support
// @contact.email  soporte@coopuertos.example

// @license.name  MIT
// @license.url   https://opensource.org/licenses/MIT

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

package main

import (
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"coopuertos-backend/docs"
	"coopuertos-backend/internal/carnet"
	"coopuertos-backend/internal/config"
	"coopuertos-backend/internal/database"
	"coopuertos-backend/internal/handlers"
	"coopuertos-backend/internal/middleware"
	"coopuertos-backend/internal/render"
	"coopuertos-backend/internal/storage"
)

func main() {
	// Load .env if present; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Update Swagger docs with dynamic base URL
	if cfg.BaseURL != "" {
		if baseURL, err := url.Parse(cfg.BaseURL); err == nil {
			docs.SwaggerInfo.Host = baseURL.Host
			if baseURL.Scheme == "https" {
				docs.SwaggerInfo.Schemes = []string{"https", "http"}
			} else {
				docs.SwaggerInfo.Schemes = []string{"http", "https"}
			}
		}
	}

	dbClient, err := database.NewDatabaseClient(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to initialize database client: %v", err)
	}
	defer dbClient.Close()

	migrator, err := database.NewMigrator(cfg.DatabaseURL)
	if err != nil {
		log.Printf("Warning: failed to initialize migrator: %v", err)
	} else {
		defer migrator.Close()
		if err := migrator.Run(); err != nil {
			log.Printf("Warning: migration failed: %v", err)
		} else {
			log.Println("Migrations completed successfully")
		}
	}

	// A batch in flight when the previous process died cannot be resumed;
	// close its session so pollers see a terminal state instead of a stuck
	// "running".
	if n, err := dbClient.FailInterruptedSessions("interrumpido por reinicio del servidor"); err != nil {
		log.Printf("Warning: failed to close interrupted sessions: %v", err)
	} else if n > 0 {
		log.Printf("Marked %d interrupted session(s) as failed", n)
	}

	fonts, err := render.LoadFontRegistry(cfg.FontsDir)
	if err != nil {
		log.Fatalf("Failed to load fonts: %v", err)
	}

	store, err := storage.NewStore(cfg.StorageDir)
	if err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	renderer := render.NewRenderer(fonts, cfg.LookupBaseURL)
	generator := carnet.NewGenerator(dbClient, store, renderer, cfg.RenderWorkers)

	healthHandler := handlers.NewHealthHandler(dbClient)
	carnetsHandler := handlers.NewCarnetsHandler(dbClient, generator)
	plantillasHandler := handlers.NewPlantillasHandler(dbClient)
	conductoresHandler := handlers.NewConductoresHandler(dbClient)
	fuentesHandler := handlers.NewFuentesHandler(fonts)
	publicoHandler := handlers.NewPublicoHandler(dbClient)

	router := gin.Default()

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (no auth)
	router.GET("/health", healthHandler.Check)

	// Public QR lookup (no auth)
	router.GET("/v/:conductor_id", publicoHandler.Ver)

	// API routes
	api := router.Group("/api/v1")
	api.Use(middleware.AuthMiddleware(cfg))

	// Carnet generation
	api.POST("/carnets/generar", middleware.RequirePermission("carnets.generar"), carnetsHandler.Generar)
	api.GET("/carnets/progreso/:session_id", carnetsHandler.Progreso)
	api.GET("/carnets/descargar/:session_id", carnetsHandler.Descargar)

	// Templates
	api.GET("/plantillas", plantillasHandler.List)
	api.POST("/plantillas", middleware.RequirePermission("plantillas.crear"), plantillasHandler.Create)
	api.PUT("/plantillas/:id/activar", middleware.RequirePermission("plantillas.crear"), plantillasHandler.Activar)

	// Drivers
	api.GET("/conductores", conductoresHandler.List)
	api.POST("/conductores/:id/foto", conductoresHandler.SubirFoto)

	// Fonts
	api.GET("/fuentes", fuentesHandler.List)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
