// ================== cmd/api/main.go ==================
//
// @title Comuna El Manantial API
// @version 1.0
// @description Community services API: citizen complaints, municipal news and map
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer <token>"
package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/config"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/database"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/middleware"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/ratelimit"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/response"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/routes"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	docs "github.com/lucas24aguirre-lang/comuna-manantial/docs"
)

func main() {
	// Load config
	cfg := config.Load()

	// Configure Swagger metadata at runtime
	docs.SwaggerInfo.Title = "Comuna El Manantial API"
	docs.SwaggerInfo.Description = "Community services API: citizen complaints, municipal news and map"
	docs.SwaggerInfo.Version = "1.0"
	docs.SwaggerInfo.Host = "localhost:" + cfg.Port
	docs.SwaggerInfo.BasePath = "/api/v1"
	docs.SwaggerInfo.Schemes = []string{"http"}

	// Root context cancels the Firestore snapshot listener on shutdown
	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	// Connect to Firestore
	db, err := database.Connect(rootCtx, cfg)
	if err != nil {
		log.Fatal("Failed to connect to Firestore:", err)
	}
	defer db.Close()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.CORS(cfg.FrontendURL))

	// Per-IP rate limit across the API
	limiter := ratelimit.New(100, time.Minute)
	limiter.StartCleanup(5 * time.Minute)
	router.Use(ratelimit.Middleware(limiter))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, map[string]interface{}{
			"status": "ok",
			"time":   time.Now().Unix(),
		})
	})

	// Swagger documentation
	router.GET(
		"/swagger/*any",
		ginSwagger.WrapHandler(
			swaggerFiles.Handler,
			ginSwagger.URL("/swagger/doc.json"),
			ginSwagger.DeepLinking(true),
			ginSwagger.DefaultModelsExpandDepth(-1),
			ginSwagger.DocExpansion("none"),
			ginSwagger.PersistAuthorization(true),
		),
	)

	// Register all routes
	routes.SetupRoutes(rootCtx, router, db, cfg)

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		log.Printf("Server starting on port %s", cfg.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Failed to start server:", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exited")
}
