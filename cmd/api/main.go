package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/pgf/backend/internal/config"
	"github.com/pgf/backend/internal/handlers"
	"github.com/pgf/backend/internal/middleware"
	"github.com/pgf/backend/internal/models"
	"github.com/pgf/backend/internal/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	// Initialize configuration
	cfg := config.New()

	// Initialize database
	db, err := models.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Run migrations
	if err := models.Migrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Initialize Redis
	redisClient := models.InitRedis(cfg)
	defer redisClient.Close()

	// Initialize services
	imageService := services.NewImageService()
	storageService := services.NewStorageService(cfg)
	uploadService := services.NewUploadService(cfg, imageService, storageService)
	artworkService := services.NewArtworkService(db)
	categoryService := services.NewCategoryService(db)
	exhibitionService := services.NewExhibitionService(db)
	archiveService := services.NewArchiveService(db)
	contactService := services.NewContactService(db)
	adminService := services.NewAdminService(cfg)

	// Setup Gin router
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg))
	router.Use(middleware.RateLimiter(redisClient, cfg))
	router.Use(middleware.UploadRateLimit(redisClient, cfg))

	// Initialize handlers
	artworkHandler := handlers.NewArtworkHandler(artworkService, uploadService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	exhibitionHandler := handlers.NewExhibitionHandler(exhibitionService)
	archiveHandler := handlers.NewArchiveHandler(archiveService)
	contactHandler := handlers.NewContactHandler(contactService)
	uploadHandler := handlers.NewUploadHandler(uploadService, exhibitionService)
	adminHandler := handlers.NewAdminHandler(adminService)

	// Health check outside API group
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	// Setup routes
	api := router.Group("/api/v1")
	{
		// Catch-all OPTIONS handler for CORS preflight requests
		api.OPTIONS("/*path", func(c *gin.Context) {
			c.Status(http.StatusNoContent)
		})

		// Public routes
		api.GET("/artworks", artworkHandler.GetArtworks)
		api.GET("/artworks/available", artworkHandler.GetAvailableArtworks)
		api.GET("/artworks/:id", artworkHandler.GetArtwork)

		api.GET("/categories", categoryHandler.GetCategories)
		api.GET("/categories/:id", categoryHandler.GetCategory)
		api.GET("/categories/:id/artworks", artworkHandler.GetArtworksByCategoryID)
		api.GET("/categories/slug/:slug", categoryHandler.GetCategoryBySlug)
		api.GET("/categories/slug/:slug/artworks", artworkHandler.GetArtworksByCategory)

		api.GET("/exhibitions", exhibitionHandler.GetExhibitions)
		api.GET("/exhibitions/upcoming", exhibitionHandler.GetUpcomingExhibitions)
		api.GET("/exhibitions/ongoing", exhibitionHandler.GetOngoingExhibitions)
		api.GET("/exhibitions/past", exhibitionHandler.GetPastExhibitions)
		api.GET("/exhibitions/:id", exhibitionHandler.GetExhibition)

		api.GET("/archives", archiveHandler.GetArchives)
		api.GET("/archives/:id", archiveHandler.GetArchive)

		api.POST("/contact", contactHandler.CreateMessage)

		// Admin login
		api.POST("/admin/login", adminHandler.Login)

		// Admin routes
		admin := api.Group("/admin")
		admin.Use(middleware.AdminAuth(cfg))
		{
			// Artwork management
			admin.POST("/artworks", artworkHandler.CreateArtwork)
			admin.POST("/artworks/with-images", artworkHandler.CreateArtworkWithImages)
			admin.PUT("/artworks/:id", artworkHandler.UpdateArtwork)
			admin.PUT("/artworks/:id/categories", artworkHandler.SetArtworkCategories)
			admin.DELETE("/artworks/:id", artworkHandler.DeleteArtwork)

			// Category management
			admin.POST("/categories", categoryHandler.CreateCategory)
			admin.PUT("/categories/:id", categoryHandler.UpdateCategory)
			admin.DELETE("/categories/:id", categoryHandler.DeleteCategory)

			// Exhibition management
			admin.POST("/exhibitions", exhibitionHandler.CreateExhibition)
			admin.PUT("/exhibitions/:id", exhibitionHandler.UpdateExhibition)
			admin.DELETE("/exhibitions/:id", exhibitionHandler.DeleteExhibition)
			admin.POST("/exhibitions/:id/images", uploadHandler.UploadExhibitionImage)
			admin.POST("/exhibitions/:id/videos", uploadHandler.UploadExhibitionVideo)

			// Archive management
			admin.POST("/archives", archiveHandler.CreateArchive)
			admin.PUT("/archives/:id", archiveHandler.UpdateArchive)
			admin.DELETE("/archives/:id", archiveHandler.DeleteArchive)

			// Contact messages
			admin.GET("/messages", contactHandler.GetMessages)
			admin.GET("/messages/unread", contactHandler.GetUnreadMessages)
			admin.GET("/messages/unread/count", contactHandler.GetUnreadCount)
			admin.GET("/messages/:id", contactHandler.GetMessage)
			admin.PUT("/messages/:id/read", contactHandler.MarkMessageRead)
			admin.PUT("/messages/:id/status", contactHandler.UpdateMessageStatus)
			admin.DELETE("/messages/:id", contactHandler.DeleteMessage)

			// Uploads
			admin.POST("/upload/image", uploadHandler.UploadImage)
			admin.POST("/upload/image-with-thumbnail", uploadHandler.UploadImageWithThumbnail)
			admin.DELETE("/images", uploadHandler.DeleteImage)
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}
