package routes

import (
	"context"

	"cloud.google.com/go/firestore"
	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/config"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/features/auth"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/features/complaints"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/features/mapinfo"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/features/media"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/features/posts"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/cloudinary"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/logger"
)

func SetupRoutes(ctx context.Context, router *gin.Engine, db *firestore.Client, cfg *config.Config) {
	// API v1 group
	api := router.Group("/api/v1")

	// Image storage is optional; without credentials uploads return 500
	// and complaint deletion skips asset cleanup.
	images, err := cloudinary.NewService(cfg.CloudinaryCloudName, cfg.CloudinaryAPIKey, cfg.CloudinaryAPISecret, cfg.CloudinaryUploadFolder)
	if err != nil {
		logger.Warn("Image storage disabled: %v", err)
	}

	// Complaint pipeline: repository -> realtime store -> service.
	// The snapshot listener keeps the store in sync until ctx ends.
	complaintsRepo := complaints.NewRepository(db, cfg.ComplaintsCollection)
	complaintsStore := complaints.NewStore()

	var imageStore complaints.ImageStore
	if images != nil {
		imageStore = images
	}
	complaintsSvc := complaints.NewService(complaintsRepo, imageStore, complaintsStore)
	go complaintsSvc.Listen(ctx, complaintsRepo)

	postsClient := posts.NewClient(cfg)

	// Register feature routes
	complaints.RegisterRoutes(api, complaintsSvc)
	posts.RegisterRoutes(api, postsClient)
	media.RegisterRoutes(api, images)
	auth.RegisterRoutes(api, cfg)
	mapinfo.RegisterRoutes(api)
}
