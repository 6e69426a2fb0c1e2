package media

import (
	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/cloudinary"
)

func RegisterRoutes(router *gin.RouterGroup, images *cloudinary.Service) {
	handler := NewHandler(images)

	media := router.Group("/media")
	{
		media.POST("/upload", handler.Upload)
	}
}
