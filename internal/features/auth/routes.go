package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/config"
)

func RegisterRoutes(router *gin.RouterGroup, cfg *config.Config) {
	handler := NewHandler(cfg)

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", handler.Login)
	}
}
