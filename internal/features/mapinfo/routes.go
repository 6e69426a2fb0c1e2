package mapinfo

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup) {
	handler := NewHandler()

	mapGroup := router.Group("/map")
	{
		mapGroup.GET("/config", handler.GetConfig)
	}
}
