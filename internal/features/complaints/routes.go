package complaints

import (
	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/middleware"
)

func RegisterRoutes(router *gin.RouterGroup, svc *Service) {
	handler := NewHandler(svc)

	complaints := router.Group("/complaints")
	{
		complaints.GET("", handler.List)
		complaints.GET("/stats", handler.GetStats)
		complaints.GET("/export", handler.Export)

		complaints.GET("/draft", handler.GetDraft)
		complaints.PATCH("/draft", handler.PatchDraft)
		complaints.POST("/draft/edit/:id", handler.EditDraft)
		complaints.DELETE("/draft", handler.ResetDraft)

		complaints.POST("", handler.Submit)
		complaints.POST("/:id/vote", handler.Vote)
		// Comments are public but staff tokens mark the author as admin
		complaints.POST("/:id/comments", middleware.OptionalAuth(), handler.AddComment)

		// Status cycling and deletion are reserved for municipal staff
		admin := complaints.Group("")
		admin.Use(middleware.AdminAuth())
		{
			admin.POST("/:id/status", handler.ToggleStatus)
			admin.DELETE("/:id", handler.Delete)
		}
	}
}
