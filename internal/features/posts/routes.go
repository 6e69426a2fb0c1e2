package posts

import "github.com/gin-gonic/gin"

func RegisterRoutes(router *gin.RouterGroup, client *Client) {
	handler := NewHandler(client)

	posts := router.Group("/posts")
	{
		posts.GET("", handler.List)
		posts.GET("/:slug", handler.GetBySlug)
	}
}
