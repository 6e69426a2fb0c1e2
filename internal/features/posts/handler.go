package posts

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/logger"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/response"
	apperrors "github.com/lucas24aguirre-lang/comuna-manantial/pkg/errors"
)

type Handler struct {
	client *Client
}

func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

// List godoc
// @Summary List news posts
// @Description Returns all published news posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {object} response.SuccessResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /posts [get]
func (h *Handler) List(c *gin.Context) {
	list, err := h.client.List(c.Request.Context())
	if err != nil {
		logger.Error("Failed to fetch posts: %v", err)
		response.InternalServerError(c, "Failed to fetch posts")
		return
	}

	response.Success(c, list)
}

// GetBySlug godoc
// @Summary Get a news post
// @Description Returns a single post by its slug
// @Tags posts
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} response.SuccessResponse
// @Failure 404 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /posts/{slug} [get]
func (h *Handler) GetBySlug(c *gin.Context) {
	slug := c.Param("slug")

	post, err := h.client.GetBySlug(c.Request.Context(), slug)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			response.NotFound(c, "Post not found")
			return
		}
		logger.Error("Failed to fetch post %s: %v", slug, err)
		response.InternalServerError(c, "Failed to fetch post")
		return
	}

	response.Success(c, post)
}
