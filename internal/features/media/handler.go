package media

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/cloudinary"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/logger"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/response"
)

type Handler struct {
	images *cloudinary.Service
}

func NewHandler(images *cloudinary.Service) *Handler {
	return &Handler{images: images}
}

// Upload godoc
// @Summary Upload an evidence image
// @Description Uploads a complaint evidence image and returns its URL and stored path
// @Tags media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file (jpg, jpeg, png, webp; max 5MB)"
// @Param complaintId formData string false "Complaint the image belongs to"
// @Success 201 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /media/upload [post]
func (h *Handler) Upload(c *gin.Context) {
	if h.images == nil {
		response.InternalServerError(c, "Image storage is not configured")
		return
	}

	header, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided", "FILE_REQUIRED")
		return
	}

	if err := cloudinary.ValidateImageFile(header); err != nil {
		response.BadRequest(c, err.Error(), "INVALID_FILE")
		return
	}

	// images attached before the complaint exists go under a temporary id
	complaintID := c.PostForm("complaintId")
	if complaintID == "" {
		complaintID = fmt.Sprintf("temp_%d", time.Now().Unix())
	}

	file, err := header.Open()
	if err != nil {
		response.InternalServerError(c, "Failed to read uploaded file")
		return
	}
	defer file.Close()

	result, err := h.images.UploadComplaintImage(c.Request.Context(), file, complaintID)
	if err != nil {
		logger.Error("Image upload failed for complaint %s: %v", complaintID, err)
		response.InternalServerError(c, "Failed to upload image")
		return
	}

	response.Created(c, result)
}
