package complaints

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/middleware"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/pagination"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/response"
	apperrors "github.com/lucas24aguirre-lang/comuna-manantial/pkg/errors"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// SetFieldRequest is one SET_FIELD action against the session draft
type SetFieldRequest struct {
	Field string      `json:"field" binding:"required" example:"title"`
	Value interface{} `json:"value"`
}

// ToggleStatusRequest optionally carries the status the client last saw
type ToggleStatusRequest struct {
	CurrentStatus string `json:"currentStatus" example:"Abierto"`
}

// AddCommentRequest carries the comment text
type AddCommentRequest struct {
	Text        string `json:"text" binding:"required" example:"Sigue igual después de dos semanas"`
	DisplayName string `json:"displayName" example:"Vecino"`
}

// List godoc
// @Summary List complaints
// @Description Filtered, sorted, paginated view over the live complaint list
// @Tags complaints
// @Produce json
// @Param search query string false "Search term (title or description)"
// @Param category query string false "Category filter, 'all' for no filter"
// @Param status query string false "Status filter, 'all' for no filter"
// @Param sort query string false "Sort key" Enums(fecha_desc, fecha_asc, votos)
// @Param page query int false "Page number (page size 6)"
// @Success 200 {object} response.PaginatedResponse
// @Router /complaints [get]
func (h *Handler) List(c *gin.Context) {
	query := ViewQuery{
		Search:   c.Query("search"),
		Category: c.Query("category"),
		Status:   c.Query("status"),
		Sort:     c.DefaultQuery("sort", SortNewest),
		Page:     pagination.FromQuery(c.Query("page")),
	}

	view := h.svc.Store().View(query)
	p := view.Pagination
	response.Paginated(c, view.Complaints, p.Total, p.Limit, p.Page, p.Pages)
}

// Stats godoc
// @Summary Community statistics
// @Description Total, open and resolved counts plus total votes, over the unfiltered list
// @Tags complaints
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=Stats}
// @Router /complaints/stats [get]
func (h *Handler) GetStats(c *gin.Context) {
	response.Success(c, h.svc.Store().Stats())
}

// Export godoc
// @Summary Export complaints as CSV
// @Description Full unfiltered list as a UTF-8 CSV download
// @Tags complaints
// @Produce text/csv
// @Success 200 {string} string "CSV content"
// @Router /complaints/export [get]
func (h *Handler) Export(c *gin.Context) {
	filename := ExportFilename(time.Now())
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(200)

	if err := WriteCSV(c.Writer, h.svc.Store().All()); err != nil {
		// headers already sent; nothing to do but log via gin's error list
		_ = c.Error(err)
	}
}

// GetDraft godoc
// @Summary Get the session draft
// @Tags drafts
// @Produce json
// @Param X-Client-Id header string false "Client session key"
// @Success 200 {object} response.SuccessResponse{data=Draft}
// @Router /complaints/draft [get]
func (h *Handler) GetDraft(c *gin.Context) {
	response.Success(c, h.svc.Drafts().Get(middleware.ClientKey(c)))
}

// PatchDraft godoc
// @Summary Update one draft field
// @Description Applies a SET_FIELD action; values are not validated until submission
// @Tags drafts
// @Accept json
// @Produce json
// @Param request body SetFieldRequest true "Field update"
// @Success 200 {object} response.SuccessResponse{data=Draft}
// @Failure 400 {object} response.ErrorResponse
// @Router /complaints/draft [patch]
func (h *Handler) PatchDraft(c *gin.Context) {
	var req SetFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	draft := h.svc.Drafts().Dispatch(middleware.ClientKey(c), Action{
		Type:  ActionSetField,
		Field: req.Field,
		Value: req.Value,
	})
	response.Success(c, draft)
}

// EditDraft godoc
// @Summary Seed the draft from an existing complaint
// @Description Applies a SET_FORM action for edit mode
// @Tags drafts
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.SuccessResponse{data=Draft}
// @Failure 404 {object} response.ErrorResponse
// @Router /complaints/draft/edit/{id} [post]
func (h *Handler) EditDraft(c *gin.Context) {
	id := c.Param("id")

	complaint, ok := h.svc.Store().Get(id)
	if !ok {
		response.NotFound(c, "Complaint not found")
		return
	}

	draft := h.svc.Drafts().Dispatch(middleware.ClientKey(c), Action{
		Type:      ActionSetForm,
		Complaint: &complaint,
	})
	response.Success(c, draft)
}

// ResetDraft godoc
// @Summary Discard the session draft
// @Tags drafts
// @Produce json
// @Success 200 {object} response.SuccessResponse{data=Draft}
// @Router /complaints/draft [delete]
func (h *Handler) ResetDraft(c *gin.Context) {
	draft := h.svc.Drafts().Dispatch(middleware.ClientKey(c), Action{Type: ActionReset})
	response.Success(c, draft)
}

// Submit godoc
// @Summary Submit the session draft
// @Description Creates a new complaint or updates the one being edited; resets the draft on success
// @Tags complaints
// @Produce json
// @Success 201 {object} response.SuccessResponse{data=SaveResult}
// @Failure 422 {object} response.ErrorResponse
// @Failure 500 {object} response.ErrorResponse
// @Router /complaints [post]
func (h *Handler) Submit(c *gin.Context) {
	result, err := h.svc.Save(c.Request.Context(), middleware.ClientKey(c))
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			response.ValidationFailed(c, err.Error())
			return
		}
		response.DatabaseError(c, "Failed to save complaint")
		return
	}

	if result.Created {
		response.Created(c, result)
		return
	}
	response.Success(c, result)
}

// Vote godoc
// @Summary Vote for a complaint
// @Description One vote per client per complaint per 60 seconds; denied votes make no remote call
// @Tags complaints
// @Produce json
// @Param id path string true "Complaint ID"
// @Success 200 {object} response.SuccessResponse
// @Failure 429 {object} response.ErrorResponse
// @Router /complaints/{id}/vote [post]
func (h *Handler) Vote(c *gin.Context) {
	id := c.Param("id")

	err := h.svc.Vote(c.Request.Context(), middleware.ClientKey(c), id)
	if err != nil {
		if errors.Is(err, apperrors.ErrVoteCooldown) {
			response.TooManyRequests(c, err.Error(), "VOTE_COOLDOWN")
			return
		}
		response.DatabaseError(c, "Failed to register vote")
		return
	}

	response.Success(c, gin.H{"message": "Vote registered"})
}

// ToggleStatus godoc
// @Summary Advance the complaint status
// @Description Cycles Abierto -> En Proceso -> Resuelto -> Abierto (admin only)
// @Tags complaints
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Param request body ToggleStatusRequest false "Current status as seen by the client"
// @Success 200 {object} response.SuccessResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /complaints/{id}/status [post]
func (h *Handler) ToggleStatus(c *gin.Context) {
	id := c.Param("id")

	var req ToggleStatusRequest
	_ = c.ShouldBindJSON(&req) // body optional

	newStatus, err := h.svc.ToggleStatus(c.Request.Context(), id, req.CurrentStatus)
	if err != nil {
		response.DatabaseError(c, "Failed to change status")
		return
	}

	response.Success(c, gin.H{"status": newStatus})
}

// AddComment godoc
// @Summary Comment on a complaint
// @Tags complaints
// @Accept json
// @Produce json
// @Param id path string true "Complaint ID"
// @Param request body AddCommentRequest true "Comment"
// @Success 201 {object} response.SuccessResponse{data=Comment}
// @Failure 422 {object} response.ErrorResponse
// @Router /complaints/{id}/comments [post]
func (h *Handler) AddComment(c *gin.Context) {
	id := c.Param("id")

	var req AddCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	// Authenticated staff are attributed by token identity, everyone
	// else by session key.
	uid := c.GetString("uid")
	if uid == "" {
		uid = middleware.ClientKey(c)
	}

	author := CommentAuthor{
		UID:         uid,
		DisplayName: req.DisplayName,
		Admin:       c.GetBool("isAdmin"),
	}
	if author.DisplayName == "" {
		author.DisplayName = "Anónimo"
	}

	comment, err := h.svc.AddComment(c.Request.Context(), id, req.Text, author)
	if err != nil {
		if errors.Is(err, apperrors.ErrValidation) {
			response.ValidationFailed(c, err.Error())
			return
		}
		response.DatabaseError(c, "Failed to add comment")
		return
	}

	response.Created(c, comment)
}

// Delete godoc
// @Summary Delete a complaint permanently
// @Description Requires ?confirm=true; the stored image is deleted first, record deletion proceeds even if that fails (admin only)
// @Tags complaints
// @Produce json
// @Security BearerAuth
// @Param id path string true "Complaint ID"
// @Param confirm query bool true "Explicit confirmation"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /complaints/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	id := c.Param("id")

	if c.Query("confirm") != "true" {
		response.BadRequest(c, "Deletion requires explicit confirmation (confirm=true)", "CONFIRM_REQUIRED")
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		response.DatabaseError(c, "Failed to delete complaint")
		return
	}

	response.Success(c, gin.H{"message": "Complaint deleted permanently"})
}
