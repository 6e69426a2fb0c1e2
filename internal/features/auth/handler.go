package auth

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/lucas24aguirre-lang/comuna-manantial/internal/config"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/logger"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/response"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/token"
	"github.com/lucas24aguirre-lang/comuna-manantial/internal/pkg/validator"
)

type Handler struct {
	cfg *config.Config
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{cfg: cfg}
}

// Login godoc
// @Summary Municipal staff login
// @Description Exchanges admin credentials for a session token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} response.SuccessResponse
// @Failure 400 {object} response.ErrorResponse
// @Failure 401 {object} response.ErrorResponse
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindJSONError(c, err)
		return
	}

	if !validator.IsValidEmail(req.Email) {
		response.BadRequest(c, "Invalid email format", "INVALID_EMAIL")
		return
	}

	if h.cfg.AdminPassword == "" || !credentialsMatch(h.cfg, req.Email, req.Password) {
		logger.Warn("Failed admin login attempt for %s", req.Email)
		response.AuthenticationError(c, "Invalid email or password")
		return
	}

	signed, err := token.GenerateToken("admin", req.Email, true)
	if err != nil {
		logger.Error("Failed to sign session token: %v", err)
		response.InternalServerError(c, "Failed to create session")
		return
	}

	response.Success(c, LoginResponse{
		Token: signed,
		Email: req.Email,
		Admin: true,
	})
}

func credentialsMatch(cfg *config.Config, email, password string) bool {
	emailOK := subtle.ConstantTimeCompare([]byte(email), []byte(cfg.AdminEmail)) == 1
	passwordOK := subtle.ConstantTimeCompare([]byte(password), []byte(cfg.AdminPassword)) == 1
	return emailOK && passwordOK
}
