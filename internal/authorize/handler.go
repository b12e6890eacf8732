package authorize

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mneelabs/agent-gateway/internal/common/errors"
	"github.com/mneelabs/agent-gateway/internal/common/middleware"
)

const bearerPrefix = "Bearer "

// Handler handles HTTP requests for paid generation
type Handler struct {
	service *Service
}

// NewHandler creates a new authorization handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers generation routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/agent/generate", h.Generate)
}

// Generate godoc
// @Summary Generate an image for a verified payment
// @Description Authorize the caller via API key and on-chain payment, then perform one paid generation. Each payment transaction can be used exactly once.
// @Tags generate
// @Accept json
// @Produce json
// @Param Authorization header string true "Bearer API key"
// @Param request body GenerateRequest true "Prompt and payment reference"
// @Success 200 {object} middleware.SuccessResponse{data=GenerateResponse} "Generated image"
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 401 {object} middleware.ErrorResponse "Invalid or revoked API key"
// @Failure 402 {object} middleware.ErrorResponse "Payment verification failed"
// @Failure 403 {object} middleware.ErrorResponse "Identity binding failed"
// @Failure 409 {object} middleware.ErrorResponse "Payment already used"
// @Failure 502 {object} middleware.ErrorResponse "Generation upstream failed"
// @Failure 503 {object} middleware.ErrorResponse "Chain RPC unavailable"
// @Router /api/v1/agent/generate [post]
func (h *Handler) Generate(c *gin.Context) {
	token, err := extractBearerToken(c)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	response, err := h.service.GenerateImage(c.Request.Context(), &Request{
		Token:          token,
		WalletAddress:  req.WalletAddress,
		PaymentTxHash:  req.PaymentTxHash,
		Prompt:         req.Prompt,
		Image1:         req.Image1,
		Image2:         req.Image2,
		Image1MimeType: req.Image1MimeType,
		Image2MimeType: req.Image2MimeType,
	})
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, response)
}

// extractBearerToken pulls the API key out of the Authorization header.
func extractBearerToken(c *gin.Context) (string, error) {
	header := c.GetHeader("Authorization")
	if header == "" || !strings.HasPrefix(header, bearerPrefix) {
		return "", errors.Unauthorized("Missing or invalid Authorization header")
	}
	token := strings.TrimPrefix(header, bearerPrefix)
	if token == "" {
		return "", errors.Unauthorized("Missing or invalid Authorization header")
	}
	return token, nil
}
