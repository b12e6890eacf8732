package apikey

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/mneelabs/agent-gateway/internal/common/errors"
	"github.com/mneelabs/agent-gateway/internal/common/middleware"
)

// Handler handles HTTP requests for API key operations
type Handler struct {
	service *Service
}

// NewHandler creates a new API key handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers API key routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	keys := rg.Group("/agent/keys")
	{
		keys.POST("", h.CreateKey)
		keys.GET("", h.ListKeys)
		keys.DELETE("", h.RevokeKey)
		keys.GET("/:keyId/payments", h.ListPayments)
	}
}

// CreateKey godoc
// @Summary Create API key
// @Description Create a new agent API key bound to a wallet address. The raw key is returned exactly once.
// @Tags keys
// @Accept json
// @Produce json
// @Param request body CreateKeyRequest true "Key creation data"
// @Success 201 {object} middleware.SuccessResponse{data=CreateKeyResponse} "Key created"
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /api/v1/agent/keys [post]
func (h *Handler) CreateKey(c *gin.Context) {
	var req CreateKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	key, err := h.service.CreateKey(c.Request.Context(), &req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondCreated(c, ToCreateKeyResponse(key))
}

// ListKeys godoc
// @Summary List API keys
// @Description List all API keys owned by a wallet address, newest first
// @Tags keys
// @Produce json
// @Param wallet_address query string true "Owner wallet address"
// @Success 200 {object} middleware.SuccessResponse{data=ListKeysResponse} "Key list"
// @Failure 400 {object} middleware.ErrorResponse "Missing or invalid wallet address"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /api/v1/agent/keys [get]
func (h *Handler) ListKeys(c *gin.Context) {
	walletAddress := c.Query("wallet_address")
	if walletAddress == "" {
		middleware.RespondError(c, errors.InvalidInput("wallet_address query parameter required"))
		return
	}

	result, err := h.service.ListByWallet(c.Request.Context(), walletAddress)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}

// RevokeKey godoc
// @Summary Revoke API key
// @Description Deactivate an API key. Only the owning wallet may revoke; revoking twice is a no-op.
// @Tags keys
// @Accept json
// @Produce json
// @Param request body RevokeKeyRequest true "Key and owner wallet"
// @Success 204 "Key revoked"
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 403 {object} middleware.ErrorResponse "Key not owned by wallet"
// @Failure 404 {object} middleware.ErrorResponse "Key not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /api/v1/agent/keys [delete]
func (h *Handler) RevokeKey(c *gin.Context) {
	var req RevokeKeyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.RespondError(c, errors.InvalidInput(err.Error()))
		return
	}

	if err := h.service.Revoke(c.Request.Context(), req.ApiKey, req.WalletAddress); err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondNoContent(c)
}

// ListPayments godoc
// @Summary List payment history
// @Description List consumed payments for an API key, newest first
// @Tags keys
// @Produce json
// @Param keyId path string true "API key external ID (UUID)"
// @Param wallet_address query string true "Owner wallet address"
// @Success 200 {object} middleware.SuccessResponse{data=ListPaymentsResponse} "Payment history"
// @Failure 400 {object} middleware.ErrorResponse "Invalid input"
// @Failure 403 {object} middleware.ErrorResponse "Key not owned by wallet"
// @Failure 404 {object} middleware.ErrorResponse "Key not found"
// @Failure 500 {object} middleware.ErrorResponse "Internal server error"
// @Router /api/v1/agent/keys/{keyId}/payments [get]
func (h *Handler) ListPayments(c *gin.Context) {
	keyID := c.Param("keyId")
	if _, err := uuid.Parse(keyID); err != nil {
		middleware.RespondError(c, errors.InvalidInput("Invalid UUID format"))
		return
	}

	walletAddress := c.Query("wallet_address")
	if walletAddress == "" {
		middleware.RespondError(c, errors.InvalidInput("wallet_address query parameter required"))
		return
	}

	result, err := h.service.ListPayments(c.Request.Context(), keyID, walletAddress)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}
