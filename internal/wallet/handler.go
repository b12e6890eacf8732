package wallet

import (
	"github.com/gin-gonic/gin"
	"github.com/mneelabs/agent-gateway/internal/common/middleware"
)

// BalanceResponse represents the token balance of a wallet
type BalanceResponse struct {
	Address      string `json:"address" example:"0x742d35cc6634c0532925a3b844bc454e4438f44e"`
	BalanceUnits string `json:"balance_units" example:"1500000"`
	Balance      string `json:"balance" example:"1.5"`
}

// Handler handles HTTP requests for wallet reads
type Handler struct {
	service *Service
}

// NewHandler creates a new wallet handler
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers wallet routes on the router group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/wallets/:address/balance", h.GetBalance)
}

// GetBalance godoc
// @Summary Get token balance
// @Description Read the token balance of a wallet address (display only)
// @Tags wallets
// @Produce json
// @Param address path string true "Wallet address"
// @Success 200 {object} middleware.SuccessResponse{data=BalanceResponse} "Token balance"
// @Failure 400 {object} middleware.ErrorResponse "Invalid address"
// @Failure 503 {object} middleware.ErrorResponse "Chain RPC unavailable"
// @Router /api/v1/wallets/{address}/balance [get]
func (h *Handler) GetBalance(c *gin.Context) {
	result, err := h.service.GetBalance(c.Request.Context(), c.Param("address"))
	if err != nil {
		middleware.RespondError(c, err)
		return
	}

	middleware.RespondOK(c, result)
}
