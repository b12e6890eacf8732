package apikey

import (
	"time"

	"github.com/mneelabs/agent-gateway/internal/repository/db"
)

// ============================================================================
// Request DTOs
// ============================================================================

// CreateKeyRequest represents the request body for API key creation
type CreateKeyRequest struct {
	WalletAddress string `json:"wallet_address" binding:"required,len=42" example:"0x742d35Cc6634C0532925a3b844Bc454e4438f44e"`
	Name          string `json:"name,omitempty" binding:"omitempty,max=50" example:"My Agent"`
}

// RevokeKeyRequest represents the request body for API key revocation
type RevokeKeyRequest struct {
	ApiKey        string `json:"api_key" binding:"required" example:"mnee_agent_0123456789abcdef0123456789abcdef"`
	WalletAddress string `json:"wallet_address" binding:"required,len=42" example:"0x742d35Cc6634C0532925a3b844Bc454e4438f44e"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// CreateKeyResponse carries the raw token; it is shown exactly once.
type CreateKeyResponse struct {
	ID            string    `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ApiKey        string    `json:"api_key" example:"mnee_agent_0123456789abcdef0123456789abcdef"`
	WalletAddress string    `json:"wallet_address" example:"0x742d35cc6634c0532925a3b844bc454e4438f44e"`
	Name          string    `json:"name,omitempty" example:"My Agent"`
	CreatedAt     time.Time `json:"created_at"`
}

// KeySummary represents an API key in list responses. The token value is
// included because the original dashboard renders it for copy/paste; it is
// only ever returned to its owning wallet.
type KeySummary struct {
	ID         string     `json:"id" example:"550e8400-e29b-41d4-a716-446655440000"`
	ApiKey     string     `json:"api_key" example:"mnee_agent_0123456789abcdef0123456789abcdef"`
	Name       string     `json:"name,omitempty" example:"My Agent"`
	IsActive   bool       `json:"is_active" example:"true"`
	UsageCount uint64     `json:"usage_count" example:"3"`
	LastUsed   *time.Time `json:"last_used,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}

// ListKeysResponse represents the key list response
type ListKeysResponse struct {
	Keys  []KeySummary `json:"keys"`
	Total int64        `json:"total"`
}

// PaymentSummary represents a consumed payment in history responses
type PaymentSummary struct {
	TxHash      string    `json:"tx_hash" example:"0x4e3a3754410177e6937ef1f84bba68ea139e8d1a2258c5f85db9f1cd715a1bdd"`
	AmountUnits string    `json:"amount_units" example:"150000"`
	Prompt      string    `json:"prompt" example:"a cat in space"`
	Status      string    `json:"status" example:"COMPLETED"`
	CreatedAt   time.Time `json:"created_at"`
}

// ListPaymentsResponse represents the payment history response
type ListPaymentsResponse struct {
	Payments []PaymentSummary `json:"payments"`
	Total    int64            `json:"total"`
}

// ============================================================================
// Converters
// ============================================================================

// ToCreateKeyResponse converts db.ApiKey to CreateKeyResponse
func ToCreateKeyResponse(key *db.ApiKey) *CreateKeyResponse {
	if key == nil {
		return nil
	}

	response := &CreateKeyResponse{
		ID:            key.ExternalID,
		ApiKey:        key.ApiKey,
		WalletAddress: key.WalletAddress,
		CreatedAt:     key.CreatedAt,
	}
	if key.Name.Valid {
		response.Name = key.Name.String
	}
	return response
}

// ToKeySummary converts db.ApiKey to KeySummary
func ToKeySummary(key *db.ApiKey) *KeySummary {
	if key == nil {
		return nil
	}

	summary := &KeySummary{
		ID:         key.ExternalID,
		ApiKey:     key.ApiKey,
		IsActive:   key.IsActive,
		UsageCount: key.UsageCount,
		CreatedAt:  key.CreatedAt,
	}
	if key.Name.Valid {
		summary.Name = key.Name.String
	}
	if key.LastUsed.Valid {
		lastUsed := key.LastUsed.Time
		summary.LastUsed = &lastUsed
	}
	return summary
}

// ToKeySummaryList converts []db.ApiKey to []KeySummary
func ToKeySummaryList(keys []db.ApiKey) []KeySummary {
	summaries := make([]KeySummary, 0, len(keys))
	for _, key := range keys {
		summaries = append(summaries, *ToKeySummary(&key))
	}
	return summaries
}

// ToPaymentSummaryList converts []db.Payment to []PaymentSummary
func ToPaymentSummaryList(payments []db.Payment) []PaymentSummary {
	summaries := make([]PaymentSummary, 0, len(payments))
	for _, p := range payments {
		summaries = append(summaries, PaymentSummary{
			TxHash:      p.TxHash,
			AmountUnits: p.AmountUnits,
			Prompt:      p.Prompt,
			Status:      string(p.Status),
			CreatedAt:   p.CreatedAt,
		})
	}
	return summaries
}
