package authorize

// ============================================================================
// Request DTOs
// ============================================================================

// GenerateRequest represents the request body for a paid generation call
type GenerateRequest struct {
	Prompt         string `json:"prompt" binding:"required" example:"a cat in space"`
	PaymentTxHash  string `json:"payment_tx_hash" binding:"required,len=66" example:"0x4e3a3754410177e6937ef1f84bba68ea139e8d1a2258c5f85db9f1cd715a1bdd"`
	WalletAddress  string `json:"wallet_address" binding:"required,len=42" example:"0x742d35Cc6634C0532925a3b844Bc454e4438f44e"`
	Image1         string `json:"image1,omitempty"`
	Image2         string `json:"image2,omitempty"`
	Image1MimeType string `json:"image1_mime_type,omitempty" example:"image/png"`
	Image2MimeType string `json:"image2_mime_type,omitempty" example:"image/png"`
}

// ============================================================================
// Response DTOs
// ============================================================================

// ImagePayload is the generated image, base64-encoded
type ImagePayload struct {
	Data     string `json:"data"`
	MimeType string `json:"mime_type" example:"image/png"`
}

// TransactionInfo echoes the consumed payment back to the caller
type TransactionInfo struct {
	Hash        string `json:"hash" example:"0x4e3a3754410177e6937ef1f84bba68ea139e8d1a2258c5f85db9f1cd715a1bdd"`
	Payer       string `json:"payer" example:"0x742d35cc6634c0532925a3b844bc454e4438f44e"`
	AmountUnits string `json:"amount_units" example:"150000"`
	Amount      string `json:"amount" example:"0.15"`
}

// GenerateResponse represents a successful paid generation
type GenerateResponse struct {
	Image       ImagePayload    `json:"image"`
	Thinking    []string        `json:"thinking,omitempty"`
	Transaction TransactionInfo `json:"transaction"`
}
