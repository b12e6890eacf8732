package errors

import (
	"fmt"
	"net/http"
)

// Error codes
const (
	// 4xx Client Errors
	CodeInvalidInput       = "INVALID_INPUT"
	CodeNotFound           = "NOT_FOUND"
	CodeConflict           = "CONFLICT"
	CodeUnauthorized       = "UNAUTHORIZED"
	CodeForbidden          = "FORBIDDEN"
	CodePaymentAlreadyUsed = "PAYMENT_ALREADY_USED"
	CodePaymentRejected    = "PAYMENT_VERIFICATION_FAILED"

	// 5xx Server Errors
	CodeInternal     = "INTERNAL_ERROR"
	CodeDBError      = "DB_ERROR"
	CodeChainError   = "CHAIN_RPC_ERROR"
	CodeChainTimeout = "CHAIN_TIMEOUT"
	CodeUpstream     = "UPSTREAM_ERROR"
)

// AppError represents a structured application error
type AppError struct {
	Code       string         `json:"code"`
	Message    string         `json:"message"`
	StatusCode int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`
	Err        error          `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func (e *AppError) WithDetails(details map[string]any) *AppError {
	e.Details = details
	return e
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

// Error constructors

func InvalidInput(message string) *AppError {
	return &AppError{
		Code:       CodeInvalidInput,
		Message:    message,
		StatusCode: http.StatusBadRequest,
	}
}

func NotFound(resource string) *AppError {
	return &AppError{
		Code:       CodeNotFound,
		Message:    fmt.Sprintf("%s not found", resource),
		StatusCode: http.StatusNotFound,
	}
}

func Conflict(message string) *AppError {
	return &AppError{
		Code:       CodeConflict,
		Message:    message,
		StatusCode: http.StatusConflict,
	}
}

func Unauthorized(message string) *AppError {
	return &AppError{
		Code:       CodeUnauthorized,
		Message:    message,
		StatusCode: http.StatusUnauthorized,
	}
}

func Forbidden(message string) *AppError {
	return &AppError{
		Code:       CodeForbidden,
		Message:    message,
		StatusCode: http.StatusForbidden,
	}
}

// PaymentAlreadyUsed is returned when a payment transaction reference has
// already been consumed by a previous authorization.
func PaymentAlreadyUsed(txHash string) *AppError {
	return &AppError{
		Code:       CodePaymentAlreadyUsed,
		Message:    "Payment transaction already used",
		StatusCode: http.StatusConflict,
		Details: map[string]any{
			"tx_hash": txHash,
		},
	}
}

// PaymentRejected is returned when on-chain payment verification fails.
// The reason is echoed verbatim to the caller for debuggability.
func PaymentRejected(reason string) *AppError {
	return &AppError{
		Code:       CodePaymentRejected,
		Message:    fmt.Sprintf("Payment verification failed: %s", reason),
		StatusCode: http.StatusPaymentRequired,
	}
}

func Internal(message string) *AppError {
	return &AppError{
		Code:       CodeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
	}
}

func DBError(err error) *AppError {
	return &AppError{
		Code:       CodeDBError,
		Message:    "Database error occurred",
		StatusCode: http.StatusInternalServerError,
		Err:        err,
	}
}

func ChainError(message string) *AppError {
	return &AppError{
		Code:       CodeChainError,
		Message:    message,
		StatusCode: http.StatusServiceUnavailable,
	}
}

// ChainTimeout is returned when the chain RPC did not answer within the
// configured deadline. Safe to retry with the same unconsumed reference.
func ChainTimeout() *AppError {
	return &AppError{
		Code:       CodeChainTimeout,
		Message:    "Transaction verification timed out",
		StatusCode: http.StatusServiceUnavailable,
	}
}

func UpstreamError(message string) *AppError {
	return &AppError{
		Code:       CodeUpstream,
		Message:    message,
		StatusCode: http.StatusBadGateway,
	}
}
