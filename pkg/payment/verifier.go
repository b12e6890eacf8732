package payment

import (
	"context"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultMaxTxAge is the default freshness window: how old a payment
	// transaction may be and still authorize an action.
	DefaultMaxTxAge = 5 * time.Minute
)

// Config holds the monetary and timing constraints a payment must satisfy.
type Config struct {
	// TokenAddress is the ERC-20 contract the transfer must be sent to.
	TokenAddress common.Address
	// TreasuryAddress is the transfer recipient that must receive payment.
	TreasuryAddress common.Address
	// PriceUnits is the exact price of one action, in smallest token units.
	PriceUnits *big.Int
	// MaxTxAge is the freshness window; zero means DefaultMaxTxAge.
	MaxTxAge time.Duration
	// TokenDecimals is the token's fixed decimal exponent, for messages only.
	TokenDecimals int
}

// Result is the outcome of a successful verification. It is computed fresh
// per request and never cached: chain state can change between requests.
type Result struct {
	// Payer is the resolved transaction sender.
	Payer common.Address
	// Amount is the decoded transfer amount in smallest token units.
	Amount *big.Int
}

// Verifier decides whether a transaction reference is an acceptable payment.
type Verifier interface {
	// VerifyPayment resolves the transaction via the chain reader and checks
	// destination, confirmation, freshness, recipient and amount. A payment
	// that fails a constraint returns *RejectionError; chain access problems
	// return other errors and leave the reference retryable.
	VerifyPayment(ctx context.Context, txHash common.Hash) (*Result, error)
}

// RejectionError is a terminal verification verdict. Its reason is
// human-readable and safe to echo to the caller.
type RejectionError struct {
	Reason string
}

func (e *RejectionError) Error() string {
	return e.Reason
}

func reject(reason string) *RejectionError {
	return &RejectionError{Reason: reason}
}

// IsRejection reports whether err is a verification verdict rather than an
// infrastructure failure.
func IsRejection(err error) (*RejectionError, bool) {
	rej, ok := err.(*RejectionError)
	return rej, ok
}
