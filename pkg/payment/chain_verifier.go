package payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mneelabs/agent-gateway/pkg/chain"
	"go.uber.org/zap"
)

// ChainVerifier implements Verifier against a chain.Reader snapshot.
type ChainVerifier struct {
	config Config
	reader chain.Reader
	clock  clock.Clock
	logger *zap.Logger
}

// Compile-time interface compliance check
var _ Verifier = (*ChainVerifier)(nil)

// NewChainVerifier creates a payment verifier. The clock is injectable so
// freshness-window behavior is testable; pass clock.New() in production.
func NewChainVerifier(config Config, reader chain.Reader, clk clock.Clock, logger *zap.Logger) *ChainVerifier {
	if config.MaxTxAge == 0 {
		config.MaxTxAge = DefaultMaxTxAge
	}
	if clk == nil {
		clk = clock.New()
	}
	return &ChainVerifier{
		config: config,
		reader: reader,
		clock:  clk,
		logger: logger,
	}
}

// VerifyPayment checks a transaction reference against the expected token
// contract, treasury recipient, price and freshness window.
func (v *ChainVerifier) VerifyPayment(ctx context.Context, txHash common.Hash) (*Result, error) {
	// 1. Resolve the transaction
	tx, err := v.reader.ResolveTransaction(ctx, txHash)
	if err != nil {
		if errors.Is(err, chain.ErrTxNotFound) {
			return nil, reject("transaction not found")
		}
		return nil, err
	}

	// 2. The transfer must be a call into the token contract
	if tx.To == nil || *tx.To != v.config.TokenAddress {
		return nil, reject("transaction not sent to token contract")
	}

	// 3. Execution must be confirmed and successful
	if !tx.Confirmed || !tx.Succeeded {
		return nil, reject("transaction failed or unconfirmed")
	}

	// 4. Freshness window: reject when age exceeds the maximum. An age
	// exactly equal to the window is still accepted.
	blockTime, err := v.reader.ResolveBlockTimestamp(ctx, tx.BlockHash)
	if err != nil {
		if errors.Is(err, chain.ErrBlockNotFound) {
			return nil, reject("transaction failed or unconfirmed")
		}
		return nil, err
	}
	age := v.clock.Now().Sub(blockTime)
	if age > v.config.MaxTxAge {
		return nil, reject(fmt.Sprintf("payment too old (%.1f minutes)", age.Minutes()))
	}

	// 5. Decode recipient and amount from raw calldata
	transfer, err := DecodeTransfer(tx.Input)
	if err != nil {
		return nil, reject("malformed transfer data")
	}

	// 6. Recipient must be the treasury. Addresses are compared as 20-byte
	// values, so hex case differences never matter.
	if transfer.Recipient != v.config.TreasuryAddress {
		return nil, reject("payment not sent to treasury address")
	}

	// 7. Exact integer comparison in smallest units; paying more is fine.
	if transfer.Amount.Cmp(v.config.PriceUnits) < 0 {
		return nil, reject(fmt.Sprintf(
			"insufficient payment amount: expected %s, got %s",
			FormatUnits(v.config.PriceUnits, v.config.TokenDecimals),
			FormatUnits(transfer.Amount, v.config.TokenDecimals),
		))
	}

	// 8. Accept with the resolved sender
	v.logger.Debug("payment verified",
		zap.String("tx_hash", txHash.Hex()),
		zap.String("payer", tx.From.Hex()),
		zap.String("amount_units", transfer.Amount.String()),
	)

	return &Result{
		Payer:  tx.From,
		Amount: transfer.Amount,
	}, nil
}
