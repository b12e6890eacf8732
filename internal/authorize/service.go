package authorize

import (
	"context"
	stderrors "errors"
	"encoding/hex"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/mneelabs/agent-gateway/internal/common/errors"
	"github.com/mneelabs/agent-gateway/internal/generation"
	"github.com/mneelabs/agent-gateway/internal/ledger"
	"github.com/mneelabs/agent-gateway/internal/repository/db"
	"github.com/mneelabs/agent-gateway/pkg/payment"
	"go.uber.org/zap"
)

// CredentialStore is the slice of the API key service the gate needs.
type CredentialStore interface {
	// Validate resolves a token to its owning key; Unauthorized when the
	// token is unknown or revoked.
	Validate(ctx context.Context, token string) (*db.ApiKey, error)
	// RecordUsage is invoked only after a successful authorization.
	RecordUsage(ctx context.Context, token string) error
}

// Request is one authorization attempt: who claims to have paid, with what
// credential, for which action.
type Request struct {
	Token          string
	WalletAddress  string
	PaymentTxHash  string
	Prompt         string
	Image1         string
	Image2         string
	Image1MimeType string
	Image2MimeType string
}

// Authorization is the proof that one paid action may now be performed.
type Authorization struct {
	KeyID         uint64
	KeyExternalID string
	Payer         string
	AmountUnits   *big.Int
	TxHash        string
}

// Service is the authorization gate: it orchestrates credential validation,
// replay checking, on-chain payment verification and the atomic consume.
// It holds no state between requests; correctness under concurrency rests
// entirely on the ledger's atomic consume. Verification against the chain
// is slow and holds no store locks while in flight.
type Service struct {
	creds     CredentialStore
	ledger    ledger.Store
	verifier  payment.Verifier
	generator generation.Generator
	decimals  int
	logger    *zap.Logger
}

// NewService creates the authorization gate service.
func NewService(
	creds CredentialStore,
	ledgerStore ledger.Store,
	verifier payment.Verifier,
	generator generation.Generator,
	tokenDecimals int,
	logger *zap.Logger,
) *Service {
	return &Service{
		creds:     creds,
		ledger:    ledgerStore,
		verifier:  verifier,
		generator: generator,
		decimals:  tokenDecimals,
		logger:    logger,
	}
}

// Authorize runs one pass of the gate. Every rejection is terminal for this
// request; the caller must present a fresh payment reference to retry a
// consumed one. A rejected request leaves no partial state: no usage counter
// bump, no ledger entry.
func (s *Service) Authorize(ctx context.Context, req *Request) (*Authorization, error) {
	// 1. Credential check
	key, err := s.creds.Validate(ctx, req.Token)
	if err != nil {
		return nil, err
	}

	// 2. Identity binding: the claimed wallet must own the credential
	if !strings.EqualFold(key.WalletAddress, req.WalletAddress) {
		return nil, errors.Forbidden("Wallet address does not match API key owner")
	}

	txHash, ok := parseTxHash(req.PaymentTxHash)
	if !ok {
		return nil, errors.InvalidInput("Invalid transaction hash format")
	}

	// 3. Advisory replay fast path; the atomic consume below is the
	// authoritative guard.
	consumed, err := s.ledger.WasConsumed(ctx, req.PaymentTxHash)
	if err != nil {
		s.logger.Error("replay fast-path check failed", zap.Error(err))
		return nil, errors.DBError(err)
	}
	if consumed {
		return nil, errors.PaymentAlreadyUsed(req.PaymentTxHash)
	}

	// 4. On-chain payment verification
	result, err := s.verifier.VerifyPayment(ctx, txHash)
	if err != nil {
		if rej, ok := payment.IsRejection(err); ok {
			s.logger.Warn("payment rejected",
				zap.String("tx_hash", req.PaymentTxHash),
				zap.String("reason", rej.Reason),
			)
			return nil, errors.PaymentRejected(rej.Reason)
		}
		if stderrors.Is(err, context.DeadlineExceeded) {
			s.logger.Warn("chain read timed out", zap.String("tx_hash", req.PaymentTxHash))
			return nil, errors.ChainTimeout()
		}
		s.logger.Error("payment verification failed", zap.Error(err))
		return nil, errors.ChainError("Failed to verify payment transaction")
	}

	// 5. Payer binding: the payment must come from the claimed wallet
	payer := strings.ToLower(result.Payer.Hex())
	if !strings.EqualFold(payer, req.WalletAddress) {
		return nil, errors.Forbidden("Payment not sent from claimed wallet address")
	}

	// 6. Atomic consume. Losing the race against a concurrent identical
	// request surfaces exactly like a replay.
	err = s.ledger.TryConsume(ctx, ledger.ConsumeParams{
		TxHash:        req.PaymentTxHash,
		ApiKeyID:      key.ID,
		WalletAddress: payer,
		AmountUnits:   result.Amount,
		Prompt:        req.Prompt,
	})
	if err != nil {
		if stderrors.Is(err, ledger.ErrAlreadyConsumed) {
			return nil, errors.PaymentAlreadyUsed(req.PaymentTxHash)
		}
		return nil, errors.DBError(err)
	}

	// The authorization is final from here on. A usage-recording failure is
	// logged, not surfaced: failing the request now would strand a payment
	// that has already been consumed.
	if err := s.creds.RecordUsage(ctx, req.Token); err != nil {
		s.logger.Error("failed to record api key usage after authorization",
			zap.String("key_external_id", key.ExternalID),
			zap.Error(err),
		)
	}

	s.logger.Info("authorization granted",
		zap.String("key_external_id", key.ExternalID),
		zap.String("tx_hash", req.PaymentTxHash),
		zap.String("payer", payer),
	)

	return &Authorization{
		KeyID:         key.ID,
		KeyExternalID: key.ExternalID,
		Payer:         payer,
		AmountUnits:   result.Amount,
		TxHash:        req.PaymentTxHash,
	}, nil
}

// GenerateImage authorizes the request, then performs the paid action
// exactly once. The consumed payment is held in a reserved state while the
// downstream call is in flight: success completes it for good, failure
// releases it so the same reference can pay for one retry instead of being
// an unrefunded loss.
func (s *Service) GenerateImage(ctx context.Context, req *Request) (*GenerateResponse, error) {
	auth, err := s.Authorize(ctx, req)
	if err != nil {
		return nil, err
	}

	result, err := s.generator.Generate(ctx, generation.Params{
		Prompt:         req.Prompt,
		Image1:         req.Image1,
		Image2:         req.Image2,
		Image1MimeType: req.Image1MimeType,
		Image2MimeType: req.Image2MimeType,
	})
	if err != nil {
		s.logger.Error("image generation failed after payment consume",
			zap.String("tx_hash", auth.TxHash),
			zap.Error(err),
		)
		if relErr := s.ledger.Release(ctx, auth.TxHash); relErr != nil {
			s.logger.Error("failed to release payment after generation failure",
				zap.String("tx_hash", auth.TxHash),
				zap.Error(relErr),
			)
		}
		return nil, errors.UpstreamError("Image generation failed; the payment was released and may be retried")
	}

	if err := s.ledger.Complete(ctx, auth.TxHash); err != nil {
		// The image was produced; completion bookkeeping must not fail the
		// request. The row stays RESERVED, which still counts as consumed.
		s.logger.Error("failed to complete payment",
			zap.String("tx_hash", auth.TxHash),
			zap.Error(err),
		)
	}

	return &GenerateResponse{
		Image: ImagePayload{
			Data:     result.ImageData,
			MimeType: result.ImageMimeType,
		},
		Thinking: result.Thinking,
		Transaction: TransactionInfo{
			Hash:        auth.TxHash,
			Payer:       auth.Payer,
			AmountUnits: auth.AmountUnits.String(),
			Amount:      payment.FormatUnits(auth.AmountUnits, s.decimals),
		},
	}, nil
}

// parseTxHash validates the 0x-prefixed 32-byte hex form of a transaction
// reference.
func parseTxHash(s string) (common.Hash, bool) {
	if len(s) != 66 || !strings.HasPrefix(s, "0x") {
		return common.Hash{}, false
	}
	b, err := hex.DecodeString(s[2:])
	if err != nil {
		return common.Hash{}, false
	}
	return common.BytesToHash(b), true
}
