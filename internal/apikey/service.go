package apikey

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/mneelabs/agent-gateway/internal/common/errors"
	"github.com/mneelabs/agent-gateway/internal/repository/db"
	"github.com/mneelabs/agent-gateway/pkg/chain"
	pkgdb "github.com/mneelabs/agent-gateway/pkg/db"
	"go.uber.org/zap"
)

const (
	mysqlErrDuplicateEntry = 1062

	// maxGenerateAttempts bounds the retry loop on the (practically
	// impossible) event of a random token collision.
	maxGenerateAttempts = 3
)

// Service handles API key business logic
type Service struct {
	txRunner *pkgdb.TxRunner
	logger   *zap.Logger
}

// NewService creates a new API key service
func NewService(txRunner *pkgdb.TxRunner, logger *zap.Logger) *Service {
	return &Service{
		txRunner: txRunner,
		logger:   logger,
	}
}

// CreateKey creates a new API key bound to a wallet address. The raw token
// is returned exactly once; the caller is responsible for storing it.
func (s *Service) CreateKey(ctx context.Context, req *CreateKeyRequest) (*db.ApiKey, error) {
	// 1. Validate and normalize owner address
	if err := chain.ValidateAddress(req.WalletAddress); err != nil {
		return nil, errors.InvalidInput("Invalid Ethereum address format")
	}
	wallet := chain.NormalizeAddress(req.WalletAddress)

	name := sql.NullString{}
	if req.Name != "" {
		name = sql.NullString{String: req.Name, Valid: true}
	}

	// 2. Generate token and insert. The unique index on api_key backs the
	// token-uniqueness invariant; a collision shows up as a duplicate key.
	for attempt := 0; attempt < maxGenerateAttempts; attempt++ {
		token, err := GenerateToken()
		if err != nil {
			s.logger.Error("failed to generate api key", zap.Error(err))
			return nil, errors.Internal("Failed to generate API key")
		}

		externalID := uuid.New().String()
		key, err := pkgdb.WithTxResult(ctx, s.txRunner, func(q *db.Queries) (*db.ApiKey, error) {
			result, err := q.CreateApiKey(ctx, db.CreateApiKeyParams{
				ExternalID:    externalID,
				ApiKey:        token,
				WalletAddress: wallet,
				Name:          name,
			})
			if err != nil {
				return nil, err
			}

			keyID, err := result.LastInsertId()
			if err != nil {
				return nil, err
			}

			k, err := q.GetApiKeyByID(ctx, uint64(keyID))
			if err != nil {
				return nil, err
			}
			return &k, nil
		})
		if err != nil {
			if isDuplicateKeyError(err) {
				s.logger.Warn("api key token collision, regenerating",
					zap.Int("attempt", attempt+1),
				)
				continue
			}
			s.logger.Error("failed to create api key", zap.Error(err))
			return nil, errors.DBError(err)
		}

		s.logger.Info("api key created",
			zap.String("key_external_id", externalID),
			zap.String("wallet_address", wallet),
		)
		return key, nil
	}

	return nil, errors.Internal("Failed to generate a unique API key")
}

// Validate resolves a token to its owning key record. Fails with
// Unauthorized when the token does not exist or has been revoked.
// Does not mutate state.
func (s *Service) Validate(ctx context.Context, token string) (*db.ApiKey, error) {
	if !IsWellFormed(token) {
		return nil, errors.Unauthorized("Invalid or revoked API key")
	}

	key, err := s.txRunner.Queries().GetApiKeyByToken(ctx, token)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.Unauthorized("Invalid or revoked API key")
		}
		s.logger.Error("failed to look up api key", zap.Error(err))
		return nil, errors.DBError(err)
	}

	if !key.IsActive {
		return nil, errors.Unauthorized("Invalid or revoked API key")
	}

	return &key, nil
}

// ListByWallet returns all keys owned by a wallet, newest first.
func (s *Service) ListByWallet(ctx context.Context, walletAddress string) (*ListKeysResponse, error) {
	if err := chain.ValidateAddress(walletAddress); err != nil {
		return nil, errors.InvalidInput("Invalid Ethereum address format")
	}

	keys, err := s.txRunner.Queries().ListApiKeysByWallet(ctx, chain.NormalizeAddress(walletAddress))
	if err != nil {
		s.logger.Error("failed to list api keys", zap.Error(err))
		return nil, errors.DBError(err)
	}

	return &ListKeysResponse{
		Keys:  ToKeySummaryList(keys),
		Total: int64(len(keys)),
	}, nil
}

// Revoke transitions a key ACTIVE -> REVOKED. Only the owning wallet may
// revoke; the comparison is case-insensitive. Revoking an already-revoked
// key is an idempotent success. There is no reverse transition.
func (s *Service) Revoke(ctx context.Context, token, requestingWallet string) error {
	var revoked *db.ApiKey
	err := s.txRunner.WithTx(ctx, func(q *db.Queries) error {
		key, err := q.GetApiKeyByToken(ctx, token)
		if err != nil {
			if err == sql.ErrNoRows {
				return errors.NotFound("API key")
			}
			s.logger.Error("failed to look up api key for revoke", zap.Error(err))
			return errors.DBError(err)
		}

		if !strings.EqualFold(key.WalletAddress, requestingWallet) {
			return errors.Forbidden("API key is not owned by this wallet")
		}

		if !key.IsActive {
			// Already revoked - idempotent success
			return nil
		}

		if _, err := q.RevokeApiKey(ctx, token); err != nil {
			s.logger.Error("failed to revoke api key", zap.Error(err))
			return errors.DBError(err)
		}
		revoked = &key
		return nil
	})
	if err != nil {
		return err
	}

	if revoked != nil {
		s.logger.Info("api key revoked",
			zap.String("key_external_id", revoked.ExternalID),
			zap.String("wallet_address", revoked.WalletAddress),
		)
	}
	return nil
}

// RecordUsage increments the usage counter and stamps last_used. Invoked
// only after a successful authorization, never on rejection.
func (s *Service) RecordUsage(ctx context.Context, token string) error {
	if _, err := s.txRunner.Queries().RecordApiKeyUsage(ctx, token); err != nil {
		s.logger.Error("failed to record api key usage", zap.Error(err))
		return errors.DBError(err)
	}
	return nil
}

// ListPayments returns the payment history of a key, newest first, with an
// ownership check so one wallet can never read another wallet's history.
func (s *Service) ListPayments(ctx context.Context, keyExternalID, requestingWallet string) (*ListPaymentsResponse, error) {
	key, err := s.txRunner.Queries().GetApiKeyByExternalID(ctx, keyExternalID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, errors.NotFound("API key")
		}
		s.logger.Error("failed to look up api key for payments", zap.Error(err))
		return nil, errors.DBError(err)
	}

	if !strings.EqualFold(key.WalletAddress, requestingWallet) {
		return nil, errors.Forbidden("API key is not owned by this wallet")
	}

	payments, err := s.txRunner.Queries().ListPaymentsByApiKeyID(ctx, sql.NullInt64{
		Int64: int64(key.ID),
		Valid: true,
	})
	if err != nil {
		s.logger.Error("failed to list payments", zap.Error(err))
		return nil, errors.DBError(err)
	}

	return &ListPaymentsResponse{
		Payments: ToPaymentSummaryList(payments),
		Total:    int64(len(payments)),
	}, nil
}

// isDuplicateKeyError checks if the error is a MySQL duplicate key error
func isDuplicateKeyError(err error) bool {
	if err == nil {
		return false
	}
	var mysqlErr *mysql.MySQLError
	if stderrors.As(err, &mysqlErr) {
		return mysqlErr.Number == mysqlErrDuplicateEntry
	}
	return strings.Contains(err.Error(), "Duplicate entry")
}
