package ledger

import (
	"context"
	"database/sql"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/mneelabs/agent-gateway/internal/repository/db"
	pkgdb "github.com/mneelabs/agent-gateway/pkg/db"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	mysqlErrDuplicateEntry = 1062

	// consumedKeyPrefix is the Redis key prefix for the advisory
	// consumed-reference markers.
	consumedKeyPrefix = "payment:consumed"

	// consumedMarkerTTL bounds marker lifetime; after expiry the fast path
	// falls back to the database, which is always authoritative.
	consumedMarkerTTL = 24 * time.Hour
)

// MySQLStore implements Store on the payments table. Atomicity rests on the
// unique index over tx_hash: the INSERT either lands or reports a duplicate,
// with no check-then-insert window. Redis only accelerates WasConsumed.
type MySQLStore struct {
	txRunner *pkgdb.TxRunner
	rdb      *redis.Client
	logger   *zap.Logger
}

// Compile-time interface compliance check
var _ Store = (*MySQLStore)(nil)

// NewMySQLStore creates a ledger store. rdb may be nil; the fast path then
// always reads the database.
func NewMySQLStore(txRunner *pkgdb.TxRunner, rdb *redis.Client, logger *zap.Logger) *MySQLStore {
	return &MySQLStore{
		txRunner: txRunner,
		rdb:      rdb,
		logger:   logger,
	}
}

func consumedKey(txHash string) string {
	return fmt.Sprintf("%s:%s", consumedKeyPrefix, strings.ToLower(txHash))
}

// TryConsume spends a payment reference. The insert is the atomic act of
// spending; a duplicate-key error means someone got there first. A row left
// RELEASED by a failed downstream action can be reclaimed, again atomically,
// by a single conditional update.
func (s *MySQLStore) TryConsume(ctx context.Context, params ConsumeParams) error {
	insertParams := db.CreatePaymentParams{
		TxHash:        params.TxHash,
		ApiKeyID:      sql.NullInt64{Int64: int64(params.ApiKeyID), Valid: true},
		WalletAddress: params.WalletAddress,
		AmountUnits:   params.AmountUnits.String(),
		Prompt:        params.Prompt,
	}

	_, err := s.txRunner.Queries().CreatePayment(ctx, insertParams)
	if err == nil {
		s.markConsumed(ctx, params.TxHash)
		s.logger.Info("payment consumed",
			zap.String("tx_hash", params.TxHash),
			zap.String("wallet_address", params.WalletAddress),
			zap.String("amount_units", params.AmountUnits.String()),
		)
		return nil
	}

	if !isDuplicateKeyError(err) {
		s.logger.Error("failed to insert payment", zap.Error(err))
		return err
	}

	// The reference exists. If its previous attempt was released after a
	// failed paid action, exactly one caller may claim it again.
	result, err := s.txRunner.Queries().ReclaimReleasedPayment(ctx, db.ReclaimReleasedPaymentParams{
		ApiKeyID:      insertParams.ApiKeyID,
		WalletAddress: insertParams.WalletAddress,
		AmountUnits:   insertParams.AmountUnits,
		Prompt:        insertParams.Prompt,
		TxHash:        params.TxHash,
	})
	if err != nil {
		s.logger.Error("failed to reclaim released payment", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrAlreadyConsumed
	}

	s.markConsumed(ctx, params.TxHash)
	s.logger.Info("released payment reclaimed",
		zap.String("tx_hash", params.TxHash),
		zap.String("wallet_address", params.WalletAddress),
	)
	return nil
}

// WasConsumed checks the Redis marker first, then the database. RELEASED
// rows do not count as consumed: their reference is retryable.
func (s *MySQLStore) WasConsumed(ctx context.Context, txHash string) (bool, error) {
	if s.rdb != nil {
		exists, err := s.rdb.Exists(ctx, consumedKey(txHash)).Result()
		if err != nil {
			// Cache trouble never blocks the request; fall through to the DB.
			s.logger.Warn("consumed-marker lookup failed", zap.Error(err))
		} else if exists > 0 {
			return true, nil
		}
	}

	payment, err := s.txRunner.Queries().GetPaymentByTxHash(ctx, txHash)
	if err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, err
	}

	return payment.Status != db.PaymentsStatusRELEASED, nil
}

// Complete marks a reserved payment as consumed for good.
func (s *MySQLStore) Complete(ctx context.Context, txHash string) error {
	result, err := s.txRunner.Queries().CompletePayment(ctx, txHash)
	if err != nil {
		s.logger.Error("failed to complete payment", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotReserved
	}

	s.logger.Info("payment completed", zap.String("tx_hash", txHash))
	return nil
}

// Release returns a reserved payment to a retryable state after the
// downstream paid action failed.
func (s *MySQLStore) Release(ctx context.Context, txHash string) error {
	result, err := s.txRunner.Queries().ReleasePayment(ctx, txHash)
	if err != nil {
		s.logger.Error("failed to release payment", zap.Error(err))
		return err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotReserved
	}

	s.clearConsumed(ctx, txHash)
	s.logger.Warn("payment released for retry", zap.String("tx_hash", txHash))
	return nil
}

// markConsumed sets the advisory Redis marker. Failures are logged only;
// the database row is what matters.
func (s *MySQLStore) markConsumed(ctx context.Context, txHash string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Set(ctx, consumedKey(txHash), "consumed", consumedMarkerTTL).Err(); err != nil {
		s.logger.Warn("failed to set consumed marker",
			zap.String("tx_hash", txHash),
			zap.Error(err),
		)
	}
}

// clearConsumed drops the marker so a released reference is not rejected by
// the fast path on retry.
func (s *MySQLStore) clearConsumed(ctx context.Context, txHash string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, consumedKey(txHash)).Err(); err != nil {
		s.logger.Warn("failed to clear consumed marker",
			zap.String("tx_hash", txHash),
			zap.Error(err),
		)
	}
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
