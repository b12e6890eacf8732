package ledger

import (
	"context"
	"errors"
	"math/big"
)

// ConsumeParams describes the spend of one payment reference.
type ConsumeParams struct {
	TxHash        string
	ApiKeyID      uint64
	WalletAddress string
	AmountUnits   *big.Int
	Prompt        string
}

// Store is the durable, append-only record of consumed payment references.
// TryConsume is the sole authoritative replay guard: it must be atomic, so
// that of N concurrent calls with the same reference exactly one succeeds.
// Implementations must not rely on in-process locks; the service runs as
// multiple processes.
type Store interface {
	// TryConsume atomically spends a payment reference. Returns
	// ErrAlreadyConsumed when the reference has been spent before.
	// A reference whose previous downstream action ended in Release may be
	// claimed again by exactly one caller.
	TryConsume(ctx context.Context, params ConsumeParams) error

	// WasConsumed is a read-only fast path used to short-circuit before
	// expensive on-chain verification. Advisory only; TryConsume remains
	// the authoritative guard.
	WasConsumed(ctx context.Context, txHash string) (bool, error)

	// Complete marks a reserved reference as fully consumed after the
	// downstream paid action succeeded.
	Complete(ctx context.Context, txHash string) error

	// Release marks a reserved reference as released after the downstream
	// paid action failed, permitting one retry with the same reference.
	Release(ctx context.Context, txHash string) error
}

// Error definitions
var (
	ErrAlreadyConsumed = errors.New("payment reference already consumed")
	ErrNotReserved     = errors.New("payment reference is not reserved")
)
