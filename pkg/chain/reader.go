package chain

import (
	"context"
	"errors"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/common"
)

const (
	// DefaultReadTimeout bounds every RPC round trip to the chain node.
	DefaultReadTimeout = 5 * time.Second
)

// Transaction is the resolved view of an on-chain transaction, reduced to
// the fields payment verification needs.
type Transaction struct {
	From common.Address
	// To is nil for contract-creation transactions.
	To    *common.Address
	Input []byte
	// Confirmed is false while the transaction is still pending (no receipt).
	Confirmed bool
	// Succeeded reflects the receipt status; meaningless unless Confirmed.
	Succeeded bool
	BlockHash common.Hash
}

// Reader is a read-only accessor to the external ledger. Implementations
// must be safe for concurrent use. ReadTokenBalance is display-only and is
// never part of the authorization path.
type Reader interface {
	ResolveTransaction(ctx context.Context, txHash common.Hash) (*Transaction, error)
	ResolveBlockTimestamp(ctx context.Context, blockHash common.Hash) (time.Time, error)
	ReadTokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error)
}

// Error definitions
var (
	ErrTxNotFound    = errors.New("transaction not found")
	ErrBlockNotFound = errors.New("block not found")
)
