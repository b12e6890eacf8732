package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/ethclient"
	"go.uber.org/zap"
)

// balanceOfSelector is the 4-byte function selector for balanceOf(address).
var balanceOfSelector = []byte{0x70, 0xa0, 0x82, 0x31}

// EthReader implements Reader against a JSON-RPC Ethereum node.
type EthReader struct {
	client      *ethclient.Client
	readTimeout time.Duration
	logger      *zap.Logger
}

// Compile-time interface compliance check
var _ Reader = (*EthReader)(nil)

// NewEthReader creates a Reader over an ethclient connection. Every RPC call
// is bounded by readTimeout so a slow node cannot stall a request handler.
func NewEthReader(client *ethclient.Client, readTimeout time.Duration, logger *zap.Logger) *EthReader {
	if readTimeout == 0 {
		readTimeout = DefaultReadTimeout
	}
	return &EthReader{
		client:      client,
		readTimeout: readTimeout,
		logger:      logger,
	}
}

// Dial connects to the given RPC URL and wraps it in an EthReader.
func Dial(rpcURL string, readTimeout time.Duration, logger *zap.Logger) (*EthReader, error) {
	client, err := ethclient.Dial(rpcURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial chain rpc: %w", err)
	}
	return NewEthReader(client, readTimeout, logger), nil
}

// Ping checks RPC reachability with a cheap chain-id call.
func (r *EthReader) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	if _, err := r.client.ChainID(ctx); err != nil {
		return fmt.Errorf("chain rpc ping failed: %w", err)
	}
	return nil
}

// ResolveTransaction resolves a transaction and its receipt in one pass.
// A missing transaction returns ErrTxNotFound; a missing receipt (still
// pending) returns the transaction with Confirmed=false.
func (r *EthReader) ResolveTransaction(ctx context.Context, txHash common.Hash) (*Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	tx, pending, err := r.client.TransactionByHash(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return nil, ErrTxNotFound
		}
		return nil, fmt.Errorf("resolve transaction %s: %w", txHash.Hex(), err)
	}

	from, err := types.Sender(types.LatestSignerForChainID(tx.ChainId()), tx)
	if err != nil {
		return nil, fmt.Errorf("recover sender of %s: %w", txHash.Hex(), err)
	}

	resolved := &Transaction{
		From:  from,
		To:    tx.To(),
		Input: tx.Data(),
	}
	if pending {
		return resolved, nil
	}

	receipt, err := r.client.TransactionReceipt(ctx, txHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return resolved, nil
		}
		return nil, fmt.Errorf("resolve receipt of %s: %w", txHash.Hex(), err)
	}

	resolved.Confirmed = true
	resolved.Succeeded = receipt.Status == types.ReceiptStatusSuccessful
	resolved.BlockHash = receipt.BlockHash

	return resolved, nil
}

// ResolveBlockTimestamp returns the timestamp of the block with the given hash.
func (r *EthReader) ResolveBlockTimestamp(ctx context.Context, blockHash common.Hash) (time.Time, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	header, err := r.client.HeaderByHash(ctx, blockHash)
	if err != nil {
		if errors.Is(err, ethereum.NotFound) {
			return time.Time{}, ErrBlockNotFound
		}
		return time.Time{}, fmt.Errorf("resolve block %s: %w", blockHash.Hex(), err)
	}

	return time.Unix(int64(header.Time), 0), nil
}

// ReadTokenBalance reads the ERC-20 balance of owner via eth_call.
// The calldata is packed by hand: selector + owner left-padded to 32 bytes.
func (r *EthReader) ReadTokenBalance(ctx context.Context, token, owner common.Address) (*big.Int, error) {
	ctx, cancel := context.WithTimeout(ctx, r.readTimeout)
	defer cancel()

	data := PackBalanceOf(owner)
	result, err := r.client.CallContract(ctx, ethereum.CallMsg{
		To:   &token,
		Data: data,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("read token balance of %s: %w", owner.Hex(), err)
	}

	return new(big.Int).SetBytes(result), nil
}

// PackBalanceOf builds the calldata for balanceOf(address).
func PackBalanceOf(owner common.Address) []byte {
	data := make([]byte, 0, 36)
	data = append(data, balanceOfSelector...)
	data = append(data, common.LeftPadBytes(owner.Bytes(), 32)...)
	return data
}
