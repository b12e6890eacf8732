package payment

import (
	"context"
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/benbjohnson/clock"
	"github.com/ethereum/go-ethereum/common"
	"github.com/mneelabs/agent-gateway/pkg/chain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

var (
	testToken    = common.HexToAddress("0x8ccedbAe4916b79da7F3F612EfB2EB93A2bFD6cF")
	testTreasury = common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e")
	testPayer    = common.HexToAddress("0x53d284357ec70cE289D6D64134DfAc8E511c8a3D")
	testPrice    = big.NewInt(150000)
)

// fakeReader is a deterministic in-memory chain snapshot.
type fakeReader struct {
	txs        map[common.Hash]*chain.Transaction
	blockTimes map[common.Hash]time.Time
	err        error
}

func newFakeReader() *fakeReader {
	return &fakeReader{
		txs:        make(map[common.Hash]*chain.Transaction),
		blockTimes: make(map[common.Hash]time.Time),
	}
}

func (f *fakeReader) ResolveTransaction(_ context.Context, txHash common.Hash) (*chain.Transaction, error) {
	if f.err != nil {
		return nil, f.err
	}
	tx, ok := f.txs[txHash]
	if !ok {
		return nil, chain.ErrTxNotFound
	}
	return tx, nil
}

func (f *fakeReader) ResolveBlockTimestamp(_ context.Context, blockHash common.Hash) (time.Time, error) {
	if f.err != nil {
		return time.Time{}, f.err
	}
	ts, ok := f.blockTimes[blockHash]
	if !ok {
		return time.Time{}, chain.ErrBlockNotFound
	}
	return ts, nil
}

func (f *fakeReader) ReadTokenBalance(context.Context, common.Address, common.Address) (*big.Int, error) {
	return big.NewInt(0), nil
}

// addTransfer registers a confirmed, successful transfer tx and returns its hash.
func (f *fakeReader) addTransfer(hash byte, recipient common.Address, amount *big.Int, age time.Duration, now time.Time) common.Hash {
	txHash := common.Hash{hash}
	blockHash := common.Hash{0xb0, hash}
	to := testToken
	f.txs[txHash] = &chain.Transaction{
		From:      testPayer,
		To:        &to,
		Input:     buildTransferInput(recipient, amount),
		Confirmed: true,
		Succeeded: true,
		BlockHash: blockHash,
	}
	f.blockTimes[blockHash] = now.Add(-age)
	return txHash
}

func newTestVerifier(t *testing.T, reader *fakeReader, clk clock.Clock) *ChainVerifier {
	t.Helper()
	return NewChainVerifier(Config{
		TokenAddress:    testToken,
		TreasuryAddress: testTreasury,
		PriceUnits:      testPrice,
		MaxTxAge:        DefaultMaxTxAge,
		TokenDecimals:   6,
	}, reader, clk, zap.NewNop())
}

func TestVerifyPayment_Accept(t *testing.T) {
	clk := clock.NewMock()
	reader := newFakeReader()
	txHash := reader.addTransfer(0x01, testTreasury, testPrice, time.Minute, clk.Now())

	v := newTestVerifier(t, reader, clk)
	result, err := v.VerifyPayment(context.Background(), txHash)
	require.NoError(t, err)
	assert.Equal(t, testPayer, result.Payer)
	assert.Equal(t, 0, result.Amount.Cmp(testPrice))
}

func TestVerifyPayment_OverpayAccepted(t *testing.T) {
	clk := clock.NewMock()
	reader := newFakeReader()
	over := new(big.Int).Add(testPrice, big.NewInt(1))
	txHash := reader.addTransfer(0x01, testTreasury, over, time.Minute, clk.Now())

	v := newTestVerifier(t, reader, clk)
	result, err := v.VerifyPayment(context.Background(), txHash)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Amount.Cmp(over))
}

func TestVerifyPayment_OneUnitShortRejected(t *testing.T) {
	clk := clock.NewMock()
	reader := newFakeReader()
	short := new(big.Int).Sub(testPrice, big.NewInt(1))
	txHash := reader.addTransfer(0x01, testTreasury, short, time.Minute, clk.Now())

	v := newTestVerifier(t, reader, clk)
	_, err := v.VerifyPayment(context.Background(), txHash)
	rej, ok := IsRejection(err)
	require.True(t, ok)
	assert.Contains(t, rej.Reason, "insufficient payment amount")
	// Both values quoted in human decimal form.
	assert.Contains(t, rej.Reason, "0.15")
	assert.Contains(t, rej.Reason, "0.149999")
}

func TestVerifyPayment_NotFound(t *testing.T) {
	clk := clock.NewMock()
	v := newTestVerifier(t, newFakeReader(), clk)

	_, err := v.VerifyPayment(context.Background(), common.Hash{0xff})
	rej, ok := IsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "transaction not found", rej.Reason)
}

func TestVerifyPayment_WrongContract(t *testing.T) {
	clk := clock.NewMock()
	reader := newFakeReader()
	txHash := reader.addTransfer(0x01, testTreasury, testPrice, time.Minute, clk.Now())
	other := common.HexToAddress("0x000000000000000000000000000000000000dEaD")
	reader.txs[txHash].To = &other

	v := newTestVerifier(t, reader, clk)
	_, err := v.VerifyPayment(context.Background(), txHash)
	rej, ok := IsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "transaction not sent to token contract", rej.Reason)
}

func TestVerifyPayment_ContractCreation(t *testing.T) {
	clk := clock.NewMock()
	reader := newFakeReader()
	txHash := reader.addTransfer(0x01, testTreasury, testPrice, time.Minute, clk.Now())
	reader.txs[txHash].To = nil

	v := newTestVerifier(t, reader, clk)
	_, err := v.VerifyPayment(context.Background(), txHash)
	rej, ok := IsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "transaction not sent to token contract", rej.Reason)
}

func TestVerifyPayment_UnconfirmedOrFailed(t *testing.T) {
	clk := clock.NewMock()

	t.Run("pending", func(t *testing.T) {
		reader := newFakeReader()
		txHash := reader.addTransfer(0x01, testTreasury, testPrice, time.Minute, clk.Now())
		reader.txs[txHash].Confirmed = false

		v := newTestVerifier(t, reader, clk)
		_, err := v.VerifyPayment(context.Background(), txHash)
		rej, ok := IsRejection(err)
		require.True(t, ok)
		assert.Equal(t, "transaction failed or unconfirmed", rej.Reason)
	})

	t.Run("reverted", func(t *testing.T) {
		reader := newFakeReader()
		txHash := reader.addTransfer(0x01, testTreasury, testPrice, time.Minute, clk.Now())
		reader.txs[txHash].Succeeded = false

		v := newTestVerifier(t, reader, clk)
		_, err := v.VerifyPayment(context.Background(), txHash)
		rej, ok := IsRejection(err)
		require.True(t, ok)
		assert.Equal(t, "transaction failed or unconfirmed", rej.Reason)
	})
}

func TestVerifyPayment_FreshnessBoundary(t *testing.T) {
	clk := clock.NewMock()

	t.Run("exactly at window accepted", func(t *testing.T) {
		reader := newFakeReader()
		txHash := reader.addTransfer(0x01, testTreasury, testPrice, DefaultMaxTxAge, clk.Now())

		v := newTestVerifier(t, reader, clk)
		_, err := v.VerifyPayment(context.Background(), txHash)
		assert.NoError(t, err)
	})

	t.Run("one second inside accepted", func(t *testing.T) {
		reader := newFakeReader()
		txHash := reader.addTransfer(0x01, testTreasury, testPrice, DefaultMaxTxAge-time.Second, clk.Now())

		v := newTestVerifier(t, reader, clk)
		_, err := v.VerifyPayment(context.Background(), txHash)
		assert.NoError(t, err)
	})

	t.Run("one second past window rejected", func(t *testing.T) {
		reader := newFakeReader()
		txHash := reader.addTransfer(0x01, testTreasury, testPrice, DefaultMaxTxAge+time.Second, clk.Now())

		v := newTestVerifier(t, reader, clk)
		_, err := v.VerifyPayment(context.Background(), txHash)
		rej, ok := IsRejection(err)
		require.True(t, ok)
		assert.Contains(t, rej.Reason, "payment too old")
		// The computed age is quoted for diagnostics.
		assert.Contains(t, rej.Reason, "5.0 minutes")
	})
}

func TestVerifyPayment_MalformedData(t *testing.T) {
	clk := clock.NewMock()
	reader := newFakeReader()
	txHash := reader.addTransfer(0x01, testTreasury, testPrice, time.Minute, clk.Now())
	reader.txs[txHash].Input = reader.txs[txHash].Input[:20]

	v := newTestVerifier(t, reader, clk)
	_, err := v.VerifyPayment(context.Background(), txHash)
	rej, ok := IsRejection(err)
	require.True(t, ok)
	assert.Equal(t, "malformed transfer data", rej.Reason)
}

func TestVerifyPayment_Recipient(t *testing.T) {
	clk := clock.NewMock()

	t.Run("hex-digit difference rejected", func(t *testing.T) {
		reader := newFakeReader()
		wrong := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44f")
		txHash := reader.addTransfer(0x01, wrong, testPrice, time.Minute, clk.Now())

		v := newTestVerifier(t, reader, clk)
		_, err := v.VerifyPayment(context.Background(), txHash)
		rej, ok := IsRejection(err)
		require.True(t, ok)
		assert.Equal(t, "payment not sent to treasury address", rej.Reason)
	})

	t.Run("case difference accepted", func(t *testing.T) {
		// Same address, different hex casing: identical 20-byte value.
		reader := newFakeReader()
		cased := common.HexToAddress("0x742D35CC6634C0532925A3B844BC454E4438F44E")
		txHash := reader.addTransfer(0x01, cased, testPrice, time.Minute, clk.Now())

		v := newTestVerifier(t, reader, clk)
		_, err := v.VerifyPayment(context.Background(), txHash)
		assert.NoError(t, err)
	})
}

func TestVerifyPayment_InfrastructureErrorIsNotRejection(t *testing.T) {
	clk := clock.NewMock()
	reader := newFakeReader()
	reader.err = context.DeadlineExceeded

	v := newTestVerifier(t, reader, clk)
	_, err := v.VerifyPayment(context.Background(), common.Hash{0x01})
	require.Error(t, err)
	_, ok := IsRejection(err)
	assert.False(t, ok)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
}
