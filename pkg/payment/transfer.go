package payment

import (
	"bytes"
	"errors"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
)

// ERC-20 transfer(address,uint256) calldata layout. Decoding is done by
// fixed byte offsets on the raw input rather than through a generic ABI
// decoder, so the offsets and lengths stay visible, testable constants:
//
//	[0:4]    function selector 0xa9059cbb
//	[4:36]   recipient, 20 significant bytes right-aligned in a 32-byte word
//	[36:68]  amount, big-endian uint256
const (
	transferSelectorLen  = 4
	transferWordLen      = 32
	transferRecipientEnd = transferSelectorLen + transferWordLen
	transferMinInputLen  = transferSelectorLen + 2*transferWordLen
)

// transferSelector is the 4-byte function selector for transfer(address,uint256).
var transferSelector = []byte{0xa9, 0x05, 0x9c, 0xbb}

// ErrMalformedTransfer is returned when the input is too short or does not
// start with the transfer selector.
var ErrMalformedTransfer = errors.New("malformed transfer data")

// TransferCall is the decoded parameter set of an ERC-20 transfer call.
type TransferCall struct {
	Recipient common.Address
	Amount    *big.Int
}

// DecodeTransfer extracts recipient and amount from raw transfer calldata.
// It never panics on hostile input; anything that is not a well-formed
// transfer call returns ErrMalformedTransfer.
func DecodeTransfer(input []byte) (*TransferCall, error) {
	if len(input) < transferMinInputLen {
		return nil, ErrMalformedTransfer
	}
	if !bytes.Equal(input[:transferSelectorLen], transferSelector) {
		return nil, ErrMalformedTransfer
	}

	recipientWord := input[transferSelectorLen:transferRecipientEnd]
	amountWord := input[transferRecipientEnd:transferMinInputLen]

	return &TransferCall{
		Recipient: common.BytesToAddress(recipientWord[transferWordLen-common.AddressLength:]),
		Amount:    new(big.Int).SetBytes(amountWord),
	}, nil
}
