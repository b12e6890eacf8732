package chain

import (
	"errors"
	"strings"

	"github.com/ethereum/go-ethereum/common"
)

// Error definitions
var (
	ErrInvalidAddress  = errors.New("invalid ethereum address")
	ErrInvalidChecksum = errors.New("invalid address checksum")
)

// ValidateAddress validates Ethereum address format. Mixed-case input must
// carry a correct EIP-55 checksum; all-lowercase input is always accepted.
func ValidateAddress(address string) error {
	if !common.IsHexAddress(address) || len(address) != 42 {
		return ErrInvalidAddress
	}

	checksummed := common.HexToAddress(address).Hex()
	if address != strings.ToLower(address) && address != checksummed {
		return ErrInvalidChecksum
	}

	return nil
}

// NormalizeAddress lowercases an address for storage and comparison.
// Identity comparisons throughout the service are case-insensitive.
func NormalizeAddress(address string) string {
	return strings.ToLower(address)
}
