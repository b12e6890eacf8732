package chain

import (
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/stretchr/testify/assert"
)

func TestValidateAddress(t *testing.T) {
	tests := []struct {
		name    string
		address string
		wantErr error
	}{
		{
			name:    "valid lowercase",
			address: "0x742d35cc6634c0532925a3b844bc454e4438f44e",
			wantErr: nil,
		},
		{
			name:    "valid EIP-55 checksum",
			address: "0x742d35Cc6634C0532925a3b844Bc454e4438f44e",
			wantErr: nil,
		},
		{
			name:    "bad checksum",
			address: "0x742d35CC6634C0532925a3b844Bc454e4438f44e",
			wantErr: ErrInvalidChecksum,
		},
		{
			name:    "missing 0x prefix",
			address: "742d35cc6634c0532925a3b844bc454e4438f44e",
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "too short",
			address: "0x742d35cc",
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "too long",
			address: "0x742d35cc6634c0532925a3b844bc454e4438f44e00",
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "non-hex characters",
			address: "0x742d35cc6634c0532925a3b844bc454e4438g44e",
			wantErr: ErrInvalidAddress,
		},
		{
			name:    "empty",
			address: "",
			wantErr: ErrInvalidAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAddress(tt.address)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestNormalizeAddress(t *testing.T) {
	assert.Equal(t,
		"0x742d35cc6634c0532925a3b844bc454e4438f44e",
		NormalizeAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e"),
	)
}

func TestPackBalanceOf(t *testing.T) {
	owner := common.HexToAddress("0x742d35Cc6634C0532925a3b844Bc454e4438f44e")
	data := PackBalanceOf(owner)

	assert.Len(t, data, 36)
	assert.Equal(t, []byte{0x70, 0xa0, 0x82, 0x31}, data[:4])
	// Owner occupies the low 20 bytes of the padded word.
	assert.Equal(t, make([]byte, 12), data[4:16])
	assert.Equal(t, owner.Bytes(), data[16:36])
}
