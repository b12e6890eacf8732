package apikey

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateToken(t *testing.T) {
	token, err := GenerateToken()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(token, TokenPrefix))
	assert.Len(t, token, len(TokenPrefix)+tokenEntropyBytes*2)
	assert.True(t, IsWellFormed(token))
}

func TestGenerateToken_Unique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		token, err := GenerateToken()
		require.NoError(t, err)
		require.False(t, seen[token], "duplicate token generated")
		seen[token] = true
	}
}

func TestIsWellFormed(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  bool
	}{
		{"valid", "mnee_agent_0123456789abcdef0123456789abcdef", true},
		{"uppercase hex", "mnee_agent_0123456789ABCDEF0123456789ABCDEF", true},
		{"wrong prefix", "mnee_admin_0123456789abcdef0123456789abcdef", false},
		{"no prefix", "0123456789abcdef0123456789abcdef", false},
		{"suffix too short", "mnee_agent_0123456789abcdef", false},
		{"suffix too long", "mnee_agent_0123456789abcdef0123456789abcdef00", false},
		{"non-hex suffix", "mnee_agent_0123456789abcdef0123456789abcdxy", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsWellFormed(tt.token))
		})
	}
}
