package bcrypt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestNewHasher_ClampsCost(t *testing.T) {
	assert.Equal(t, bcrypt.MinCost, NewHasher(0).Cost())
	assert.Equal(t, bcrypt.MaxCost, NewHasher(99).Cost())
	assert.Equal(t, 6, NewHasher(6).Cost())
}

func TestHasher_Hash(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	hash, err := h.Hash("Secret1")
	require.NoError(t, err)

	assert.NotEqual(t, "Secret1", hash)
	assert.True(t, strings.HasPrefix(hash, "$2a$") || strings.HasPrefix(hash, "$2b$"), "unexpected prefix: %s", hash)

	cost, err := bcrypt.Cost([]byte(hash))
	require.NoError(t, err)
	assert.Equal(t, bcrypt.MinCost, cost)
}

func TestHasher_HashIsSalted(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	first, err := h.Hash("Secret1")
	require.NoError(t, err)
	second, err := h.Hash("Secret1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestHasher_Verify(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)
	hash, err := h.Hash("Secret1")
	require.NoError(t, err)

	tests := []struct {
		name      string
		plaintext string
		want      bool
	}{
		{"correct password", "Secret1", true},
		{"wrong case", "secret1", false},
		{"empty", "", false},
		{"suffix added", "Secret12", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify(tt.plaintext, hash)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestHasher_VerifyMalformedHashNeverMatches(t *testing.T) {
	tests := []struct {
		name string
		hash string
	}{
		{name: "too short", hash: "not-a-bcrypt-hash"},
		{name: "bad prefix", hash: strings.Repeat("x", 60)},
		{name: "version too new", hash: "$3a$10$" + strings.Repeat("a", 53)},
		{name: "bad cost", hash: "$2a$99$" + strings.Repeat("a", 53)},
		{name: "plaintext equal to password", hash: "Secret1"},
	}

	h := NewHasher(bcrypt.MinCost)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := h.Verify("Secret1", tt.hash)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestHasher_HashTooLong(t *testing.T) {
	h := NewHasher(bcrypt.MinCost)

	_, err := h.Hash(strings.Repeat("A", 73))
	assert.ErrorIs(t, err, bcrypt.ErrPasswordTooLong)

	_, err = h.Hash(strings.Repeat("A", 72))
	assert.NoError(t, err)
}
