package auth

import (
	"strings"
	"testing"

	"blog/config"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/service"
	"blog/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newTestHasher() service.PasswordHasher {
	return NewBcryptHasher(&config.Config{Auth: &config.AuthConfig{BcryptCost: bcrypt.MinCost}})
}

func TestBcryptHasher_RoundTrip(t *testing.T) {
	hasher := newTestHasher()

	passwords := []string{
		"secret123",
		"",
		"pässwörd with spaces",
		strings.Repeat("a", service.MaxPasswordBytes),
		strings.Repeat("é", service.MaxPasswordBytes/2),
	}

	for _, password := range passwords {
		hash, err := hasher.Hash(password)
		require.NoError(t, err)
		assert.NotEqual(t, password, hash)
		assert.True(t, hasher.Check(password, hash), "password %q should verify", password)
	}
}

func TestBcryptHasher_RejectsOversizePassword(t *testing.T) {
	hasher := newTestHasher()

	tests := []struct {
		name     string
		password string
	}{
		{"73 ascii bytes", strings.Repeat("a", service.MaxPasswordBytes+1)},
		{"37 two-byte runes", strings.Repeat("é", 37)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hash, err := hasher.Hash(tt.password)
			require.Error(t, err)
			assert.Empty(t, hash)
			assert.True(t, errors.Is(err, domainerrors.ErrPasswordTooLong))
		})
	}
}

func TestBcryptHasher_Check(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.True(t, hasher.Check("secret123", hash))
	assert.False(t, hasher.Check("wrongpass", hash))
	assert.False(t, hasher.Check("", hash))
	assert.False(t, hasher.Check("secret123", "invalid_hash"))
	assert.False(t, hasher.Check("secret123", ""))
}

func TestBcryptHasher_SaltsEveryHash(t *testing.T) {
	hasher := newTestHasher()

	first, err := hasher.Hash("secret123")
	require.NoError(t, err)
	second, err := hasher.Hash("secret123")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestBcryptHasher_HashesExistingHashAsPlaintext(t *testing.T) {
	hasher := newTestHasher()

	hash, err := hasher.Hash("secret123")
	require.NoError(t, err)

	rehashed, err := hasher.Hash(hash)
	require.NoError(t, err)
	assert.NotEqual(t, hash, rehashed)
	assert.True(t, hasher.Check(hash, rehashed))
	assert.False(t, hasher.Check("secret123", rehashed))
}

func TestNewBcryptHasher_Cost(t *testing.T) {
	tests := []struct {
		name string
		cfg  *config.Config
		want int
	}{
		{"nil config", nil, bcrypt.DefaultCost},
		{"configured", &config.Config{Auth: &config.AuthConfig{BcryptCost: 5}}, 5},
		{"too low", &config.Config{Auth: &config.AuthConfig{BcryptCost: 1}}, bcrypt.DefaultCost},
		{"too high", &config.Config{Auth: &config.AuthConfig{BcryptCost: 99}}, bcrypt.DefaultCost},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hasher, ok := NewBcryptHasher(tt.cfg).(*bcryptHasher)
			require.True(t, ok)
			assert.Equal(t, tt.want, hasher.cost)
		})
	}
}
