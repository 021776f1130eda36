package auth

import (
	"strings"
	"testing"
	"time"

	"blog/config"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/errors"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test_access_secret_key_very_long_for_testing"

// testClock is a settable time source.
type testClock struct {
	now time.Time
}

func (c *testClock) Now() time.Time { return c.now }

func newTestJWTService(t *testing.T) (*jwtService, *testClock) {
	t.Helper()

	clock := &testClock{now: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	svc, err := newJWTService(testSecret, time.Hour, clock.Now)
	require.NoError(t, err)

	return svc, clock
}

func signRaw(t *testing.T, method jwt.SigningMethod, claims jwt.Claims, key any) string {
	t.Helper()

	signed, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)

	return signed
}

func TestJWTService_RoundTrip(t *testing.T) {
	svc, clock := newTestJWTService(t)

	for _, subject := range []int64{1, 42, 1 << 40} {
		token, err := svc.Issue(subject)
		require.NoError(t, err)
		assert.Len(t, strings.Split(token, "."), 3)

		claims, err := svc.Decode(token)
		require.NoError(t, err)
		assert.Equal(t, subject, claims.SubjectID)
		assert.True(t, claims.ExpiresAt.Equal(clock.now.Add(time.Hour)))
	}
}

func TestJWTService_WireClaims(t *testing.T) {
	svc, _ := newTestJWTService(t)

	token, err := svc.Issue(7)
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	require.NoError(t, err)

	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, "HS256", parsed.Header["alg"])
	assert.InDelta(t, 7, claims["user_id"], 0)
	assert.Equal(t, "7", claims["sub"])
	assert.Contains(t, claims, "exp")
	assert.Contains(t, claims, "iat")
}

func TestJWTService_Expiry(t *testing.T) {
	svc, clock := newTestJWTService(t)
	issuedAt := clock.now

	token, err := svc.Issue(3)
	require.NoError(t, err)

	clock.now = issuedAt.Add(59 * time.Minute)
	_, err = svc.Decode(token)
	require.NoError(t, err)

	clock.now = issuedAt.Add(time.Hour)
	_, err = svc.Decode(token)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))

	clock.now = issuedAt.Add(time.Hour + time.Second)
	claims, err := svc.Decode(token)
	assert.Nil(t, claims)
	assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
}

func TestJWTService_SignatureTamper(t *testing.T) {
	svc, _ := newTestJWTService(t)

	token, err := svc.Issue(9)
	require.NoError(t, err)

	sigStart := strings.LastIndex(token, ".") + 1
	for i := sigStart; i < len(token); i++ {
		replacement := byte('A')
		if token[i] == 'A' {
			replacement = 'B'
		}
		tampered := token[:i] + string(replacement) + token[i+1:]

		_, err := svc.Decode(tampered)
		assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken), "tampered byte %d decoded", i)
	}
}

func TestJWTService_RejectsForeignTokens(t *testing.T) {
	svc, clock := newTestJWTService(t)
	exp := jwt.NewNumericDate(clock.now.Add(time.Hour))

	tests := []struct {
		name  string
		token string
	}{
		{"not a jwt", "clearly-not-a-jwt-token-format"},
		{"empty", ""},
		{
			"other secret",
			signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1, "exp": exp}, []byte("another-secret")),
		},
		{
			"HS512",
			signRaw(t, jwt.SigningMethodHS512, jwt.MapClaims{"user_id": 1, "exp": exp}, []byte(testSecret)),
		},
		{
			"alg none",
			signRaw(t, jwt.SigningMethodNone, jwt.MapClaims{"user_id": 1, "exp": exp}, jwt.UnsafeAllowNoneSignatureType),
		},
		{
			"missing user_id",
			signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1", "exp": exp}, []byte(testSecret)),
		},
		{
			"missing exp",
			signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1}, []byte(testSecret)),
		},
		{
			"sub mismatch",
			signRaw(t, jwt.SigningMethodHS256, jwt.MapClaims{"user_id": 1, "sub": "2", "exp": exp}, []byte(testSecret)),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims, err := svc.Decode(tt.token)
			assert.Nil(t, claims)
			assert.True(t, errors.Is(err, domainerrors.ErrInvalidToken))
		})
	}
}

func TestNewJWTService(t *testing.T) {
	cfg := &config.Config{}
	cfg.SecretKey.Access = testSecret

	svc, err := NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, time.Hour, svc.TTL())

	cfg.Auth = &config.AuthConfig{TokenTTL: 15 * time.Minute}
	svc, err = NewJWTService(cfg)
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, svc.TTL())
}

func TestNewJWTService_EmptySecret(t *testing.T) {
	svc, err := NewJWTService(&config.Config{})
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "jwt access secret must be provided")
}
