package auth

import (
	"strconv"
	"time"

	"blog/config"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/service"
	"blog/internal/errors"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenTTL = time.Hour

// accessClaims is the wire form of service.TokenClaims.
type accessClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// jwtService signs HS256 tokens with one process-wide secret. Expiry is
// checked against the wall clock, so large clock skew between issuer and
// verifier is not handled.
type jwtService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTService fails when secretKey.access is empty.
func NewJWTService(cfg *config.Config) (service.TokenService, error) {
	ttl := defaultTokenTTL
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return newJWTService(cfg.SecretKey.Access, ttl, time.Now)
}

func newJWTService(secret string, ttl time.Duration, now func() time.Time) (*jwtService, error) {
	if secret == "" {
		return nil, errors.New("jwt access secret must be provided")
	}

	return &jwtService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    now,
	}, nil
}

func (s *jwtService) Issue(subjectID int64) (string, error) {
	issuedAt := s.now()
	claims := accessClaims{
		UserID: subjectID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subjectID, 10),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domainerrors.ErrTokenIssueFailed.WrapMessage(err.Error())
	}

	return signed, nil
}

func (s *jwtService) Decode(tokenString string) (*service.TokenClaims, error) {
	claims := &accessClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithStrictDecoding(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, domainerrors.ErrInvalidToken.WrapMessage(err.Error())
	}

	if claims.UserID == 0 {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("user_id claim missing")
	}
	if claims.Subject != "" && claims.Subject != strconv.FormatInt(claims.UserID, 10) {
		return nil, domainerrors.ErrInvalidToken.WrapMessage("sub and user_id claims disagree")
	}

	return &service.TokenClaims{
		SubjectID: claims.UserID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (s *jwtService) TTL() time.Duration {
	return s.ttl
}
