package service

import "time"

// TokenClaims is the decoded payload of an access token.
type TokenClaims struct {
	SubjectID int64
	ExpiresAt time.Time
}

// TokenService issues and decodes signed access tokens.
type TokenService interface {
	// Issue signs a token for subjectID that expires TTL() from now.
	Issue(subjectID int64) (string, error)

	// Decode verifies signature and expiry. Every failure is reported as
	// domainerrors.ErrInvalidToken.
	Decode(token string) (*TokenClaims, error)

	TTL() time.Duration
}
