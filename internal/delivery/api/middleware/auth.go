package middleware

import (
	"strings"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/usecase"

	"github.com/labstack/echo/v4"
)

const identityKey = "identity"

// AuthMiddleware resolves the bearer token of a request into a user.
type AuthMiddleware struct {
	identity usecase.IdentityUsecase
}

func NewAuthMiddleware(identity usecase.IdentityUsecase) *AuthMiddleware {
	return &AuthMiddleware{identity: identity}
}

// Authenticate rejects the request with 401 unless the Authorization header
// carries a bearer token for an existing user.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return domainerrors.ErrUnauthenticated.WrapMessage("missing or malformed Authorization header")
		}

		user, err := m.identity.Resolve(c.Request().Context(), token)
		if err != nil {
			return err
		}

		c.Set(identityKey, user)

		return next(c)
	}
}

// GetIdentity returns the user stored by Authenticate.
func GetIdentity(c echo.Context) (*entity.User, bool) {
	user, ok := c.Get(identityKey).(*entity.User)

	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}

	token = strings.TrimSpace(token)

	return token, token != ""
}
