package usecase

import (
	"context"

	"blog/internal/domain/entity"
)

// IdentityUsecase turns a bearer token into the user it was issued for.
type IdentityUsecase interface {
	// Resolve fails with domainerrors.ErrUnauthenticated for an empty,
	// invalid or expired token and for a subject that no longer exists.
	Resolve(ctx context.Context, bearerToken string) (*entity.User, error)
}
