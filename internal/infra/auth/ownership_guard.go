package auth

import (
	"fmt"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/service"
	"blog/internal/errors"
)

// ownershipGuard has no admin override: only the owner may mutate.
type ownershipGuard struct{}

func NewOwnershipGuard() service.OwnershipGuard {
	return &ownershipGuard{}
}

func (g *ownershipGuard) AuthorizeMutation(identity *entity.User, ownerID int64) error {
	if identity == nil || identity.ID == 0 {
		return errors.WithStack(domainerrors.ErrUnauthenticated)
	}

	if identity.ID != ownerID {
		return domainerrors.ErrForbidden.WrapMessage(fmt.Sprintf("user %d does not own resource of user %d", identity.ID, ownerID))
	}

	return nil
}
