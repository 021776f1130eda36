package service

import "blog/internal/domain/entity"

// OwnershipGuard decides whether identity may mutate a resource owned by
// ownerID. Callers pass the owner id read from the store, never one taken
// from the request.
type OwnershipGuard interface {
	AuthorizeMutation(identity *entity.User, ownerID int64) error
}
