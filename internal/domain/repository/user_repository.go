// Package repository defines the persistence contracts used by the use cases.
// Implementations live under internal/infra/persistence.
package repository

import (
	"context"

	"blog/internal/domain/entity"
	"blog/internal/errors"
)

// Sentinel lookup misses. Use cases translate them into domain errors.
var (
	ErrUserNotFound     = errors.New("user not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrCategoryNotFound = errors.New("category not found")
)

// UserRepository persists accounts.
type UserRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.User, error)
	FindByUsername(ctx context.Context, username string) (*entity.User, error)

	// Create assigns ID and CreatedAt on success. A taken username
	// yields domainerrors.ErrUsernameTaken.
	Create(ctx context.Context, user *entity.User) error

	List(ctx context.Context) ([]*entity.User, error)
}
