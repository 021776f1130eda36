package repository

import (
	"context"

	"blog/internal/domain/entity"
)

type CategoryRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Category, error)
	List(ctx context.Context) ([]*entity.Category, error)

	// Create yields domainerrors.ErrCategoryAlreadyExists for a duplicate name.
	Create(ctx context.Context, category *entity.Category) error
}
