package usecase

import (
	"context"

	"blog/internal/domain/entity"
)

// CategoryInput defines the data required to create a category.
type CategoryInput struct {
	Name string
}

// CategoryUsecase defines category operations. Categories have no owner;
// any authenticated user may create one.
type CategoryUsecase interface {
	ListCategories(ctx context.Context) ([]*entity.Category, error)
	GetCategory(ctx context.Context, id int64) (*entity.Category, error)
	CreateCategory(ctx context.Context, identity *entity.User, input *CategoryInput) (*entity.Category, error)
}
