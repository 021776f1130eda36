package repository

import (
	"context"

	"blog/internal/domain/entity"
)

// PostRepository persists posts. Reads fill Post.Author.
type PostRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Post, error)
	List(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error)
	Create(ctx context.Context, post *entity.Post) error

	// Update writes title, content and category. OwnerID is never changed.
	Update(ctx context.Context, post *entity.Post) error

	Delete(ctx context.Context, id int64) error
}
