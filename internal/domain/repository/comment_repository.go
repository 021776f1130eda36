package repository

import (
	"context"

	"blog/internal/domain/entity"
)

// CommentRepository persists comments. Reads fill Comment.Author.
type CommentRepository interface {
	FindByID(ctx context.Context, id int64) (*entity.Comment, error)
	ListByPost(ctx context.Context, postID int64) ([]*entity.Comment, error)
	Create(ctx context.Context, comment *entity.Comment) error
	Update(ctx context.Context, comment *entity.Comment) error
	Delete(ctx context.Context, id int64) error

	// DeleteByPost removes every comment of a post and reports how many went.
	DeleteByPost(ctx context.Context, postID int64) (int64, error)
}
