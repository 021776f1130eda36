package usecase

import (
	"context"

	"blog/internal/domain/entity"
)

// CommentInput is the writable part of a comment.
type CommentInput struct {
	Content string
}

// CommentUsecase defines comment operations.
type CommentUsecase interface {
	ListComments(ctx context.Context, postID int64) ([]*entity.Comment, error)
	CreateComment(ctx context.Context, identity *entity.User, postID int64, input *CommentInput) (*entity.Comment, error)
	UpdateComment(ctx context.Context, identity *entity.User, id int64, input *CommentInput) (*entity.Comment, error)
	DeleteComment(ctx context.Context, identity *entity.User, id int64) error
}
