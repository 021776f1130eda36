package usecase

import (
	"context"

	"blog/internal/domain/entity"
)

// PostInput is the writable part of a post.
type PostInput struct {
	Title      string
	Content    string
	CategoryID *int64
}

// PostUsecase defines post operations. Mutations take the resolved identity
// of the caller; the owner of an existing post is always read from the store.
type PostUsecase interface {
	ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error)
	GetPost(ctx context.Context, id int64) (*entity.Post, error)
	CreatePost(ctx context.Context, identity *entity.User, input *PostInput) (*entity.Post, error)
	UpdatePost(ctx context.Context, identity *entity.User, id int64, input *PostInput) (*entity.Post, error)

	// DeletePost removes the post together with its comments.
	DeletePost(ctx context.Context, identity *entity.User, id int64) error

	// GetPostQRCode renders the post's share link as a PNG.
	GetPostQRCode(ctx context.Context, id int64) ([]byte, error)
}
