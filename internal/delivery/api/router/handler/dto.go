package handler

import (
	"time"

	"blog/internal/domain/entity"
)

type credentialsRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required"`
}

type postRequest struct {
	Title      string `json:"title" validate:"required,max=200"`
	Content    string `json:"content" validate:"required"`
	CategoryID *int64 `json:"category_id" validate:"omitempty,gt=0"`
}

type commentRequest struct {
	Content string `json:"content" validate:"required"`
}

type categoryRequest struct {
	Name string `json:"name" validate:"required,max=100"`
}

// userResponse never carries the password hash.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	UserID      int64  `json:"user_id"`
	Username    string `json:"username"`
}

type postResponse struct {
	ID         int64          `json:"id"`
	Title      string         `json:"title"`
	Content    string         `json:"content"`
	OwnerID    int64          `json:"owner_id"`
	CategoryID *int64         `json:"category_id"`
	Author     *entity.Author `json:"author,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}

type commentResponse struct {
	ID        int64          `json:"id"`
	PostID    int64          `json:"post_id"`
	OwnerID   int64          `json:"owner_id"`
	Content   string         `json:"content"`
	Author    *entity.Author `json:"author,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

type categoryResponse struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

func toUserResponse(user *entity.User) *userResponse {
	return &userResponse{ID: user.ID, Username: user.Username}
}

func toPostResponse(post *entity.Post) *postResponse {
	return &postResponse{
		ID:         post.ID,
		Title:      post.Title,
		Content:    post.Content,
		OwnerID:    post.OwnerID,
		CategoryID: post.CategoryID,
		Author:     post.Author,
		CreatedAt:  post.CreatedAt,
		UpdatedAt:  post.UpdatedAt,
	}
}

func toCommentResponse(comment *entity.Comment) *commentResponse {
	return &commentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		OwnerID:   comment.OwnerID,
		Content:   comment.Content,
		Author:    comment.Author,
		CreatedAt: comment.CreatedAt,
		UpdatedAt: comment.UpdatedAt,
	}
}

func toCategoryResponse(category *entity.Category) *categoryResponse {
	return &categoryResponse{ID: category.ID, Name: category.Name}
}

func mapSlice[T, R any](items []T, fn func(T) R) []R {
	out := make([]R, 0, len(items))
	for _, item := range items {
		out = append(out, fn(item))
	}

	return out
}
