package handler

import (
	"net/http"

	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/response"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/errors"
	"blog/internal/usecase"

	"github.com/labstack/echo/v4"
)

// CommentHandler serves /comments.
type CommentHandler struct {
	uc usecase.CommentUsecase
}

func NewCommentHandler(uc usecase.CommentUsecase) *CommentHandler {
	return &CommentHandler{uc: uc}
}

func (h *CommentHandler) ListComments(c echo.Context) error {
	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}

	comments, err := h.uc.ListComments(c.Request().Context(), postID)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mapSlice(comments, toCommentResponse))
}

func (h *CommentHandler) CreateComment(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no identity on request")
	}

	postID, err := pathID(c, "postId")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.uc.CreateComment(c.Request().Context(), identity, postID, &usecase.CommentInput{Content: req.Content})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toCommentResponse(comment))
}

func (h *CommentHandler) UpdateComment(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no identity on request")
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req commentRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	comment, err := h.uc.UpdateComment(c.Request().Context(), identity, id, &usecase.CommentInput{Content: req.Content})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toCommentResponse(comment))
}

func (h *CommentHandler) DeleteComment(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no identity on request")
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeleteComment(c.Request().Context(), identity, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"message": "Comment deleted", "id": id})
}
