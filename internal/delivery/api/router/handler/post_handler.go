package handler

import (
	"math"
	"net/http"

	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/response"
	"blog/internal/domain/constants"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/errors"
	"blog/internal/usecase"

	"github.com/labstack/echo/v4"
)

// PostHandler serves /posts.
type PostHandler struct {
	uc usecase.PostUsecase
}

func NewPostHandler(uc usecase.PostUsecase) *PostHandler {
	return &PostHandler{uc: uc}
}

// ListPosts accepts optional author_id and category_id filters and
// skip/limit paging, newest first.
func (h *PostHandler) ListPosts(c echo.Context) error {
	authorID, err := optionalQueryID(c, "author_id")
	if err != nil {
		return err
	}
	categoryID, err := optionalQueryID(c, "category_id")
	if err != nil {
		return err
	}
	skip, err := queryInt(c, "skip", 0, 0, math.MaxInt32)
	if err != nil {
		return err
	}
	limit, err := queryInt(c, "limit", constants.DefaultPostPageLimit, 1, constants.MaxPostPageLimit)
	if err != nil {
		return err
	}

	posts, err := h.uc.ListPosts(c.Request().Context(), entity.PostFilter{
		OwnerID:    authorID,
		CategoryID: categoryID,
		Offset:     skip,
		Limit:      limit,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, mapSlice(posts, toPostResponse))
}

func (h *PostHandler) GetPost(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.uc.GetPost(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) CreatePost(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no identity on request")
	}

	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.uc.CreatePost(c.Request().Context(), identity, &usecase.PostInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, toPostResponse(post))
}

func (h *PostHandler) UpdatePost(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no identity on request")
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req postRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, err := h.uc.UpdatePost(c.Request().Context(), identity, id, &usecase.PostInput{
		Title:      req.Title,
		Content:    req.Content,
		CategoryID: req.CategoryID,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, toPostResponse(post))
}

func (h *PostHandler) DeletePost(c echo.Context) error {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		return domainerrors.ErrUnauthenticated.WrapMessage("no identity on request")
	}

	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.uc.DeletePost(c.Request().Context(), identity, id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]any{"message": "Post deleted", "id": id})
}

// GetPostQRCode answers with a PNG rather than the JSON envelope.
func (h *PostHandler) GetPostQRCode(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	png, err := h.uc.GetPostQRCode(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return c.Blob(http.StatusOK, "image/png", png)
}
