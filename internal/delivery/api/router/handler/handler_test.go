package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"blog/internal/delivery/api/validator"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/usecase"
	mockUsecase "blog/internal/mocks/usecase"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// newContext builds an echo context; path params are given as name/value pairs.
func newContext(method, target string, body any, params ...string) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = validator.New()

	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var names, values []string
	for i := 0; i+1 < len(params); i += 2 {
		names = append(names, params[i])
		values = append(values, params[i+1])
	}
	if len(names) > 0 {
		c.SetParamNames(names...)
		c.SetParamValues(values...)
	}

	return c, rec
}

func withIdentity(c echo.Context, user *entity.User) {
	c.Set("identity", user)
}

func TestUserHandler_Register(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	uc.EXPECT().
		Register(mock.Anything, &usecase.RegisterInput{Username: "alice", Password: "pw1"}).
		Return(&usecase.RegisterOutput{User: &entity.User{ID: 1, Username: "alice", PasswordHash: "$2a$10$hash"}}, nil)

	c, rec := newContext(http.MethodPost, "/auth/register", map[string]string{"username": "alice", "password": "pw1"})
	require.NoError(t, NewUserHandler(uc).Register(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":{"id":1,"username":"alice"}`)
	assert.NotContains(t, rec.Body.String(), "$2a$")
}

func TestUserHandler_RegisterValidation(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)

	c, _ := newContext(http.MethodPost, "/auth/register", map[string]string{"username": "alice"})
	err := NewUserHandler(uc).Register(c)

	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
}

func TestUserHandler_Login(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	uc.EXPECT().
		Login(mock.Anything, &usecase.LoginInput{Username: "alice", Password: "pw1"}).
		Return(&usecase.LoginOutput{
			AccessToken: "a.b.c",
			TokenType:   "bearer",
			User:        &entity.User{ID: 1, Username: "alice"},
		}, nil)

	c, rec := newContext(http.MethodPost, "/auth/login", map[string]string{"username": "alice", "password": "pw1"})
	require.NoError(t, NewUserHandler(uc).Login(c))

	var body struct {
		Data loginResponse `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, loginResponse{AccessToken: "a.b.c", TokenType: "bearer", UserID: 1, Username: "alice"}, body.Data)
}

func TestUserHandler_LoginPropagatesInvalidCredentials(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	uc.EXPECT().Login(mock.Anything, mock.Anything).Return(nil, domainerrors.ErrInvalidCredentials)

	c, _ := newContext(http.MethodPost, "/auth/login", map[string]string{"username": "alice", "password": "x"})
	err := NewUserHandler(uc).Login(c)

	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestNewContextSetsPathParams(t *testing.T) {
	c, _ := newContext(http.MethodGet, "/comments/posts/7", nil, "postId", "7", "id", "3")

	assert.Equal(t, "7", c.Param("postId"))
	assert.Equal(t, "3", c.Param("id"))
}

func TestUserHandler_GetUser(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)
	uc.EXPECT().GetUser(mock.Anything, int64(5)).Return(&entity.User{ID: 5, Username: "carol"}, nil)

	c, rec := newContext(http.MethodGet, "/users/5", nil, "id", "5")
	require.NoError(t, NewUserHandler(uc).GetUser(c))

	assert.Contains(t, rec.Body.String(), `"data":{"id":5,"username":"carol"}`)
}

func TestUserHandler_GetUserRejectsBadID(t *testing.T) {
	uc := mockUsecase.NewMockUserUsecase(t)

	for _, id := range []string{"abc", "0", "-3"} {
		c, _ := newContext(http.MethodGet, "/users/"+id, nil, "id", id)
		assert.ErrorIs(t, NewUserHandler(uc).GetUser(c), domainerrors.ErrValidationFailed)
	}
}

func TestPostHandler_ListPostsPassesFilters(t *testing.T) {
	uc := mockUsecase.NewMockPostUsecase(t)
	uc.EXPECT().
		ListPosts(mock.Anything, entity.PostFilter{OwnerID: 2, CategoryID: 5, Limit: 100}).
		Return([]*entity.Post{{ID: 9, OwnerID: 2, Title: "t", Author: &entity.Author{ID: 2, Username: "bob"}}}, nil)

	c, rec := newContext(http.MethodGet, "/posts?author_id=2&category_id=5", nil)
	require.NoError(t, NewPostHandler(uc).ListPosts(c))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"author":{"id":2,"username":"bob"}`)
}

func TestPostHandler_ListPostsPaging(t *testing.T) {
	uc := mockUsecase.NewMockPostUsecase(t)
	uc.EXPECT().
		ListPosts(mock.Anything, entity.PostFilter{Offset: 20, Limit: 10}).
		Return([]*entity.Post{}, nil)

	c, rec := newContext(http.MethodGet, "/posts?skip=20&limit=10", nil)
	require.NoError(t, NewPostHandler(uc).ListPosts(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	for _, query := range []string{"skip=-1", "skip=x", "limit=0", "limit=101", "limit=ten"} {
		t.Run(query, func(t *testing.T) {
			c, _ := newContext(http.MethodGet, "/posts?"+query, nil)
			assert.ErrorIs(t, NewPostHandler(uc).ListPosts(c), domainerrors.ErrValidationFailed)
		})
	}
}

func TestPostHandler_CreatePost(t *testing.T) {
	alice := &entity.User{ID: 1, Username: "alice"}
	categoryID := int64(3)

	uc := mockUsecase.NewMockPostUsecase(t)
	uc.EXPECT().
		CreatePost(mock.Anything, alice, &usecase.PostInput{Title: "Hello", Content: "Body", CategoryID: &categoryID}).
		Return(&entity.Post{ID: 4, OwnerID: 1, CategoryID: &categoryID, Title: "Hello", Content: "Body"}, nil)

	c, rec := newContext(http.MethodPost, "/posts", map[string]any{"title": "Hello", "content": "Body", "category_id": 3})
	withIdentity(c, alice)
	require.NoError(t, NewPostHandler(uc).CreatePost(c))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"owner_id":1`)
}

func TestPostHandler_MutationsNeedIdentity(t *testing.T) {
	h := NewPostHandler(mockUsecase.NewMockPostUsecase(t))

	c, _ := newContext(http.MethodPost, "/posts", map[string]string{"title": "t", "content": "c"})
	assert.ErrorIs(t, h.CreatePost(c), domainerrors.ErrUnauthenticated)

	c, _ = newContext(http.MethodDelete, "/posts/1", nil, "id", "1")
	assert.ErrorIs(t, h.DeletePost(c), domainerrors.ErrUnauthenticated)
}

func TestPostHandler_DeletePostForbidden(t *testing.T) {
	bob := &entity.User{ID: 2, Username: "bob"}

	uc := mockUsecase.NewMockPostUsecase(t)
	uc.EXPECT().DeletePost(mock.Anything, bob, int64(1)).Return(domainerrors.ErrForbidden)

	c, _ := newContext(http.MethodDelete, "/posts/1", nil, "id", "1")
	withIdentity(c, bob)

	assert.ErrorIs(t, NewPostHandler(uc).DeletePost(c), domainerrors.ErrForbidden)
}

func TestPostHandler_GetPostQRCode(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\n")

	uc := mockUsecase.NewMockPostUsecase(t)
	uc.EXPECT().GetPostQRCode(mock.Anything, int64(4)).Return(png, nil)

	c, rec := newContext(http.MethodGet, "/posts/4/qrcode", nil, "id", "4")
	require.NoError(t, NewPostHandler(uc).GetPostQRCode(c))

	assert.Equal(t, "image/png", rec.Header().Get(echo.HeaderContentType))
	assert.Equal(t, png, rec.Body.Bytes())
}
