package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"blog/config"
	"blog/internal/delivery"
	"blog/internal/delivery/api/middleware"
	"blog/internal/delivery/api/router/handler"
	"blog/internal/domain/service"
	"blog/internal/infra/auth"
	"blog/internal/infra/persistence/memory"
	"blog/internal/infra/pubsub"
	"blog/internal/infra/qrcode"
	"blog/internal/usecase/impl"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"
	"go.uber.org/fx/fxtest"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-access-secret"

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
		Details any    `json:"details"`
	} `json:"error"`
	Meta struct {
		RequestID string `json:"request_id"`
	} `json:"meta"`
}

type idBody struct {
	ID int64 `json:"id"`
}

func newTestConfig() *config.Config {
	cfg := &config.Config{}
	cfg.HTTP.MaxRequestBodySize = "1M"
	cfg.Store.Driver = config.StoreDriverMemory
	cfg.SecretKey.Access = testSecret
	cfg.Auth = &config.AuthConfig{BcryptCost: bcrypt.MinCost, TokenTTL: time.Hour}
	cfg.QRCode = &config.QRCodeConfig{Size: 128, ErrorCorrectionLevel: "M", BaseURL: "http://blog.test"}
	cfg.TestRoutes = &config.TestRoutesConfig{Enabled: true}

	return cfg
}

// newTestServer wires the API over the in-memory store the same way cmd/blog does.
func newTestServer(t *testing.T) http.Handler {
	t.Helper()

	var d delivery.Delivery
	app := fxtest.New(t,
		fx.Supply(newTestConfig()),
		fx.Provide(
			func() *slog.Logger { return slog.New(slog.NewTextHandler(io.Discard, nil)) },
			context.Background,
		),
		pubsub.Module,
		memory.Module,
		fx.Provide(
			auth.NewBcryptHasher,
			auth.NewJWTService,
			auth.NewOwnershipGuard,
			func(cfg *config.Config) service.QRCodeService {
				return qrcode.NewQRCodeService(cfg.QRCode.Size, cfg.QRCode.ErrorCorrectionLevel, cfg.QRCode.BaseURL)
			},
			impl.NewIdentityService,
			impl.NewUserService,
			impl.NewPostService,
			impl.NewCommentService,
			impl.NewCategoryService,
			middleware.NewAuthMiddleware,
			handler.NewUserHandler,
			handler.NewPostHandler,
			handler.NewCommentHandler,
			handler.NewCategoryHandler,
			handler.NewTestHandler,
			NewServer,
		),
		fx.Populate(&d),
	)
	app.RequireStart()
	t.Cleanup(app.RequireStop)

	srv, ok := d.(*apiServer)
	require.True(t, ok)

	return srv.Handler()
}

func doRequest(t *testing.T, h http.Handler, method, path, token string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var env envelope
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	}

	return rec, env
}

func registerAndLogin(t *testing.T, h http.Handler, username, password string) (int64, string) {
	t.Helper()

	creds := map[string]string{"username": username, "password": password}
	rec, _ := doRequest(t, h, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	rec, env := doRequest(t, h, http.MethodPost, "/auth/login", "", creds)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var login struct {
		AccessToken string `json:"access_token"`
		UserID      int64  `json:"user_id"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))

	return login.UserID, login.AccessToken
}

func TestAPI_RegisterIsUniquePerUsername(t *testing.T) {
	h := newTestServer(t)
	creds := map[string]string{"username": "alice", "password": "pw1"}

	rec, env := doRequest(t, h, http.MethodPost, "/auth/register", "", creds)
	require.Equal(t, http.StatusOK, rec.Code)
	var user struct {
		ID       int64  `json:"id"`
		Username string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &user))
	assert.Positive(t, user.ID)
	assert.Equal(t, "alice", user.Username)
	assert.NotContains(t, rec.Body.String(), "password")

	rec, env = doRequest(t, h, http.MethodPost, "/auth/register", "", creds)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "USERNAME_TAKEN", env.Error.Code)
}

func TestAPI_RegisterRejectsInvalidInput(t *testing.T) {
	h := newTestServer(t)

	tests := []struct {
		name     string
		body     any
		wantCode string
	}{
		{
			name:     "password over 72 bytes",
			body:     map[string]string{"username": "alice", "password": strings.Repeat("a", 73)},
			wantCode: "PASSWORD_TOO_LONG",
		},
		{
			name:     "missing password",
			body:     map[string]string{"username": "alice"},
			wantCode: "VALIDATION_FAILED",
		},
		{
			name:     "wrong field type",
			body:     map[string]any{"username": 42, "password": "pw"},
			wantCode: "VALIDATION_FAILED",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, env := doRequest(t, h, http.MethodPost, "/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			require.NotNil(t, env.Error)
			assert.Equal(t, tt.wantCode, env.Error.Code)
		})
	}
}

func TestAPI_Login(t *testing.T) {
	h := newTestServer(t)
	rec, _ := doRequest(t, h, http.MethodPost, "/auth/register", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)

	rec, env := doRequest(t, h, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	rec, env = doRequest(t, h, http.MethodPost, "/auth/login", "", map[string]string{"username": "nobody", "password": "pw1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "INVALID_CREDENTIALS", env.Error.Code)

	rec, env = doRequest(t, h, http.MethodPost, "/auth/login", "", map[string]string{"username": "alice", "password": "pw1"})
	require.Equal(t, http.StatusOK, rec.Code)
	var login struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
		UserID      int64  `json:"user_id"`
		Username    string `json:"username"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	assert.Len(t, strings.Split(login.AccessToken, "."), 3)
	assert.Equal(t, "bearer", login.TokenType)
	assert.Equal(t, "alice", login.Username)
	assert.Positive(t, login.UserID)
}

func TestAPI_OnlyOwnerMutatesPost(t *testing.T) {
	h := newTestServer(t)
	_, aliceToken := registerAndLogin(t, h, "alice", "pw1")
	_, bobToken := registerAndLogin(t, h, "bob", "pw2")

	rec, env := doRequest(t, h, http.MethodPost, "/posts", aliceToken, map[string]string{"title": "Hello", "content": "First post"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var post idBody
	require.NoError(t, json.Unmarshal(env.Data, &post))
	postPath := "/posts/" + strconv.FormatInt(post.ID, 10)

	rec, env = doRequest(t, h, http.MethodPut, postPath, bobToken, map[string]string{"title": "Mine now", "content": "x"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	rec, _ = doRequest(t, h, http.MethodDelete, postPath, bobToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, postPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"title":"Hello"`)

	rec, _ = doRequest(t, h, http.MethodDelete, postPath, aliceToken, nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, env = doRequest(t, h, http.MethodGet, postPath, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "POST_NOT_FOUND", env.Error.Code)
}

func TestAPI_MutationsRequireBearerToken(t *testing.T) {
	h := newTestServer(t)

	rec, env := doRequest(t, h, http.MethodPost, "/posts", "", map[string]string{"title": "t", "content": "c"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "UNAUTHENTICATED", env.Error.Code)
	assert.Nil(t, env.Error.Details)
}

func TestAPI_Me(t *testing.T) {
	h := newTestServer(t)
	aliceID, token := registerAndLogin(t, h, "alice", "pw1")

	rec, _ := doRequest(t, h, http.MethodGet, "/auth/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	issuedAt := time.Now().Add(-2 * time.Hour)
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": aliceID,
		"sub":     strconv.FormatInt(aliceID, 10),
		"iat":     issuedAt.Unix(),
		"exp":     issuedAt.Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)

	rec, _ = doRequest(t, h, http.MethodGet, "/auth/me", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": aliceID,
		"sub":     strconv.FormatInt(aliceID, 10),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte("another-secret"))
	require.NoError(t, err)

	rec, _ = doRequest(t, h, http.MethodGet, "/auth/me", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, env := doRequest(t, h, http.MethodGet, "/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, fmt.Sprintf(`{"id":%d,"username":"alice"}`, aliceID), string(env.Data))
}

func TestAPI_CommentsFollowTheirPost(t *testing.T) {
	h := newTestServer(t)
	_, aliceToken := registerAndLogin(t, h, "alice", "pw1")
	_, bobToken := registerAndLogin(t, h, "bob", "pw2")

	rec, env := doRequest(t, h, http.MethodPost, "/posts", aliceToken, map[string]string{"title": "Hello", "content": "Body"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post idBody
	require.NoError(t, json.Unmarshal(env.Data, &post))
	commentsPath := fmt.Sprintf("/comments/posts/%d", post.ID)

	rec, env = doRequest(t, h, http.MethodPost, commentsPath, bobToken, map[string]string{"content": "Nice"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var comment idBody
	require.NoError(t, json.Unmarshal(env.Data, &comment))
	commentPath := fmt.Sprintf("/comments/%d", comment.ID)

	rec, _ = doRequest(t, h, http.MethodGet, commentsPath, "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"bob"`)

	rec, _ = doRequest(t, h, http.MethodDelete, commentPath, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec, _ = doRequest(t, h, http.MethodPut, commentPath, bobToken, map[string]string{"content": "Very nice"})
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, h, http.MethodDelete, fmt.Sprintf("/posts/%d", post.ID), aliceToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, commentsPath, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, h, http.MethodPut, commentPath, bobToken, map[string]string{"content": "gone"})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = doRequest(t, h, http.MethodPost, "/comments/posts/999", bobToken, map[string]string{"content": "?"})
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_CategoriesAndFilters(t *testing.T) {
	h := newTestServer(t)
	aliceID, aliceToken := registerAndLogin(t, h, "alice", "pw1")
	_, bobToken := registerAndLogin(t, h, "bob", "pw2")

	rec, env := doRequest(t, h, http.MethodPost, "/categories", aliceToken, map[string]string{"name": "go"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var category idBody
	require.NoError(t, json.Unmarshal(env.Data, &category))

	rec, env = doRequest(t, h, http.MethodPost, "/categories", bobToken, map[string]string{"name": "go"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "CATEGORY_ALREADY_EXISTS", env.Error.Code)

	rec, _ = doRequest(t, h, http.MethodPost, "/posts", aliceToken, map[string]any{"title": "Tagged", "content": "c", "category_id": category.ID})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doRequest(t, h, http.MethodPost, "/posts", bobToken, map[string]string{"title": "Untagged", "content": "c"})
	require.Equal(t, http.StatusCreated, rec.Code)
	rec, _ = doRequest(t, h, http.MethodPost, "/posts", bobToken, map[string]any{"title": "Bad", "content": "c", "category_id": 999})
	assert.Equal(t, http.StatusNotFound, rec.Code)

	var posts []struct {
		Title string `json:"title"`
	}
	rec, env = doRequest(t, h, http.MethodGet, fmt.Sprintf("/posts?author_id=%d", aliceID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Tagged", posts[0].Title)

	rec, env = doRequest(t, h, http.MethodGet, fmt.Sprintf("/posts?category_id=%d", category.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	require.Len(t, posts, 1)

	rec, env = doRequest(t, h, http.MethodGet, "/posts", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	assert.Len(t, posts, 2)

	rec, env = doRequest(t, h, http.MethodGet, "/posts?skip=1&limit=1", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(env.Data, &posts))
	require.Len(t, posts, 1)
	assert.Equal(t, "Tagged", posts[0].Title)

	rec, _ = doRequest(t, h, http.MethodGet, "/posts?limit=0", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/posts?author_id=abc", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/categories/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_UserDirectoryHidesHashes(t *testing.T) {
	h := newTestServer(t)
	aliceID, _ := registerAndLogin(t, h, "alice", "pw1")

	rec, _ := doRequest(t, h, http.MethodGet, "/users", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
	assert.NotContains(t, rec.Body.String(), "$2a$")

	rec, _ = doRequest(t, h, http.MethodGet, fmt.Sprintf("/users/%d", aliceID), "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/users/999", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_PostQRCode(t *testing.T) {
	h := newTestServer(t)
	_, token := registerAndLogin(t, h, "alice", "pw1")

	rec, env := doRequest(t, h, http.MethodPost, "/posts", token, map[string]string{"title": "Share me", "content": "c"})
	require.Equal(t, http.StatusCreated, rec.Code)
	var post idBody
	require.NoError(t, json.Unmarshal(env.Data, &post))

	rec, _ = doRequest(t, h, http.MethodGet, fmt.Sprintf("/posts/%d/qrcode", post.ID), "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("\x89PNG")))

	rec, _ = doRequest(t, h, http.MethodGet, "/posts/999/qrcode", "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAPI_HealthLogoutAndTestRoutes(t *testing.T) {
	h := newTestServer(t)
	_, token := registerAndLogin(t, h, "alice", "pw1")

	rec, env := doRequest(t, h, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, env.Meta.RequestID)

	rec, _ = doRequest(t, h, http.MethodPost, "/auth/logout", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/test/public", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/test/auth", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, _ = doRequest(t, h, http.MethodGet, "/test/auth", token, nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"username":"alice"`)
}

func TestAPI_MiddlewareChain(t *testing.T) {
	h := newTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Request-ID", "trace-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "trace-123", rec.Header().Get("X-Request-ID"))

	huge := strings.Repeat("a", 2<<20)
	rec, env := doRequest(t, h, http.MethodPost, "/auth/register", "", map[string]string{"username": "big", "password": huge})
	assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
	require.NotNil(t, env.Error)
	assert.Equal(t, "HTTP_ERROR", env.Error.Code)
	assert.NotEmpty(t, env.Meta.RequestID)
}
