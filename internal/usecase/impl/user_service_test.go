package impl

import (
	"context"
	"testing"

	"blog/internal/domain/constants"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/errors"
	mockService "blog/internal/mocks/service"
	"blog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type userServiceMocks struct {
	*txMocks
	hasher       *mockService.MockPasswordHasher
	tokenService *mockService.MockTokenService
}

func newUserServiceForTest(t *testing.T) (usecase.UserUsecase, *userServiceMocks) {
	t.Helper()

	m := &userServiceMocks{
		txMocks:      newTxMocks(t),
		hasher:       mockService.NewMockPasswordHasher(t),
		tokenService: mockService.NewMockTokenService(t),
	}

	srv := NewUserService(UserServiceParams{
		TxManager:    m.txManager,
		UserRepo:     m.userRepo,
		Hasher:       m.hasher,
		TokenService: m.tokenService,
		Logger:       newDiscardLogger(),
	})

	return srv, m
}

func TestUserService_Register_Success(t *testing.T) {
	srv, m := newUserServiceForTest(t)
	ctx := context.Background()

	m.hasher.EXPECT().Hash("secret123").Return("$2a$hash", nil)
	m.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(nil, repository.ErrUserNotFound)
	m.userRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(u *entity.User) bool {
			return u.Username == "alice" && u.PasswordHash == "$2a$hash"
		})).
		RunAndReturn(func(_ context.Context, u *entity.User) error {
			u.ID = 1

			return nil
		})

	out, err := srv.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), out.User.ID)
	assert.Equal(t, "alice", out.User.Username)
}

func TestUserService_Register_DuplicateUsername(t *testing.T) {
	srv, m := newUserServiceForTest(t)
	ctx := context.Background()

	m.hasher.EXPECT().Hash("secret123").Return("$2a$hash", nil)
	m.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{ID: 1, Username: "alice"}, nil)

	out, err := srv.Register(ctx, &usecase.RegisterInput{Username: "alice", Password: "secret123"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrUsernameTaken)
}

func TestUserService_Register_PasswordTooLong(t *testing.T) {
	srv, m := newUserServiceForTest(t)

	m.hasher.EXPECT().Hash(mock.Anything).Return("", errors.WithStack(domainerrors.ErrPasswordTooLong))

	_, err := srv.Register(context.Background(), &usecase.RegisterInput{Username: "alice", Password: "x"})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordTooLong)
	m.txManager.AssertNotCalled(t, "Execute", mock.Anything, mock.Anything)
}

func TestUserService_Register_HashFailure(t *testing.T) {
	srv, m := newUserServiceForTest(t)

	m.hasher.EXPECT().Hash("pw").Return("", errors.New("bcrypt exploded"))

	_, err := srv.Register(context.Background(), &usecase.RegisterInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, domainerrors.ErrPasswordHashFailed)
}

func TestUserService_Register_MissingFields(t *testing.T) {
	srv, _ := newUserServiceForTest(t)

	tests := []struct {
		name  string
		input *usecase.RegisterInput
	}{
		{"nil input", nil},
		{"empty username", &usecase.RegisterInput{Password: "pw"}},
		{"empty password", &usecase.RegisterInput{Username: "alice"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := srv.Register(context.Background(), tt.input)
			assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)
		})
	}
}

func TestUserService_Login_Success(t *testing.T) {
	srv, m := newUserServiceForTest(t)
	ctx := context.Background()
	alice := &entity.User{ID: 1, Username: "alice", PasswordHash: "$2a$hash"}

	m.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(alice, nil)
	m.hasher.EXPECT().Check("secret123", "$2a$hash").Return(true)
	m.tokenService.EXPECT().Issue(int64(1)).Return("signed.jwt.token", nil)

	out, err := srv.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "signed.jwt.token", out.AccessToken)
	assert.Equal(t, constants.TokenTypeBearer, out.TokenType)
	assert.Equal(t, alice, out.User)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	srv, m := newUserServiceForTest(t)
	ctx := context.Background()

	m.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{ID: 1, PasswordHash: "h"}, nil)
	m.hasher.EXPECT().Check("wrongpass", "h").Return(false)

	out, err := srv.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "wrongpass"})
	assert.Nil(t, out)
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_UnknownUser(t *testing.T) {
	srv, m := newUserServiceForTest(t)
	ctx := context.Background()

	m.userRepo.EXPECT().FindByUsername(ctx, "ghost").Return(nil, repository.ErrUserNotFound)

	_, err := srv.Login(ctx, &usecase.LoginInput{Username: "ghost", Password: "pw"})
	assert.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestUserService_Login_TokenFailure(t *testing.T) {
	srv, m := newUserServiceForTest(t)
	ctx := context.Background()

	m.userRepo.EXPECT().FindByUsername(ctx, "alice").Return(&entity.User{ID: 1, PasswordHash: "h"}, nil)
	m.hasher.EXPECT().Check("pw", "h").Return(true)
	m.tokenService.EXPECT().Issue(int64(1)).Return("", errors.New("signing failed"))

	_, err := srv.Login(ctx, &usecase.LoginInput{Username: "alice", Password: "pw"})
	assert.ErrorIs(t, err, domainerrors.ErrTokenIssueFailed)
}

func TestUserService_GetUser(t *testing.T) {
	srv, m := newUserServiceForTest(t)
	ctx := context.Background()

	m.userRepo.EXPECT().FindByID(ctx, int64(1)).Return(&entity.User{ID: 1, Username: "alice"}, nil)
	m.userRepo.EXPECT().FindByID(ctx, int64(2)).Return(nil, repository.ErrUserNotFound)

	user, err := srv.GetUser(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	_, err = srv.GetUser(ctx, 2)
	assert.ErrorIs(t, err, domainerrors.ErrUserNotFound)
}

func TestUserService_ListUsers(t *testing.T) {
	srv, m := newUserServiceForTest(t)
	ctx := context.Background()
	users := []*entity.User{{ID: 1, Username: "alice"}, {ID: 2, Username: "bob"}}

	m.userRepo.EXPECT().List(ctx).Return(users, nil)

	got, err := srv.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, users, got)
}
