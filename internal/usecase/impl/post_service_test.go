package impl

import (
	"context"
	"testing"

	"blog/internal/domain/constants"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/domain/service"
	"blog/internal/errors"
	mockService "blog/internal/mocks/service"
	"blog/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type postServiceMocks struct {
	*txMocks
	guard     *mockService.MockOwnershipGuard
	publisher *mockService.MockEventPublisher
	qrcode    *mockService.MockQRCodeService
}

func newPostServiceForTest(t *testing.T) (usecase.PostUsecase, *postServiceMocks) {
	t.Helper()

	m := &postServiceMocks{
		txMocks:   newTxMocks(t),
		guard:     mockService.NewMockOwnershipGuard(t),
		publisher: mockService.NewMockEventPublisher(t),
		qrcode:    mockService.NewMockQRCodeService(t),
	}

	srv := NewPostService(PostServiceParams{
		TxManager:     m.txManager,
		PostRepo:      m.postRepo,
		Guard:         m.guard,
		Publisher:     m.publisher,
		QRCodeService: m.qrcode,
		Logger:        newDiscardLogger(),
	})

	return srv, m
}

var (
	alice = &entity.User{ID: 1, Username: "alice"}
	bob   = &entity.User{ID: 2, Username: "bob"}
)

func TestPostService_CreatePost_Success(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()
	categoryID := int64(3)

	m.category.EXPECT().FindByID(ctx, categoryID).Return(&entity.Category{ID: categoryID, Name: "go"}, nil)
	m.postRepo.EXPECT().
		Create(ctx, mock.MatchedBy(func(p *entity.Post) bool {
			return p.OwnerID == alice.ID && p.Title == "hello" && *p.CategoryID == categoryID
		})).
		RunAndReturn(func(_ context.Context, p *entity.Post) error {
			p.ID = 10

			return nil
		})
	m.publisher.EXPECT().
		PublishContentEvent(ctx, mock.MatchedBy(func(e *service.ContentEvent) bool {
			return e.Type == constants.EventPostCreated && e.ResourceID == 10 && e.ActorID == alice.ID
		})).
		Return(nil)

	post, err := srv.CreatePost(ctx, alice, &usecase.PostInput{Title: "hello", Content: "world", CategoryID: &categoryID})
	require.NoError(t, err)
	assert.Equal(t, int64(10), post.ID)
	require.NotNil(t, post.Author)
	assert.Equal(t, "alice", post.Author.Username)
}

func TestPostService_CreatePost_PublishFailureIsIgnored(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()

	m.postRepo.EXPECT().Create(ctx, mock.Anything).Return(nil)
	m.publisher.EXPECT().PublishContentEvent(ctx, mock.Anything).Return(errors.New("broker down"))

	post, err := srv.CreatePost(ctx, alice, &usecase.PostInput{Title: "t", Content: "c"})
	require.NoError(t, err)
	assert.NotNil(t, post)
}

func TestPostService_CreatePost_MissingCategory(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()
	categoryID := int64(99)

	m.category.EXPECT().FindByID(ctx, categoryID).Return(nil, repository.ErrCategoryNotFound)

	_, err := srv.CreatePost(ctx, alice, &usecase.PostInput{Title: "t", Content: "c", CategoryID: &categoryID})
	assert.ErrorIs(t, err, domainerrors.ErrCategoryNotFound)
}

func TestPostService_CreatePost_InvalidInput(t *testing.T) {
	srv, _ := newPostServiceForTest(t)

	_, err := srv.CreatePost(context.Background(), alice, &usecase.PostInput{Title: "", Content: "c"})
	assert.ErrorIs(t, err, domainerrors.ErrValidationFailed)

	_, err = srv.CreatePost(context.Background(), nil, &usecase.PostInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, domainerrors.ErrUnauthenticated)
}

func TestPostService_UpdatePost_Owner(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()
	stored := &entity.Post{ID: 10, OwnerID: alice.ID, Title: "old", Content: "old"}

	m.postRepo.EXPECT().FindByID(ctx, int64(10)).Return(stored, nil)
	m.guard.EXPECT().AuthorizeMutation(alice, alice.ID).Return(nil)
	m.postRepo.EXPECT().
		Update(ctx, mock.MatchedBy(func(p *entity.Post) bool {
			return p.ID == 10 && p.Title == "new" && p.OwnerID == alice.ID
		})).
		Return(nil)

	post, err := srv.UpdatePost(ctx, alice, 10, &usecase.PostInput{Title: "new", Content: "body"})
	require.NoError(t, err)
	assert.Equal(t, "new", post.Title)
	assert.Equal(t, "body", post.Content)
}

func TestPostService_UpdatePost_UsesStoredOwner(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()

	m.postRepo.EXPECT().FindByID(ctx, int64(10)).Return(&entity.Post{ID: 10, OwnerID: alice.ID}, nil)
	m.guard.EXPECT().AuthorizeMutation(bob, alice.ID).Return(domainerrors.ErrForbidden.WrapMessage("not owner"))

	_, err := srv.UpdatePost(ctx, bob, 10, &usecase.PostInput{Title: "mine now", Content: "c"})
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	m.postRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestPostService_UpdatePost_NotFound(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()

	m.postRepo.EXPECT().FindByID(ctx, int64(10)).Return(nil, repository.ErrPostNotFound)

	_, err := srv.UpdatePost(ctx, alice, 10, &usecase.PostInput{Title: "t", Content: "c"})
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}

func TestPostService_DeletePost_Owner(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()

	m.postRepo.EXPECT().FindByID(ctx, int64(10)).Return(&entity.Post{ID: 10, OwnerID: alice.ID}, nil)
	m.guard.EXPECT().AuthorizeMutation(alice, alice.ID).Return(nil)
	m.commentRepo.EXPECT().DeleteByPost(ctx, int64(10)).Return(int64(3), nil)
	m.postRepo.EXPECT().Delete(ctx, int64(10)).Return(nil)
	m.publisher.EXPECT().
		PublishContentEvent(ctx, mock.MatchedBy(func(e *service.ContentEvent) bool {
			return e.Type == constants.EventPostDeleted && e.PostID == 10
		})).
		Return(nil)

	require.NoError(t, srv.DeletePost(ctx, alice, 10))
}

func TestPostService_DeletePost_Forbidden(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()

	m.postRepo.EXPECT().FindByID(ctx, int64(10)).Return(&entity.Post{ID: 10, OwnerID: alice.ID}, nil)
	m.guard.EXPECT().AuthorizeMutation(bob, alice.ID).Return(domainerrors.ErrForbidden.WrapMessage("not owner"))

	err := srv.DeletePost(ctx, bob, 10)
	assert.ErrorIs(t, err, domainerrors.ErrForbidden)
	m.commentRepo.AssertNotCalled(t, "DeleteByPost", mock.Anything, mock.Anything)
	m.postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPostService_DeletePost_CommentFailureAborts(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()
	dbErr := errors.New("deadlock detected")

	m.postRepo.EXPECT().FindByID(ctx, int64(10)).Return(&entity.Post{ID: 10, OwnerID: alice.ID}, nil)
	m.guard.EXPECT().AuthorizeMutation(alice, alice.ID).Return(nil)
	m.commentRepo.EXPECT().DeleteByPost(ctx, int64(10)).Return(int64(0), dbErr)

	err := srv.DeletePost(ctx, alice, 10)
	assert.ErrorIs(t, err, dbErr)
	m.postRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestPostService_ListAndGet(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()
	filter := entity.PostFilter{OwnerID: alice.ID}
	posts := []*entity.Post{{ID: 1, OwnerID: alice.ID}}

	m.postRepo.EXPECT().List(ctx, filter).Return(posts, nil)
	m.postRepo.EXPECT().FindByID(ctx, int64(1)).Return(posts[0], nil)
	m.postRepo.EXPECT().FindByID(ctx, int64(2)).Return(nil, repository.ErrPostNotFound)

	got, err := srv.ListPosts(ctx, filter)
	require.NoError(t, err)
	assert.Equal(t, posts, got)

	post, err := srv.GetPost(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, posts[0], post)

	_, err = srv.GetPost(ctx, 2)
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}

func TestPostService_GetPostQRCode(t *testing.T) {
	srv, m := newPostServiceForTest(t)
	ctx := context.Background()

	m.postRepo.EXPECT().FindByID(ctx, int64(1)).Return(&entity.Post{ID: 1}, nil)
	m.postRepo.EXPECT().FindByID(ctx, int64(2)).Return(nil, repository.ErrPostNotFound)
	m.qrcode.EXPECT().GeneratePostQR(int64(1)).Return([]byte{0x89, 'P', 'N', 'G'}, nil)

	png, err := srv.GetPostQRCode(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x89, 'P', 'N', 'G'}, png)

	_, err = srv.GetPostQRCode(ctx, 2)
	assert.ErrorIs(t, err, domainerrors.ErrPostNotFound)
}
