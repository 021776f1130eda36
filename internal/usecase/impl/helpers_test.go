package impl

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"blog/internal/domain/repository"
	mockRepo "blog/internal/mocks/repository"

	"github.com/stretchr/testify/mock"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// txMocks wires a mocked TransactionManager that runs fn against a mocked
// RepositoryFactory handing out the given repositories.
type txMocks struct {
	txManager   *mockRepo.MockTransactionManager
	factory     *mockRepo.MockRepositoryFactory
	userRepo    *mockRepo.MockUserRepository
	postRepo    *mockRepo.MockPostRepository
	commentRepo *mockRepo.MockCommentRepository
	category    *mockRepo.MockCategoryRepository
}

func newTxMocks(t *testing.T) *txMocks {
	t.Helper()

	m := &txMocks{
		txManager:   mockRepo.NewMockTransactionManager(t),
		factory:     mockRepo.NewMockRepositoryFactory(t),
		userRepo:    mockRepo.NewMockUserRepository(t),
		postRepo:    mockRepo.NewMockPostRepository(t),
		commentRepo: mockRepo.NewMockCommentRepository(t),
		category:    mockRepo.NewMockCategoryRepository(t),
	}

	m.txManager.EXPECT().
		Execute(mock.Anything, mock.Anything).
		RunAndReturn(func(_ context.Context, fn func(repository.RepositoryFactory) error) error {
			return fn(m.factory)
		}).Maybe()
	m.factory.EXPECT().UserRepo().Return(m.userRepo).Maybe()
	m.factory.EXPECT().PostRepo().Return(m.postRepo).Maybe()
	m.factory.EXPECT().CommentRepo().Return(m.commentRepo).Maybe()
	m.factory.EXPECT().CategoryRepo().Return(m.category).Maybe()

	return m
}
