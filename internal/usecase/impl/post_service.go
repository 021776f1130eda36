package impl

import (
	"context"
	"log/slog"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/constants"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/domain/service"
	"blog/internal/errors"
	"blog/internal/usecase"

	"go.uber.org/fx"
)

type postService struct {
	txManager     repository.TransactionManager
	postRepo      repository.PostRepository
	guard         service.OwnershipGuard
	publisher     service.EventPublisher
	qrcodeService service.QRCodeService
	logger        *slog.Logger
}

// PostServiceParams holds dependencies for PostService, injected by Fx.
type PostServiceParams struct {
	fx.In

	TxManager     repository.TransactionManager
	PostRepo      repository.PostRepository
	Guard         service.OwnershipGuard
	Publisher     service.EventPublisher
	QRCodeService service.QRCodeService
	Logger        *slog.Logger
}

func NewPostService(params PostServiceParams) usecase.PostUsecase {
	return &postService{
		txManager:     params.TxManager,
		postRepo:      params.PostRepo,
		guard:         params.Guard,
		publisher:     params.Publisher,
		qrcodeService: params.QRCodeService,
		logger:        params.Logger,
	}
}

func (srv *postService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

func (srv *postService) ListPosts(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	posts, err := srv.postRepo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list posts")
	}

	return posts, nil
}

func (srv *postService) GetPost(ctx context.Context, id int64) (*entity.Post, error) {
	post, err := srv.postRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrPostNotFound, domainerrors.ErrPostNotFound, "post lookup failed")
	}

	return post, nil
}

// CreatePost makes the caller the owner. The owner is never taken from input.
func (srv *postService) CreatePost(ctx context.Context, identity *entity.User, input *usecase.PostInput) (*entity.Post, error) {
	if identity == nil || identity.ID == 0 {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("post creation requires an identity")
	}
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	post := &entity.Post{
		OwnerID:    identity.ID,
		CategoryID: input.CategoryID,
		Title:      input.Title,
		Content:    input.Content,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if err := ensureCategoryExists(ctx, repoFactory.CategoryRepo(), input.CategoryID); err != nil {
			return err
		}

		return errors.Wrap(repoFactory.PostRepo().Create(ctx, post), "failed to create post")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute create post transaction")
	}
	post.Author = identity.AsAuthor()

	srv.log(ctx).Info("Post created", slog.Int64("postID", post.ID), slog.Int64("ownerID", post.OwnerID))
	publishContentEvent(ctx, srv.publisher, srv.log(ctx), constants.EventPostCreated, post.ID, post.ID, identity.ID)

	return post, nil
}

// UpdatePost replaces title, content and category. The owner check uses the
// stored post, read in the same transaction as the write.
func (srv *postService) UpdatePost(ctx context.Context, identity *entity.User, id int64, input *usecase.PostInput) (*entity.Post, error) {
	if err := validatePostInput(input); err != nil {
		return nil, err
	}

	var updated *entity.Post
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		stored, err := postRepo.FindByID(ctx, id)
		if err != nil {
			return translateNotFound(err, repository.ErrPostNotFound, domainerrors.ErrPostNotFound, "post lookup failed")
		}

		if err := srv.guard.AuthorizeMutation(identity, stored.OwnerID); err != nil {
			return err
		}

		if err := ensureCategoryExists(ctx, repoFactory.CategoryRepo(), input.CategoryID); err != nil {
			return err
		}

		stored.Title = input.Title
		stored.Content = input.Content
		stored.CategoryID = input.CategoryID
		if err := postRepo.Update(ctx, stored); err != nil {
			return translateNotFound(err, repository.ErrPostNotFound, domainerrors.ErrPostNotFound, "post vanished during update")
		}
		updated = stored

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Post update failed", slog.Int64("postID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute update post transaction")
	}

	return updated, nil
}

// DeletePost removes the post and its comments atomically.
func (srv *postService) DeletePost(ctx context.Context, identity *entity.User, id int64) error {
	var removedComments int64
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		postRepo := repoFactory.PostRepo()

		stored, err := postRepo.FindByID(ctx, id)
		if err != nil {
			return translateNotFound(err, repository.ErrPostNotFound, domainerrors.ErrPostNotFound, "post lookup failed")
		}

		if err := srv.guard.AuthorizeMutation(identity, stored.OwnerID); err != nil {
			return err
		}

		removedComments, err = repoFactory.CommentRepo().DeleteByPost(ctx, id)
		if err != nil {
			return errors.Wrap(err, "failed to delete comments of post")
		}

		if err := postRepo.Delete(ctx, id); err != nil {
			return translateNotFound(err, repository.ErrPostNotFound, domainerrors.ErrPostNotFound, "post vanished during delete")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Post deletion failed", slog.Int64("postID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute delete post transaction")
	}

	srv.log(ctx).Info("Post deleted", slog.Int64("postID", id), slog.Int64("removedComments", removedComments))
	publishContentEvent(ctx, srv.publisher, srv.log(ctx), constants.EventPostDeleted, id, id, identity.ID)

	return nil
}

func (srv *postService) GetPostQRCode(ctx context.Context, id int64) ([]byte, error) {
	if _, err := srv.GetPost(ctx, id); err != nil {
		return nil, err
	}

	png, err := srv.qrcodeService.GeneratePostQR(id)
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate post QR code")
	}

	return png, nil
}

func validatePostInput(input *usecase.PostInput) error {
	if input == nil || input.Title == "" || input.Content == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("title and content are required")
	}

	return nil
}

func ensureCategoryExists(ctx context.Context, categoryRepo repository.CategoryRepository, categoryID *int64) error {
	if categoryID == nil {
		return nil
	}

	if _, err := categoryRepo.FindByID(ctx, *categoryID); err != nil {
		return translateNotFound(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "post references a missing category")
	}

	return nil
}
