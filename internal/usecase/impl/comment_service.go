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

type commentService struct {
	txManager   repository.TransactionManager
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	guard       service.OwnershipGuard
	publisher   service.EventPublisher
	logger      *slog.Logger
}

// CommentServiceParams holds dependencies for CommentService, injected by Fx.
type CommentServiceParams struct {
	fx.In

	TxManager   repository.TransactionManager
	PostRepo    repository.PostRepository
	CommentRepo repository.CommentRepository
	Guard       service.OwnershipGuard
	Publisher   service.EventPublisher
	Logger      *slog.Logger
}

func NewCommentService(params CommentServiceParams) usecase.CommentUsecase {
	return &commentService{
		txManager:   params.TxManager,
		postRepo:    params.PostRepo,
		commentRepo: params.CommentRepo,
		guard:       params.Guard,
		publisher:   params.Publisher,
		logger:      params.Logger,
	}
}

func (srv *commentService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// ListComments fails with ErrPostNotFound for an unknown post rather than
// returning an empty list.
func (srv *commentService) ListComments(ctx context.Context, postID int64) ([]*entity.Comment, error) {
	if _, err := srv.postRepo.FindByID(ctx, postID); err != nil {
		return nil, translateNotFound(err, repository.ErrPostNotFound, domainerrors.ErrPostNotFound, "post lookup failed")
	}

	comments, err := srv.commentRepo.ListByPost(ctx, postID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list comments")
	}

	return comments, nil
}

func (srv *commentService) CreateComment(ctx context.Context, identity *entity.User, postID int64, input *usecase.CommentInput) (*entity.Comment, error) {
	if identity == nil || identity.ID == 0 {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("comment creation requires an identity")
	}
	if input == nil || input.Content == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("content is required")
	}

	comment := &entity.Comment{
		OwnerID: identity.ID,
		PostID:  postID,
		Content: input.Content,
	}

	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		if _, err := repoFactory.PostRepo().FindByID(ctx, postID); err != nil {
			return translateNotFound(err, repository.ErrPostNotFound, domainerrors.ErrPostNotFound, "post lookup failed")
		}

		return errors.Wrap(repoFactory.CommentRepo().Create(ctx, comment), "failed to create comment")
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to execute create comment transaction")
	}
	comment.Author = identity.AsAuthor()

	srv.log(ctx).Info("Comment created", slog.Int64("commentID", comment.ID), slog.Int64("postID", postID))
	publishContentEvent(ctx, srv.publisher, srv.log(ctx), constants.EventCommentCreated, comment.ID, postID, identity.ID)

	return comment, nil
}

func (srv *commentService) UpdateComment(ctx context.Context, identity *entity.User, id int64, input *usecase.CommentInput) (*entity.Comment, error) {
	if input == nil || input.Content == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("content is required")
	}

	var updated *entity.Comment
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		commentRepo := repoFactory.CommentRepo()

		stored, err := commentRepo.FindByID(ctx, id)
		if err != nil {
			return translateNotFound(err, repository.ErrCommentNotFound, domainerrors.ErrCommentNotFound, "comment lookup failed")
		}

		if err := srv.guard.AuthorizeMutation(identity, stored.OwnerID); err != nil {
			return err
		}

		stored.Content = input.Content
		if err := commentRepo.Update(ctx, stored); err != nil {
			return translateNotFound(err, repository.ErrCommentNotFound, domainerrors.ErrCommentNotFound, "comment vanished during update")
		}
		updated = stored

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Comment update failed", slog.Int64("commentID", id), slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to execute update comment transaction")
	}

	return updated, nil
}

func (srv *commentService) DeleteComment(ctx context.Context, identity *entity.User, id int64) error {
	err := srv.txManager.Execute(ctx, func(repoFactory repository.RepositoryFactory) error {
		commentRepo := repoFactory.CommentRepo()

		stored, err := commentRepo.FindByID(ctx, id)
		if err != nil {
			return translateNotFound(err, repository.ErrCommentNotFound, domainerrors.ErrCommentNotFound, "comment lookup failed")
		}

		if err := srv.guard.AuthorizeMutation(identity, stored.OwnerID); err != nil {
			return err
		}

		if err := commentRepo.Delete(ctx, id); err != nil {
			return translateNotFound(err, repository.ErrCommentNotFound, domainerrors.ErrCommentNotFound, "comment vanished during delete")
		}

		return nil
	})
	if err != nil {
		srv.log(ctx).Warn("Comment deletion failed", slog.Int64("commentID", id), slog.Any("error", err))

		return errors.Wrap(err, "failed to execute delete comment transaction")
	}

	srv.log(ctx).Info("Comment deleted", slog.Int64("commentID", id))

	return nil
}
