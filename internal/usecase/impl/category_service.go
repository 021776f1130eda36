package impl

import (
	"context"
	"log/slog"
	"strings"

	deliverycontext "blog/internal/delivery/context"
	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/errors"
	"blog/internal/usecase"
)

type categoryService struct {
	categoryRepo repository.CategoryRepository
	logger       *slog.Logger
}

func NewCategoryService(categoryRepo repository.CategoryRepository, logger *slog.Logger) usecase.CategoryUsecase {
	return &categoryService{
		categoryRepo: categoryRepo,
		logger:       logger,
	}
}

func (srv *categoryService) ListCategories(ctx context.Context) ([]*entity.Category, error) {
	categories, err := srv.categoryRepo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list categories")
	}

	return categories, nil
}

func (srv *categoryService) GetCategory(ctx context.Context, id int64) (*entity.Category, error) {
	category, err := srv.categoryRepo.FindByID(ctx, id)
	if err != nil {
		return nil, translateNotFound(err, repository.ErrCategoryNotFound, domainerrors.ErrCategoryNotFound, "category lookup failed")
	}

	return category, nil
}

// CreateCategory relies on the store's unique index for duplicate names.
func (srv *categoryService) CreateCategory(ctx context.Context, identity *entity.User, input *usecase.CategoryInput) (*entity.Category, error) {
	if identity == nil || identity.ID == 0 {
		return nil, domainerrors.ErrUnauthenticated.WrapMessage("category creation requires an identity")
	}

	name := ""
	if input != nil {
		name = strings.TrimSpace(input.Name)
	}
	if name == "" {
		return nil, domainerrors.ErrValidationFailed.WrapMessage("category name is required")
	}

	category := &entity.Category{Name: name}
	if err := srv.categoryRepo.Create(ctx, category); err != nil {
		return nil, errors.Wrap(err, "failed to create category")
	}

	deliverycontext.GetLoggerOrDefault(ctx, srv.logger).Info("Category created",
		slog.Int64("categoryID", category.ID),
		slog.Int64("createdBy", identity.ID),
	)

	return category, nil
}
