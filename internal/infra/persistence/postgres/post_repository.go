package postgres

import (
	"context"
	"time"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
	"blog/internal/errors"
	"blog/internal/infra/persistence/model"

	"gorm.io/gorm"
)

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) repository.PostRepository {
	return &postRepository{db: db}
}

func (repo *postRepository) FindByID(ctx context.Context, id int64) (*entity.Post, error) {
	var postM model.PostModel
	if err := repo.db.WithContext(ctx).Preload("Owner").First(&postM, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, repository.ErrPostNotFound
		}

		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to find post by id")
	}

	return toPostDomain(&postM), nil
}

// List returns newest posts first.
func (repo *postRepository) List(ctx context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	query := repo.db.WithContext(ctx).Preload("Owner").Order("created_at DESC, id DESC")
	if filter.OwnerID != 0 {
		query = query.Where("owner_id = ?", filter.OwnerID)
	}
	if filter.CategoryID != 0 {
		query = query.Where("category_id = ?", filter.CategoryID)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var postMs []*model.PostModel
	if err := query.Find(&postMs).Error; err != nil {
		return nil, domainerrors.NewDatabaseExecuteError(err, "failed to list posts")
	}

	posts := make([]*entity.Post, 0, len(postMs))
	for _, postM := range postMs {
		posts = append(posts, toPostDomain(postM))
	}

	return posts, nil
}

func (repo *postRepository) Create(ctx context.Context, post *entity.Post) error {
	postM := fromPostDomain(post)

	if err := repo.db.WithContext(ctx).Omit("Owner").Create(postM).Error; err != nil {
		return translatePostWriteError(err, "failed to create post")
	}

	post.ID = postM.ID
	post.CreatedAt = postM.CreatedAt
	post.UpdatedAt = postM.UpdatedAt

	return nil
}

func (repo *postRepository) Update(ctx context.Context, post *entity.Post) error {
	now := time.Now()
	result := repo.db.WithContext(ctx).
		Model(&model.PostModel{}).
		Where("id = ?", post.ID).
		Updates(map[string]any{
			"title":       post.Title,
			"content":     post.Content,
			"category_id": post.CategoryID,
			"updated_at":  now,
		})
	if result.Error != nil {
		return translatePostWriteError(result.Error, "failed to update post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	post.UpdatedAt = now

	return nil
}

func (repo *postRepository) Delete(ctx context.Context, id int64) error {
	result := repo.db.WithContext(ctx).Delete(&model.PostModel{}, id)
	if result.Error != nil {
		return domainerrors.NewDatabaseExecuteError(result.Error, "failed to delete post")
	}
	if result.RowsAffected == 0 {
		return repository.ErrPostNotFound
	}

	return nil
}

func translatePostWriteError(err error, details string) error {
	switch {
	case isForeignKeyConstraintViolation(err) && violatedConstraintMentions(err, "category"):
		return domainerrors.ErrCategoryNotFound.WrapMessage("post references a missing category")
	case isForeignKeyConstraintViolation(err):
		return domainerrors.ErrUserNotFound.WrapMessage("post owner does not exist")
	case isNotNullConstraintViolation(err) || isCheckConstraintViolation(err):
		return domainerrors.ErrValidationFailed.WrapMessage("title and content are required")
	default:
		return domainerrors.NewDatabaseExecuteError(err, details)
	}
}

func toPostDomain(data *model.PostModel) *entity.Post {
	if data == nil {
		return nil
	}

	return &entity.Post{
		ID:         data.ID,
		OwnerID:    data.OwnerID,
		CategoryID: data.CategoryID,
		Title:      data.Title,
		Content:    data.Content,
		Author:     toAuthor(data.Owner),
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}

func fromPostDomain(data *entity.Post) *model.PostModel {
	return &model.PostModel{
		ID:         data.ID,
		OwnerID:    data.OwnerID,
		CategoryID: data.CategoryID,
		Title:      data.Title,
		Content:    data.Content,
		CreatedAt:  data.CreatedAt,
		UpdatedAt:  data.UpdatedAt,
	}
}
