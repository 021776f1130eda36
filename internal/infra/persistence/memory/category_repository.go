package memory

import (
	"context"
	"sort"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
)

type categoryRepository struct {
	s *scope
}

func (repo *categoryRepository) FindByID(_ context.Context, id int64) (*entity.Category, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	category, ok := repo.s.data.categories[id]
	if !ok {
		return nil, repository.ErrCategoryNotFound
	}
	cp := *category

	return &cp, nil
}

func (repo *categoryRepository) List(_ context.Context) ([]*entity.Category, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	categories := make([]*entity.Category, 0, len(repo.s.data.categories))
	for _, category := range repo.s.data.categories {
		cp := *category
		categories = append(categories, &cp)
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].Name < categories[j].Name })

	return categories, nil
}

func (repo *categoryRepository) Create(_ context.Context, category *entity.Category) error {
	if category.Name == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("category name is required")
	}

	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	for _, existing := range repo.s.data.categories {
		if existing.Name == category.Name {
			return domainerrors.ErrCategoryAlreadyExists.WrapMessage("category name already exists")
		}
	}

	repo.s.data.categorySeq++
	category.ID = repo.s.data.categorySeq
	cp := *category
	repo.s.data.categories[category.ID] = &cp

	return nil
}
