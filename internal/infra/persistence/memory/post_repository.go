package memory

import (
	"context"
	"sort"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
)

type postRepository struct {
	s *scope
}

func (repo *postRepository) FindByID(_ context.Context, id int64) (*entity.Post, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	post, ok := repo.s.data.posts[id]
	if !ok {
		return nil, repository.ErrPostNotFound
	}

	return repo.withAuthor(post), nil
}

func (repo *postRepository) List(_ context.Context, filter entity.PostFilter) ([]*entity.Post, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	posts := make([]*entity.Post, 0, len(repo.s.data.posts))
	for _, post := range repo.s.data.posts {
		if filter.OwnerID != 0 && post.OwnerID != filter.OwnerID {
			continue
		}
		if filter.CategoryID != 0 && (post.CategoryID == nil || *post.CategoryID != filter.CategoryID) {
			continue
		}
		posts = append(posts, repo.withAuthor(post))
	}
	sort.Slice(posts, func(i, j int) bool {
		if !posts[i].CreatedAt.Equal(posts[j].CreatedAt) {
			return posts[i].CreatedAt.After(posts[j].CreatedAt)
		}

		return posts[i].ID > posts[j].ID
	})

	return page(posts, filter.Offset, filter.Limit), nil
}

func page[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return items[:0]
	}
	if offset > 0 {
		items = items[offset:]
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}

func (repo *postRepository) Create(_ context.Context, post *entity.Post) error {
	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	if _, ok := repo.s.data.users[post.OwnerID]; !ok {
		return domainerrors.ErrUserNotFound.WrapMessage("post owner does not exist")
	}
	if err := repo.checkCategory(post.CategoryID); err != nil {
		return err
	}

	now := repo.s.now()
	repo.s.data.postSeq++
	post.ID = repo.s.data.postSeq
	post.CreatedAt = now
	post.UpdatedAt = now
	repo.s.data.posts[post.ID] = copyPost(post)

	return nil
}

func (repo *postRepository) Update(_ context.Context, post *entity.Post) error {
	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	stored, ok := repo.s.data.posts[post.ID]
	if !ok {
		return repository.ErrPostNotFound
	}
	if err := repo.checkCategory(post.CategoryID); err != nil {
		return err
	}

	updated := copyPost(stored)
	updated.Title = post.Title
	updated.Content = post.Content
	updated.CategoryID = copyPost(post).CategoryID
	updated.UpdatedAt = repo.s.now()
	repo.s.data.posts[post.ID] = updated

	post.UpdatedAt = updated.UpdatedAt

	return nil
}

// Delete cascades to the post's comments like the SQL schema does.
func (repo *postRepository) Delete(_ context.Context, id int64) error {
	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	if _, ok := repo.s.data.posts[id]; !ok {
		return repository.ErrPostNotFound
	}
	delete(repo.s.data.posts, id)
	for commentID, comment := range repo.s.data.comments {
		if comment.PostID == id {
			delete(repo.s.data.comments, commentID)
		}
	}

	return nil
}

func (repo *postRepository) checkCategory(categoryID *int64) error {
	if categoryID == nil {
		return nil
	}
	if _, ok := repo.s.data.categories[*categoryID]; !ok {
		return domainerrors.ErrCategoryNotFound.WrapMessage("post references a missing category")
	}

	return nil
}

func (repo *postRepository) withAuthor(post *entity.Post) *entity.Post {
	out := copyPost(post)
	out.Author = repo.s.data.authorOf(post.OwnerID)

	return out
}
