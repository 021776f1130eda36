package memory

import (
	"context"
	"sort"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
)

type commentRepository struct {
	s *scope
}

func (repo *commentRepository) FindByID(_ context.Context, id int64) (*entity.Comment, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	comment, ok := repo.s.data.comments[id]
	if !ok {
		return nil, repository.ErrCommentNotFound
	}

	return repo.withAuthor(comment), nil
}

func (repo *commentRepository) ListByPost(_ context.Context, postID int64) ([]*entity.Comment, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	comments := make([]*entity.Comment, 0)
	for _, comment := range repo.s.data.comments {
		if comment.PostID == postID {
			comments = append(comments, repo.withAuthor(comment))
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if !comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].CreatedAt.Before(comments[j].CreatedAt)
		}

		return comments[i].ID < comments[j].ID
	})

	return comments, nil
}

func (repo *commentRepository) Create(_ context.Context, comment *entity.Comment) error {
	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	if _, ok := repo.s.data.posts[comment.PostID]; !ok {
		return domainerrors.ErrPostNotFound.WrapMessage("comment references a missing post")
	}
	if _, ok := repo.s.data.users[comment.OwnerID]; !ok {
		return domainerrors.ErrUserNotFound.WrapMessage("comment owner does not exist")
	}

	now := repo.s.now()
	repo.s.data.commentSeq++
	comment.ID = repo.s.data.commentSeq
	comment.CreatedAt = now
	comment.UpdatedAt = now
	repo.s.data.comments[comment.ID] = copyComment(comment)

	return nil
}

func (repo *commentRepository) Update(_ context.Context, comment *entity.Comment) error {
	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	stored, ok := repo.s.data.comments[comment.ID]
	if !ok {
		return repository.ErrCommentNotFound
	}

	updated := copyComment(stored)
	updated.Content = comment.Content
	updated.UpdatedAt = repo.s.now()
	repo.s.data.comments[comment.ID] = updated

	comment.UpdatedAt = updated.UpdatedAt

	return nil
}

func (repo *commentRepository) Delete(_ context.Context, id int64) error {
	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	if _, ok := repo.s.data.comments[id]; !ok {
		return repository.ErrCommentNotFound
	}
	delete(repo.s.data.comments, id)

	return nil
}

func (repo *commentRepository) DeleteByPost(_ context.Context, postID int64) (int64, error) {
	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	var deleted int64
	for id, comment := range repo.s.data.comments {
		if comment.PostID == postID {
			delete(repo.s.data.comments, id)
			deleted++
		}
	}

	return deleted, nil
}

func (repo *commentRepository) withAuthor(comment *entity.Comment) *entity.Comment {
	out := copyComment(comment)
	out.Author = repo.s.data.authorOf(comment.OwnerID)

	return out
}
