package memory

import (
	"context"
	"sort"

	"blog/internal/domain/entity"
	domainerrors "blog/internal/domain/errors"
	"blog/internal/domain/repository"
)

type userRepository struct {
	s *scope
}

func (repo *userRepository) FindByID(_ context.Context, id int64) (*entity.User, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	user, ok := repo.s.data.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}

	return copyUser(user), nil
}

func (repo *userRepository) FindByUsername(_ context.Context, username string) (*entity.User, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	for _, user := range repo.s.data.users {
		if user.Username == username {
			return copyUser(user), nil
		}
	}

	return nil, repository.ErrUserNotFound
}

func (repo *userRepository) Create(_ context.Context, user *entity.User) error {
	if user.Username == "" {
		return domainerrors.ErrValidationFailed.WrapMessage("username is required")
	}

	repo.s.mu.Lock()
	defer repo.s.mu.Unlock()

	for _, existing := range repo.s.data.users {
		if existing.Username == user.Username {
			return domainerrors.ErrUsernameTaken.WrapMessage("username already exists")
		}
	}

	repo.s.data.userSeq++
	user.ID = repo.s.data.userSeq
	user.CreatedAt = repo.s.now()
	repo.s.data.users[user.ID] = copyUser(user)

	return nil
}

func (repo *userRepository) List(_ context.Context) ([]*entity.User, error) {
	repo.s.mu.RLock()
	defer repo.s.mu.RUnlock()

	users := make([]*entity.User, 0, len(repo.s.data.users))
	for _, user := range repo.s.data.users {
		users = append(users, copyUser(user))
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })

	return users, nil
}
