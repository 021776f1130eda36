// Package memory implements the repository contracts on process memory. It
// backs local runs with store.driver=memory and the end-to-end tests.
package memory

import (
	"context"
	"sync"
	"time"

	"blog/internal/domain/entity"
	"blog/internal/domain/repository"
)

// rwLocker is satisfied by *sync.RWMutex and by nopLocker.
type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// nopLocker is used inside Execute, where the store lock is already held.
type nopLocker struct{}

func (nopLocker) Lock()    {}
func (nopLocker) Unlock()  {}
func (nopLocker) RLock()   {}
func (nopLocker) RUnlock() {}

// dataset is the full state of the store. Sequences behave like BIGSERIAL.
type dataset struct {
	users      map[int64]*entity.User
	posts      map[int64]*entity.Post
	comments   map[int64]*entity.Comment
	categories map[int64]*entity.Category

	userSeq     int64
	postSeq     int64
	commentSeq  int64
	categorySeq int64
}

func newDataset() *dataset {
	return &dataset{
		users:      map[int64]*entity.User{},
		posts:      map[int64]*entity.Post{},
		comments:   map[int64]*entity.Comment{},
		categories: map[int64]*entity.Category{},
	}
}

func (d *dataset) clone() *dataset {
	out := &dataset{
		users:       make(map[int64]*entity.User, len(d.users)),
		posts:       make(map[int64]*entity.Post, len(d.posts)),
		comments:    make(map[int64]*entity.Comment, len(d.comments)),
		categories:  make(map[int64]*entity.Category, len(d.categories)),
		userSeq:     d.userSeq,
		postSeq:     d.postSeq,
		commentSeq:  d.commentSeq,
		categorySeq: d.categorySeq,
	}
	for id, u := range d.users {
		out.users[id] = copyUser(u)
	}
	for id, p := range d.posts {
		out.posts[id] = copyPost(p)
	}
	for id, c := range d.comments {
		out.comments[id] = copyComment(c)
	}
	for id, c := range d.categories {
		cp := *c
		out.categories[id] = &cp
	}

	return out
}

// scope binds repositories to a dataset and the lock guarding it.
type scope struct {
	mu   rwLocker
	data *dataset
	now  func() time.Time
}

// Store holds every entity in maps guarded by one RWMutex.
type Store struct {
	mu   sync.RWMutex
	data *dataset
	now  func() time.Time
}

func NewStore() *Store {
	return &Store{
		data: newDataset(),
		now:  time.Now,
	}
}

func (s *Store) scope() *scope {
	return &scope{mu: &s.mu, data: s.data, now: s.now}
}

func (s *Store) UserRepo() repository.UserRepository {
	return &userRepository{s: s.scope()}
}

func (s *Store) PostRepo() repository.PostRepository {
	return &postRepository{s: s.scope()}
}

func (s *Store) CommentRepo() repository.CommentRepository {
	return &commentRepository{s: s.scope()}
}

func (s *Store) CategoryRepo() repository.CategoryRepository {
	return &categoryRepository{s: s.scope()}
}

type txFactory struct {
	s *scope
}

func (f *txFactory) UserRepo() repository.UserRepository {
	return &userRepository{s: f.s}
}

func (f *txFactory) PostRepo() repository.PostRepository {
	return &postRepository{s: f.s}
}

func (f *txFactory) CommentRepo() repository.CommentRepository {
	return &commentRepository{s: f.s}
}

func (f *txFactory) CategoryRepo() repository.CategoryRepository {
	return &categoryRepository{s: f.s}
}

type transactionManager struct {
	store *Store
}

func NewTransactionManager(store *Store) repository.TransactionManager {
	return &transactionManager{store: store}
}

// Execute runs fn against a copy of the store under the write lock and
// publishes the copy only when fn succeeds. Transactions are serialized.
func (tm *transactionManager) Execute(ctx context.Context, fn func(txRepoFactory repository.RepositoryFactory) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	tm.store.mu.Lock()
	defer tm.store.mu.Unlock()

	working := tm.store.data.clone()
	if err := fn(&txFactory{s: &scope{mu: nopLocker{}, data: working, now: tm.store.now}}); err != nil {
		return err
	}

	*tm.store.data = *working

	return nil
}

func copyUser(u *entity.User) *entity.User {
	if u == nil {
		return nil
	}
	cp := *u

	return &cp
}

func copyPost(p *entity.Post) *entity.Post {
	if p == nil {
		return nil
	}
	cp := *p
	if p.CategoryID != nil {
		categoryID := *p.CategoryID
		cp.CategoryID = &categoryID
	}
	cp.Author = nil

	return &cp
}

func copyComment(c *entity.Comment) *entity.Comment {
	if c == nil {
		return nil
	}
	cp := *c
	cp.Author = nil

	return &cp
}

// authorOf resolves the owner summary. Callers hold the read lock.
func (d *dataset) authorOf(ownerID int64) *entity.Author {
	return d.users[ownerID].AsAuthor()
}
