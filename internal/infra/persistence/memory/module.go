package memory

import (
	"blog/internal/domain/repository"

	"go.uber.org/fx"
)

// Module provides every repository contract from one shared Store.
var Module = fx.Options(
	fx.Provide(
		NewStore,
		NewTransactionManager,
		func(s *Store) repository.UserRepository { return s.UserRepo() },
		func(s *Store) repository.PostRepository { return s.PostRepo() },
		func(s *Store) repository.CommentRepository { return s.CommentRepo() },
		func(s *Store) repository.CategoryRepository { return s.CategoryRepo() },
	),
)
