package repository

import "context"

// TransactionManager runs multi-step writes atomically without tying the
// use cases to a specific driver.
type TransactionManager interface {
	// Execute commits when fn returns nil and rolls back otherwise. Every
	// repository obtained from the factory shares the same transaction.
	Execute(ctx context.Context, fn func(txRepoFactory RepositoryFactory) error) error
}

// RepositoryFactory hands out repositories bound to one transaction.
type RepositoryFactory interface {
	UserRepo() UserRepository
	PostRepo() PostRepository
	CommentRepo() CommentRepository
	CategoryRepo() CategoryRepository
}
