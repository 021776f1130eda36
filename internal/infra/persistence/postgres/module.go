package postgres

import "go.uber.org/fx"

// Module opens the database and provides the gorm-backed repositories.
var Module = fx.Options(
	fx.Provide(
		New,
		NewTransactionManager,
		NewUserRepository,
		NewPostRepository,
		NewCommentRepository,
		NewCategoryRepository,
	),
)
