package postgres

import (
	"testing"

	"blog/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestConstraintViolationHelpers(t *testing.T) {
	unique := errors.Wrap(&pgconn.PgError{Code: pgUniqueViolation, ConstraintName: "users_username_key"}, "insert")
	foreignKey := &pgconn.PgError{Code: pgForeignKeyViolation, ConstraintName: "posts_category_id_fkey"}
	notNull := &pgconn.PgError{Code: pgNotNullViolation}
	check := &pgconn.PgError{Code: pgCheckViolation}
	plain := errors.New("connection refused")

	assert.True(t, isUniqueConstraintViolation(unique))
	assert.True(t, isUniqueConstraintViolation(gorm.ErrDuplicatedKey))
	assert.False(t, isUniqueConstraintViolation(foreignKey))

	assert.True(t, isForeignKeyConstraintViolation(foreignKey))
	assert.True(t, isForeignKeyConstraintViolation(gorm.ErrForeignKeyViolated))
	assert.False(t, isForeignKeyConstraintViolation(plain))

	assert.True(t, isNotNullConstraintViolation(notNull))
	assert.False(t, isNotNullConstraintViolation(plain))

	assert.True(t, isCheckConstraintViolation(check))
	assert.True(t, isCheckConstraintViolation(gorm.ErrCheckConstraintViolated))

	assert.True(t, violatedConstraintMentions(foreignKey, "category"))
	assert.False(t, violatedConstraintMentions(foreignKey, "owner"))
	assert.False(t, violatedConstraintMentions(plain, "category"))
}
