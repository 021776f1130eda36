package postgres

import (
	"strings"

	"blog/internal/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// PostgreSQL SQLSTATE codes for integrity constraint violations.
const (
	pgNotNullViolation    = "23502"
	pgForeignKeyViolation = "23503"
	pgUniqueViolation     = "23505"
	pgCheckViolation      = "23514"
)

// asPgError unwraps the driver error when GORM did not translate it.
func asPgError(err error) (*pgconn.PgError, bool) {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr, true
	}

	return nil, false
}

func hasPgCode(err error, code string) bool {
	pgErr, ok := asPgError(err)

	return ok && pgErr.Code == code
}

func isUniqueConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || hasPgCode(err, pgUniqueViolation)
}

func isForeignKeyConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrForeignKeyViolated) || hasPgCode(err, pgForeignKeyViolation)
}

func isNotNullConstraintViolation(err error) bool {
	return hasPgCode(err, pgNotNullViolation)
}

func isCheckConstraintViolation(err error) bool {
	return errors.Is(err, gorm.ErrCheckConstraintViolated) || hasPgCode(err, pgCheckViolation)
}

// violatedConstraintMentions reports whether the violated constraint's name
// contains fragment, e.g. "category" for posts_category_id_fkey.
func violatedConstraintMentions(err error, fragment string) bool {
	pgErr, ok := asPgError(err)
	if !ok {
		return false
	}

	return strings.Contains(pgErr.ConstraintName, fragment)
}
