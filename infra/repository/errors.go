package repository

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// pgUniqueViolation is the postgres SQLSTATE for unique-constraint errors.
const pgUniqueViolation = "23505"

// isUniqueViolation reports whether err is a unique-constraint violation,
// either as a raw pg error or as gorm's translated sentinel.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
