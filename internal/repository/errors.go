package repository

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// ErrForeignKeyViolation is returned when a write is rejected because it
// would break the books.author_id -> authors.id reference.
var ErrForeignKeyViolation = errors.New("foreign key violation")

const pgForeignKeyViolation = "23503"

// translateError maps driver specific failures onto repository sentinels.
// gorm's TranslateError covers most cases; the pgconn and SQLite checks catch
// errors that reach us untranslated.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	}

	if strings.Contains(err.Error(), "FOREIGN KEY constraint failed") {
		return fmt.Errorf("%w: %w", ErrForeignKeyViolation, err)
	}

	return err
}
