package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/booking-directory/internal/database"
)

// likeEscaper escapes LIKE metacharacters with '!', the escape character
// named in every LIKE clause, so a search term is matched literally.
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// likePattern builds a case-insensitive substring pattern for term.  The
// term is folded with strings.ToLower, so the column must be folded by
// lowerExpr with the same Unicode rules.
func likePattern(term string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(term)) + "%"
}

// lowerExpr lowercases column in SQL.  SQLite's built-in LOWER only
// folds ASCII, so on SQLite the Go-backed database.SQLiteLower is used;
// MySQL's LOWER already follows the utf8mb4 collation.
func lowerExpr(db *sqlx.DB, column string) string {
	if db.DriverName() == "sqlite" {
		return database.SQLiteLower + "(" + column + ")"
	}
	return "LOWER(" + column + ")"
}

func existsTx(ctx context.Context, tx *sqlx.Tx, q string, id int64) (bool, error) {
	var one int
	if err := tx.GetContext(ctx, &one, q, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, storageError("lookup", err)
	}
	return true, nil
}
