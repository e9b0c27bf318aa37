package mysql

import (
	"errors"
	"strings"

	gomysql "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const mysqlDuplicateEntry = 1062

// uniqueViolation reports whether err is a duplicate-key error and returns
// whatever names the offending index or column: the MySQL message, the
// PostgreSQL constraint name, or the SQLite message.
func uniqueViolation(err error) (string, bool) {
	if err == nil {
		return "", false
	}
	var myErr *gomysql.MySQLError
	if errors.As(err, &myErr) && myErr.Number == mysqlDuplicateEntry {
		return myErr.Message, true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return pgErr.ConstraintName, true
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return "", true
	}
	if msg := err.Error(); strings.Contains(msg, "UNIQUE constraint failed") {
		return msg, true
	}
	return "", false
}

// violates reports a duplicate on the index or column named by key.
func violates(err error, key string) bool {
	where, ok := uniqueViolation(err)
	return ok && strings.Contains(where, key)
}

func notFound(err error, sentinel error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return sentinel
	}
	return err
}
