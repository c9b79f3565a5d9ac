package repository

import (
	"github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// ErrDuplicate 主键冲突，即并发请求已写入同一行
var ErrDuplicate = errors.New("duplicate key")

const (
	mysqlDuplicateEntry   = 1062
	postgresUniqueViolate = "23505"
)

// isDuplicateError 兼容 gorm 翻译后的错误与驱动原始错误
func isDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == postgresUniqueViolate {
		return true
	}
	return false
}
