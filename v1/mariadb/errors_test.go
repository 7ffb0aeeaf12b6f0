package mariadb

import (
	"context"
	"errors"
	"testing"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Aleph-Alpha/orm/v1/connector"
)

func mysqlError(number uint16, msg string) error {
	return connector.Wrap("mysql", "exec", "INSERT ...", &mysql.MySQLError{Number: number, Message: msg})
}

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil))

	tests := []struct {
		name     string
		err      error
		sentinel error
		category ErrorCategory
		retry    bool
	}{
		{"Duplicate", mysqlError(1062, "Duplicate entry '1' for key 'PRIMARY'"), ErrDuplicateKey, CategoryConstraint, false},
		{"ParentRow", mysqlError(1451, "Cannot delete or update a parent row"), ErrForeignKey, CategoryConstraint, false},
		{"ChildRow", mysqlError(1452, "Cannot add or update a child row"), ErrForeignKey, CategoryConstraint, false},
		{"NoSuchTable", mysqlError(1146, "Table 'shop.Missing' doesn't exist"), ErrUndefinedTable, CategoryNotFound, false},
		{"Parse", mysqlError(1064, "You have an error in your SQL syntax"), ErrSyntax, CategoryStatement, false},
		{"Deadlock", mysqlError(1213, "Deadlock found when trying to get lock"), ErrDeadlock, CategoryConcurrency, true},
		{"LockWait", mysqlError(1205, "Lock wait timeout exceeded"), ErrLockTimeout, CategoryConcurrency, true},
		{"InvalidConn", mysql.ErrInvalidConn, ErrConnection, CategoryConnection, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TranslateError(tt.err)
			assert.ErrorIs(t, got, tt.sentinel)
			assert.Equal(t, tt.err.Error(), got.Error())
			assert.Equal(t, tt.category, GetErrorCategory(tt.err))
			assert.Equal(t, tt.retry, IsRetryable(tt.err))
		})
	}

	var myErr *mysql.MySQLError
	require.True(t, errors.As(TranslateError(mysqlError(1062, "dup")), &myErr))
	assert.EqualValues(t, 1062, myErr.Number)

	other := errors.New("other")
	assert.Same(t, other, TranslateError(other))
	assert.False(t, IsRetryable(other))
	assert.True(t, IsRetryable(context.DeadlineExceeded))
}

func TestDSN(t *testing.T) {
	dsn, err := DSN(Config{Connection: Connection{
		Host: "db", Port: "3306", User: "root", Password: "secret", DbName: "shop", ParseTime: true, Loc: "UTC",
	}})
	require.NoError(t, err)

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "db:3306", parsed.Addr)
	assert.Equal(t, "shop", parsed.DBName)
	assert.True(t, parsed.ParseTime)
	assert.Contains(t, dsn, "charset=utf8mb4")

	_, err = DSN(Config{Connection: Connection{Loc: "Not/AZone"}})
	assert.Error(t, err)
}
