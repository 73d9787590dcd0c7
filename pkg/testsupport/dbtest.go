package testsupport

import (
	"database/sql"
	"fmt"
	"sync/atomic"

	_ "github.com/mattn/go-sqlite3"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"
)

var memoryDBCounter atomic.Int64

// NewSQLiteMemoryDB opens a private in-memory sqlite database. Each call gets a
// distinct database so parallel tests never share tables.
func NewSQLiteMemoryDB() (*sql.DB, error) {
	name := fmt.Sprintf("file:pagebuilder_%d?mode=memory&cache=shared&_fk=1", memoryDBCounter.Add(1))
	db, err := sql.Open("sqlite3", name)
	if err != nil {
		return nil, err
	}
	db.SetMaxOpenConns(1)
	return db, nil
}

// NewBunDB wraps a fresh in-memory sqlite database with the bun sqlite dialect.
func NewBunDB() (*bun.DB, error) {
	sqldb, err := NewSQLiteMemoryDB()
	if err != nil {
		return nil, err
	}
	return bun.NewDB(sqldb, sqlitedialect.New()), nil
}
