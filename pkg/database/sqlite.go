package database

import (
	"fmt"
	"net/url"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/inkyard/petstock-api/pkg/config"
)

// NewSQLite opens the local record-store database file. The store is
// single-process and single-writer, so the pool is pinned to one
// connection and every commit is fully synchronous.
func NewSQLite(cfg config.StoreConfig) (*sqlx.DB, error) {
	dsn := fmt.Sprintf("file:%s?%s", cfg.Path, url.Values{
		"_pragma": []string{
			"journal_mode(WAL)",
			"synchronous(FULL)",
			"busy_timeout(5000)",
		},
	}.Encode())

	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}
