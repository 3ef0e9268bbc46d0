package blob

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql"
)

// blob_key because KEY is reserved in MySQL. 191 chars keeps the primary
// key inside the utf8mb4 index limit on older servers.
const mysqlSchema = `
CREATE TABLE IF NOT EXISTS blobs (
	blob_key   VARCHAR(191) NOT NULL PRIMARY KEY,
	value      LONGBLOB NOT NULL,
	updated_at DATETIME(3) NOT NULL
)`

// MySQLStore keeps blobs in a single MySQL table.
type MySQLStore struct {
	db *sql.DB
}

// OpenMySQL connects with dsn, checks the server is reachable and creates
// the table if needed.
func OpenMySQL(ctx context.Context, dsn string) (*MySQLStore, error) {
	cfg, err := mysql.ParseDSN(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse mysql dsn: %w", err)
	}
	cfg.ParseTime = true
	if cfg.Timeout == 0 {
		cfg.Timeout = 5 * time.Second
	}

	connector, err := mysql.NewConnector(cfg)
	if err != nil {
		return nil, fmt.Errorf("mysql connector: %w", err)
	}
	db := sql.OpenDB(connector)
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to mysql %s: %w", cfg.Addr, err)
	}
	if _, err := db.ExecContext(ctx, mysqlSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}
	return &MySQLStore{db: db}, nil
}

func (s *MySQLStore) Get(ctx context.Context, key string) ([]byte, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, `SELECT value FROM blobs WHERE blob_key = ?`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("select %s: %w", key, err)
	}
	return value, nil
}

func (s *MySQLStore) Set(ctx context.Context, key string, value []byte) error {
	if value == nil {
		value = []byte{}
	}
	_, err := s.db.ExecContext(ctx, `
INSERT INTO blobs (blob_key, value, updated_at) VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE
	value = VALUES(value),
	updated_at = VALUES(updated_at)`,
		key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert %s: %w", key, err)
	}
	return nil
}

func (s *MySQLStore) Close() error { return s.db.Close() }
