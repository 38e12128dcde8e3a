// Package store is the argument graph's durable metadata store: the
// relational half of the module's two-store coupling. It persists
// opinion/link/debate bookkeeping (content, logic/node type, creator,
// timestamps, debate membership) through database/sql against a
// MySQL-wire-protocol backend; it never holds scores, which live only in
// the in-memory graph.Graph.
//
// sql.Open("mysql", dsn) opens the connection; an idempotent
// CREATE TABLE IF NOT EXISTS migration runs once at startup, and the pool
// is tuned via SetMaxOpenConns/SetMaxIdleConns/SetConnMaxLifetime.
//
// The DSN must carry multiStatements=true (a documented go-sql-driver/mysql
// parameter) so the embedded schema migrates in one ExecContext call;
// config.Storage.DSN's default includes it.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"github.com/opendebate/argraph/config"
)

// Store wraps a *sql.DB holding the argument graph's relational tables.
type Store struct {
	db *sql.DB
}

// Open connects to dsn and runs the schema migration. The caller owns the
// returned Store's lifetime and must call Close.
func Open(ctx context.Context, cfg config.Storage) (*Store, error) {
	db, err := sql.Open("mysql", cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("store: open: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(config.ConnMaxLifetime())

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("store: ping: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the underlying connection pool.
func (s *Store) Close() error {
	return s.db.Close()
}

const schema = `
CREATE TABLE IF NOT EXISTS debates (
	id         VARCHAR(64)  PRIMARY KEY,
	name       VARCHAR(255) NOT NULL,
	creator    VARCHAR(255) NOT NULL,
	is_all     BOOLEAN      NOT NULL DEFAULT FALSE,
	created_at BIGINT       NOT NULL
);

CREATE TABLE IF NOT EXISTS opinions (
	id         VARCHAR(64)  PRIMARY KEY,
	content    TEXT         NOT NULL,
	logic_type VARCHAR(8)   NOT NULL,
	node_type  VARCHAR(8)   NOT NULL,
	creator    VARCHAR(255) NOT NULL,
	created_at BIGINT       NOT NULL
);

CREATE TABLE IF NOT EXISTS links (
	id         VARCHAR(64) PRIMARY KEY,
	from_id    VARCHAR(64) NOT NULL,
	to_id      VARCHAR(64) NOT NULL,
	link_type  VARCHAR(8)  NOT NULL,
	creator    VARCHAR(255) NOT NULL,
	created_at BIGINT      NOT NULL
);

CREATE TABLE IF NOT EXISTS opinion_debates (
	opinion_id VARCHAR(64) NOT NULL,
	debate_id  VARCHAR(64) NOT NULL,
	PRIMARY KEY (opinion_id, debate_id)
);
`

func (s *Store) migrate(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("store: migrate: %w", err)
	}
	return nil
}

// MillisSince is the created_at convention this module uses: milliseconds
// since epoch. Callers pass an explicit timestamp rather than this package
// calling time.Now() itself, so tests stay deterministic. Outside its own
// test nothing in this module calls this helper.
func MillisSince(t time.Time) int64 {
	return t.UnixMilli()
}
