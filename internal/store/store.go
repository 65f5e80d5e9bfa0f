// Package store persists users, instruments, market data snapshots and the
// order ledger in DuckDB. Queries are built with squirrel; the paired-order
// write runs inside a single transaction so a partial failure never leaves a
// lone leg.
package store

import (
	"database/sql"

	"github.com/Masterminds/squirrel"
	_ "github.com/marcboeker/go-duckdb"
	"go.uber.org/zap"
	"github.com/rxtech-lab/argo-broker/internal/logger"
	"github.com/rxtech-lab/argo-broker/pkg/errors"
)

// Store is the DuckDB-backed persistence layer.
type Store struct {
	db     *sql.DB
	logger *logger.Logger
	sq     squirrel.StatementBuilderType
}

// NewStore opens the database at the given path. Use ":memory:" for an
// in-memory database.
func NewStore(path string, logger *logger.Logger) (*Store, error) {
	db, err := sql.Open("duckdb", path)
	if err != nil {
		logger.Error("Failed to open database", zap.String("path", path), zap.Error(err))
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to open database", err)
	}

	return &Store{
		db:     db,
		logger: logger,
		sq:     squirrel.StatementBuilder.PlaceholderFormat(squirrel.Question),
	}, nil
}

// Initialize creates the sequences and tables if they do not exist yet.
func (s *Store) Initialize() error {
	statements := []string{
		`CREATE SEQUENCE IF NOT EXISTS users_id_seq`,
		`CREATE SEQUENCE IF NOT EXISTS instruments_id_seq`,
		`CREATE SEQUENCE IF NOT EXISTS market_data_id_seq`,
		`CREATE TABLE IF NOT EXISTS users (
			id BIGINT PRIMARY KEY DEFAULT nextval('users_id_seq'),
			email VARCHAR NOT NULL,
			account_number VARCHAR NOT NULL UNIQUE
		)`,
		`CREATE TABLE IF NOT EXISTS instruments (
			id BIGINT PRIMARY KEY DEFAULT nextval('instruments_id_seq'),
			ticker VARCHAR NOT NULL UNIQUE,
			name VARCHAR NOT NULL,
			type VARCHAR NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS market_data (
			id BIGINT PRIMARY KEY DEFAULT nextval('market_data_id_seq'),
			instrument_id BIGINT NOT NULL,
			high DOUBLE,
			low DOUBLE,
			open DOUBLE,
			close DOUBLE,
			previous_close DOUBLE NOT NULL,
			date DATE NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id VARCHAR PRIMARY KEY,
			user_id BIGINT NOT NULL,
			instrument_id BIGINT NOT NULL,
			size BIGINT NOT NULL,
			price DOUBLE NOT NULL,
			order_type VARCHAR NOT NULL,
			side VARCHAR NOT NULL,
			status VARCHAR NOT NULL,
			created_at TIMESTAMP NOT NULL
		)`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return errors.Wrap(errors.ErrCodeQueryFailed, "failed to initialize schema", err)
		}
	}

	return nil
}

// Cleanup drops all tables and sequences.
func (s *Store) Cleanup() error {
	statements := []string{
		`DROP TABLE IF EXISTS orders`,
		`DROP TABLE IF EXISTS market_data`,
		`DROP TABLE IF EXISTS instruments`,
		`DROP TABLE IF EXISTS users`,
		`DROP SEQUENCE IF EXISTS users_id_seq`,
		`DROP SEQUENCE IF EXISTS instruments_id_seq`,
		`DROP SEQUENCE IF EXISTS market_data_id_seq`,
	}

	for _, statement := range statements {
		if _, err := s.db.Exec(statement); err != nil {
			return errors.Wrap(errors.ErrCodeQueryFailed, "failed to drop schema", err)
		}
	}

	return nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
