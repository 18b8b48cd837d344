package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ErrNotFound is returned when a row does not exist or is owned by a
// different user. The two cases are deliberately indistinguishable.
var ErrNotFound = errors.New("not found")

// DB is the subset of pgxpool.Pool the store uses. Declared as an
// interface so tests can substitute a mock pool.
type DB interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresStore handles user, expense and budget CRUD against PostgreSQL.
// Every expense/budget statement is constrained by the owning user id.
type PostgresStore struct {
	db DB
}

func NewPostgresStore(db DB) *PostgresStore {
	return &PostgresStore{db: db}
}

// Migrate creates the tables if they don't exist.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id         BIGSERIAL    PRIMARY KEY,
			full_name  VARCHAR(255) NOT NULL,
			email      VARCHAR(255) UNIQUE NOT NULL,
			username   VARCHAR(50)  UNIQUE NOT NULL,
			password   VARCHAR(255) NOT NULL,
			created_at TIMESTAMPTZ  DEFAULT NOW()
		)`,
		`CREATE TABLE IF NOT EXISTS expenses (
			expense_id  BIGSERIAL     PRIMARY KEY,
			user_id     BIGINT        NOT NULL REFERENCES users(id),
			category    TEXT          NOT NULL,
			date        DATE          NOT NULL,
			amount      NUMERIC(12,2) NOT NULL CHECK (amount >= 0),
			description TEXT          NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS budgets (
			budget_id  BIGSERIAL     PRIMARY KEY,
			user_id    BIGINT        NOT NULL REFERENCES users(id),
			start_date DATE          NOT NULL,
			end_date   DATE          NOT NULL,
			amount     NUMERIC(12,2) NOT NULL CHECK (amount >= 0)
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
