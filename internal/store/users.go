package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/anirudh/expense-tracker/backend/internal/models"
)

func (s *PostgresStore) CreateUser(ctx context.Context, fullName, email, username, hashedPassword string) (*models.User, error) {
	u := models.User{FullName: fullName, Email: email, Username: username}
	err := s.db.QueryRow(ctx,
		`INSERT INTO users (full_name, email, username, password)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at`,
		fullName, email, username, hashedPassword,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return &u, nil
}

// GetUserByEmailOrUsername resolves a login identifier, which may be
// either the email address or the username.
func (s *PostgresStore) GetUserByEmailOrUsername(ctx context.Context, identifier string) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, full_name, email, username, password, created_at
		 FROM users WHERE email = $1 OR username = $1`,
		identifier,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.Username, &u.Password, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (s *PostgresStore) GetUserByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	err := s.db.QueryRow(ctx,
		`SELECT id, full_name, email, username, created_at FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.FullName, &u.Email, &u.Username, &u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// EmailTaken reports whether a user with the given email already exists.
func (s *PostgresStore) EmailTaken(ctx context.Context, email string) (bool, error) {
	var taken bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE email = $1)`, email,
	).Scan(&taken)
	return taken, err
}

// UsernameTaken reports whether a user with the given username already exists.
func (s *PostgresStore) UsernameTaken(ctx context.Context, username string) (bool, error) {
	var taken bool
	err := s.db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM users WHERE username = $1)`, username,
	).Scan(&taken)
	return taken, err
}
