package postgres

// Package postgres implements the UserStore port on PostgreSQL. Email
// uniqueness is enforced by the users_email_key constraint; a unique
// violation is mapped to ports.ErrEmailTaken so callers never see
// driver errors.

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/proseware/auth-api/internal/data/pgxutil"
	"github.com/proseware/auth-api/internal/domain/user"
	"github.com/proseware/auth-api/internal/ports"
)

var _ ports.UserStore = (*UserStore)(nil)

// UserStore provides user CRUD on PostgreSQL.
type UserStore struct {
	DB *sql.DB
}

// NewUserStore creates a new PostgreSQL-backed user store.
func NewUserStore(db *sql.DB) *UserStore {
	return &UserStore{DB: db}
}

func mapWriteErr(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
		return ports.ErrEmailTaken
	}
	return err
}

// Create inserts a new user record.
func (r *UserStore) Create(ctx context.Context, u user.User) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		_, execErr := conn.Exec(ctx, `
			INSERT INTO users (id, name, email, password_hash, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6)`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.CreatedAt, u.UpdatedAt)
		return execErr
	})
	if err = mapWriteErr(err); err != nil {
		if errors.Is(err, ports.ErrEmailTaken) {
			return err
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *UserStore) findOne(ctx context.Context, query string, arg any) (user.User, error) {
	var u user.User
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		rows, queryErr := conn.Query(ctx, query, arg)
		if queryErr != nil {
			return queryErr
		}
		defer rows.Close()
		var collectErr error
		u, collectErr = pgx.CollectOneRow(rows, pgx.RowToStructByName[user.User])
		return collectErr
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return user.User{}, ports.ErrUserNotFound
	}
	if err != nil {
		return user.User{}, fmt.Errorf("query user: %w", err)
	}
	return u, nil
}

// FindByID returns the user with the given id. A malformed id is
// treated the same as an unknown one.
func (r *UserStore) FindByID(ctx context.Context, id string) (user.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return user.User{}, ports.ErrUserNotFound
	}
	return r.findOne(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users WHERE id = $1`, id)
}

// FindByEmail returns the user with the given normalized email.
func (r *UserStore) FindByEmail(ctx context.Context, email string) (user.User, error) {
	return r.findOne(ctx, `
		SELECT id, name, email, password_hash, created_at, updated_at
		FROM users WHERE email = $1`, email)
}

// Update overwrites the stored record for u.ID.
func (r *UserStore) Update(ctx context.Context, u user.User) error {
	err := pgxutil.WithPgxConn(ctx, r.DB, func(conn *pgx.Conn) error {
		tag, execErr := conn.Exec(ctx, `
			UPDATE users
			SET name = $2, email = $3, password_hash = $4, updated_at = $5
			WHERE id = $1`,
			u.ID, u.Name, u.Email, u.PasswordHash, u.UpdatedAt)
		if execErr != nil {
			return execErr
		}
		if tag.RowsAffected() == 0 {
			return ports.ErrUserNotFound
		}
		return nil
	})
	if err = mapWriteErr(err); err != nil {
		if errors.Is(err, ports.ErrEmailTaken) || errors.Is(err, ports.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update user %s: %w", u.ID, err)
	}
	return nil
}
