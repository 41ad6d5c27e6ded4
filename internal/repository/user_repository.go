package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/haneul-dev/virtual-gallery/internal/model"
	"github.com/haneul-dev/virtual-gallery/internal/utils"
)

const userCols = "id, email, password_hash, nickname, contact, is_active, created_at, updated_at"

// UserRepo persists user accounts and serves as the author directory
// for gallery responses.
type UserRepo struct {
	db *sql.DB
}

// NewUserRepo constructs a UserRepo with the given DB handle.
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{db: db}
}

// Create inserts a user with a bcrypt-hashed password and returns the
// new id. Duplicate emails yield ErrEmailExists.
func (r *UserRepo) Create(ctx context.Context, email, password, nickname, contact string, cost int) (uint64, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	hash, err := utils.HashPassword(password, cost)
	if err != nil {
		return 0, err
	}
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO users (email, password_hash, nickname, contact) VALUES (?, ?, ?, ?)`,
		email, hash, nickname, contact)
	if err != nil {
		// MySQL duplicate-key error code.
		if strings.Contains(strings.ToLower(err.Error()), "1062") {
			return 0, ErrEmailExists
		}
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

func (r *UserRepo) getOne(ctx context.Context, q string, arg any) (*model.User, error) {
	u := new(model.User)
	err := r.db.QueryRowContext(ctx, q, arg).
		Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nickname, &u.Contact, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}

// GetByEmail fetches a user by normalized email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	return r.getOne(ctx, `SELECT `+userCols+` FROM users WHERE email = ? LIMIT 1`, email)
}

// GetByID fetches a user by id.
func (r *UserRepo) GetByID(ctx context.Context, id uint64) (*model.User, error) {
	return r.getOne(ctx, `SELECT `+userCols+` FROM users WHERE id = ? LIMIT 1`, id)
}
