package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"github.com/snapfeed/apiserver/types"
)

// UserRepository handles persistence for users.
type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (types.User, error) {
	const query = `
		SELECT id, username, name, email, age, password_hash, profile_pic, post_ids, created_at, updated_at
		FROM users
		WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (types.User, error) {
	const query = `
		SELECT id, username, name, email, age, password_hash, profile_pic, post_ids, created_at, updated_at
		FROM users
		WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *UserRepository) Create(ctx context.Context, user types.User) (types.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	postIDs, err := marshalPostIDs(user.PostIDs)
	if err != nil {
		return types.User{}, err
	}

	const query = `
		INSERT INTO users (username, name, email, age, password_hash, profile_pic, post_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		user.Username,
		user.Name,
		user.Email,
		user.Age,
		user.PasswordHash,
		user.ProfilePic,
		postIDs,
		user.CreatedAt,
		user.UpdatedAt,
	).Scan(&user.ID); err != nil {
		return types.User{}, translateUniqueViolation(err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, user types.User) (types.User, error) {
	user.UpdatedAt = time.Now()

	postIDs, err := marshalPostIDs(user.PostIDs)
	if err != nil {
		return types.User{}, err
	}

	const query = `
		UPDATE users
		SET username = $1,
			name = $2,
			email = $3,
			age = $4,
			password_hash = $5,
			profile_pic = $6,
			post_ids = $7,
			updated_at = $8
		WHERE id = $9`
	result, err := r.db.ExecContext(
		ctx,
		query,
		user.Username,
		user.Name,
		user.Email,
		user.Age,
		user.PasswordHash,
		user.ProfilePic,
		postIDs,
		user.UpdatedAt,
		user.ID,
	)
	if err != nil {
		return types.User{}, translateUniqueViolation(err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return types.User{}, err
	}
	if affected == 0 {
		return types.User{}, ErrNotFound
	}
	return user, nil
}

func (r *UserRepository) scanUser(row *sql.Row) (types.User, error) {
	var user types.User
	var postIDsJSON []byte
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.Name,
		&user.Email,
		&user.Age,
		&user.PasswordHash,
		&user.ProfilePic,
		&postIDsJSON,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.User{}, ErrNotFound
		}
		return types.User{}, err
	}
	if err := json.Unmarshal(postIDsJSON, &user.PostIDs); err != nil {
		return types.User{}, err
	}
	return user, nil
}

func marshalPostIDs(ids []int) ([]byte, error) {
	if ids == nil {
		ids = []int{}
	}
	return json.Marshal(ids)
}
