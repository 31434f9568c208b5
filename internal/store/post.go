package store

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/snapfeed/apiserver/types"
)

// PostRepository handles persistence for posts and their like edges.
type PostRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *PostRepository {
	return &PostRepository{db: db}
}

func (r *PostRepository) Get(ctx context.Context, id int) (types.Post, error) {
	const query = `
		SELECT id, user_id, content, created_at, updated_at
		FROM posts
		WHERE id = $1`
	var post types.Post
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&post.ID,
		&post.UserID,
		&post.Content,
		&post.CreatedAt,
		&post.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return types.Post{}, ErrNotFound
		}
		return types.Post{}, err
	}

	likes, err := r.likes(ctx, post.ID)
	if err != nil {
		return types.Post{}, err
	}
	post.Likes = likes
	return post, nil
}

func (r *PostRepository) ListByUser(ctx context.Context, userID int) ([]types.Post, error) {
	const query = `
		SELECT id, user_id, content, created_at, updated_at
		FROM posts
		WHERE user_id = $1
		ORDER BY id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	posts := make([]types.Post, 0)
	for rows.Next() {
		var post types.Post
		if err := rows.Scan(
			&post.ID,
			&post.UserID,
			&post.Content,
			&post.CreatedAt,
			&post.UpdatedAt,
		); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range posts {
		likes, err := r.likes(ctx, posts[i].ID)
		if err != nil {
			return nil, err
		}
		posts[i].Likes = likes
	}
	return posts, nil
}

func (r *PostRepository) Create(ctx context.Context, post types.Post) (types.Post, error) {
	now := time.Now()
	post.CreatedAt = now
	post.UpdatedAt = now

	const query = `
		INSERT INTO posts (user_id, content, created_at, updated_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	if err := r.db.QueryRowContext(
		ctx,
		query,
		post.UserID,
		post.Content,
		post.CreatedAt,
		post.UpdatedAt,
	).Scan(&post.ID); err != nil {
		return types.Post{}, err
	}
	post.Likes = []int{}
	return post, nil
}

func (r *PostRepository) UpdateContent(ctx context.Context, id int, content string) error {
	const query = `
		UPDATE posts
		SET content = $1,
			updated_at = $2
		WHERE id = $3`
	result, err := r.db.ExecContext(ctx, query, content, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike flips userID's membership in the post's like set and reports
// whether the post is liked afterwards. Each branch is a single atomic
// statement, so concurrent toggles by different users cannot lose updates.
func (r *PostRepository) ToggleLike(ctx context.Context, postID, userID int) (bool, error) {
	const deleteQuery = `DELETE FROM post_likes WHERE post_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, deleteQuery, postID, userID)
	if err != nil {
		return false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return false, nil
	}

	const insertQuery = `
		INSERT INTO post_likes (post_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (post_id, user_id) DO NOTHING`
	if _, err := r.db.ExecContext(ctx, insertQuery, postID, userID); err != nil {
		return false, err
	}
	return true, nil
}

func (r *PostRepository) likes(ctx context.Context, postID int) ([]int, error) {
	const query = `
		SELECT user_id
		FROM post_likes
		WHERE post_id = $1
		ORDER BY user_id`
	rows, err := r.db.QueryContext(ctx, query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	likes := make([]int, 0)
	for rows.Next() {
		var userID int
		if err := rows.Scan(&userID); err != nil {
			return nil, err
		}
		likes = append(likes, userID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return likes, nil
}
