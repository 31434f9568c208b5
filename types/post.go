package types

import "time"

// Post represents a short text entry published by a user.
type Post struct {
	// ID is the unique identifier of the post.
	ID int `json:"id" db:"id"`

	// UserID identifies the user who owns the post. It is set at creation
	// and never changes afterwards.
	UserID int `json:"user_id" db:"user_id"`

	// Content is the text body of the post. It is required and non-empty.
	Content string `json:"content" db:"content"`

	// Likes is the set of ids of users who currently like the post. A user
	// id appears at most once; order carries no meaning.
	Likes []int `json:"likes" db:"likes"`

	// CreatedAt is the timestamp when the post was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent edit to the post.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
