package types

import "time"

// DefaultProfilePic is the sentinel filename assigned to accounts that have
// not uploaded a picture yet.
const DefaultProfilePic = "default.jpg"

// User represents an account in the system.
// It contains identity, profile, and audit metadata.
type User struct {
	// ID is the unique identifier of the user.
	ID int `json:"id" db:"id"`

	// Username is the unique login name chosen by the user.
	Username string `json:"username" db:"username"`

	// Name is the user's display or full name.
	Name string `json:"name" db:"name"`

	// Email is the user's email address. It is unique across accounts and
	// doubles as the login identifier.
	Email string `json:"email" db:"email"`

	// Age is the age the user reported at registration.
	Age int `json:"age" db:"age"`

	// PasswordHash stores the hashed representation of the user's password.
	// This field is never exposed in API responses.
	PasswordHash string `json:"-" db:"password_hash"`

	// ProfilePic is the filename of the user's profile picture in object
	// storage, or DefaultProfilePic when none has been uploaded.
	ProfilePic string `json:"profile_pic" db:"profile_pic"`

	// PostIDs is the set of posts owned by this user. It is maintained by
	// the post service, not by a database constraint: every id in it must
	// refer to a post whose UserID equals this user's ID.
	PostIDs []int `json:"post_ids" db:"post_ids"`

	// CreatedAt is the timestamp when the user account was created.
	CreatedAt time.Time `json:"created_at" db:"created_at"`

	// UpdatedAt is the timestamp of the most recent update to the user account.
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
