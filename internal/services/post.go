package services

import (
	"context"
	"fmt"

	"github.com/snapfeed/apiserver/types"
)

// MaxContentBytes caps post content length so a single post cannot
// grow rows without bound.
const MaxContentBytes = 10_000

// PostRepository defines persistence operations for posts and like edges.
type PostRepository interface {
	Get(ctx context.Context, id int) (types.Post, error)
	ListByUser(ctx context.Context, userID int) ([]types.Post, error)
	Create(ctx context.Context, post types.Post) (types.Post, error)
	UpdateContent(ctx context.Context, id int, content string) error
	ToggleLike(ctx context.Context, postID, userID int) (bool, error)
}

// PostService encapsulates post use-cases: creation, editing, and the
// like/unlike toggle.
type PostService struct {
	posts  PostRepository
	users  UserRepository
	events EventPublisher
}

func NewPostService(posts PostRepository, users UserRepository, events EventPublisher) *PostService {
	return &PostService{
		posts:  posts,
		users:  users,
		events: events,
	}
}

// Create stores a new post owned by userID and records the post id in the
// owner's post set, keeping the two sides of the relationship in agreement.
func (s *PostService) Create(ctx context.Context, userID int, content string) (types.Post, error) {
	if err := validateContent(content); err != nil {
		return types.Post{}, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return types.Post{}, err
	}

	post, err := s.posts.Create(ctx, types.Post{
		UserID:  user.ID,
		Content: content,
	})
	if err != nil {
		return types.Post{}, fmt.Errorf("create post: %w", err)
	}

	user.PostIDs = append(user.PostIDs, post.ID)
	if _, err := s.users.Update(ctx, user); err != nil {
		return types.Post{}, fmt.Errorf("record post ownership: %w", err)
	}

	publishEvent(ctx, s.events, ChannelPostCreated, map[string]any{
		"post_id": post.ID,
		"user_id": user.ID,
	})
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id int) (types.Post, error) {
	return s.posts.Get(ctx, id)
}

func (s *PostService) ListByUser(ctx context.Context, userID int) ([]types.Post, error) {
	return s.posts.ListByUser(ctx, userID)
}

// Edit replaces the content of a post owned by userID.
func (s *PostService) Edit(ctx context.Context, userID, postID int, content string) (types.Post, error) {
	if err := validateContent(content); err != nil {
		return types.Post{}, err
	}

	post, err := s.posts.Get(ctx, postID)
	if err != nil {
		return types.Post{}, err
	}
	if post.UserID != userID {
		return types.Post{}, ErrNotPostOwner
	}

	if err := s.posts.UpdateContent(ctx, postID, content); err != nil {
		return types.Post{}, err
	}
	return s.posts.Get(ctx, postID)
}

// ToggleLike flips userID's like on the post: present ids are removed,
// absent ids are added. Repeated calls alternate state.
func (s *PostService) ToggleLike(ctx context.Context, userID, postID int) (types.Post, error) {
	if _, err := s.posts.Get(ctx, postID); err != nil {
		return types.Post{}, err
	}

	if _, err := s.posts.ToggleLike(ctx, postID, userID); err != nil {
		return types.Post{}, fmt.Errorf("toggle like: %w", err)
	}
	return s.posts.Get(ctx, postID)
}

func validateContent(content string) error {
	if content == "" {
		return ErrEmptyContent
	}
	if len(content) > MaxContentBytes {
		return ErrContentTooLong
	}
	return nil
}
