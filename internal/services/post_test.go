package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/snapfeed/apiserver/internal/store"
)

func newTestPostService(t *testing.T) (*PostService, *UserService, *memUserRepo) {
	t.Helper()
	users := newMemUserRepo()
	userSvc, _ := newTestUserService(t, users)
	return NewPostService(newMemPostRepo(), users, nil), userSvc, users
}

func TestCreatePost(t *testing.T) {
	posts, userSvc, users := newTestPostService(t)

	owner, _, err := userSvc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	post, err := posts.Create(context.Background(), owner.ID, "hello")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}
	if post.UserID != owner.ID {
		t.Fatalf("post owner mismatch: %d", post.UserID)
	}
	if len(post.Likes) != 0 {
		t.Fatalf("new post must start with no likes, got %v", post.Likes)
	}

	stored, err := users.GetByID(context.Background(), owner.ID)
	if err != nil {
		t.Fatalf("GetByID error: %v", err)
	}
	occurrences := 0
	for _, id := range stored.PostIDs {
		if id == post.ID {
			occurrences++
		}
	}
	if occurrences != 1 {
		t.Fatalf("post id must appear exactly once in the owner's set, got %d", occurrences)
	}
}

func TestCreatePostValidation(t *testing.T) {
	posts, userSvc, _ := newTestPostService(t)

	owner, _, err := userSvc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := posts.Create(context.Background(), owner.ID, ""); !errors.Is(err, ErrEmptyContent) {
		t.Fatalf("expected ErrEmptyContent, got %v", err)
	}
	long := strings.Repeat("x", MaxContentBytes+1)
	if _, err := posts.Create(context.Background(), owner.ID, long); !errors.Is(err, ErrContentTooLong) {
		t.Fatalf("expected ErrContentTooLong, got %v", err)
	}
}

func TestCreatePostUnknownUser(t *testing.T) {
	posts, _, _ := newTestPostService(t)

	if _, err := posts.Create(context.Background(), 999, "hello"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestToggleLikePair(t *testing.T) {
	posts, userSvc, _ := newTestPostService(t)

	owner, _, err := userSvc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	post, err := posts.Create(context.Background(), owner.ID, "hello")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	liked, err := posts.ToggleLike(context.Background(), owner.ID, post.ID)
	if err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	if len(liked.Likes) != 1 || liked.Likes[0] != owner.ID {
		t.Fatalf("expected likes to contain exactly the toggling user, got %v", liked.Likes)
	}

	unliked, err := posts.ToggleLike(context.Background(), owner.ID, post.ID)
	if err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	if len(unliked.Likes) != 0 {
		t.Fatalf("expected the second toggle to clear the like, got %v", unliked.Likes)
	}
}

func TestToggleLikeUnknownPost(t *testing.T) {
	posts, userSvc, _ := newTestPostService(t)

	owner, _, err := userSvc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if _, err := posts.ToggleLike(context.Background(), owner.ID, 999); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestEditPost(t *testing.T) {
	posts, userSvc, _ := newTestPostService(t)

	owner, _, err := userSvc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	other, _, err := userSvc.Register(context.Background(), registerInput("b@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	post, err := posts.Create(context.Background(), owner.ID, "draft")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	edited, err := posts.Edit(context.Background(), owner.ID, post.ID, "final")
	if err != nil {
		t.Fatalf("Edit error: %v", err)
	}
	if edited.Content != "final" {
		t.Fatalf("content not updated: %q", edited.Content)
	}

	if _, err := posts.Edit(context.Background(), other.ID, post.ID, "hijacked"); !errors.Is(err, ErrNotPostOwner) {
		t.Fatalf("expected ErrNotPostOwner, got %v", err)
	}
	if _, err := posts.Edit(context.Background(), owner.ID, 999, "final"); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCreatePostPublishesEvent(t *testing.T) {
	users := newMemUserRepo()
	userSvc, _ := newTestUserService(t, users)
	recorder := &recordingPublisher{}
	posts := NewPostService(newMemPostRepo(), users, recorder)

	owner, _, err := userSvc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, err := posts.Create(context.Background(), owner.ID, "hello"); err != nil {
		t.Fatalf("Create error: %v", err)
	}

	if len(recorder.channels) != 1 || recorder.channels[0] != ChannelPostCreated {
		t.Fatalf("expected one %s event, got %v", ChannelPostCreated, recorder.channels)
	}
}
