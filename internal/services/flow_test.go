package services

import (
	"context"
	"testing"

	"github.com/snapfeed/apiserver/internal/auth"
)

// Runs the whole account lifecycle through the service layer: register,
// log in, post, like, unlike.
func TestAccountLifecycle(t *testing.T) {
	ctx := context.Background()
	users := newMemUserRepo()
	tokens, err := auth.NewTokenService("lifecycle-secret")
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	userSvc := NewUserService(users, auth.NewPasswordHasher(0), tokens, nil)
	postSvc := NewPostService(newMemPostRepo(), users, nil)

	registered, _, err := userSvc.Register(ctx, RegisterInput{
		Username: "a",
		Name:     "User A",
		Email:    "a@x.com",
		Password: "pw1",
		Age:      30,
	})
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	_, token, err := userSvc.Login(ctx, "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("login token does not verify: %v", err)
	}

	post, err := postSvc.Create(ctx, claims.UserID, "hello")
	if err != nil {
		t.Fatalf("Create error: %v", err)
	}

	liked, err := postSvc.ToggleLike(ctx, claims.UserID, post.ID)
	if err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	if len(liked.Likes) != 1 || liked.Likes[0] != registered.ID {
		t.Fatalf("expected likes to contain user A, got %v", liked.Likes)
	}

	unliked, err := postSvc.ToggleLike(ctx, claims.UserID, post.ID)
	if err != nil {
		t.Fatalf("ToggleLike error: %v", err)
	}
	if len(unliked.Likes) != 0 {
		t.Fatalf("expected likes to be empty again, got %v", unliked.Likes)
	}
}
