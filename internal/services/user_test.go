package services

import (
	"context"
	"errors"
	"testing"

	"github.com/snapfeed/apiserver/internal/auth"
	"github.com/snapfeed/apiserver/types"
)

func newTestUserService(t *testing.T, repo UserRepository) (*UserService, *auth.TokenService) {
	t.Helper()
	tokens, err := auth.NewTokenService("test-secret")
	if err != nil {
		t.Fatalf("NewTokenService error: %v", err)
	}
	return NewUserService(repo, auth.NewPasswordHasher(0), tokens, nil), tokens
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Username: "ada",
		Name:     "Ada Lovelace",
		Email:    email,
		Password: "pw1",
		Age:      28,
	}
}

func TestRegister(t *testing.T) {
	repo := newMemUserRepo()
	svc, tokens := newTestUserService(t, repo)

	user, token, err := svc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected user id to be assigned")
	}
	if user.ProfilePic != types.DefaultProfilePic {
		t.Fatalf("expected default profile pic, got %q", user.ProfilePic)
	}
	if len(user.PostIDs) != 0 {
		t.Fatalf("expected empty post set, got %v", user.PostIDs)
	}
	if user.PasswordHash == "pw1" {
		t.Fatal("password must be stored hashed")
	}

	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("issued token does not verify: %v", err)
	}
	if claims.Email != "a@x.com" || claims.UserID != user.ID {
		t.Fatalf("token claims do not match the new account: %+v", claims)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t, newMemUserRepo())

	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com")); err != nil {
		t.Fatalf("Register error: %v", err)
	}
	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com")); !errors.Is(err, ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}
	// Same fields with a fresh email are fine.
	if _, _, err := svc.Register(context.Background(), registerInput("b@x.com")); err != nil {
		t.Fatalf("Register with different email error: %v", err)
	}
}

func TestRegisterMissingFields(t *testing.T) {
	svc, _ := newTestUserService(t, newMemUserRepo())

	in := registerInput("a@x.com")
	in.Password = ""
	if _, _, err := svc.Register(context.Background(), in); !errors.Is(err, ErrMissingFields) {
		t.Fatalf("expected ErrMissingFields, got %v", err)
	}
}

func TestLogin(t *testing.T) {
	svc, tokens := newTestUserService(t, newMemUserRepo())

	registered, _, err := svc.Register(context.Background(), registerInput("a@x.com"))
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	user, token, err := svc.Login(context.Background(), "a@x.com", "pw1")
	if err != nil {
		t.Fatalf("Login error: %v", err)
	}
	if user.ID != registered.ID {
		t.Fatalf("login returned wrong user: %d", user.ID)
	}
	claims, err := tokens.Verify(token)
	if err != nil {
		t.Fatalf("login token does not verify: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Fatalf("unexpected user id claim: %d", claims.UserID)
	}
}

func TestLoginInvalidCredentials(t *testing.T) {
	svc, _ := newTestUserService(t, newMemUserRepo())

	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com")); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	// Unknown email and wrong password are indistinguishable.
	if _, _, err := svc.Login(context.Background(), "nobody@x.com", "pw1"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
	if _, _, err := svc.Login(context.Background(), "a@x.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for wrong password, got %v", err)
	}
}

func TestSetProfilePic(t *testing.T) {
	repo := newMemUserRepo()
	svc, _ := newTestUserService(t, repo)

	if _, _, err := svc.Register(context.Background(), registerInput("a@x.com")); err != nil {
		t.Fatalf("Register error: %v", err)
	}

	updated, err := svc.SetProfilePic(context.Background(), "a@x.com", "abc123.png")
	if err != nil {
		t.Fatalf("SetProfilePic error: %v", err)
	}
	if updated.ProfilePic != "abc123.png" {
		t.Fatalf("profile pic not updated: %q", updated.ProfilePic)
	}

	stored, err := repo.GetByEmail(context.Background(), "a@x.com")
	if err != nil {
		t.Fatalf("GetByEmail error: %v", err)
	}
	if stored.ProfilePic != "abc123.png" {
		t.Fatalf("profile pic not persisted: %q", stored.ProfilePic)
	}
}
