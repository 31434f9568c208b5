package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/snapfeed/apiserver/internal/store"
	"github.com/snapfeed/apiserver/types"
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	GetByID(ctx context.Context, id int) (types.User, error)
	GetByEmail(ctx context.Context, email string) (types.User, error)
	Create(ctx context.Context, user types.User) (types.User, error)
	Update(ctx context.Context, user types.User) (types.User, error)
}

// PasswordHasher hashes and verifies password credentials.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) (bool, error)
}

// TokenIssuer signs session tokens for an authenticated identity.
type TokenIssuer interface {
	Issue(email string, userID int) (string, error)
}

// RegisterInput carries the fields of a registration request.
type RegisterInput struct {
	Username string
	Name     string
	Email    string
	Password string
	Age      int
}

// UserService encapsulates account use-cases: registration, login, and
// profile picture association.
type UserService struct {
	repo   UserRepository
	hasher PasswordHasher
	tokens TokenIssuer
	events EventPublisher
}

func NewUserService(repo UserRepository, hasher PasswordHasher, tokens TokenIssuer, events EventPublisher) *UserService {
	return &UserService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		events: events,
	}
}

// Register creates an account and returns it with a freshly issued session
// token. The email-uniqueness check and the insert are two store operations;
// the users.email unique constraint backstops the window between them.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (types.User, string, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Name = strings.TrimSpace(in.Name)
	in.Email = strings.TrimSpace(in.Email)
	if in.Username == "" || in.Name == "" || in.Email == "" || in.Password == "" {
		return types.User{}, "", ErrMissingFields
	}

	if _, err := s.repo.GetByEmail(ctx, in.Email); err == nil {
		return types.User{}, "", ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return types.User{}, "", fmt.Errorf("check email: %w", err)
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return types.User{}, "", err
	}

	user, err := s.repo.Create(ctx, types.User{
		Username:     in.Username,
		Name:         in.Name,
		Email:        in.Email,
		Age:          in.Age,
		PasswordHash: hash,
		ProfilePic:   types.DefaultProfilePic,
		PostIDs:      []int{},
	})
	if err != nil {
		if errors.Is(err, store.ErrConflict) {
			return types.User{}, "", ErrEmailTaken
		}
		return types.User{}, "", fmt.Errorf("create user: %w", err)
	}

	token, err := s.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return types.User{}, "", fmt.Errorf("issue token: %w", err)
	}

	publishEvent(ctx, s.events, ChannelUserRegistered, map[string]any{
		"user_id":  user.ID,
		"username": user.Username,
	})
	return user, token, nil
}

// Login verifies the credentials and issues a session token. Unknown email
// and wrong password both map to ErrInvalidCredentials; a hashing failure
// does not.
func (s *UserService) Login(ctx context.Context, email, password string) (types.User, string, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return types.User{}, "", ErrInvalidCredentials
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return types.User{}, "", ErrInvalidCredentials
		}
		return types.User{}, "", fmt.Errorf("lookup user: %w", err)
	}

	ok, err := s.hasher.Verify(password, user.PasswordHash)
	if err != nil {
		return types.User{}, "", err
	}
	if !ok {
		return types.User{}, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.Email, user.ID)
	if err != nil {
		return types.User{}, "", fmt.Errorf("issue token: %w", err)
	}
	return user, token, nil
}

func (s *UserService) GetByID(ctx context.Context, id int) (types.User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *UserService) GetByEmail(ctx context.Context, email string) (types.User, error) {
	return s.repo.GetByEmail(ctx, email)
}

// SetProfilePic associates an uploaded picture name with the account behind
// the claim email.
func (s *UserService) SetProfilePic(ctx context.Context, email, filename string) (types.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		return types.User{}, err
	}
	user.ProfilePic = filename
	return s.repo.Update(ctx, user)
}
