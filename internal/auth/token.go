package auth

import (
	"errors"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrMalformedToken is returned when a token cannot be decoded at all.
	ErrMalformedToken = errors.New("malformed session token")
	// ErrInvalidToken is returned when a token decodes but fails signature
	// or claim validation.
	ErrInvalidToken = errors.New("invalid session token")
)

// Claims is the identity embedded in a session token. Both fields are
// required; tokens missing either are rejected.
type Claims struct {
	Email  string `json:"email"`
	UserID int    `json:"uid"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. The signing secret
// comes from operator configuration, is set once at construction, and is
// never exposed afterwards.
type TokenService struct {
	secret []byte
}

// NewTokenService constructs a TokenService. An empty secret is refused so
// the process fails at startup instead of signing with a guessable key.
func NewTokenService(secret string) (*TokenService, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("signing secret is required")
	}
	return &TokenService{secret: []byte(secret)}, nil
}

// Issue signs a token carrying the given identity. Tokens record their
// issuance time and carry no expiry; logout is cookie clearing only.
func (s *TokenService) Issue(email string, userID int) (string, error) {
	claims := Claims{
		Email:  email,
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(time.Now()),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// Verify checks the token signature and returns the embedded claims. It does
// not consult the user store; callers re-fetch state before mutating.
func (s *TokenService) Verify(tokenString string) (Claims, error) {
	claims := Claims{}
	token, err := jwt.ParseWithClaims(tokenString, &claims, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenMalformed) {
			return Claims{}, ErrMalformedToken
		}
		return Claims{}, ErrInvalidToken
	}
	if !token.Valid {
		return Claims{}, ErrInvalidToken
	}
	if strings.TrimSpace(claims.Email) == "" || claims.UserID < 1 {
		return Claims{}, ErrInvalidToken
	}
	return claims, nil
}
