package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"discussion_board/internal/apperr"
	"discussion_board/internal/models"
	"discussion_board/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

const maxUsernameLen = 50

// TokenConfig is loaded once at startup and passed in; the signing secret is
// never read from ambient global state.
type TokenConfig struct {
	SigningKey string
	TokenTTL   time.Duration
}

// AuthService handles registration, credential checks and bearer tokens.
type AuthService struct {
	users  repository.Users
	tokens TokenConfig
}

func NewAuthService(users repository.Users, tokens TokenConfig) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

var _ Authorization = (*AuthService)(nil)

// SignUp validates the credential pair, hashes the password and creates the
// user. A duplicate username surfaces as a Conflict from the repository.
func (s *AuthService) SignUp(ctx context.Context, username, password, confirmPassword string) (int64, error) {
	if password != confirmPassword {
		return 0, apperr.Validation("two passwords are not the same")
	}
	username = strings.TrimSpace(username)
	if username == "" {
		return 0, apperr.Validation("username is required")
	}
	if len(username) > maxUsernameLen {
		return 0, apperr.Validation(fmt.Sprintf("username must be at most %d characters", maxUsernameLen))
	}

	hash, err := hashPassword(password)
	if err != nil {
		return 0, err
	}
	return s.users.Create(ctx, username, hash, time.Now().UTC())
}

// GenerateToken validates credentials and returns a signed JWT. Unknown user
// and wrong password are indistinguishable to the caller.
func (s *AuthService) GenerateToken(ctx context.Context, username, password string) (string, error) {
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return "", err
	}
	if u == nil || verifyPassword(u.PasswordHash, password) != nil {
		return "", apperr.Unauthenticated("incorrect username or password")
	}
	return s.issueToken(u.Username)
}

// ParseToken verifies signature and expiry and returns the embedded username.
// It is a pure function of the token string and the current time.
func (s *AuthService) ParseToken(accessToken string) (string, error) {
	token, err := jwt.ParseWithClaims(accessToken, &jwt.RegisteredClaims{}, func(token *jwt.Token) (interface{}, error) {
		// Ensure HMAC signing is used
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(s.tokens.SigningKey), nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return "", apperr.Wrap(apperr.KindUnauthenticated, "token expired", err)
		}
		return "", apperr.Wrap(apperr.KindUnauthenticated, "invalid token", err)
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", apperr.Unauthenticated("invalid token")
	}
	return claims.Subject, nil
}

// ResolveUser maps a bearer token to the full user record. Tokens are not
// revocable, so the subject may no longer exist; that still reads as 401.
func (s *AuthService) ResolveUser(ctx context.Context, accessToken string) (*models.User, error) {
	if accessToken == "" {
		return nil, apperr.Unauthenticated("missing bearer token")
	}
	username, err := s.ParseToken(accessToken)
	if err != nil {
		return nil, err
	}
	u, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, apperr.Unauthenticated("user not found")
	}
	return u, nil
}

// helper: hash password safely
func hashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", apperr.Validation("password is empty")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// helper: verify password against hash; a malformed hash is a mismatch.
func verifyPassword(hash, password string) error {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
}

// helper: issue a signed JWT whose subject is the username.
func (s *AuthService) issueToken(username string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, &jwt.RegisteredClaims{
		Subject:   username,
		ExpiresAt: jwt.NewNumericDate(now.Add(s.tokens.TokenTTL)),
		IssuedAt:  jwt.NewNumericDate(now),
	})
	return token.SignedString([]byte(s.tokens.SigningKey))
}
