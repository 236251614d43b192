// Package auth handles account registration, login, and bearer token
// sessions. Tokens live in memory, so a restart signs everyone out.
package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/abhisek/profexa/internal/store"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
	ErrWeakPassword       = errors.New("password must be at least 6 characters")
	ErrEmptyUsername      = errors.New("username must not be empty")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// MinPasswordLen is the minimum accepted password length.
const MinPasswordLen = 6

// Identity is the resolved owner of a bearer token. Guest identities
// have ID 0 and Guest true; nothing they do is persisted.
type Identity struct {
	ID       int64
	Username string
	Guest    bool
}

// Service authenticates users against the store and issues tokens.
type Service struct {
	users  store.UserRepo
	tokens *TokenRegistry
}

// NewService creates an auth service backed by the given repo.
func NewService(users store.UserRepo, tokens *TokenRegistry) *Service {
	return &Service{users: users, tokens: tokens}
}

// Register creates an account and signs the new user in.
func (s *Service) Register(ctx context.Context, username, password string) (string, *Identity, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return "", nil, ErrEmptyUsername
	}
	if len(password) < MinPasswordLen {
		return "", nil, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", nil, err
	}

	user, err := s.users.Create(ctx, username, string(hash))
	if err != nil {
		if errors.Is(err, store.ErrUsernameTaken) {
			return "", nil, ErrUsernameTaken
		}
		return "", nil, err
	}

	id := &Identity{ID: user.ID, Username: user.Username}
	return s.tokens.Issue(id), id, nil
}

// Login verifies credentials and issues a token. Unknown usernames and
// wrong passwords are indistinguishable to the caller.
func (s *Service) Login(ctx context.Context, username, password string) (string, *Identity, error) {
	user, err := s.users.GetByUsername(ctx, strings.TrimSpace(username))
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, ErrInvalidCredentials
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, ErrInvalidCredentials
	}

	id := &Identity{ID: user.ID, Username: user.Username}
	return s.tokens.Issue(id), id, nil
}

// Guest issues a token for an anonymous session with no stored history.
func (s *Service) Guest() (string, *Identity) {
	id := &Identity{Username: "guest", Guest: true}
	return s.tokens.Issue(id), id
}

// Resolve maps a bearer token back to its identity.
func (s *Service) Resolve(token string) (*Identity, error) {
	id, ok := s.tokens.Resolve(token)
	if !ok {
		return nil, ErrInvalidToken
	}
	return id, nil
}

// Logout revokes a token. Revoking an unknown token is a no-op.
func (s *Service) Logout(token string) {
	s.tokens.Revoke(token)
}
