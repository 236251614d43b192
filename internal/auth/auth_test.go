package auth

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/abhisek/profexa/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	st, err := store.Open(t.TempDir() + "/test.db")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return NewService(st.UserRepo(), NewTokenRegistry(time.Hour))
}

func TestRegisterAndLogin(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	token, id, err := svc.Register(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	if token == "" || id.ID == 0 || id.Username != "alice" || id.Guest {
		t.Fatalf("unexpected identity %+v token %q", id, token)
	}

	// The issued token resolves immediately.
	got, err := svc.Resolve(token)
	if err != nil || got.Username != "alice" {
		t.Fatalf("resolve after register: %v %+v", err, got)
	}

	token2, id2, err := svc.Login(ctx, "alice", "secret123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if id2.ID != id.ID {
		t.Errorf("login resolved different user: %d vs %d", id2.ID, id.ID)
	}
	if token2 == token {
		t.Error("login should mint a fresh token")
	}
}

func TestRegisterValidation(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "  ", "secret123"); !errors.Is(err, ErrEmptyUsername) {
		t.Errorf("blank username: got %v", err)
	}
	if _, _, err := svc.Register(ctx, "bob", "short"); !errors.Is(err, ErrWeakPassword) {
		t.Errorf("short password: got %v", err)
	}

	if _, _, err := svc.Register(ctx, "bob", "secret123"); err != nil {
		t.Fatalf("register: %v", err)
	}
	if _, _, err := svc.Register(ctx, "bob", "another-pass"); !errors.Is(err, ErrUsernameTaken) {
		t.Errorf("duplicate username: got %v", err)
	}
}

func TestPasswordsAreHashed(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "carol", "secret123"); err != nil {
		t.Fatal(err)
	}

	user, err := svc.users.GetByUsername(ctx, "carol")
	if err != nil || user == nil {
		t.Fatalf("lookup: %v", err)
	}
	if strings.Contains(user.PasswordHash, "secret123") {
		t.Error("password stored in the clear")
	}
	if !strings.HasPrefix(user.PasswordHash, "$2") {
		t.Errorf("expected a bcrypt hash, got %q", user.PasswordHash)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	if _, _, err := svc.Register(ctx, "dave", "secret123"); err != nil {
		t.Fatal(err)
	}

	if _, _, err := svc.Login(ctx, "dave", "wrong-pass"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("wrong password: got %v", err)
	}
	if _, _, err := svc.Login(ctx, "nobody", "secret123"); !errors.Is(err, ErrInvalidCredentials) {
		t.Errorf("unknown user: got %v", err)
	}
}

func TestGuestIdentity(t *testing.T) {
	svc := newTestService(t)

	token, id := svc.Guest()
	if !id.Guest || id.ID != 0 {
		t.Fatalf("unexpected guest identity %+v", id)
	}

	got, err := svc.Resolve(token)
	if err != nil || !got.Guest {
		t.Fatalf("resolve guest: %v %+v", err, got)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	svc := newTestService(t)

	token, _ := svc.Guest()
	svc.Logout(token)
	if _, err := svc.Resolve(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("resolve after logout: got %v", err)
	}

	// Revoking twice is fine.
	svc.Logout(token)
}

func TestTokenExpiry(t *testing.T) {
	reg := NewTokenRegistry(time.Minute)
	current := time.Now()
	reg.now = func() time.Time { return current }

	token := reg.Issue(&Identity{Username: "eve", ID: 1})
	if _, ok := reg.Resolve(token); !ok {
		t.Fatal("fresh token should resolve")
	}

	current = current.Add(2 * time.Minute)
	if _, ok := reg.Resolve(token); ok {
		t.Fatal("expired token should not resolve")
	}
	if reg.Len() != 0 {
		t.Error("expired token should be swept on lookup")
	}
}
