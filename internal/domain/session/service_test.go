package session

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeSessionRepo struct {
	sessions map[string]*Session
	err      error
	calls    int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*Session)}
}

func (r *fakeSessionRepo) GetActive(ctx context.Context, token string, now time.Time) (*Session, error) {
	r.calls++
	if r.err != nil {
		return nil, r.err
	}
	sess, ok := r.sessions[token]
	if !ok || !sess.ExpiresAt.After(now) {
		return nil, ErrSessionNotFound
	}
	return sess, nil
}

func TestValidateReturnsUserID(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.sessions["tok-1"] = &Session{
		Token:     "tok-1",
		UserID:    42,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	service := NewService(repo)

	userID, err := service.Validate(context.Background(), "tok-1")
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if userID != 42 {
		t.Fatalf("expected user 42, got %d", userID)
	}
}

func TestValidateExpiredSession(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.sessions["tok-1"] = &Session{
		Token:     "tok-1",
		UserID:    42,
		ExpiresAt: time.Now().UTC().Add(-time.Minute),
	}
	service := NewService(repo)

	if _, err := service.Validate(context.Background(), "tok-1"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestValidateUnknownToken(t *testing.T) {
	service := NewService(newFakeSessionRepo())

	if _, err := service.Validate(context.Background(), "nope"); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestValidateEmptyTokenSkipsStore(t *testing.T) {
	repo := newFakeSessionRepo()
	service := NewService(repo)

	for _, token := range []string{"", "   "} {
		if _, err := service.Validate(context.Background(), token); !errors.Is(err, ErrSessionNotFound) {
			t.Fatalf("token %q: expected ErrSessionNotFound, got %v", token, err)
		}
	}
	if repo.calls != 0 {
		t.Fatalf("expected no store lookups for empty tokens, got %d", repo.calls)
	}
}

func TestValidatePropagatesStoreError(t *testing.T) {
	repo := newFakeSessionRepo()
	repo.err = ErrStoreUnavailable
	service := NewService(repo)

	if _, err := service.Validate(context.Background(), "tok-1"); !errors.Is(err, ErrStoreUnavailable) {
		t.Fatalf("expected ErrStoreUnavailable, got %v", err)
	}
}
