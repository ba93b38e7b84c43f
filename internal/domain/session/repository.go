package session

import (
	"context"
	"time"
)

type Repository interface {
	// GetActive returns the session with the given token if it expires
	// after now, or ErrSessionNotFound.
	GetActive(ctx context.Context, token string, now time.Time) (*Session, error)
}
