package session

import (
	"context"
	"strings"
	"time"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Validate resolves a raw cookie value to the owning user id. Expiry is
// compared against the current UTC time.
func (s *Service) Validate(ctx context.Context, token string) (int64, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return 0, ErrSessionNotFound
	}

	sess, err := s.repo.GetActive(ctx, token, time.Now().UTC())
	if err != nil {
		return 0, err
	}

	return sess.UserID, nil
}
