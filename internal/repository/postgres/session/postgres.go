package session

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"time"

	sessiondomain "recipe-api-go/internal/domain/session"

	"gorm.io/gorm"
)

type PostgresRepository struct {
	db *gorm.DB
}

func NewPostgres(db *gorm.DB) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetActive(ctx context.Context, token string, now time.Time) (*sessiondomain.Session, error) {
	var sess sessiondomain.Session
	err := r.db.WithContext(ctx).
		Where("token = ? AND expires_at > ?", token, now).
		First(&sess).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, sessiondomain.ErrSessionNotFound
		}
		return nil, classify(err)
	}
	return &sess, nil
}

// classify maps connection-level failures to ErrStoreUnavailable so the
// transport can answer 503 instead of 500.
func classify(err error) error {
	var netErr net.Error
	if errors.Is(err, driver.ErrBadConn) || errors.As(err, &netErr) {
		return fmt.Errorf("%w: %v", sessiondomain.ErrStoreUnavailable, err)
	}
	return err
}
