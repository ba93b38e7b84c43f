package session

import "time"

// Session is a server-side session record. A session authenticates a
// request iff its token matches exactly and it has not expired.
type Session struct {
	Token     string    `gorm:"primaryKey"`
	UserID    int64     `gorm:"not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
}
