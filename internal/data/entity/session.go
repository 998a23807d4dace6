package entity

import (
	"time"

	"github.com/google/uuid"
)

// Session rows are written by the identity provider; we only read them to
// map a bearer token to a user id.
type Session struct {
	BaseSimple
	UserID    uuid.UUID `db:"user_id"`
	Token     string    `db:"token"`
	ExpiresAt time.Time `db:"expires_at"`
}
