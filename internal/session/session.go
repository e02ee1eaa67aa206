package session

import (
	"time"

	"github.com/google/uuid"
)

// Kind names a session slot. There is at most one active session per kind.
type Kind string

const (
	KindUser  Kind = "user"
	KindAdmin Kind = "admin"
)

// Principal is the account snapshot embedded in a session at login time.
type Principal struct {
	ID          string `bson:"id" json:"id"`
	Name        string `bson:"name" json:"name"`
	Email       string `bson:"email" json:"email"`
	PhoneNumber string `bson:"phoneNumber" json:"phoneNumber"`
	Role        string `bson:"role" json:"role"`
}

// Session is the time-bounded proof of authentication handed to the client
// and mirrored in the per-kind storage slot.
type Session struct {
	ID        string    `bson:"sessionId" json:"sessionId"`
	User      Principal `bson:"user" json:"user"`
	LoginAt   time.Time `bson:"loginAt" json:"loginAt"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
}

// New stamps a fresh session for the principal: loginAt = now,
// expiresAt = now + ttl.
func New(user Principal, ttl time.Duration) Session {
	now := time.Now()
	return Session{
		ID:        uuid.NewString(),
		User:      user,
		LoginAt:   now,
		ExpiresAt: now.Add(ttl),
	}
}

// Valid reports whether the session carries a principal and has not expired.
// Callers must evaluate this fresh on every check.
func (s Session) Valid(now time.Time) bool {
	if s.User.ID == "" {
		return false
	}
	return now.Before(s.ExpiresAt)
}
