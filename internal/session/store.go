package session

import (
	"context"
	"time"
)

// LastLogout is the audit record written whenever a slot is cleared, whether
// by explicit logout or by the expiry sweep.
type LastLogout struct {
	Kind            Kind      `bson:"kind" json:"kind"`
	LogoutAt        time.Time `bson:"logoutAt" json:"logoutAt"`
	DurationSeconds int64     `bson:"durationSeconds" json:"durationSeconds"`
}

// Store persists one session slot per kind. Load returns (nil, nil) when the
// slot is empty. Clear removes the slot and records a LastLogout computed
// from the stored session; it returns (nil, nil) when there was nothing to
// clear.
type Store interface {
	Load(ctx context.Context, kind Kind) (*Session, error)
	Save(ctx context.Context, kind Kind, s Session) error
	Clear(ctx context.Context, kind Kind) (*LastLogout, error)
	LastLogout(ctx context.Context, kind Kind) (*LastLogout, error)
}
