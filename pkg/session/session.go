// Package session remembers where a knitter left off in a chart.
//
// A [Session] records the current row and how many rows are finished for one
// chart. Sessions are keyed by a hash of the chart contents, so the same
// chart resumes at the same row no matter which file or URL it was loaded
// from, and an edited chart starts fresh.
//
// # Usage
//
//	store, err := session.NewFileStore("") // ~/.config/stitchrow/sessions/
//	if err != nil {
//	    return err
//	}
//
//	sess, err := store.Get(ctx, id)
//	if err != nil {
//	    return err
//	}
//	if sess == nil {
//	    sess = session.New(id, "cable.svg", session.DefaultTTL)
//	}
//	sess.Advance(12, 11)
//	store.Set(ctx, sess)
//
// Sessions expire after [DefaultTTL] without an update.
package session

import (
	"context"
	"time"
)

// DefaultTTL is how long an untouched session is kept.
const DefaultTTL = 180 * 24 * time.Hour

// Session is the saved progress through one chart.
type Session struct {
	ID        string        `json:"id"`
	Chart     string        `json:"chart"`
	Row       int           `json:"row"`
	Done      int           `json:"done"`
	TTL       time.Duration `json:"ttl"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
	ExpiresAt time.Time     `json:"expires_at"`
}

// New creates a session for the chart identified by id, starting on row 1.
func New(id, chart string, ttl time.Duration) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		Chart:     chart,
		Row:       1,
		TTL:       ttl,
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(ttl),
	}
}

// IsExpired returns true if the session has expired.
func (s *Session) IsExpired() bool {
	return time.Now().After(s.ExpiresAt)
}

// Advance records the current row and finished row count and extends the
// expiry. Done never decreases.
func (s *Session) Advance(row, done int) {
	now := time.Now()
	s.Row = row
	s.Done = max(s.Done, done)
	s.UpdatedAt = now
	s.ExpiresAt = now.Add(s.TTL)
}

// Store is the interface for session storage backends.
type Store interface {
	// Get retrieves a session by ID.
	// Returns nil, nil if the session doesn't exist or has expired.
	Get(ctx context.Context, sessionID string) (*Session, error)

	// Set stores a session.
	Set(ctx context.Context, session *Session) error

	// Delete removes a session.
	Delete(ctx context.Context, sessionID string) error

	// Cleanup removes expired sessions.
	Cleanup(ctx context.Context) error
}
