package memory

import "errors"

// Turn is one stored exchange: what the user said and what came back.
type Turn struct {
	ID          string
	OwnerID     string
	SessionID   string
	Message     string
	Response    string
	Personality string
	CreatedAtMS int64
}

// Snippet is a long-term memory fragment kept per owner and recalled by
// similarity against later messages.
type Snippet struct {
	ID          string
	OwnerID     string
	Content     string
	Source      string
	CreatedAtMS int64
	LastSeenMS  int64
}

// CachedResponse is one stored FAQ answer.
type CachedResponse struct {
	Key         string
	Personality string
	Response    string
	CreatedAtMS int64
}

var ErrNotFound = errors.New("memory: not found")
