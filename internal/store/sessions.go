// Package store keeps the active game sessions in memory.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/aaronzipp/drop-four/internal/c4"
	"github.com/aaronzipp/drop-four/internal/render"
)

// ErrGameLimit is returned when the concurrent-game cap is reached.
var ErrGameLimit = errors.New("too many active games")

// Session is one active game bound to a Discord message.
type Session struct {
	ID        uuid.UUID
	GuildID   string
	ChannelID string
	MessageID string
	Mode      render.Mode
	Match     c4.Match

	// Red and Blue hold the user IDs that claimed each seat; empty until
	// someone reacts. In one-player mode only Red is ever claimed.
	Red  string
	Blue string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Seat returns the user ID playing the given color.
func (s *Session) Seat(player c4.Player) string {
	if player == c4.Red {
		return s.Red
	}
	return s.Blue
}

// Store manages session storage with a cap on concurrently active games.
type Store struct {
	limit    int
	sessions map[string]*Session // board message ID -> session
	mu       sync.RWMutex
}

// New creates a session store allowing at most limit concurrent games.
func New(limit int) *Store {
	return &Store{
		limit:    limit,
		sessions: make(map[string]*Session),
	}
}

// Put stores a session, enforcing the concurrent-game cap.
func (s *Store) Put(session *Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.MessageID]; !exists && len(s.sessions) >= s.limit {
		return ErrGameLimit
	}
	s.sessions[session.MessageID] = session
	return nil
}

// ByMessage retrieves the session rendered on the given message.
func (s *Store) ByMessage(messageID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, exists := s.sessions[messageID]
	return session, exists
}

// LatestInChannel returns the most recently created session in a channel.
func (s *Store) LatestInChannel(channelID string) (*Session, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var latest *Session
	for _, session := range s.sessions {
		if session.ChannelID != channelID {
			continue
		}
		if latest == nil || session.CreatedAt.After(latest.CreatedAt) {
			latest = session
		}
	}
	return latest, latest != nil
}

// Touch records activity on a session. Timestamps are only written here so
// that PruneExpired can read them safely from the sweep goroutine.
func (s *Store) Touch(messageID string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if session, exists := s.sessions[messageID]; exists {
		session.UpdatedAt = now
	}
}

// Remove deletes a session and returns it. The second result is false when
// the session was already gone, so concurrent finalizers cannot both win.
func (s *Store) Remove(messageID string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	session, exists := s.sessions[messageID]
	delete(s.sessions, messageID)
	return session, exists
}

// Full reports whether the concurrent-game cap has been reached.
func (s *Store) Full() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions) >= s.limit
}

// Len returns the number of active sessions.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// PruneExpired removes every session whose last activity predates the
// cutoff and returns them for finalization.
func (s *Store) PruneExpired(cutoff time.Time) []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()

	var expired []*Session
	for messageID, session := range s.sessions {
		if session.UpdatedAt.Before(cutoff) {
			expired = append(expired, session)
			delete(s.sessions, messageID)
		}
	}
	return expired
}
