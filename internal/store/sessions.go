package store

import (
	"time"

	"github.com/google/uuid"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
)

// CreateSession opens a new login session for the user.
func (s *Store) CreateSession(userID string, ttl time.Duration) (models.UserSession, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	sess := models.UserSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		ExpiresAt: now.Add(ttl),
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.sessions = append(s.sessions, sess)
	if err := s.persistLocked(sessionsFile); err != nil {
		s.sessions = s.sessions[:len(s.sessions)-1]
		return models.UserSession{}, err
	}
	return sess, nil
}

// SessionActive reports whether the session still authenticates the user.
// An empty session id is accepted for legacy tokens without one.
func (s *Store) SessionActive(userID, sessionID string) bool {
	if sessionID == "" {
		return true
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.ID == sessionID && sess.UserID == userID {
			return sess.Active(time.Now())
		}
	}
	return false
}

// RevokeSession marks the session revoked. Unknown ids are a no-op.
func (s *Store) RevokeSession(userID, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, sess := range s.sessions {
		if sess.ID == sessionID && sess.UserID == userID && sess.RevokedAt == nil {
			prev := s.sessions[i]
			now := time.Now()
			s.sessions[i].RevokedAt = &now
			s.sessions[i].UpdatedAt = now
			if err := s.persistLocked(sessionsFile); err != nil {
				s.sessions[i] = prev
				return err
			}
			return nil
		}
	}
	return nil
}

// PruneSessions drops expired and revoked sessions, returning how many were
// removed. Run periodically by the scheduler.
func (s *Store) PruneSessions(now time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	kept := make([]models.UserSession, 0, len(s.sessions))
	for _, sess := range s.sessions {
		if sess.Active(now) {
			kept = append(kept, sess)
		}
	}
	removed := len(s.sessions) - len(kept)
	if removed == 0 {
		return 0, nil
	}

	prev := s.sessions
	s.sessions = kept
	if err := s.persistLocked(sessionsFile); err != nil {
		s.sessions = prev
		return 0, err
	}
	return removed, nil
}
