package store

import (
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
)

// NotesByUser returns all notes belonging to one user, newest date first.
func (s *Store) NotesByUser(userID string) []models.NoteModel {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []models.NoteModel
	for _, n := range s.notes {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// NoteByID returns one of the user's notes by id.
func (s *Store) NoteByID(userID, id string) (models.NoteModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.notes {
		if n.UserID == userID && n.ID == id {
			return n, true
		}
	}
	return models.NoteModel{}, false
}

// UpsertNote creates or replaces the note for (userID, date). This is the
// invariant that keeps at most one note per user per calendar day, and what
// makes offline replays of the same save idempotent.
func (s *Store) UpsertNote(userID, date, content string) (models.NoteModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	for i, n := range s.notes {
		if n.UserID == userID && n.Date == date {
			prev := s.notes[i]
			s.notes[i].Content = content
			s.notes[i].UpdatedAt = now
			if err := s.persistLocked(notesFile); err != nil {
				s.notes[i] = prev
				return models.NoteModel{}, err
			}
			return s.notes[i], nil
		}
	}

	n := models.NoteModel{
		ID:        uuid.New().String(),
		UserID:    userID,
		Date:      date,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.notes = append(s.notes, n)
	if err := s.persistLocked(notesFile); err != nil {
		s.notes = s.notes[:len(s.notes)-1]
		return models.NoteModel{}, err
	}
	return n, nil
}

// UpdateNote rewrites the content of an existing note. Returns false when no
// note with that id belongs to the user.
func (s *Store) UpdateNote(userID, id, content string) (models.NoteModel, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notes {
		if n.UserID == userID && n.ID == id {
			prev := s.notes[i]
			s.notes[i].Content = content
			s.notes[i].UpdatedAt = time.Now()
			if err := s.persistLocked(notesFile); err != nil {
				s.notes[i] = prev
				return models.NoteModel{}, false, err
			}
			return s.notes[i], true, nil
		}
	}
	return models.NoteModel{}, false, nil
}

// DeleteNote removes a note by id. Returns false when the id is unknown,
// which callers translate to 404; replaying a delete is therefore a no-op.
func (s *Store) DeleteNote(userID, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, n := range s.notes {
		if n.UserID == userID && n.ID == id {
			removed := s.notes[i]
			s.notes = append(s.notes[:i], s.notes[i+1:]...)
			if err := s.persistLocked(notesFile); err != nil {
				s.notes = append(s.notes, removed)
				return false, err
			}
			return true, nil
		}
	}
	return false, nil
}
