package notes

import (
	"errors"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/store"
)

var errBadDate = errors.New("date must be YYYY-MM-DD")

type UpsertNoteDTO struct {
	Date    string `json:"date"    binding:"required"`
	Content string `json:"content" binding:"required"`
}

type UpdateNoteDTO struct {
	Content string `json:"content" binding:"required"`
}

type Service struct{ st *store.Store }

func NewService(st *store.Store) *Service { return &Service{st: st} }

// List returns the user's notes. Never nil so the wire shape is always an
// array.
func (s *Service) List(userID string) []models.NoteModel {
	out := s.st.NotesByUser(userID)
	if out == nil {
		out = []models.NoteModel{}
	}
	return out
}

// Upsert creates or replaces the note for the given calendar day and
// returns the refreshed list.
func (s *Service) Upsert(userID string, dto *UpsertNoteDTO) ([]models.NoteModel, error) {
	if !models.ValidDate(dto.Date) {
		return nil, errBadDate
	}
	if _, err := s.st.UpsertNote(userID, dto.Date, dto.Content); err != nil {
		return nil, err
	}
	return s.List(userID), nil
}

// Update rewrites one note's content by id. found is false on unknown ids.
func (s *Service) Update(userID, id string, dto *UpdateNoteDTO) (list []models.NoteModel, found bool, err error) {
	_, found, err = s.st.UpdateNote(userID, id, dto.Content)
	if err != nil || !found {
		return nil, found, err
	}
	return s.List(userID), true, nil
}

// Delete removes one note by id. found is false on unknown ids.
func (s *Service) Delete(userID, id string) (list []models.NoteModel, found bool, err error) {
	found, err = s.st.DeleteNote(userID, id)
	if err != nil || !found {
		return nil, found, err
	}
	return s.List(userID), true, nil
}

// Get returns one note by id.
func (s *Service) Get(userID, id string) (models.NoteModel, bool) {
	return s.st.NoteByID(userID, id)
}
