package models

import (
	"strings"
	"time"
)

// TempIDPrefix marks a client-generated note id that the server has not
// confirmed yet. Reconciliation replaces these with server-assigned UUIDs.
const TempIDPrefix = "local-"

// NoteModel is one calendar-day note. The server keeps at most one note per
// (userId, date) pair; POST upserts by date.
type NoteModel struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Date      string    `json:"date"` // YYYY-MM-DD
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsTemp reports whether the note id is a client placeholder.
func (n NoteModel) IsTemp() bool {
	return strings.HasPrefix(n.ID, TempIDPrefix)
}

// ValidDate reports whether s is a well-formed calendar day.
func ValidDate(s string) bool {
	_, err := time.Parse("2006-01-02", s)
	return err == nil
}
