package store

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
)

// ErrUsernameTaken is returned when registering a username that exists.
var ErrUsernameTaken = errors.New("username already taken")

// CreateUser registers a new account with an already-hashed password.
func (s *Store) CreateUser(username, passwordHash string) (models.UserModel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return models.UserModel{}, ErrUsernameTaken
		}
	}
	u := models.UserModel{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}
	s.users = append(s.users, u)
	if err := s.persistLocked(usersFile); err != nil {
		s.users = s.users[:len(s.users)-1]
		return models.UserModel{}, err
	}
	return u, nil
}

// UserByName looks up an account by username (case-insensitive).
func (s *Store) UserByName(username string) (models.UserModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if strings.EqualFold(u.Username, username) {
			return u, true
		}
	}
	return models.UserModel{}, false
}

// UserByID looks up an account by id.
func (s *Store) UserByID(id string) (models.UserModel, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, u := range s.users {
		if u.ID == id {
			return u, true
		}
	}
	return models.UserModel{}, false
}
