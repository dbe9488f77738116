package auth

import (
	"errors"
	"regexp"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/config"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
	jwtpkg "github.com/rowenbonaobra23-codecode/WellWork/internal/pkg/jwt"
	"github.com/rowenbonaobra23-codecode/WellWork/internal/store"
	"golang.org/x/crypto/bcrypt"
)

var (
	errUserNotFound  = errors.New("user not found")
	errWrongPassword = errors.New("wrong password")
	errInvalidInput  = errors.New("invalid username or password format")
)

var usernameRe = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,32}$`)

const minPasswordLen = 6

type RegisterDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type LoginDTO struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type Service struct {
	st  *store.Store
	cfg *config.AppConfig
}

func NewService(st *store.Store, cfg *config.AppConfig) *Service {
	return &Service{st: st, cfg: cfg}
}

// Register creates an account. Username uniqueness is enforced by the store.
func (s *Service) Register(dto *RegisterDTO) (models.UserModel, error) {
	if !usernameRe.MatchString(dto.Username) || len(dto.Password) < minPasswordLen {
		return models.UserModel{}, errInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(dto.Password), bcrypt.DefaultCost)
	if err != nil {
		return models.UserModel{}, err
	}
	return s.st.CreateUser(dto.Username, string(hash))
}

// Login verifies credentials and issues a session-bound JWT.
func (s *Service) Login(username, password string) (string, models.UserModel, error) {
	u, ok := s.st.UserByName(username)
	if !ok {
		// Burn a comparable amount of time so probes cannot tell a missing
		// user from a wrong password.
		_ = bcrypt.CompareHashAndPassword([]byte("$2a$10$7EqJtq98hPqEX7fNZaFWoOhi5B0q1ZLHpza6FQZ9Tz0eY0z9O8uVe"), []byte(password))
		return "", models.UserModel{}, errUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", models.UserModel{}, errWrongPassword
	}

	sess, err := s.st.CreateSession(u.ID, s.cfg.SessionTTL())
	if err != nil {
		return "", models.UserModel{}, err
	}
	token, err := jwtpkg.Sign(u.ID, sess.ID, s.cfg.SessionTTL())
	if err != nil {
		return "", models.UserModel{}, err
	}
	return token, u, nil
}

// Logout revokes the server session bound to the presented token.
func (s *Service) Logout(userID, sessionID string) error {
	return s.st.RevokeSession(userID, sessionID)
}
