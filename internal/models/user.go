package models

import "time"

// UserModel is an application account.
type UserModel struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// PublicUser is the shape embedded in login responses and persisted client
// sessions. Never carries the password hash.
type PublicUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

func (u UserModel) Public() PublicUser {
	return PublicUser{ID: u.ID, Username: u.Username}
}

// UserSession is a server-side login session. A JWT is bound to a session
// so logout can revoke the token before it expires.
type UserSession struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	ExpiresAt time.Time  `json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// Active reports whether the session can still authenticate requests.
func (s UserSession) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}
