// Package api is the typed REST client for the WellWork server. It is the
// only place client code talks HTTP; everything above it reasons in terms of
// notes, sessions and the error classes in errors.go.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rowenbonaobra23-codecode/WellWork/internal/models"
)

const defaultTimeout = 10 * time.Second

// Session is the client-owned login state, persisted to survive restarts.
type Session struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Client talks to one WellWork server.
type Client struct {
	base string
	hc   *http.Client

	mu    sync.RWMutex
	token string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient injects the underlying HTTP client (tests use a short
// timeout here).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.hc = hc
		}
	}
}

// New creates a client for the server at base (e.g. "http://localhost:4000").
func New(base string, opts ...Option) *Client {
	c := &Client{
		base: strings.TrimRight(base, "/"),
		hc:   &http.Client{Timeout: defaultTimeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// SetToken installs the bearer token used for /api calls.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	c.token = token
	c.mu.Unlock()
}

// Token returns the current bearer token.
func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// do performs one request. A transport failure comes back as a plain wrapped
// error (connectivity-class); an HTTP error status comes back as a
// *StatusError; a cancelled context comes back as the context error.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		var (
			data []byte
			err  error
		)
		if raw, ok := body.(json.RawMessage); ok {
			data = raw
		} else if data, err = json.Marshal(body); err != nil {
			return fmt.Errorf("encode request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, reader)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token := c.Token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s %s: read response: %w", method, path, err)
	}

	if resp.StatusCode >= 400 {
		se := &StatusError{Code: resp.StatusCode}
		var envelope struct {
			Message string `json:"message"`
		}
		if json.Unmarshal(data, &envelope) == nil {
			se.Message = envelope.Message
		}
		return se
	}

	if out != nil {
		if err := json.Unmarshal(data, out); err != nil {
			return fmt.Errorf("%s %s: decode response: %w", method, path, err)
		}
	}
	return nil
}

// Health probes the liveness endpoint.
func (c *Client) Health(ctx context.Context) error {
	return c.do(ctx, http.MethodGet, "/health", nil, nil)
}

// Register creates an account.
func (c *Client) Register(ctx context.Context, username, password string) error {
	body := map[string]string{"username": username, "password": password}
	return c.do(ctx, http.MethodPost, "/register", body, nil)
}

// Login authenticates and installs the returned token on the client.
func (c *Client) Login(ctx context.Context, username, password string) (Session, error) {
	body := map[string]string{"username": username, "password": password}
	var resp struct {
		Token string            `json:"token"`
		User  models.PublicUser `json:"user"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", body, &resp); err != nil {
		return Session{}, err
	}
	sess := Session{Token: resp.Token, User: resp.User}
	c.SetToken(sess.Token)
	return sess, nil
}

// Logout revokes the server session. The local token is cleared regardless.
func (c *Client) Logout(ctx context.Context) error {
	err := c.do(ctx, http.MethodPost, "/logout", nil, nil)
	c.SetToken("")
	return err
}

// ListNotes fetches the authoritative note list.
func (c *Client) ListNotes(ctx context.Context) ([]models.NoteModel, error) {
	var notes []models.NoteModel
	if err := c.do(ctx, http.MethodGet, "/api/notes", nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpsertNote creates or replaces the note for one calendar day and returns
// the refreshed list.
func (c *Client) UpsertNote(ctx context.Context, date, content string) ([]models.NoteModel, error) {
	body := map[string]string{"date": date, "content": content}
	var notes []models.NoteModel
	if err := c.do(ctx, http.MethodPost, "/api/notes", body, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// UpdateNote rewrites one note's content by id.
func (c *Client) UpdateNote(ctx context.Context, id, content string) ([]models.NoteModel, error) {
	body := map[string]string{"content": content}
	var notes []models.NoteModel
	if err := c.do(ctx, http.MethodPut, "/api/notes/"+id, body, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// DeleteNote removes one note by id.
func (c *Client) DeleteNote(ctx context.Context, id string) ([]models.NoteModel, error) {
	var notes []models.NoteModel
	if err := c.do(ctx, http.MethodDelete, "/api/notes/"+id, nil, &notes); err != nil {
		return nil, err
	}
	return notes, nil
}

// Replay re-issues a recorded request verbatim. Used when draining the
// pending-operation queue.
func (c *Client) Replay(ctx context.Context, method, path string, body json.RawMessage) error {
	var payload interface{}
	if len(body) > 0 {
		payload = body
	}
	return c.do(ctx, method, path, payload, nil)
}

// Chat sends one message to the scripted chatbot.
func (c *Client) Chat(ctx context.Context, message string) (string, error) {
	var resp struct {
		Reply string `json:"reply"`
	}
	if err := c.do(ctx, http.MethodPost, "/api/chat", map[string]string{"message": message}, &resp); err != nil {
		return "", err
	}
	return resp.Reply, nil
}

// WellnessTip fetches one wellness tip.
func (c *Client) WellnessTip(ctx context.Context) (string, error) {
	var resp struct {
		Tip string `json:"tip"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/wellness/tip", nil, &resp); err != nil {
		return "", err
	}
	return resp.Tip, nil
}
