// Package session keeps per-visitor state (signed-in user and flash notices)
// server side, keyed by the session key carried in the signed cookie.
package session

import (
	"context"
	"errors"
	"time"
)

var ErrNotFound = errors.New("session not found")

type Flash struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}

// Data is what gets persisted for a session key.
type Data struct {
	UserID  uint    `json:"user_id,omitempty"`
	Flashes []Flash `json:"flashes,omitempty"`
}

type Store interface {
	// Load returns ErrNotFound for unknown or expired keys.
	Load(ctx context.Context, key string) (*Data, error)
	Save(ctx context.Context, key string, data *Data, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Session is the request-scoped view of a stored session.
type Session struct {
	key     string
	data    Data
	dirty   bool
	fresh   bool
	retired []string
}

func New(key string) *Session {
	return &Session{key: key, fresh: true}
}

func Loaded(key string, data *Data) *Session {
	return &Session{key: key, data: *data}
}

func (s *Session) Key() string { return s.key }

// Fresh reports whether the key was minted during this request.
func (s *Session) Fresh() bool { return s.fresh }

func (s *Session) Dirty() bool { return s.dirty }

func (s *Session) Data() *Data { return &s.data }

// Retired lists keys dropped by Rotate that should be deleted from the store.
func (s *Session) Retired() []string { return s.retired }

func (s *Session) UserID() uint { return s.data.UserID }

func (s *Session) SetUserID(id uint) {
	s.data.UserID = id
	s.dirty = true
}

// Rotate moves the session to a new key, keeping its data.
func (s *Session) Rotate(newKey string) {
	if s.key != "" {
		s.retired = append(s.retired, s.key)
	}
	s.key = newKey
	s.fresh = true
	s.dirty = true
}

// Clear drops the signed-in user and pending notices.
func (s *Session) Clear() {
	s.data = Data{}
	s.dirty = true
}

func (s *Session) AddFlash(level, message string) {
	s.data.Flashes = append(s.data.Flashes, Flash{Level: level, Message: message})
	s.dirty = true
}

// PopFlashes returns pending notices and clears them.
func (s *Session) PopFlashes() []Flash {
	flashes := s.data.Flashes
	if len(flashes) > 0 {
		s.data.Flashes = nil
		s.dirty = true
	}
	return flashes
}
