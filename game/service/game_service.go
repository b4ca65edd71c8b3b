package service

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/wricardo/swap-puzzle/game/asset"
	"github.com/wricardo/swap-puzzle/game/engine"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidEvent    = errors.New("invalid pointer event")
)

// GameService defines all puzzle operations the transports use
type GameService interface {
	// Session Management
	CreateSession(ctx context.Context, imageName string) (*SessionInfo, error)
	GetSession(ctx context.Context, sessionID string) (*SessionInfo, error)
	ListSessions(ctx context.Context) ([]*SessionInfo, error)
	DeleteSession(ctx context.Context, sessionID string) error
	RestartSession(ctx context.Context, sessionID string) (*SessionInfo, error)

	// Interaction
	Pointer(ctx context.Context, sessionID string, ev engine.Event) (*EventResult, error)

	// Presentation
	Frame(ctx context.Context, sessionID string) (*Frame, error)
	Board(ctx context.Context, sessionID string) (*engine.View, error)

	// Assets
	ListImages(ctx context.Context) ([]asset.Image, error)
}

// SessionManager defines session storage operations
type SessionManager interface {
	Create(id string, image asset.Image, machine *engine.Machine) (*Session, error)
	Get(id string) (*Session, error)
	List() []*Session
	Delete(id string) error
	Touch(id string) error
}

// ImageSource provides the pictures sessions are played with
type ImageSource interface {
	List() []asset.Image
	Get(name string) (asset.Image, error)
	Pick(rng engine.RandomSource) (asset.Image, error)
}

// Session represents an active puzzle. Its machine is only touched while
// the session lock is held.
type Session struct {
	ID        string
	Image     asset.Image
	CreatedAt time.Time

	mu         sync.Mutex
	machine    *engine.Machine
	lastAccess atomic.Int64
}

// NewSession wraps a machine
func NewSession(id string, image asset.Image, machine *engine.Machine) *Session {
	now := time.Now()
	s := &Session{
		ID:        id,
		Image:     image,
		CreatedAt: now,
		machine:   machine,
	}
	s.TouchAt(now)
	return s
}

// Touch records an access
func (s *Session) Touch() {
	s.TouchAt(time.Now())
}

// TouchAt records an access at t
func (s *Session) TouchAt(t time.Time) {
	s.lastAccess.Store(t.UnixNano())
}

// LastAccessedAt returns the time of the latest access
func (s *Session) LastAccessedAt() time.Time {
	return time.Unix(0, s.lastAccess.Load())
}

// Do runs fn with the session machine while holding the session lock
func (s *Session) Do(fn func(m *engine.Machine)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(s.machine)
}

// Replace swaps in a new machine
func (s *Session) Replace(m *engine.Machine) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.machine = m
}
