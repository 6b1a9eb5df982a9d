package server

import (
	"errors"
	"image"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/df07/go-rain-city-raytracer/pkg/renderer"
	"github.com/df07/go-rain-city-raytracer/pkg/scene"
)

var (
	// ErrSessionNotFound is returned for unknown or closed session ids
	ErrSessionNotFound = errors.New("session not found")
	// ErrTooManySessions is returned when the session limit is reached
	ErrTooManySessions = errors.New("too many sessions")
)

// Session is one viewer's camera and frame loop. The mutex serializes frames and
// camera moves, so a dolly request always lands between two frames.
type Session struct {
	ID             string
	SceneName      string
	PrimitiveCount int
	Created        time.Time

	mu          sync.Mutex
	loop        *renderer.FrameLoop
	consoleChan chan ConsoleMessage
}

// FrameResult is a rendered frame copied out of the session
type FrameResult struct {
	Stats  renderer.FrameStats
	Camera renderer.Camera
	Image  *image.RGBA
}

func newSession(s *scene.Scene, width, height int, config renderer.RenderConfig) *Session {
	id := uuid.New().String()
	consoleChan := make(chan ConsoleMessage, 50)
	logger := NewWebLogger(id, consoleChan)

	return &Session{
		ID:             id,
		SceneName:      s.Name,
		PrimitiveCount: s.GetPrimitiveCount(),
		Created:        time.Now(),
		loop:           renderer.NewFrameLoop(s, s.Camera, width, height, config, logger),
		consoleChan:    consoleChan,
	}
}

// Step renders the next frame. It returns ErrSessionNotFound once the session
// has been deleted.
func (s *Session) Step() (FrameResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stats, err := s.loop.Step()
	if errors.Is(err, renderer.ErrRendererClosed) {
		return FrameResult{}, ErrSessionNotFound
	}
	if err != nil {
		return FrameResult{}, err
	}
	return FrameResult{
		Stats:  stats,
		Camera: s.loop.Camera(),
		Image:  s.loop.Framebuffer().Image(),
	}, nil
}

// Dolly moves the camera; it waits for any frame in progress
func (s *Session) Dolly(distance float64) renderer.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.loop.Dolly(distance)
	return s.loop.Camera()
}

// Camera returns the current camera
func (s *Session) Camera() renderer.Camera {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loop.Camera()
}

// Size returns the frame dimensions
func (s *Session) Size() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fb := s.loop.Framebuffer()
	return fb.Width, fb.Height
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loop.Close()
}

// SessionStore tracks live sessions
type SessionStore struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	maxSessions int
}

// NewSessionStore creates a store holding at most maxSessions sessions
func NewSessionStore(maxSessions int) *SessionStore {
	return &SessionStore{
		sessions:    make(map[string]*Session),
		maxSessions: maxSessions,
	}
}

// Create builds a session for the scene and registers it
func (st *SessionStore) Create(s *scene.Scene, width, height int, config renderer.RenderConfig) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	if len(st.sessions) >= st.maxSessions {
		return nil, ErrTooManySessions
	}

	session := newSession(s, width, height, config)
	st.sessions[session.ID] = session
	return session, nil
}

// Get returns the session with the given id
func (st *SessionStore) Get(id string) (*Session, error) {
	st.mu.RLock()
	defer st.mu.RUnlock()

	session, ok := st.sessions[id]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// Delete removes a session and stops its workers
func (st *SessionStore) Delete(id string) error {
	st.mu.Lock()
	session, ok := st.sessions[id]
	delete(st.sessions, id)
	st.mu.Unlock()

	if !ok {
		return ErrSessionNotFound
	}
	session.close()
	return nil
}

// Len returns the number of live sessions
func (st *SessionStore) Len() int {
	st.mu.RLock()
	defer st.mu.RUnlock()
	return len(st.sessions)
}

// CloseAll removes every session
func (st *SessionStore) CloseAll() {
	st.mu.Lock()
	sessions := st.sessions
	st.sessions = make(map[string]*Session)
	st.mu.Unlock()

	for _, session := range sessions {
		session.close()
	}
}
