package simulation

import (
	"sync"

	"orrery-server/internal/pick"
)

// Session holds the pointer and viewport of the viewer. Input handlers write
// it at any time; the frame loop reads one copy per frame.
type Session struct {
	mu       sync.Mutex
	pointer  pick.Pointer
	viewport pick.Viewport
}

func NewSession(viewport pick.Viewport) *Session {
	return &Session{viewport: viewport}
}

func (s *Session) SetPointer(clientX, clientY float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pointer = pick.Pointer{ClientX: clientX, ClientY: clientY, Seen: true}
}

// SetViewport ignores degenerate sizes
func (s *Session) SetViewport(v pick.Viewport) {
	if !v.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.viewport = v
}

func (s *Session) Snapshot() (pick.Pointer, pick.Viewport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pointer, s.viewport
}
