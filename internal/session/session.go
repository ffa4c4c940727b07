// Package session keeps the per-browser view state: the state machine,
// the latest submission generation, the results panel and the map view.
package session

import (
	"sync"
	"time"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/mapview"
	"vrp-route-viewer/internal/render"
)

// Session is safe for concurrent use. Overlapping submissions from the
// same browser are ordered by generation; only the latest may update the
// view.
type Session struct {
	ID string

	mu            sync.Mutex
	state         domain.ViewState
	generation    uint64
	panel         render.Panel
	notifications []domain.Notification
	presenter     *mapview.Presenter
	lastSeen      time.Time
}

// Snapshot is a consistent copy of the session's visible state.
type Snapshot struct {
	State         domain.ViewState
	Generation    uint64
	Panel         render.Panel
	Notifications []domain.Notification
	Map           *mapview.View
}

// Result is what a finished submission wants to show.
type Result struct {
	State         domain.ViewState
	Notifications []domain.Notification
	Panel         render.Panel
	// Routes are drawn on a fresh map view when non-empty.
	Routes []domain.Route
}

func newSession(id string, presenter *mapview.Presenter, now time.Time) *Session {
	return &Session{
		ID:        id,
		state:     domain.StateIdle,
		presenter: presenter,
		lastSeen:  now,
	}
}

// Begin starts a submission that will call the solver. The panel shows
// the processing placeholder until Finish.
func (s *Session) Begin() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state, _ = s.state.Transition(domain.StateSubmitting)
	s.panel = render.ProcessingPanel()
	s.notifications = nil
	return s.generation
}

// Reject records a submission that failed validation. It supersedes any
// request still in flight.
func (s *Session) Reject(notes []domain.Notification) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.state, _ = s.state.Transition(domain.StateErrored)
	s.notifications = notes
	return s.generation
}

// Finish applies r if gen is still the latest submission and reports
// whether it did. Stale results leave the session untouched.
func (s *Session) Finish(gen uint64, r Result) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.generation {
		return false, nil
	}

	next, err := s.state.Transition(r.State)
	if err != nil {
		return false, err
	}

	s.state = next
	s.panel = r.Panel
	s.notifications = r.Notifications
	if len(r.Routes) > 0 {
		s.presenter.Present(r.Routes)
	}
	return true, nil
}

func (s *Session) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	notes := make([]domain.Notification, len(s.notifications))
	copy(notes, s.notifications)

	return Snapshot{
		State:         s.state,
		Generation:    s.generation,
		Panel:         s.panel,
		Notifications: notes,
		Map:           s.presenter.Current(),
	}
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

func (s *Session) close() {
	s.presenter.Dispose()
}
