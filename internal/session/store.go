package session

import (
	"context"
	"log"
	"sync"
	"time"
	"vrp-route-viewer/internal/mapview"
	"vrp-route-viewer/internal/ports"

	"github.com/google/uuid"
)

// Store holds live sessions in memory. Sessions idle for longer than TTL
// are removed by Sweep and their map views disposed.
type Store struct {
	registry ports.LocationRegistry
	fit      mapview.FitMode
	ttl      time.Duration
	now      func() time.Time

	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore(registry ports.LocationRegistry, fit mapview.FitMode, ttl time.Duration) *Store {
	return &Store{
		registry: registry,
		fit:      fit,
		ttl:      ttl,
		now:      time.Now,
		sessions: map[string]*Session{},
	}
}

// Get returns the session for id and whether it exists.
func (st *Store) Get(id string) (*Session, bool) {
	st.mu.Lock()
	s, ok := st.sessions[id]
	st.mu.Unlock()

	if ok {
		s.touch(st.now())
	}
	return s, ok
}

// GetOrCreate returns the session for id, creating a new one with a fresh
// id when id is empty, malformed or unknown.
func (st *Store) GetOrCreate(id string) (*Session, bool) {
	if _, err := uuid.Parse(id); err == nil {
		if s, ok := st.Get(id); ok {
			return s, false
		}
	}

	s := newSession(uuid.NewString(), mapview.NewPresenter(st.registry, st.fit), st.now())

	st.mu.Lock()
	st.sessions[s.ID] = s
	st.mu.Unlock()

	return s, true
}

func (st *Store) Len() int {
	st.mu.Lock()
	defer st.mu.Unlock()
	return len(st.sessions)
}

// Sweep removes expired sessions and returns how many were removed.
func (st *Store) Sweep() int {
	now := st.now()

	st.mu.Lock()
	expired := make([]*Session, 0)
	for id, s := range st.sessions {
		if s.idleSince(now) > st.ttl {
			expired = append(expired, s)
			delete(st.sessions, id)
		}
	}
	st.mu.Unlock()

	for _, s := range expired {
		s.close()
	}
	return len(expired)
}

// StartJanitor sweeps every interval until ctx is done.
func (st *Store) StartJanitor(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := st.Sweep(); n > 0 {
					log.Printf("sessions swept=%d live=%d", n, st.Len())
				}
			}
		}
	}()
}
