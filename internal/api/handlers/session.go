package handlers

import (
	"net/http"
	"time"
	"vrp-route-viewer/internal/api/dto"
	"vrp-route-viewer/internal/session"
)

const sessionCookie = "vrp_session"

// sessionFor returns the caller's session, issuing a new cookie when the
// request carries none or an expired one.
func sessionFor(w http.ResponseWriter, r *http.Request, store *session.Store, ttl time.Duration) *session.Session {
	var id string
	if c, err := r.Cookie(sessionCookie); err == nil {
		id = c.Value
	}

	s, created := store.GetOrCreate(id)
	if created {
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    s.ID,
			Path:     "/",
			MaxAge:   int(ttl.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	return s
}

func stateResponse(snap session.Snapshot, stale bool) dto.StateResponse {
	return dto.StateResponse{
		State:         string(snap.State),
		Generation:    snap.Generation,
		Stale:         stale,
		Notifications: dto.NewNotifications(snap.Notifications),
		ResultsHTML:   snap.Panel.HTML,
		Map:           snap.Map,
	}
}
