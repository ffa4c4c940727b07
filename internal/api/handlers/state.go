package handlers

import (
	"net/http"
	"time"
	"vrp-route-viewer/internal/session"
)

// StateHandler reports the caller's current view so a reloaded page can
// restore the panel and the map.
type StateHandler struct {
	Sessions   *session.Store
	SessionTTL time.Duration
}

func (h *StateHandler) Get(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	sess := sessionFor(w, r, h.Sessions, h.SessionTTL)
	writeJSON(w, r, http.StatusOK, stateResponse(sess.Snapshot(), false))
}
