package handlers

import (
	"encoding/json"
	"io"
	"log"
	"mime"
	"net/http"
	"time"
	"vrp-route-viewer/internal/api/dto"
	"vrp-route-viewer/internal/platform/obs"
	"vrp-route-viewer/internal/services"
	"vrp-route-viewer/internal/session"
)

const maxSubmitBody = 64 << 10

type SubmitHandler struct {
	Submitter  *services.Submitter
	Sessions   *session.Store
	SessionTTL time.Duration
}

// Submit runs one form submission for the caller's session. The body is
// either JSON or a URL-encoded form. Validation problems are not HTTP
// errors: they come back as notifications with status 200.
func (h *SubmitHandler) Submit(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxSubmitBody)
	defer r.Body.Close()

	var req dto.SubmitRequest

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/x-www-form-urlencoded", "multipart/form-data":
		if err := r.ParseMultipartForm(maxSubmitBody); err != nil && err != http.ErrNotMultipart {
			writeError(w, r, http.StatusBadRequest, "invalid form body")
			return
		}
		req = dto.SubmitRequestFromForm(r.PostForm)
	default:
		dec := json.NewDecoder(r.Body)
		dec.DisallowUnknownFields()

		if err := dec.Decode(&req); err != nil {
			writeError(w, r, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := dec.Decode(&struct{}{}); err != io.EOF {
			writeError(w, r, http.StatusBadRequest, "body must contain only one JSON object")
			return
		}
	}

	sess := sessionFor(w, r, h.Sessions, h.SessionTTL)

	out, err := h.Submitter.Submit(r.Context(), sess, req.FormInput())
	if err != nil {
		log.Printf("req_id=%s submit failed: %v", obs.RequestID(r.Context()), err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeJSON(w, r, http.StatusOK, stateResponse(out.Snapshot, out.Stale))
}
