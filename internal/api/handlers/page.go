package handlers

import (
	"bytes"
	"log"
	"net/http"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/ports"
	"vrp-route-viewer/internal/web"
)

// PageHandler serves the form page with the depot selector filled from
// the registry.
type PageHandler struct {
	Registry ports.LocationRegistry
}

func (h *PageHandler) Index(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if !allowMethods(w, r, http.MethodGet, http.MethodHead) {
		return
	}

	var buf bytes.Buffer
	err := web.Index.Execute(&buf, struct{ Locations []domain.Location }{h.Registry.List()})
	if err != nil {
		log.Printf("render index failed: %v", err)
		writeError(w, r, http.StatusInternalServerError, "internal server error")
		return
	}

	writeHTML(w, r, http.StatusOK, buf.Bytes())
}

// Static serves the embedded assets under /static/.
func Static() http.Handler {
	return http.StripPrefix("/static/", http.FileServerFS(web.Static()))
}
