package handlers

import (
	"net/http"
	"vrp-route-viewer/internal/api/dto"
	"vrp-route-viewer/internal/ports"
)

// LocationHandler exposes the location registry read-only.
type LocationHandler struct {
	Registry ports.LocationRegistry
}

func (h *LocationHandler) List(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodGet) {
		return
	}

	locs := h.Registry.List()

	res := dto.ListLocationsResponse{
		Locations: make([]dto.LocationResponse, 0, len(locs)),
	}
	for _, l := range locs {
		res.Locations = append(res.Locations, dto.LocationResponse{
			Code: l.Code,
			Lat:  l.Coordinates.Lat,
			Lng:  l.Coordinates.Lng,
		})
	}

	writeJSON(w, r, http.StatusOK, res)
}
