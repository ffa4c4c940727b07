package services

import (
	"fmt"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/ports"
)

// Notification texts shown by the form.
const (
	titleEmptyFields  = "Campos vacíos"
	msgEmptyFields    = "Completa todos los campos."
	titleError        = "Error"
	msgIncompleteRow  = "Cada restricción debe tener origen y destino."
	fmtInvalidRow     = "Ubicación inválida: %s o %s"
	fmtInvalidDepot   = "Ubicación inválida: %s"
	titleNoRoutes     = "No se encontraron rutas"
	msgNoRoutes       = "La API no devolvió rutas válidas."
	titleConnectError = "Error de conexión"
)

// ValidationResult is the outcome of ValidateForm. Request is only
// meaningful when OK is true.
type ValidationResult struct {
	Request       domain.SolveRequest
	Notifications []domain.Notification
	OK            bool
}

// ValidateForm checks raw form input against the location registry.
//
// Missing depot or load aborts immediately with a single warning. Rows are
// then scanned in order; each malformed row adds its own notification and
// scanning continues, so the user sees one notification per bad row. Any
// row failure makes the whole submission invalid.
func ValidateForm(form domain.FormInput, registry ports.LocationRegistry) ValidationResult {
	depot := domain.NormalizeCode(form.Depot)
	load, ok := parseLoad(form.MaxLoad)
	if depot == "" || !ok || load <= 0 {
		return ValidationResult{
			Notifications: []domain.Notification{domain.Warning(titleEmptyFields, msgEmptyFields)},
		}
	}

	var notes []domain.Notification
	failed := false

	depotCoords, ok := registry.Lookup(depot)
	if !ok {
		notes = append(notes, domain.Error(titleError, fmt.Sprintf(fmtInvalidDepot, depot)))
		failed = true
	}

	constraints := make([]domain.Constraint, 0, len(form.Constraints))
	for _, row := range form.Constraints {
		origin := domain.NormalizeCode(row.Origin)
		destination := domain.NormalizeCode(row.Destination)

		if origin == "" || destination == "" {
			notes = append(notes, domain.Error(titleError, msgIncompleteRow))
			failed = true
			continue
		}

		_, originOK := registry.Lookup(origin)
		_, destinationOK := registry.Lookup(destination)
		if !originOK || !destinationOK {
			notes = append(notes, domain.Error(titleError, fmt.Sprintf(fmtInvalidRow, origin, destination)))
			failed = true
			continue
		}

		constraints = append(constraints, domain.Constraint{Origin: origin, Destination: destination})
	}

	if failed {
		return ValidationResult{Notifications: notes}
	}

	return ValidationResult{
		Request: domain.SolveRequest{
			DepotCode:   depot,
			Depot:       depotCoords,
			MaxLoad:     load,
			Constraints: constraints,
		},
		OK: true,
	}
}
