package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"
	"vrp-route-viewer/internal/domain"
	"vrp-route-viewer/internal/mapview"
)

// LooseString accepts a JSON string or number and keeps its raw text, so
// max_carga can be sent either way and still parsed like a form field.
type LooseString string

func (s *LooseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var v string
		if err := json.Unmarshal(b, &v); err != nil {
			return err
		}
		*s = LooseString(v)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("expected string or number, got %s", b)
	}
	*s = LooseString(n.String())
	return nil
}

type ConstraintRow struct {
	Origin      string `json:"origen"`
	Destination string `json:"destino"`
}

type SubmitRequest struct {
	Depot       string          `json:"almacen"`
	MaxLoad     LooseString     `json:"max_carga"`
	Constraints []ConstraintRow `json:"restricciones"`
}

// SubmitRequestFromForm reads the fields posted by the HTML form.
// Constraint rows arrive as parallel origen/destino lists; a missing side
// becomes an empty string.
func SubmitRequestFromForm(form url.Values) SubmitRequest {
	origins := form["origen"]
	destinations := form["destino"]

	n := max(len(origins), len(destinations))
	rows := make([]ConstraintRow, 0, n)
	for i := range n {
		var row ConstraintRow
		if i < len(origins) {
			row.Origin = origins[i]
		}
		if i < len(destinations) {
			row.Destination = destinations[i]
		}
		rows = append(rows, row)
	}

	return SubmitRequest{
		Depot:       form.Get("almacen"),
		MaxLoad:     LooseString(form.Get("max_carga")),
		Constraints: rows,
	}
}

func (r SubmitRequest) FormInput() domain.FormInput {
	rows := make([]domain.ConstraintRow, 0, len(r.Constraints))
	for _, c := range r.Constraints {
		rows = append(rows, domain.ConstraintRow{Origin: c.Origin, Destination: c.Destination})
	}
	return domain.FormInput{
		Depot:       r.Depot,
		MaxLoad:     string(r.MaxLoad),
		Constraints: rows,
	}
}

type NotificationResponse struct {
	Severity string `json:"icon"`
	Title    string `json:"title"`
	Message  string `json:"text"`
}

func NewNotifications(notes []domain.Notification) []NotificationResponse {
	out := make([]NotificationResponse, 0, len(notes))
	for _, n := range notes {
		out = append(out, NotificationResponse{
			Severity: string(n.Severity),
			Title:    n.Title,
			Message:  n.Message,
		})
	}
	return out
}

// StateResponse is returned by both /submit and /state. Map is null until
// routes have been drawn.
type StateResponse struct {
	State         string                 `json:"state"`
	Generation    uint64                 `json:"generation"`
	Stale         bool                   `json:"stale"`
	Notifications []NotificationResponse `json:"notifications"`
	ResultsHTML   string                 `json:"results_html"`
	Map           *mapview.View          `json:"map"`
}
