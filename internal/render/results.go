// Package render builds the HTML fragment shown in the results panel.
package render

import (
	"bytes"
	"fmt"
	"html/template"
	"strconv"
	"strings"
	"vrp-route-viewer/internal/domain"
)

// Panel is the rendered content of the results panel.
type Panel struct {
	HTML string
}

// ProcessingPanel is shown while a request is in flight.
func ProcessingPanel() Panel {
	return Panel{HTML: "⌛ Procesando rutas..."}
}

type routeBlock struct {
	Index  int
	Stops  string
	Weight string
	Cost   string
	Time   string
}

var resultsTmpl = template.Must(template.New("results").Parse(
	`<h2>🚚 Rutas Generadas: {{.Count}}</h2>
{{- if not .Routes}}
<p>No se generaron rutas.</p>
{{- end}}
{{- range .Routes}}
<div class="ruta">
  <h3>Ruta {{.Index}}</h3>
  <p><strong>Clientes:</strong> {{.Stops}}</p>
  <p><strong>Peso total:</strong> {{.Weight}} kg</p>
  <p><strong>Costo estimado:</strong> ${{.Cost}}</p>
  <p><strong>Tiempo estimado:</strong> {{.Time}}</p>
</div>
{{- end}}
`))

// RenderResults replaces the panel with a header and one block per route.
// An empty list yields the header and a "no routes" message.
func RenderResults(routes []domain.Route) (Panel, error) {
	blocks := make([]routeBlock, 0, len(routes))
	for i, r := range routes {
		blocks = append(blocks, routeBlock{
			Index:  i + 1,
			Stops:  strings.Join(r.Stops, " → "),
			Weight: formatNumber(r.TotalWeight),
			Cost:   strconv.FormatFloat(r.Cost, 'f', 2, 64),
			Time:   r.EstimatedTime,
		})
	}

	var buf bytes.Buffer
	err := resultsTmpl.Execute(&buf, struct {
		Count  int
		Routes []routeBlock
	}{Count: len(routes), Routes: blocks})
	if err != nil {
		return Panel{}, fmt.Errorf("render results: %w", err)
	}

	return Panel{HTML: buf.String()}, nil
}

// formatNumber prints integral values without a fractional part
// ("120", not "120.00") and others in shortest form.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
