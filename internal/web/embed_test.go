package web

import (
	"io/fs"
	"strings"
	"testing"
	"vrp-route-viewer/internal/render"
)

func TestScriptRestoresPanelOnFailedSubmit(t *testing.T) {
	b, err := fs.ReadFile(Static(), "app.js")
	if err != nil {
		t.Fatalf("read app.js: %v", err)
	}
	script := string(b)

	// The script compares against the placeholder text before restoring,
	// so it must match what the server renders.
	placeholder := render.ProcessingPanel().HTML
	if !strings.Contains(script, "results.innerHTML = '"+placeholder+"'") {
		t.Fatalf("app.js does not show the %q placeholder", placeholder)
	}
	if !strings.Contains(script, "if (results.innerHTML === '"+placeholder+"') results.innerHTML = previous;") {
		t.Fatal("app.js must restore the previous panel when /submit fails")
	}
}

func TestIndexRendersDepotOptions(t *testing.T) {
	var sb strings.Builder
	data := struct{ Locations []struct{ Code string } }{
		Locations: []struct{ Code string }{{Code: "CDMX"}, {Code: "EDO.MEX"}},
	}
	if err := Index.Execute(&sb, data); err != nil {
		t.Fatalf("execute index: %v", err)
	}
	for _, code := range []string{"CDMX", "EDO.MEX"} {
		if !strings.Contains(sb.String(), `<option value="`+code+`">`+code+`</option>`) {
			t.Errorf("index missing option %s", code)
		}
	}
}
