package dto

import (
	"encoding/json"
	"net/url"
	"testing"
)

func TestLooseString(t *testing.T) {
	tests := []struct {
		in   string
		want LooseString
		ok   bool
	}{
		{`"120"`, "120", true},
		{`120`, "120", true},
		{`12.5`, "12.5", true},
		{`null`, "", true},
		{`true`, "", false},
		{`[1]`, "", false},
	}

	for _, tt := range tests {
		var got LooseString
		err := json.Unmarshal([]byte(tt.in), &got)
		if (err == nil) != tt.ok || got != tt.want {
			t.Errorf("Unmarshal(%s) = %q, %v; want %q, ok=%v", tt.in, got, err, tt.want, tt.ok)
		}
	}
}

func TestSubmitRequestFromForm(t *testing.T) {
	form := url.Values{
		"almacen":   {"CDMX"},
		"max_carga": {"500"},
		"origen":    {"QRO", "GDL"},
		"destino":   {"PUE"},
	}

	in := SubmitRequestFromForm(form).FormInput()

	if in.Depot != "CDMX" || in.MaxLoad != "500" {
		t.Fatalf("form input = %+v", in)
	}
	if len(in.Constraints) != 2 {
		t.Fatalf("rows = %+v, want 2", in.Constraints)
	}
	if in.Constraints[0].Origin != "QRO" || in.Constraints[0].Destination != "PUE" {
		t.Errorf("row 0 = %+v", in.Constraints[0])
	}
	if in.Constraints[1].Origin != "GDL" || in.Constraints[1].Destination != "" {
		t.Errorf("row 1 = %+v", in.Constraints[1])
	}
}
