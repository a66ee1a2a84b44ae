package engine

import (
	"bytes"
	"strings"
	"testing"
	"text/template"
)

func TestTemplateFunctions(t *testing.T) {
	data := buildTemplateData(testResult(t))

	tests := []struct {
		name     string
		template string
		want     string
	}{
		{"scale between stops", `{{ scale "red-75" }}`, "color-mix(in oklch,var(--color-red-100) 50%,var(--color-red-50))"},
		{"scale on reference stop", `{{ scale "red-500" }}`, "var(--color-red-500)"},
		{"scale on defined stop", `{{ scale "red-50" }}`, ""},
		{"scale unknown color", `{{ scale "blue-500" }}`, ""},
		{"ref", `{{ ref "red-50" }}`, "var(--color-red-50)"},
		{"ref unsuffixed", `{{ ref "white" }}`, "var(--color-white)"},
		{"value", `{{ value "red-950" }}`, "#450a0a"},
		{"hex defined", `{{ hex "black" }}`, "#000000"},
		{"hex toward black", `{{ hex "red-1000" }}`, "#000000"},
		{"hex not a color", `{{ hex "nope" }}`, ""},
		{"rgb", `{{ rgb "black" }}`, "rgb(0, 0, 0)"},
		{"steps", `{{ range steps 0 1000 250 }}{{ . }} {{ end }}`, "0 250 500 750 1000"},
		{"colors", `{{ range .Colors }}{{ . }} {{ end }}`, "black red white"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := template.New("test").Funcs(data.FuncMap).Parse(tt.template)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			if err := tmpl.Execute(&buf, data); err != nil {
				t.Fatalf("execute error: %v", err)
			}

			got := strings.TrimSpace(buf.String())
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestTemplateFunctions_Errors(t *testing.T) {
	data := buildTemplateData(testResult(t))

	tests := []struct {
		name     string
		template string
		wantErr  string
	}{
		{"ref undefined", `{{ ref "red-500" }}`, "red-500 is not defined"},
		{"value undefined", `{{ value "blue" }}`, "blue is not defined"},
		{"steps zero", `{{ steps 0 10 0 }}`, "step must be positive"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tmpl, err := template.New("test").Funcs(data.FuncMap).Parse(tt.template)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			var buf bytes.Buffer
			err = tmpl.Execute(&buf, data)
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error = %v, want %q", err, tt.wantErr)
			}
		})
	}
}
