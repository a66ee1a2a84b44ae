package lsp

import (
	"strings"
	"testing"

	"github.com/jsvensson/scalemix/internal/color"
	"github.com/jsvensson/scalemix/internal/palette"
	"github.com/jsvensson/scalemix/internal/scale"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const testDocument = `.a { color: red-75; }
.b { background: bg-red-1000; }
.c { border: brand-500; }
.d { color: red-50; }
.e { color: red-1200; }
.f { color: blue-500; }`

func testResolver() *scale.Resolver {
	ix := palette.NewIndex(map[string]string{
		"red-50":  "#fef2f2",
		"red-100": "#fee2e2",
		"red-950": "#450a0a",
		"brand":   "var(--brand)",
	})
	return scale.NewResolver(ix, scale.DefaultSettings)
}

// rangeOf returns the range of the first occurrence of text on line.
func rangeOf(t *testing.T, content string, line int, text string) protocol.Range {
	t.Helper()
	lines := strings.Split(content, "\n")
	col := strings.Index(lines[line], text)
	if col < 0 {
		t.Fatalf("%q not on line %d", text, line)
	}
	return protocol.Range{
		Start: protocol.Position{Line: uint32(line), Character: uint32(col)},
		End:   protocol.Position{Line: uint32(line), Character: uint32(col + len(text))},
	}
}

func TestAnalyze_Tokens(t *testing.T) {
	result := Analyze(testResolver(), testDocument)

	want := []struct {
		token string
		line  int
		expr  string
		color bool
	}{
		{"red-75", 0, "color-mix(in oklch,var(--color-red-100) 50%,var(--color-red-50))", true},
		{"red-1000", 1, "color-mix(in oklch,black 100%,var(--color-red-950))", true},
		{"brand-500", 2, "var(--color-brand-500)", false},
	}

	if len(result.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d: %+v", len(result.Tokens), len(want), result.Tokens)
	}
	for i, w := range want {
		got := result.Tokens[i]
		if got.Token != w.token {
			t.Errorf("token %d = %q, want %q", i, got.Token, w.token)
		}
		if got.Expression != w.expr {
			t.Errorf("%s expression = %q, want %q", w.token, got.Expression, w.expr)
		}
		if got.HasColor != w.color {
			t.Errorf("%s HasColor = %v, want %v", w.token, got.HasColor, w.color)
		}
		if wantRange := rangeOf(t, testDocument, w.line, w.token); got.Range != wantRange {
			t.Errorf("%s range = %+v, want %+v", w.token, got.Range, wantRange)
		}
	}

	if c := result.Tokens[1].Color; c != (color.Color{}) {
		t.Errorf("red-1000 preview = %s, want #000000", c.Hex())
	}
}

func TestAnalyze_OutOfRange(t *testing.T) {
	result := Analyze(testResolver(), testDocument)

	if len(result.Diagnostics) != 1 {
		t.Fatalf("got %d diagnostics, want 1: %+v", len(result.Diagnostics), result.Diagnostics)
	}
	d := result.Diagnostics[0]
	if *d.Severity != protocol.DiagnosticSeverityWarning {
		t.Errorf("severity = %v, want warning", *d.Severity)
	}
	if !strings.Contains(d.Message, "between 0 and 1000") {
		t.Errorf("message = %q", d.Message)
	}
	if want := rangeOf(t, testDocument, 4, "red-1200"); d.Range != want {
		t.Errorf("range = %+v, want %+v", d.Range, want)
	}
}

func TestAnalyze_Ignored(t *testing.T) {
	tests := []string{
		"color: red-50;",          // defined stop
		"color: blue-500;",        // unknown color
		"color: red-050;",         // leading zero
		"color: var(--color-red-50);",
		"margin: 10px;",
		"",
	}

	r := testResolver()
	for _, content := range tests {
		result := Analyze(r, content)
		if len(result.Tokens) != 0 || len(result.Diagnostics) != 0 {
			t.Errorf("Analyze(%q) = %+v, want nothing", content, result)
		}
	}
}

func TestAnalyze_NoResolver(t *testing.T) {
	result := Analyze(nil, testDocument)
	if len(result.Tokens) != 0 {
		t.Errorf("got %d tokens without a palette", len(result.Tokens))
	}
}

func TestAnalyze_MultipleOnLine(t *testing.T) {
	result := Analyze(testResolver(), `class="text-red-75 bg-red-0 ring-brand-300"`)

	var got []string
	for _, tl := range result.Tokens {
		got = append(got, tl.Token)
	}
	if strings.Join(got, ",") != "red-75,red-0,brand-300" {
		t.Errorf("tokens = %v", got)
	}
	if c := result.Tokens[1].Color; c.Hex() != "#ffffff" {
		t.Errorf("red-0 preview = %s, want #ffffff", c.Hex())
	}
}

func TestAnalyze_UTF16Positions(t *testing.T) {
	result := Analyze(testResolver(), "é 😀 red-150")

	if len(result.Tokens) != 1 {
		t.Fatalf("got %d tokens, want 1: %+v", len(result.Tokens), result.Tokens)
	}
	want := protocol.Range{
		Start: protocol.Position{Line: 0, Character: 5},
		End:   protocol.Position{Line: 0, Character: 12},
	}
	if got := result.Tokens[0].Range; got != want {
		t.Errorf("Range = %+v, want %+v", got, want)
	}
}

func TestAnalyze_Stops(t *testing.T) {
	result := Analyze(testResolver(), "a: red-150; b: red-25; c: red-975;")

	want := map[string][]string{
		"red-150": {"red-200", "red-100"},
		"red-25":  {"red-50"},
		"red-975": {"red-950"},
	}
	if len(result.Tokens) != len(want) {
		t.Fatalf("got %d tokens, want %d", len(result.Tokens), len(want))
	}
	for _, tl := range result.Tokens {
		if got := strings.Join(tl.Stops, ","); got != strings.Join(want[tl.Token], ",") {
			t.Errorf("%s stops = %v, want %v", tl.Token, tl.Stops, want[tl.Token])
		}
	}
}

func TestUTF16Len(t *testing.T) {
	tests := []struct {
		in   string
		want uint32
	}{
		{"", 0},
		{"red-50", 6},
		{"é", 1},
		{"😀", 2},
		{"é 😀 ", 5},
	}
	for _, tt := range tests {
		if got := utf16Len(tt.in); got != tt.want {
			t.Errorf("utf16Len(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
