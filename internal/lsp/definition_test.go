package lsp

import (
	"testing"

	"github.com/jsvensson/scalemix/internal/parser"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const definitionPalette = `palette {
  red = {
    50  = "#fef2f2"
    100 = "#fee2e2"
    200 = "#fecaca"
  }
}
`

const testPaletteURI = "file:///project/palette.hcl"

func parseDefinitionPalette(t *testing.T) *parser.ParseResult {
	t.Helper()
	result, err := parser.ParseHCL([]byte(definitionPalette), "palette.hcl")
	if err != nil {
		t.Fatalf("ParseHCL() error: %v", err)
	}
	return result
}

func TestDefinition_Interpolated(t *testing.T) {
	pal := parseDefinitionPalette(t)
	content := "color: red-150;"
	result := Analyze(pal.Resolver, content)

	// "red-150" starts at character 7
	pos := protocol.Position{Line: 0, Character: 9}

	locs := definition(result, pal.Locations, testPaletteURI, pos)
	if len(locs) != 2 {
		t.Fatalf("expected 2 locations, got %+v", locs)
	}

	// upper stop first, then lower
	for i, key := range []string{"red-200", "red-100"} {
		if locs[i].URI != testPaletteURI {
			t.Errorf("locs[%d].URI = %q, want %q", i, locs[i].URI, testPaletteURI)
		}
		if want := hclRangeToLSP(pal.Locations[key]); locs[i].Range != want {
			t.Errorf("locs[%d].Range = %v, want %v (%s)", i, locs[i].Range, want, key)
		}
	}

	// Line 4 is `    200 = "#fecaca"`
	want := protocol.Range{
		Start: protocol.Position{Line: 4, Character: 4},
		End:   protocol.Position{Line: 4, Character: 19},
	}
	if locs[0].Range != want {
		t.Errorf("red-200 range = %v, want %v", locs[0].Range, want)
	}
}

func TestDefinition_FadeToWhite(t *testing.T) {
	pal := parseDefinitionPalette(t)
	content := "background: red-25;"
	result := Analyze(pal.Resolver, content)

	pos := protocol.Position{Line: 0, Character: 14} // inside "red-25"

	locs := definition(result, pal.Locations, testPaletteURI, pos)
	if len(locs) != 1 {
		t.Fatalf("expected 1 location, got %+v", locs)
	}
	if locs[0].Range.Start.Line != 2 {
		t.Errorf("red-50 should be on line 2, got %d", locs[0].Range.Start.Line)
	}
}

func TestDefinition_UndefinedStop(t *testing.T) {
	pal := parseDefinitionPalette(t)
	// red-600 is a reference stop the palette does not define
	result := Analyze(pal.Resolver, "red-600")

	locs := definition(result, pal.Locations, testPaletteURI, protocol.Position{Line: 0, Character: 2})
	if locs != nil {
		t.Errorf("expected nil for a stop with no location, got %+v", locs)
	}
}

func TestDefinition_PlainText(t *testing.T) {
	pal := parseDefinitionPalette(t)
	content := "color: red-150;"
	result := Analyze(pal.Resolver, content)

	pos := protocol.Position{Line: 0, Character: 2} // on "color"

	if locs := definition(result, pal.Locations, testPaletteURI, pos); locs != nil {
		t.Errorf("expected nil for plain text, got %+v", locs)
	}
}

func TestDefinition_NilResult(t *testing.T) {
	pos := protocol.Position{Line: 0, Character: 0}

	if locs := definition(nil, nil, testPaletteURI, pos); locs != nil {
		t.Errorf("expected nil for nil result, got %+v", locs)
	}
}

func TestServer_Definition(t *testing.T) {
	path := writePalette(t, definitionPalette)
	s := NewServer("test", path)
	openDoc(t, s, "file:///tmp/site.css", "color: red-150;")

	got, err := s.textDocumentDefinition(nil, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/site.css"},
			Position:     protocol.Position{Line: 0, Character: 9},
		},
	})
	if err != nil {
		t.Fatal(err)
	}

	locs, ok := got.([]protocol.Location)
	if !ok || len(locs) != 2 {
		t.Fatalf("definition = %#v, want 2 locations", got)
	}
	if want := protocol.DocumentUri(pathToURI(path)); locs[0].URI != want {
		t.Errorf("URI = %q, want %q", locs[0].URI, want)
	}

	none, err := s.textDocumentDefinition(nil, &protocol.DefinitionParams{
		TextDocumentPositionParams: protocol.TextDocumentPositionParams{
			TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/site.css"},
			Position:     protocol.Position{Line: 0, Character: 1},
		},
	})
	if err != nil || none != nil {
		t.Errorf("definition off a token = %#v, %v; want nil", none, err)
	}
}

func TestPathToURI(t *testing.T) {
	if got := pathToURI("/home/user/palette.hcl"); got != "file:///home/user/palette.hcl" {
		t.Errorf("pathToURI = %q", got)
	}
	if got := pathToURI(""); got != "" {
		t.Errorf("pathToURI(\"\") = %q", got)
	}
}
