package lsp

import (
	"testing"

	"github.com/jsvensson/scalemix/internal/color"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

func TestColorToLSP(t *testing.T) {
	tests := []struct {
		name  string
		input color.Color
		want  protocol.Color
	}{
		{
			name:  "pure red",
			input: color.Color{R: 255, G: 0, B: 0},
			want:  protocol.Color{Red: 1.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "pure green",
			input: color.Color{R: 0, G: 255, B: 0},
			want:  protocol.Color{Red: 0.0, Green: 1.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "pure blue",
			input: color.Color{R: 0, G: 0, B: 255},
			want:  protocol.Color{Red: 0.0, Green: 0.0, Blue: 1.0, Alpha: 1.0},
		},
		{
			name:  "black",
			input: color.Color{R: 0, G: 0, B: 0},
			want:  protocol.Color{Red: 0.0, Green: 0.0, Blue: 0.0, Alpha: 1.0},
		},
		{
			name:  "white",
			input: color.Color{R: 255, G: 255, B: 255},
			want:  protocol.Color{Red: 1.0, Green: 1.0, Blue: 1.0, Alpha: 1.0},
		},
		{
			name:  "mid gray",
			input: color.Color{R: 128, G: 128, B: 128},
			want:  protocol.Color{Red: float32(128) / 255.0, Green: float32(128) / 255.0, Blue: float32(128) / 255.0, Alpha: 1.0},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := colorToLSP(tt.input)
			if got.Red != tt.want.Red {
				t.Errorf("Red: got %f, want %f", got.Red, tt.want.Red)
			}
			if got.Green != tt.want.Green {
				t.Errorf("Green: got %f, want %f", got.Green, tt.want.Green)
			}
			if got.Blue != tt.want.Blue {
				t.Errorf("Blue: got %f, want %f", got.Blue, tt.want.Blue)
			}
			if got.Alpha != tt.want.Alpha {
				t.Errorf("Alpha: got %f, want %f", got.Alpha, tt.want.Alpha)
			}
		})
	}
}

func TestDocumentColors(t *testing.T) {
	red, _ := color.ParseHex("#ff0000")
	result := &AnalysisResult{
		Tokens: []TokenLocation{
			{
				Range:    protocol.Range{Start: protocol.Position{Line: 0, Character: 4}, End: protocol.Position{Line: 0, Character: 11}},
				Token:    "red-450",
				Color:    red,
				HasColor: true,
			},
			{
				Range: protocol.Range{Start: protocol.Position{Line: 1, Character: 4}, End: protocol.Position{Line: 1, Character: 13}},
				Token: "brand-500",
			},
		},
	}

	infos := documentColors(result)
	if len(infos) != 1 {
		t.Fatalf("expected 1 color, got %d", len(infos))
	}
	if infos[0].Range != result.Tokens[0].Range {
		t.Errorf("range = %+v, want %+v", infos[0].Range, result.Tokens[0].Range)
	}
	if infos[0].Color != (protocol.Color{Red: 1, Green: 0, Blue: 0, Alpha: 1}) {
		t.Errorf("color = %+v, want pure red", infos[0].Color)
	}
}

func TestDocumentColors_NilResult(t *testing.T) {
	infos := documentColors(nil)
	if infos == nil || len(infos) != 0 {
		t.Errorf("expected empty non-nil slice, got %v", infos)
	}
}

func TestDocumentColors_Analyzed(t *testing.T) {
	infos := documentColors(Analyze(testResolver(), testDocument))
	if len(infos) != 2 {
		t.Fatalf("expected 2 colors, got %d", len(infos))
	}
	if infos[1].Color != (protocol.Color{Alpha: 1}) {
		t.Errorf("red-1000 color = %+v, want black", infos[1].Color)
	}
}
