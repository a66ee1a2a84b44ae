package lsp

import (
	"github.com/jsvensson/scalemix/internal/color"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// colorToLSP converts an internal color.Color (uint8 RGB) to a protocol.Color (float32 0.0-1.0).
func colorToLSP(c color.Color) protocol.Color {
	return protocol.Color{
		Red:   float32(c.R) / 255.0,
		Green: float32(c.G) / 255.0,
		Blue:  float32(c.B) / 255.0,
		Alpha: 1.0,
	}
}

// documentColors reports a swatch for every scale value with a preview.
func documentColors(result *AnalysisResult) []protocol.ColorInformation {
	infos := []protocol.ColorInformation{}
	if result == nil {
		return infos
	}

	for _, tl := range result.Tokens {
		if !tl.HasColor {
			continue
		}
		infos = append(infos, protocol.ColorInformation{
			Range: tl.Range,
			Color: colorToLSP(tl.Color),
		})
	}
	return infos
}

// textDocumentDocumentColor handles textDocument/documentColor requests.
func (s *Server) textDocumentDocumentColor(_ *glsp.Context, params *protocol.DocumentColorParams) ([]protocol.ColorInformation, error) {
	return documentColors(s.getResult(string(params.TextDocument.URI))), nil
}

// textDocumentColorPresentation handles textDocument/colorPresentation
// requests. Scale values name a position on the palette, so picking a new
// color never rewrites them.
func (s *Server) textDocumentColorPresentation(_ *glsp.Context, _ *protocol.ColorPresentationParams) ([]protocol.ColorPresentation, error) {
	return []protocol.ColorPresentation{}, nil
}
