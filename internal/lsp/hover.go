package lsp

import (
	"fmt"

	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// posInRange returns true if pos is within the range [r.Start, r.End).
// The end position is exclusive.
func posInRange(pos protocol.Position, r protocol.Range) bool {
	if pos.Line < r.Start.Line || pos.Line > r.End.Line {
		return false
	}
	if pos.Line == r.Start.Line && pos.Character < r.Start.Character {
		return false
	}
	if pos.Line == r.End.Line && pos.Character >= r.End.Character {
		return false
	}
	return true
}

// hover shows the expression a scale value resolves to and, when the
// stops hold literal colors, its preview.
func hover(result *AnalysisResult, pos protocol.Position) *protocol.Hover {
	tl, ok := result.tokenAt(pos)
	if !ok {
		return nil
	}

	md := fmt.Sprintf("**%s**\n\n`%s`", tl.Token, tl.Expression)
	if tl.HasColor {
		md += fmt.Sprintf("\n\n`%s` · `%s`", tl.Color.Hex(), tl.Color.RGB())
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: md,
		},
		Range: &tl.Range,
	}
}

// textDocumentHover handles textDocument/hover requests.
func (s *Server) textDocumentHover(_ *glsp.Context, params *protocol.HoverParams) (*protocol.Hover, error) {
	return hover(s.getResult(string(params.TextDocument.URI)), params.Position), nil
}
