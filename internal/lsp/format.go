package lsp

import (
	"strings"

	"github.com/jsvensson/scalemix/internal/format"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// formatEdits returns a single edit replacing the whole document, or none
// if it is already formatted.
func formatEdits(content string) []protocol.TextEdit {
	formatted := format.Format(content)
	if formatted == content {
		return []protocol.TextEdit{}
	}

	lines := strings.Split(content, "\n")
	last := lines[len(lines)-1]
	return []protocol.TextEdit{
		{
			Range: protocol.Range{
				Start: protocol.Position{Line: 0, Character: 0},
				End:   protocol.Position{Line: uint32(len(lines) - 1), Character: utf16Len(last)},
			},
			NewText: formatted,
		},
	}
}

// textDocumentFormatting handles textDocument/formatting requests for HCL
// palette files. Other documents are left alone.
func (s *Server) textDocumentFormatting(_ *glsp.Context, params *protocol.DocumentFormattingParams) ([]protocol.TextEdit, error) {
	uri := string(params.TextDocument.URI)
	if !strings.HasSuffix(uri, ".hcl") {
		return nil, nil
	}

	content, ok := s.docs.Get(uri)
	if !ok {
		return nil, nil
	}
	return formatEdits(content), nil
}
