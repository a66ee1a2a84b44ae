package lsp

import (
	"net/url"
	"path/filepath"

	"github.com/hashicorp/hcl/v2"
	"github.com/tliron/glsp"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

// hclPosToLSP converts an HCL position to an LSP position.
// HCL positions are 1-based; LSP positions are 0-based.
func hclPosToLSP(pos hcl.Pos) protocol.Position {
	return protocol.Position{
		Line:      uint32(max(pos.Line-1, 0)),
		Character: uint32(max(pos.Column-1, 0)),
	}
}

// hclRangeToLSP converts an HCL range to an LSP range.
func hclRangeToLSP(r hcl.Range) protocol.Range {
	return protocol.Range{
		Start: hclPosToLSP(r.Start),
		End:   hclPosToLSP(r.End),
	}
}

// definition returns the palette locations of the stops mixed by the scale
// value under the cursor. An interpolated value has two, a value fading to
// white or black has one. Returns nil if the cursor is not on a resolved
// value or none of its stops has a known location.
func definition(result *AnalysisResult, locations map[string]hcl.Range, paletteURI string, pos protocol.Position) []protocol.Location {
	if paletteURI == "" {
		return nil
	}

	tl, ok := result.tokenAt(pos)
	if !ok {
		return nil
	}

	var locs []protocol.Location
	for _, key := range tl.Stops {
		rng, ok := locations[key]
		if !ok {
			continue
		}
		locs = append(locs, protocol.Location{
			URI:   protocol.DocumentUri(paletteURI),
			Range: hclRangeToLSP(rng),
		})
	}
	return locs
}

// textDocumentDefinition handles textDocument/definition requests.
func (s *Server) textDocumentDefinition(_ *glsp.Context, params *protocol.DefinitionParams) (any, error) {
	result := s.getResult(string(params.TextDocument.URI))
	if result == nil {
		return nil, nil
	}

	s.mu.RLock()
	locations := s.locations
	s.mu.RUnlock()

	locs := definition(result, locations, pathToURI(s.palettePath), params.Position)
	if len(locs) == 0 {
		return nil, nil
	}
	return locs, nil
}

func pathToURI(path string) string {
	if path == "" {
		return ""
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	return u.String()
}
