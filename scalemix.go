// Package scalemix resolves color scale values such as "red-123" into CSS
// color-mix() expressions over a palette's 50-950 stops.
package scalemix

import (
	"fmt"

	"github.com/jsvensson/scalemix/internal/color"
	"github.com/jsvensson/scalemix/internal/engine"
	"github.com/jsvensson/scalemix/internal/parser"
)

// Scale is a loaded palette, ready for resolving scale values and
// rendering templates. It is not modified after Load and is safe for
// concurrent use.
type Scale struct {
	*parser.ParseResult
	Flat map[string]string
}

// Load parses an HCL, YAML or JSON palette file.
func Load(path string) (*Scale, error) {
	result, err := parser.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("loading palette: %w", err)
	}

	return &Scale{
		ParseResult: result,
		Flat:        result.Index.Values(),
	}, nil
}

// Resolve returns the CSS expression for token, or false when token is not
// a scale value of this palette.
func (s *Scale) Resolve(token string) (string, bool) {
	return s.Resolver.Resolve(token)
}

// Preview returns the sRGB color token resolves to, when its stops are
// literal colors.
func (s *Scale) Preview(token string) (color.Color, bool) {
	return s.Resolver.Preview(token)
}

// Generate renders every template in templatesDir into outDir. When apps is
// non-empty only those template basenames are rendered.
func (s *Scale) Generate(templatesDir, outDir string, apps []string) error {
	e := &engine.Engine{
		TemplatesDir: templatesDir,
		OutputDir:    outDir,
		Apps:         apps,
	}
	return e.Run(s.ParseResult)
}
