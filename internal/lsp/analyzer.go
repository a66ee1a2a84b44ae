package lsp

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf16"

	"github.com/jsvensson/scalemix/internal/color"
	"github.com/jsvensson/scalemix/internal/scale"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

var (
	DiagError   = protocol.DiagnosticSeverityError
	DiagWarning = protocol.DiagnosticSeverityWarning
)

// candidatePattern finds words that end in a scale value. Utility prefixes
// such as "bg-" are peeled off later.
var candidatePattern = regexp.MustCompile(`[A-Za-z][\w-]*-\d+\b`)

// AnalysisResult holds the scale values found in one document.
type AnalysisResult struct {
	Diagnostics []protocol.Diagnostic
	Tokens      []TokenLocation
}

// TokenLocation records a resolved scale value at a specific source position.
type TokenLocation struct {
	Range      protocol.Range
	Token      string
	Expression string
	Color      color.Color
	HasColor   bool     // false when the stops it mixes are not literal colors
	Stops      []string // palette keys the expression mixes
}

// Analyze scans content line by line for scale values the resolver accepts.
// Values naming a known color outside the 0-1000 range are reported as
// warnings. A nil resolver yields an empty result.
func Analyze(r *scale.Resolver, content string) *AnalysisResult {
	result := &AnalysisResult{}
	if r == nil {
		return result
	}

	for lineNo, line := range strings.Split(content, "\n") {
		for _, m := range candidatePattern.FindAllStringIndex(line, -1) {
			result.scan(r, line, uint32(lineNo), m[0], m[1])
		}
	}
	return result
}

// scan tries the word line[from:to] and then each suffix starting after a
// hyphen, so "bg-red-500" is read as "red-500". The first suffix naming a
// known color decides the outcome.
func (res *AnalysisResult) scan(r *scale.Resolver, line string, lineNo uint32, from, to int) {
	word := line[from:to]
	for start := 0; start < len(word); start++ {
		if start > 0 && (word[start-1] != '-' || !isLetter(word[start])) {
			continue
		}

		text := word[start:]
		tok, ok := scale.ParseToken(text)
		if !ok || !r.Index().HasColor(tok.Name) {
			continue
		}

		rng := protocol.Range{
			Start: protocol.Position{Line: lineNo, Character: utf16Len(line[:from+start])},
			End:   protocol.Position{Line: lineNo, Character: utf16Len(line[:to])},
		}

		if expr, ok := r.Resolve(text); ok {
			loc := TokenLocation{Range: rng, Token: text, Expression: expr, Stops: r.Stops(text)}
			loc.Color, loc.HasColor = r.Preview(text)
			res.Tokens = append(res.Tokens, loc)
		} else if !r.Index().IsDefined(text) && tok.Scale > scale.MaxScale {
			res.addWarning(rng, fmt.Sprintf("%s: scale value must be between %d and %d", text, scale.MinScale, scale.MaxScale))
		}
		return
	}
}

func (res *AnalysisResult) addWarning(rng protocol.Range, msg string) {
	res.Diagnostics = append(res.Diagnostics, protocol.Diagnostic{
		Range:    rng,
		Severity: &DiagWarning,
		Source:   strPtr(serverName),
		Message:  msg,
	})
}

// tokenAt returns the token whose range contains pos.
func (res *AnalysisResult) tokenAt(pos protocol.Position) (TokenLocation, bool) {
	if res == nil {
		return TokenLocation{}, false
	}
	for _, tl := range res.Tokens {
		if posInRange(pos, tl.Range) {
			return tl, true
		}
	}
	return TokenLocation{}, false
}

// utf16Len counts s in UTF-16 code units, the unit of LSP character
// offsets.
func utf16Len(s string) uint32 {
	n := 0
	for _, c := range s {
		n += len(utf16.Encode([]rune{c}))
	}
	return uint32(n)
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}

func strPtr(s string) *string {
	return &s
}
