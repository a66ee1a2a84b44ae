// Package scale extends the 50-950 stop scale of a palette into every
// integer from 0 to 1000, expressed as CSS color-mix() values.
package scale

import (
	"fmt"
	"regexp"
	"strconv"

	"github.com/jsvensson/scalemix/internal/color"
	"github.com/jsvensson/scalemix/internal/palette"
	"github.com/tliron/commonlog"
)

var tokenPattern = regexp.MustCompile(`^(.+)-(\d+)$`)

// Token is a parsed bare value such as "red-123".
type Token struct {
	Name  string
	Scale int
}

func (t Token) String() string {
	return t.Name + "-" + strconv.Itoa(t.Scale)
}

// ParseToken splits a bare value into a color name and scale value. Digit
// groups with a leading zero are rejected, except "0" itself.
func ParseToken(bare string) (Token, bool) {
	m := tokenPattern.FindStringSubmatch(bare)
	if m == nil {
		return Token{}, false
	}

	digits := m[2]
	if len(digits) > 1 && digits[0] == '0' {
		return Token{}, false
	}

	n, err := strconv.Atoi(digits)
	if err != nil {
		return Token{}, false
	}

	return Token{Name: m[1], Scale: n}, true
}

// Resolver turns bare values into color expressions for one palette. It
// holds no mutable state and is safe for concurrent use.
type Resolver struct {
	index    *palette.Index
	settings Settings
	log      commonlog.Logger
}

// NewResolver returns a Resolver backed by index.
func NewResolver(index *palette.Index, settings Settings) *Resolver {
	return &Resolver{
		index:    index,
		settings: settings,
		log:      commonlog.GetLogger("scalemix.scale"),
	}
}

func (r *Resolver) Index() *palette.Index {
	return r.index
}

func (r *Resolver) Settings() Settings {
	return r.settings
}

// Accept validates a bare value. It returns false when the value is
// malformed, already defined by the palette, names an unknown color, or is
// outside [MinScale, MaxScale]. Defined stops are left to ordinary lookup.
func (r *Resolver) Accept(bare string) (Token, bool) {
	tok, ok := ParseToken(bare)
	if !ok {
		return Token{}, false
	}
	if r.index.IsDefined(bare) {
		return Token{}, false
	}
	if !r.index.HasColor(tok.Name) {
		return Token{}, false
	}
	if tok.Scale < MinScale || tok.Scale > MaxScale {
		return Token{}, false
	}
	return tok, true
}

// Resolve returns the CSS expression for a bare value, or false if the
// value is not handled by scale interpolation.
func (r *Resolver) Resolve(bare string) (string, bool) {
	tok, ok := r.Accept(bare)
	if !ok {
		return "", false
	}
	return r.settings.Expression(tok.Name, r.plan(tok)), true
}

// Preview computes the sRGB color a resolved expression evaluates to.
// It needs every stop the blend refers to to hold a parseable color.
func (r *Resolver) Preview(bare string) (color.Color, bool) {
	tok, ok := r.Accept(bare)
	if !ok {
		return color.Color{}, false
	}

	b := r.plan(tok)
	first, err := r.colorant(tok.Name, b.First)
	if err != nil {
		r.log.Debugf("no preview for %s: %s", bare, err)
		return color.Color{}, false
	}
	if b.IsDirect() {
		return first.Color(), true
	}

	second, err := r.colorant(tok.Name, b.Second)
	if err != nil {
		r.log.Debugf("no preview for %s: %s", bare, err)
		return color.Color{}, false
	}

	return color.Mix(first, second, b.Percent/100).Color(), true
}

// Stops returns the palette keys the blend for bare mixes, upper stop
// first. The white and black keywords are not palette keys and are left out.
func (r *Resolver) Stops(bare string) []string {
	tok, ok := r.Accept(bare)
	if !ok {
		return nil
	}

	b := r.plan(tok)
	var keys []string
	for _, c := range []Colorant{b.First, b.Second} {
		if c.IsZero() || c.Keyword != "" {
			continue
		}
		keys = append(keys, stopKey(tok.Name, c.Stop))
	}
	return keys
}

// plan never fails for an accepted token; if it somehow does, the failure
// is logged and the nearest stop is used.
func (r *Resolver) plan(tok Token) Blend {
	b, err := Plan(tok.Scale)
	if err != nil {
		r.log.Errorf("resolving %s: %s", tok, err)
	}
	return b
}

func (r *Resolver) colorant(name string, c Colorant) (color.OKLCH, error) {
	switch c {
	case White:
		return color.White, nil
	case Black:
		return color.Black, nil
	}

	key := stopKey(name, c.Stop)
	value, ok := r.index.Value(key)
	if !ok {
		return color.OKLCH{}, fmt.Errorf("%s is not defined", key)
	}
	return color.ParseCSS(value)
}

func stopKey(name string, stop int) string {
	return name + "-" + strconv.Itoa(stop)
}
