package scale

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// Settings control how expressions are rendered.
type Settings struct {
	// Prefix is the custom property prefix stops are exposed under,
	// e.g. "--color" for var(--color-red-500).
	Prefix string
	// Space is the color-mix() interpolation color space.
	Space string
}

// DefaultSettings matches the conventional --color-* theme variables,
// interpolated in OKLCH.
var DefaultSettings = Settings{
	Prefix: "--color",
	Space:  "oklch",
}

var interpolationSpaces = []string{
	"srgb", "srgb-linear", "lab", "oklab", "xyz", "hsl", "hwb", "lch", "oklch",
}

// Validate checks that the prefix is a custom property prefix and the
// space is a color-mix() interpolation space.
func (s Settings) Validate() error {
	if !strings.HasPrefix(s.Prefix, "--") || len(s.Prefix) < 3 {
		return fmt.Errorf("invalid prefix %q: must start with -- and name a custom property", s.Prefix)
	}
	if !slices.Contains(interpolationSpaces, s.Space) {
		return fmt.Errorf("invalid color space %q (valid: %s)", s.Space, strings.Join(interpolationSpaces, ", "))
	}
	return nil
}

// Reference returns the var() reference for a family stop.
func (s Settings) Reference(name string, stop int) string {
	return s.Var(name + "-" + strconv.Itoa(stop))
}

// Var returns the var() reference for a flattened palette key.
func (s Settings) Var(key string) string {
	return "var(" + s.Prefix + "-" + key + ")"
}

// Expression renders a blend for the family name as a CSS value.
func (s Settings) Expression(name string, b Blend) string {
	if b.IsDirect() {
		return s.colorant(name, b.First)
	}
	return fmt.Sprintf("color-mix(in %s,%s %s%%,%s)",
		s.Space, s.colorant(name, b.First), FormatPercent(b.Percent), s.colorant(name, b.Second))
}

func (s Settings) colorant(name string, c Colorant) string {
	if c.Keyword != "" {
		return c.Keyword
	}
	return s.Reference(name, c.Stop)
}

// FormatPercent prints p with as many digits as it needs and no more.
func FormatPercent(p float64) string {
	return strconv.FormatFloat(p, 'f', -1, 64)
}
