package color

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Color represents an sRGB color. Previews are always rendered to this type;
// interpolation itself happens in OKLCH.
type Color struct {
	R, G, B uint8
}

// ParseHex parses a hex color string like "#eb6f92" into a Color.
func ParseHex(s string) (Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) != 6 {
		return Color{}, fmt.Errorf("invalid hex color %q: must be 6 hex digits", s)
	}
	var r, g, b uint8
	_, err := fmt.Sscanf(s, "%02x%02x%02x", &r, &g, &b)
	if err != nil {
		return Color{}, fmt.Errorf("invalid hex color %q: %w", s, err)
	}
	return Color{R: r, G: g, B: b}, nil
}

// Hex returns the color as a hex string with leading #, e.g. "#eb6f92".
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// RGB returns the color as an rgb() string, e.g. "rgb(235, 111, 146)".
func (c Color) RGB() string {
	return fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B)
}

// ParseCSS parses the subset of CSS color syntax palettes are written in:
// "#rrggbb", "oklch(L C H)" (optionally with "/ alpha", which is ignored),
// and the keywords white and black.
func ParseCSS(s string) (OKLCH, error) {
	s = strings.ToLower(strings.TrimSpace(s))

	switch {
	case s == "white":
		return White, nil
	case s == "black":
		return Black, nil
	case strings.HasPrefix(s, "#"):
		c, err := ParseHex(s)
		if err != nil {
			return OKLCH{}, err
		}
		return c.OKLCH(), nil
	case strings.HasPrefix(s, "oklch(") && strings.HasSuffix(s, ")"):
		return parseOKLCHFunc(strings.TrimSuffix(strings.TrimPrefix(s, "oklch("), ")"))
	}

	return OKLCH{}, fmt.Errorf("unsupported color %q: expected #rrggbb, oklch() or white/black", s)
}

func parseOKLCHFunc(args string) (OKLCH, error) {
	if i := strings.IndexByte(args, '/'); i >= 0 {
		args = args[:i]
	}
	fields := strings.Fields(args)
	if len(fields) != 3 {
		return OKLCH{}, fmt.Errorf("invalid oklch(%s): want 3 components, got %d", args, len(fields))
	}

	l, err := parseComponent(fields[0], 1)
	if err != nil {
		return OKLCH{}, fmt.Errorf("oklch lightness: %w", err)
	}
	c, err := parseComponent(fields[1], 0.4)
	if err != nil {
		return OKLCH{}, fmt.Errorf("oklch chroma: %w", err)
	}

	h := math.NaN()
	if fields[2] != "none" {
		h, err = strconv.ParseFloat(strings.TrimSuffix(fields[2], "deg"), 64)
		if err != nil {
			return OKLCH{}, fmt.Errorf("oklch hue: %w", err)
		}
		h = normalizeHue(h)
	}

	return OKLCH{L: l, C: c, H: h}, nil
}

// parseComponent parses a number or a percentage, where 100% maps to full.
// "none" is treated as zero.
func parseComponent(s string, full float64) (float64, error) {
	if s == "none" {
		return 0, nil
	}
	if pct, ok := strings.CutSuffix(s, "%"); ok {
		v, err := strconv.ParseFloat(pct, 64)
		if err != nil {
			return 0, err
		}
		return v / 100 * full, nil
	}
	return strconv.ParseFloat(s, 64)
}
