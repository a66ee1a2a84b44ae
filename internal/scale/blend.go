package scale

import (
	"errors"
	"fmt"
	"slices"
)

const (
	MinScale = 0
	MaxScale = 1000
)

// ReferenceStops are the standard stops every scale value is interpolated
// between.
var ReferenceStops = [...]int{50, 100, 200, 300, 400, 500, 600, 700, 800, 900, 950}

var (
	firstStop = ReferenceStops[0]
	lastStop  = ReferenceStops[len(ReferenceStops)-1]
)

var errNoUpperStop = errors.New("no reference stop at or above scale value")

// Colorant is one side of a blend: either a palette stop or a CSS keyword.
type Colorant struct {
	Stop    int
	Keyword string
}

var (
	White = Colorant{Keyword: "white"}
	Black = Colorant{Keyword: "black"}
)

// At returns the colorant for a palette stop.
func At(stop int) Colorant {
	return Colorant{Stop: stop}
}

func (c Colorant) IsZero() bool {
	return c == Colorant{}
}

func (c Colorant) String() string {
	if c.Keyword != "" {
		return c.Keyword
	}
	return fmt.Sprint(c.Stop)
}

// Blend is the composition of a scale value: First at Percent, mixed with
// Second for the remainder. A blend with no Second is a direct reference.
type Blend struct {
	First   Colorant
	Second  Colorant
	Percent float64
}

// IsDirect reports whether the blend is a plain reference to First.
func (b Blend) IsDirect() bool {
	return b.Second.IsZero()
}

// Plan computes the blend for a scale value in [MinScale, MaxScale].
//
// Below the first stop the value fades toward white, above the last stop
// toward black. In between it is interpolated across the two surrounding
// stops; the 50-100 interval always uses a doubled offset.
func Plan(scale int) (Blend, error) {
	if scale < firstStop {
		return Blend{First: At(firstStop), Second: White, Percent: float64(scale * 2)}, nil
	}
	if scale > lastStop {
		return Blend{First: Black, Second: At(lastStop), Percent: float64((scale - lastStop) * 2)}, nil
	}

	i := slices.IndexFunc(ReferenceStops[:], func(s int) bool { return s >= scale })
	if i < 0 {
		return Blend{First: At(lastStop), Percent: 100}, fmt.Errorf("scale %d: %w", scale, errNoUpperStop)
	}

	upper := ReferenceStops[i]
	if scale == upper {
		return Blend{First: At(upper), Percent: 100}, nil
	}

	lower := firstStop
	if i > 0 {
		lower = ReferenceStops[i-1]
	}

	offset := scale - lower
	var percent float64
	if lower == 50 && upper == 100 {
		percent = float64(offset * 2)
	} else {
		percent = float64(offset*100) / float64(upper-lower)
	}

	return Blend{First: At(upper), Second: At(lower), Percent: percent}, nil
}
