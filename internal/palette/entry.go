// Package palette models nested color palettes and flattens them into the
// "family-stop" keys the scale resolver works against.
package palette

import (
	"fmt"
	"sort"
	"strings"
)

// DefaultKey names the nested value that represents a family's bare name.
const DefaultKey = "DEFAULT"

// Options are the theme flags a host attaches to individual palette values.
type Options uint8

const (
	OptionInline Options = 1 << iota
	OptionReference
	OptionDefault
	OptionStatic
	OptionUsed

	OptionNone Options = 0
)

var optionNames = map[string]Options{
	"inline":    OptionInline,
	"reference": OptionReference,
	"default":   OptionDefault,
	"static":    OptionStatic,
	"used":      OptionUsed,
}

// ParseOptions converts option keywords into an Options set.
func ParseOptions(names []string) (Options, error) {
	var opts Options
	for _, name := range names {
		o, ok := optionNames[strings.ToLower(name)]
		if !ok {
			return OptionNone, fmt.Errorf("unknown option %q (valid: inline, reference, default, static, used)", name)
		}
		opts |= o
	}
	return opts, nil
}

// Has reports whether every flag in flag is set.
func (o Options) Has(flag Options) bool {
	return o&flag == flag
}

func (o Options) String() string {
	if o == OptionNone {
		return "none"
	}
	var names []string
	for name, flag := range optionNames {
		if o.Has(flag) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return strings.Join(names, "|")
}

// Entry is a palette value. It is one of Literal, Computed or Group.
type Entry interface {
	isEntry()
}

// Literal is a color value that is exposed to scale math.
type Literal struct {
	Value   string
	Options Options
}

// Computed is a value the host derives at build time. It never appears in a
// flattened palette.
type Computed struct {
	Value   string
	Options Options
}

// Group is a nested set of shades keyed by stop or sub-name.
type Group map[string]Entry

func (Literal) isEntry()  {}
func (Computed) isEntry() {}
func (Group) isEntry()    {}

// Classify returns the entry variant for a value carrying opts. Values marked
// default are computed; everything else is literal.
func Classify(value string, opts Options) Entry {
	if opts.Has(OptionDefault) {
		return Computed{Value: value, Options: opts}
	}
	return Literal{Value: value, Options: opts}
}
