package palette

import (
	"regexp"
	"slices"

	"github.com/maruel/natural"
)

var stopSuffix = regexp.MustCompile(`^(.+)-\d+$`)

// ColorName strips a trailing "-<digits>" suffix from a flattened key.
// Keys without one are returned unchanged.
func ColorName(key string) string {
	if m := stopSuffix.FindStringSubmatch(key); m != nil {
		return m[1]
	}
	return key
}

// Index is the immutable view of one flattened palette: the defined stop
// keys, their values and the known base color names. It is safe for
// concurrent use.
type Index struct {
	values map[string]string
	names  map[string]struct{}
	keys   []string
	colors []string
}

// NewIndex builds an Index from a flattened palette. The map is copied.
func NewIndex(flat map[string]string) *Index {
	ix := &Index{
		values: make(map[string]string, len(flat)),
		names:  make(map[string]struct{}),
		keys:   make([]string, 0, len(flat)),
	}

	for key, value := range flat {
		ix.values[key] = value
		ix.keys = append(ix.keys, key)
		ix.names[ColorName(key)] = struct{}{}
	}

	for name := range ix.names {
		ix.colors = append(ix.colors, name)
	}

	slices.SortFunc(ix.keys, naturalCompare)
	slices.SortFunc(ix.colors, naturalCompare)

	return ix
}

// IndexGroup flattens g and indexes the result.
func IndexGroup(g Group) *Index {
	return NewIndex(Flatten(g))
}

// IsDefined reports whether key is an exact flattened palette key.
func (ix *Index) IsDefined(key string) bool {
	_, ok := ix.values[key]
	return ok
}

// HasColor reports whether name is a known base color name.
func (ix *Index) HasColor(name string) bool {
	_, ok := ix.names[name]
	return ok
}

// Value returns the literal value of a flattened key.
func (ix *Index) Value(key string) (string, bool) {
	v, ok := ix.values[key]
	return v, ok
}

// Keys returns the flattened keys in natural order ("red-50" before "red-100").
func (ix *Index) Keys() []string {
	return slices.Clone(ix.keys)
}

// Colors returns the known base color names in natural order.
func (ix *Index) Colors() []string {
	return slices.Clone(ix.colors)
}

// Values returns a copy of the flattened palette.
func (ix *Index) Values() map[string]string {
	out := make(map[string]string, len(ix.values))
	for k, v := range ix.values {
		out[k] = v
	}
	return out
}

// Len returns the number of flattened keys.
func (ix *Index) Len() int {
	return len(ix.values)
}

func naturalCompare(a, b string) int {
	switch {
	case natural.Less(a, b):
		return -1
	case natural.Less(b, a):
		return 1
	}
	return 0
}
