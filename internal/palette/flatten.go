package palette

import (
	"fmt"
	"strings"

	"go.uber.org/multierr"
)

// Flatten collapses a nested palette into "parent-child" keys. A DEFAULT
// child takes its parent's bare name and computed entries are omitted.
func Flatten(g Group) map[string]string {
	result := make(map[string]string, len(g))

	for key, entry := range g {
		switch e := entry.(type) {
		case Group:
			for child, value := range Flatten(e) {
				result[joinKey(key, child)] = value
			}
		case Literal:
			result[key] = e.Value
		case Computed:
			// computed values stay out of scale math
		}
	}

	return result
}

// Key returns the flattened key for a path of nested names: ["red", "500"]
// is "red-500" and ["brand", "DEFAULT"] is "brand".
func Key(path ...string) string {
	if len(path) == 0 {
		return ""
	}
	key := path[0]
	for _, child := range path[1:] {
		key = joinKey(key, child)
	}
	return key
}

func joinKey(parent, child string) string {
	if child == DefaultKey {
		return parent
	}
	return parent + "-" + child
}

// Validate checks the structural rules a palette must follow before it is
// indexed. All violations are reported together.
func Validate(g Group) error {
	var err error
	if _, ok := g[DefaultKey]; ok {
		err = multierr.Append(err, fmt.Errorf("%s is not allowed at the top level of a palette", DefaultKey))
	}
	return multierr.Append(err, validateGroup(g, nil))
}

func validateGroup(g Group, path []string) error {
	var err error
	for key, entry := range g {
		here := append(path[:len(path):len(path)], key)
		if strings.TrimSpace(key) == "" {
			err = multierr.Append(err, fmt.Errorf("palette.%s: empty name", strings.Join(here, ".")))
			continue
		}
		switch e := entry.(type) {
		case Group:
			if len(e) == 0 {
				err = multierr.Append(err, fmt.Errorf("palette.%s: group has no shades", strings.Join(here, ".")))
				continue
			}
			err = multierr.Append(err, validateGroup(e, here))
		case nil:
			err = multierr.Append(err, fmt.Errorf("palette.%s: missing value", strings.Join(here, ".")))
		}
	}
	return err
}
