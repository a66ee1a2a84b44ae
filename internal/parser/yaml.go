package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/jsvensson/scalemix/internal/palette"
	"github.com/jsvensson/scalemix/internal/scale"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// cssValuesKey is the reserved key Tailwind-style theme exports use to
// attach option bitmasks to the values at the same level.
const cssValuesKey = "__CSS_VALUES__"

type yamlSettings struct {
	Prefix string `yaml:"prefix"`
	Space  string `yaml:"space"`
}

// parseYAML reads a YAML or JSON palette. The document is either the color
// map itself or a mapping with "palette" and optional "settings" keys.
func parseYAML(src []byte, filename string) (*ParseResult, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(src, &doc); err != nil {
		return nil, fmt.Errorf("parsing YAML: %w", err)
	}
	if len(doc.Content) == 0 {
		return nil, fmt.Errorf("no palette found")
	}

	root := resolveAlias(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("palette document must be a mapping")
	}

	settings := scale.DefaultSettings
	paletteNode := root

	if node := mappingValue(root, "palette"); node != nil && resolveAlias(node).Kind == yaml.MappingNode {
		paletteNode = resolveAlias(node)

		if sn := mappingValue(root, "settings"); sn != nil {
			var ys yamlSettings
			if err := sn.Decode(&ys); err != nil {
				return nil, fmt.Errorf("decoding settings: %w", err)
			}
			if ys.Prefix != "" {
				settings.Prefix = ys.Prefix
			}
			if ys.Space != "" {
				settings.Space = ys.Space
			}
		}
	}

	group, err := yamlGroup(paletteNode, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}

	result, err := newResult(settings, group)
	if err != nil {
		return nil, err
	}
	result.Locations = yamlRanges(paletteNode, filename, nil, result.Locations)
	return result, nil
}

// yamlGroup converts a mapping node into a palette group, translating the
// reserved __CSS_VALUES__ key into per-entry options.
func yamlGroup(n *yaml.Node, path []string) (palette.Group, error) {
	var errs error

	options := map[string]palette.Options{}
	if cv := mappingValue(n, cssValuesKey); cv != nil {
		var err error
		options, err = yamlOptions(resolveAlias(cv), path)
		errs = multierr.Append(errs, err)
	}

	group := make(palette.Group, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i].Value
		if key == cssValuesKey {
			continue
		}
		here := append(path[:len(path):len(path)], key)
		v := resolveAlias(n.Content[i+1])

		switch {
		case v.Kind == yaml.ScalarNode && v.Tag != "!!null":
			group[key] = palette.Classify(v.Value, options[key])
		case v.Kind == yaml.MappingNode:
			sub, err := yamlGroup(v, here)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			group[key] = sub
		default:
			errs = multierr.Append(errs, fmt.Errorf("palette.%s: expected a color string or a mapping of shades", strings.Join(here, ".")))
		}
	}

	return group, errs
}

func yamlOptions(n *yaml.Node, path []string) (map[string]palette.Options, error) {
	where := strings.Join(append(path[:len(path):len(path)], cssValuesKey), ".")
	if n.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("palette.%s: must be a mapping of option bitmasks", where)
	}

	out := make(map[string]palette.Options, len(n.Content)/2)
	var errs error
	for i := 0; i+1 < len(n.Content); i += 2 {
		key, v := n.Content[i].Value, resolveAlias(n.Content[i+1])
		mask, err := strconv.ParseUint(v.Value, 10, 8)
		if err != nil || v.Kind != yaml.ScalarNode {
			errs = multierr.Append(errs, fmt.Errorf("palette.%s.%s: invalid option bitmask %q", where, key, v.Value))
			continue
		}
		out[key] = palette.Options(mask)
	}
	return out, errs
}

func mappingValue(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

func resolveAlias(n *yaml.Node) *yaml.Node {
	for n.Kind == yaml.AliasNode && n.Alias != nil {
		n = n.Alias
	}
	return n
}
