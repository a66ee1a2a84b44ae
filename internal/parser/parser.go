package parser

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/scalemix/internal/palette"
	"github.com/jsvensson/scalemix/internal/scale"
	"github.com/zclconf/go-cty/cty"
	"go.uber.org/multierr"
)

// ParseResult holds a loaded palette and everything derived from it.
type ParseResult struct {
	Settings scale.Settings
	Palette  palette.Group
	Index    *palette.Index
	Resolver *scale.Resolver
	Aliases  map[string]string

	// Locations maps flattened keys to where they are defined in the
	// palette source.
	Locations map[string]hcl.Range
}

// SettingsBlock holds expression rendering settings.
type SettingsBlock struct {
	Prefix string `hcl:"prefix,optional"`
	Space  string `hcl:"space,optional"`
}

// PaletteBlock wraps the palette block for gohcl decoding.
type PaletteBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// OptionsBlock maps palette names to option keyword lists, or to nested
// objects for the shades of a group.
type OptionsBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// RawConfig captures everything that is decoded without an EvalContext.
type RawConfig struct {
	Settings *SettingsBlock `hcl:"settings,block"`
	Palette  *PaletteBlock  `hcl:"palette,block"`
	Options  *OptionsBlock  `hcl:"options,block"`
	Remain   hcl.Body       `hcl:",remain"`
}

// AliasBlock wraps the alias block; its attributes may call scale functions.
type AliasBlock struct {
	Entries hcl.Body `hcl:",remain"`
}

// ResolvedConfig decodes blocks that depend on the resolved palette.
type ResolvedConfig struct {
	Alias  *AliasBlock `hcl:"alias,block"`
	Remain hcl.Body    `hcl:",remain"`
}

// Loader handles two-pass HCL decoding: the palette first, then blocks that
// reference it through the evaluation context.
type Loader struct {
	body   hcl.Body
	ctx    *hcl.EvalContext
	result *ParseResult
}

// NewLoader parses an HCL palette file and builds the evaluation context.
func NewLoader(path string) (*Loader, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return newLoader(src, path)
}

func newLoader(src []byte, filename string) (*Loader, error) {
	file, diags := hclsyntax.ParseConfig(src, filename, hcl.Pos{Line: 1, Column: 1})
	if diags.HasErrors() {
		return nil, fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw RawConfig
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decoding palette: %s", diags.Error())
	}

	if raw.Palette == nil {
		return nil, fmt.Errorf("no palette block found")
	}

	paletteBody, ok := raw.Palette.Entries.(*hclsyntax.Body)
	if !ok {
		return nil, fmt.Errorf("palette block is not an hclsyntax.Body")
	}

	group, err := parsePaletteBody(paletteBody, nil)
	if err != nil {
		return nil, fmt.Errorf("parsing palette: %w", err)
	}

	if raw.Options != nil {
		if err := applyOptions(raw.Options.Entries, group); err != nil {
			return nil, fmt.Errorf("parsing options: %w", err)
		}
	}

	settings := scale.DefaultSettings
	if raw.Settings != nil {
		if raw.Settings.Prefix != "" {
			settings.Prefix = raw.Settings.Prefix
		}
		if raw.Settings.Space != "" {
			settings.Space = raw.Settings.Space
		}
	}

	result, err := newResult(settings, group)
	if err != nil {
		return nil, err
	}
	result.Locations = paletteRanges(paletteBody, nil, make(map[string]hcl.Range))

	return &Loader{
		body:   file.Body,
		ctx:    buildEvalContext(result.Resolver),
		result: result,
	}, nil
}

// Decode decodes a value using the palette context.
func (l *Loader) Decode(target any) error {
	if diags := gohcl.DecodeBody(l.body, l.ctx, target); diags.HasErrors() {
		return fmt.Errorf("decoding: %s", diags.Error())
	}
	return nil
}

// Context returns the EvalContext for manual parsing.
func (l *Loader) Context() *hcl.EvalContext {
	return l.ctx
}

// Result returns the palette data decoded in the first pass.
func (l *Loader) Result() *ParseResult {
	return l.result
}

// Parse loads a palette file. Files ending in .yaml, .yml or .json are read
// as YAML; anything else is HCL.
func Parse(path string) (*ParseResult, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading palette file: %w", err)
	}
	return ParseBytes(src, path)
}

// ParseBytes parses palette source held in memory, choosing the format
// from the filename extension as Parse does.
func ParseBytes(src []byte, filename string) (*ParseResult, error) {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml", ".json":
		return parseYAML(src, filename)
	}
	return ParseHCL(src, filename)
}

// ParseHCL parses HCL palette source held in memory.
func ParseHCL(src []byte, filename string) (*ParseResult, error) {
	loader, err := newLoader(src, filename)
	if err != nil {
		return nil, err
	}
	return loader.resolve()
}

func (l *Loader) resolve() (*ParseResult, error) {
	var resolved ResolvedConfig
	if err := l.Decode(&resolved); err != nil {
		return nil, err
	}

	aliases := make(map[string]string)
	if resolved.Alias != nil {
		var err error
		aliases, err = decodeAliases(resolved.Alias.Entries, l.ctx)
		if err != nil {
			return nil, fmt.Errorf("parsing alias: %w", err)
		}
	}

	result := *l.result
	result.Aliases = aliases
	return &result, nil
}

// newResult validates settings and palette and derives the index and
// resolver shared by every loader.
func newResult(settings scale.Settings, group palette.Group) (*ParseResult, error) {
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("parsing settings: %w", err)
	}
	if err := palette.Validate(group); err != nil {
		return nil, fmt.Errorf("invalid palette: %w", err)
	}

	index := palette.IndexGroup(group)
	return &ParseResult{
		Settings:  settings,
		Palette:   group,
		Index:     index,
		Resolver:  scale.NewResolver(index, settings),
		Aliases:   map[string]string{},
		Locations: map[string]hcl.Range{},
	}, nil
}

// parsePaletteBody parses a palette body with support for:
// - Direct values: white = "#ffffff"
// - Object values: red = { 50 = "...", 100 = "..." }
// - Nested blocks: brand { DEFAULT = "...", light = "..." }
// Palette values are evaluated without context.
func parsePaletteBody(body *hclsyntax.Body, ctx *hcl.EvalContext) (palette.Group, error) {
	dest := make(palette.Group, len(body.Attributes)+len(body.Blocks))
	var errs error

	names := make([]string, 0, len(body.Attributes))
	for name := range body.Attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		attr := body.Attributes[name]
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			errs = multierr.Append(errs, fmt.Errorf("evaluating palette.%s: %s", name, diags.Error()))
			continue
		}
		entry, err := ctyToEntry(name, val)
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		dest[name] = entry
	}

	for _, block := range body.Blocks {
		if len(block.Labels) > 0 {
			errs = multierr.Append(errs, fmt.Errorf("palette.%s: blocks take no labels", block.Type))
			continue
		}
		sub, err := parsePaletteBody(block.Body, ctx)
		if err != nil {
			errs = multierr.Append(errs, fmt.Errorf("palette.%s: %w", block.Type, err))
			continue
		}
		dest[block.Type] = sub
	}

	return dest, errs
}

// ctyToEntry converts an evaluated palette value: strings become literals,
// objects and maps become groups keyed by their attribute names.
func ctyToEntry(path string, val cty.Value) (palette.Entry, error) {
	if val.IsNull() || !val.IsKnown() {
		return nil, fmt.Errorf("palette.%s: value is null", path)
	}

	ty := val.Type()
	switch {
	case ty == cty.String:
		return palette.Literal{Value: val.AsString()}, nil
	case ty.IsObjectType() || ty.IsMapType():
		group := make(palette.Group, val.LengthInt())
		var errs error
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			key := k.AsString()
			entry, err := ctyToEntry(path+"."+key, v)
			if err != nil {
				errs = multierr.Append(errs, err)
				continue
			}
			group[key] = entry
		}
		return group, errs
	}

	return nil, fmt.Errorf("palette.%s: expected a color string or an object of shades, got %s", path, ty.FriendlyName())
}

// applyOptions marks palette entries with option keywords. An object value
// descends into the group of the same name, so nested shades can be marked
// as in options { red = { 500 = ["inline"] } }.
func applyOptions(body hcl.Body, group palette.Group) error {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return fmt.Errorf("getting attributes: %s", diags.Error())
	}

	var errs error
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(nil)
		if diags.HasErrors() {
			errs = multierr.Append(errs, fmt.Errorf("evaluating options.%s: %s", name, diags.Error()))
			continue
		}
		errs = multierr.Append(errs, markEntry(group, []string{name}, val))
	}

	return errs
}

// markEntry applies the options in val to the entry at the last element of
// path within group.
func markEntry(group palette.Group, path []string, val cty.Value) error {
	name := path[len(path)-1]
	where := "options." + strings.Join(path, ".")

	entry, ok := group[name]
	if !ok {
		return fmt.Errorf("%s: no such palette entry", where)
	}

	if !val.IsNull() && (val.Type().IsObjectType() || val.Type().IsMapType()) {
		sub, ok := entry.(palette.Group)
		if !ok {
			return fmt.Errorf("%s: nested options need a group of shades", where)
		}
		var errs error
		for it := val.ElementIterator(); it.Next(); {
			k, v := it.Element()
			errs = multierr.Append(errs, markEntry(sub, append(path[:len(path):len(path)], k.AsString()), v))
		}
		return errs
	}

	keywords, err := ctyToStrings(val)
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}
	opts, err := palette.ParseOptions(keywords)
	if err != nil {
		return fmt.Errorf("%s: %w", where, err)
	}

	switch e := entry.(type) {
	case palette.Literal:
		group[name] = palette.Classify(e.Value, opts)
	case palette.Computed:
		group[name] = palette.Classify(e.Value, e.Options|opts)
	default:
		return fmt.Errorf("%s: options apply to single values, not groups", where)
	}
	return nil
}

func ctyToStrings(val cty.Value) ([]string, error) {
	if val.IsNull() {
		return nil, nil
	}
	if val.Type() == cty.String {
		return []string{val.AsString()}, nil
	}
	ty := val.Type()
	if !ty.IsTupleType() && !ty.IsListType() && !ty.IsSetType() {
		return nil, fmt.Errorf("expected a list of option names, got %s", ty.FriendlyName())
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, v := it.Element()
		if v.IsNull() || v.Type() != cty.String {
			return nil, fmt.Errorf("option names must be strings")
		}
		out = append(out, v.AsString())
	}
	return out, nil
}

// decodeAliases evaluates alias attributes against the palette context.
func decodeAliases(body hcl.Body, ctx *hcl.EvalContext) (map[string]string, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("getting attributes: %s", diags.Error())
	}

	result := make(map[string]string, len(attrs))
	var errs error
	for name, attr := range attrs {
		val, diags := attr.Expr.Value(ctx)
		if diags.HasErrors() {
			errs = multierr.Append(errs, fmt.Errorf("evaluating alias.%s: %s", name, diags.Error()))
			continue
		}
		if val.IsNull() || val.Type() != cty.String {
			errs = multierr.Append(errs, fmt.Errorf("alias.%s: expected a string, got %s", name, val.Type().FriendlyName()))
			continue
		}
		result[name] = val.AsString()
	}
	return result, errs
}
