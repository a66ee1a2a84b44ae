package parser

import (
	"unicode/utf8"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/jsvensson/scalemix/internal/palette"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"gopkg.in/yaml.v3"
)

// paletteRanges records the source range of every leaf in an HCL palette
// body under its flattened key.
func paletteRanges(body *hclsyntax.Body, path []string, out map[string]hcl.Range) map[string]hcl.Range {
	for name, attr := range body.Attributes {
		exprRanges(attr.Expr, attr.SrcRange, append(path[:len(path):len(path)], name), out)
	}
	for _, block := range body.Blocks {
		paletteRanges(block.Body, append(path[:len(path):len(path)], block.Type), out)
	}
	return out
}

// exprRanges descends into object constructors. Each shade's range covers
// its key and value, e.g. `50 = "#fef2f2"`.
func exprRanges(expr hclsyntax.Expression, rng hcl.Range, path []string, out map[string]hcl.Range) {
	obj, ok := expr.(*hclsyntax.ObjectConsExpr)
	if !ok {
		out[palette.Key(path...)] = rng
		return
	}

	for _, item := range obj.Items {
		key, ok := objectKey(item.KeyExpr)
		if !ok {
			continue
		}
		itemRange := hcl.RangeBetween(item.KeyExpr.Range(), item.ValueExpr.Range())
		exprRanges(item.ValueExpr, itemRange, append(path[:len(path):len(path)], key), out)
	}
}

// objectKey returns an object key as written: bare names as-is and numeric
// stops such as 50 in their decimal form.
func objectKey(expr hclsyntax.Expression) (string, bool) {
	if kw := hcl.ExprAsKeyword(expr); kw != "" {
		return kw, true
	}

	val, diags := expr.Value(nil)
	if diags.HasErrors() || val.IsNull() || !val.IsKnown() {
		return "", false
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", false
	}
	return val.AsString(), true
}

// yamlRanges records the position of every leaf key in a YAML palette
// mapping under its flattened key. YAML nodes carry no byte offsets, so
// only lines and columns are set.
func yamlRanges(n *yaml.Node, filename string, path []string, out map[string]hcl.Range) map[string]hcl.Range {
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Value == cssValuesKey {
			continue
		}
		here := append(path[:len(path):len(path)], k.Value)

		if v := resolveAlias(n.Content[i+1]); v.Kind == yaml.MappingNode {
			yamlRanges(v, filename, here, out)
			continue
		}

		out[palette.Key(here...)] = hcl.Range{
			Filename: filename,
			Start:    hcl.Pos{Line: k.Line, Column: k.Column},
			End:      hcl.Pos{Line: k.Line, Column: k.Column + utf8.RuneCountInString(k.Value)},
		}
	}
	return out
}
