package parser

import (
	"fmt"
	"math/big"

	"github.com/hashicorp/hcl/v2"
	"github.com/jsvensson/scalemix/internal/color"
	"github.com/jsvensson/scalemix/internal/palette"
	"github.com/jsvensson/scalemix/internal/scale"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
)

// indexToCty exposes the flattened palette as a map, so entries can be
// referenced as palette["red-500"].
func indexToCty(ix *palette.Index) cty.Value {
	if ix.Len() == 0 {
		return cty.MapValEmpty(cty.String)
	}

	vals := make(map[string]cty.Value, ix.Len())
	for _, key := range ix.Keys() {
		value, _ := ix.Value(key)
		vals[key] = cty.StringVal(value)
	}
	return cty.MapVal(vals)
}

// makeScaleFunc creates an HCL function that resolves a scale token.
// Usage: scale("red-450")
func makeScaleFunc(r *scale.Resolver) function.Function {
	return function.New(&function.Spec{
		Description: "Returns the color-mix() expression for a color and scale value between 0 and 1000",
		Params: []function.Parameter{
			{
				Name: "token",
				Type: cty.String,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			token := args[0].AsString()
			expr, ok := r.Resolve(token)
			if !ok {
				return cty.NilVal, fmt.Errorf("%q is not a scale value of this palette", token)
			}
			return cty.StringVal(expr), nil
		},
	})
}

// makeStopFunc creates an HCL function that references a defined stop.
// Usage: stop("red", 500)
func makeStopFunc(r *scale.Resolver) function.Function {
	return function.New(&function.Spec{
		Description: "Returns the var() reference for a stop defined in the palette",
		Params: []function.Parameter{
			{
				Name: "color",
				Type: cty.String,
			},
			{
				Name: "stop",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			name := args[0].AsString()
			n, acc := args[1].AsBigFloat().Int64()
			if acc != big.Exact {
				return cty.NilVal, fmt.Errorf("stop must be a whole number")
			}

			key := fmt.Sprintf("%s-%d", name, n)
			if !r.Index().IsDefined(key) {
				return cty.NilVal, fmt.Errorf("%s is not defined in the palette", key)
			}
			return cty.StringVal(r.Settings().Reference(name, int(n))), nil
		},
	})
}

// makeMixFunc creates an HCL function that blends two literal colors in
// OKLCH and returns the result as hex.
// Usage: mix("#eb6f92", "oklch(50% 0.1 200)", 25)
func makeMixFunc() function.Function {
	return function.New(&function.Spec{
		Description: "Mixes two colors in OKLCH, giving the first the given percentage (0 to 100)",
		Params: []function.Parameter{
			{
				Name: "a",
				Type: cty.String,
			},
			{
				Name: "b",
				Type: cty.String,
			},
			{
				Name: "percentage",
				Type: cty.Number,
			},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, retType cty.Type) (cty.Value, error) {
			a, err := color.ParseCSS(args[0].AsString())
			if err != nil {
				return cty.NilVal, err
			}
			b, err := color.ParseCSS(args[1].AsString())
			if err != nil {
				return cty.NilVal, err
			}

			pct, _ := args[2].AsBigFloat().Float64()
			if pct < 0 || pct > 100 {
				return cty.NilVal, fmt.Errorf("percentage must be between 0 and 100, got %v", pct)
			}

			return cty.StringVal(color.Mix(a, b, pct/100).Color().Hex()), nil
		},
	})
}

func buildEvalContext(r *scale.Resolver) *hcl.EvalContext {
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"palette": indexToCty(r.Index()),
		},
		Functions: map[string]function.Function{
			"scale": makeScaleFunc(r),
			"stop":  makeStopFunc(r),
			"mix":   makeMixFunc(),
		},
	}
}
