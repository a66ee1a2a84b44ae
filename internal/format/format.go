// Package format rewrites HCL palette files in canonical style.
package format

import (
	"fmt"
	"regexp"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/hashicorp/hcl/v2/hclwrite"
)

type cleanup struct {
	pattern *regexp.Regexp
	repl    string
}

// Applied in order after hclwrite has normalized indentation and spacing.
var cleanups = []cleanup{
	{regexp.MustCompile(`\n{3,}`), "\n\n"},
	{regexp.MustCompile(`\{\n\s*\n`), "{\n"},
	{regexp.MustCompile(`\n\s*\n(\s*\})`), "\n${1}"},
	{regexp.MustCompile(`[ \t]+\n`), "\n"},
}

// Format returns content in canonical HCL style with stray blank lines
// removed. It accepts partial or invalid input so editors can format while
// the user is typing.
func Format(content string) string {
	out := string(hclwrite.Format([]byte(content)))
	for _, c := range cleanups {
		out = c.pattern.ReplaceAllString(out, c.repl)
	}
	return out
}

// Source checks that content parses as HCL before formatting it. The
// returned bool reports whether formatting changed anything.
func Source(content []byte, filename string) (string, bool, error) {
	if _, diags := hclsyntax.ParseConfig(content, filename, hcl.Pos{Line: 1, Column: 1}); diags.HasErrors() {
		return "", false, fmt.Errorf("parsing %s: %s", filename, diags.Error())
	}
	out := Format(string(content))
	return out, out != string(content), nil
}
