package engine

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"text/template"

	"github.com/jsvensson/scalemix/internal/color"
	"github.com/jsvensson/scalemix/internal/parser"
	"github.com/jsvensson/scalemix/internal/scale"
	"github.com/tliron/commonlog"
)

// Engine loads and executes Go templates against a loaded palette.
type Engine struct {
	TemplatesDir string
	OutputDir    string
	Apps         []string // if non-empty, only render these template basenames
}

// Run loads all .tmpl files from the templates directory, executes them
// with the palette data, and writes output files.
func (e *Engine) Run(result *parser.ParseResult) error {
	log := commonlog.GetLogger("scalemix.engine")

	pattern := filepath.Join(e.TemplatesDir, "*.tmpl")
	matches, err := filepath.Glob(pattern)
	if err != nil {
		return fmt.Errorf("globbing templates: %w", err)
	}
	if len(matches) == 0 {
		return fmt.Errorf("no .tmpl files found in %s", e.TemplatesDir)
	}

	if err := os.MkdirAll(e.OutputDir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	data := buildTemplateData(result)

	for _, tmplPath := range matches {
		baseName := strings.TrimSuffix(filepath.Base(tmplPath), ".tmpl")

		if !e.shouldRender(baseName) {
			log.Debugf("skipping %s", baseName)
			continue
		}

		if err := e.renderTemplate(tmplPath, baseName, data); err != nil {
			return err
		}
		log.Infof("rendered %s", filepath.Join(e.OutputDir, baseName))
	}

	return nil
}

func (e *Engine) shouldRender(name string) bool {
	if len(e.Apps) == 0 {
		return true
	}

	return slices.Contains(e.Apps, name)
}

func (e *Engine) renderTemplate(tmplPath, outputName string, data templateData) error {
	tmpl, err := template.New(filepath.Base(tmplPath)).Funcs(data.FuncMap).ParseFiles(tmplPath)
	if err != nil {
		return fmt.Errorf("parsing template %s: %w", tmplPath, err)
	}

	outPath := filepath.Join(e.OutputDir, outputName)
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("creating output file %s: %w", outPath, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		return fmt.Errorf("executing template %s: %w", tmplPath, err)
	}

	return nil
}

// templateData is the data passed to templates.
type templateData struct {
	Settings scale.Settings
	Colors   []string          // color names, natural order
	Stops    []string          // flattened keys, natural order
	Palette  map[string]string // flattened key to literal value
	Aliases  map[string]string
	FuncMap  template.FuncMap
}

func buildTemplateData(result *parser.ParseResult) templateData {
	r := result.Resolver
	ix := result.Index

	return templateData{
		Settings: result.Settings,
		Colors:   ix.Colors(),
		Stops:    ix.Keys(),
		Palette:  ix.Values(),
		Aliases:  result.Aliases,
		FuncMap: template.FuncMap{
			"scale": func(token string) string {
				expr, _ := r.Resolve(token)
				return expr
			},
			"ref": func(key string) (string, error) {
				if !ix.IsDefined(key) {
					return "", fmt.Errorf("%s is not defined in the palette", key)
				}
				return result.Settings.Var(key), nil
			},
			"value": func(key string) (string, error) {
				v, ok := ix.Value(key)
				if !ok {
					return "", fmt.Errorf("%s is not defined in the palette", key)
				}
				return v, nil
			},
			"hex": func(token string) string {
				if c, ok := preview(result, token); ok {
					return c.Hex()
				}
				return ""
			},
			"rgb": func(token string) string {
				if c, ok := preview(result, token); ok {
					return c.RGB()
				}
				return ""
			},
			"steps": steps,
		},
	}
}

// preview returns the sRGB color of a scale value or a defined stop.
func preview(result *parser.ParseResult, token string) (color.Color, bool) {
	if c, ok := result.Resolver.Preview(token); ok {
		return c, true
	}
	v, ok := result.Index.Value(token)
	if !ok {
		return color.Color{}, false
	}
	lch, err := color.ParseCSS(v)
	if err != nil {
		return color.Color{}, false
	}
	return lch.Color(), true
}

// steps returns every step-th value from from through to.
func steps(from, to, step int) ([]int, error) {
	if step <= 0 {
		return nil, fmt.Errorf("step must be positive, got %d", step)
	}
	var out []int
	for n := from; n <= to; n += step {
		out = append(out, n)
	}
	return out, nil
}
