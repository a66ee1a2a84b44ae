package main

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/jsvensson/scalemix"
	"github.com/jsvensson/scalemix/internal/format"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
	_ "github.com/tliron/commonlog/simple"
)

const paletteEnv = "SCALEMIX_PALETTE"

var (
	flagPalette   string
	flagVerbose   int
	flagOut       string
	flagTemplates string
	flagApp       []string
	flagCheck     bool
	flagPreview   bool
	flagStrict    bool
	flagNames     bool
	version       = "dev" // Injected at build time via ldflags
)

var rootCmd = &cobra.Command{
	Use:               "scalemix",
	Short:             "Resolve 0-1000 color scale values into CSS color-mix() expressions",
	Version:           version,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

var resolveCmd = &cobra.Command{
	Use:   "resolve TOKEN...",
	Short: "Print the CSS expression for each scale value",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runResolve,
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the flattened palette",
	RunE:  runList,
}

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Render templates against the palette",
	RunE:  runGenerate,
}

var fmtCmd = &cobra.Command{
	Use:   "fmt [files...]",
	Short: "Format HCL palette files",
	Long:  "Format one or more HCL palette files in-place. Prints the name of each file that was modified.",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runFmt,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagPalette, "palette", "p", "palette.hcl", "path to palette file (or set "+paletteEnv+")")
	rootCmd.PersistentFlags().CountVarP(&flagVerbose, "verbose", "v", "log verbosity (can be repeated)")
	resolveCmd.Flags().BoolVar(&flagPreview, "preview", false, "append the preview color as hex")
	resolveCmd.Flags().BoolVar(&flagStrict, "strict", false, "fail if any value is not a scale value")
	listCmd.Flags().BoolVar(&flagNames, "names", false, "print only color names")
	generateCmd.Flags().StringVar(&flagOut, "out", "output", "output directory")
	generateCmd.Flags().StringVar(&flagTemplates, "templates", "templates", "templates directory")
	generateCmd.Flags().StringArrayVar(&flagApp, "app", nil, "generate only for specific apps (can be repeated)")
	fmtCmd.Flags().BoolVarP(&flagCheck, "check", "c", false, "check if files are formatted (do not write changes)")
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(fmtCmd)
	rootCmd.AddCommand(versionCmd)
}

// setup reads .env, lets SCALEMIX_PALETTE stand in for --palette and
// configures logging.
func setup(cmd *cobra.Command, args []string) error {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("loading .env: %w", err)
	}
	if !cmd.Flags().Changed("palette") {
		if env := os.Getenv(paletteEnv); env != "" {
			flagPalette = env
		}
	}
	commonlog.Configure(flagVerbose, nil)
	return nil
}

func runResolve(cmd *cobra.Command, args []string) error {
	s, err := scalemix.Load(flagPalette)
	if err != nil {
		return err
	}

	miss := color.New(color.FgRed)
	unhandled := 0
	for _, token := range args {
		expr, ok := s.Resolve(token)
		if !ok {
			miss.Fprintf(cmd.ErrOrStderr(), "%s\t-\n", token)
			unhandled++
			continue
		}

		line := token + "\t" + expr
		if flagPreview {
			if c, ok := s.Preview(token); ok {
				line += "\t" + c.Hex()
			}
		}
		fmt.Fprintln(cmd.OutOrStdout(), line)
	}

	if flagStrict && unhandled > 0 {
		return fmt.Errorf("%d of %d values are not scale values", unhandled, len(args))
	}
	return nil
}

func runList(cmd *cobra.Command, args []string) error {
	s, err := scalemix.Load(flagPalette)
	if err != nil {
		return err
	}

	if flagNames {
		fmt.Fprintln(cmd.OutOrStdout(), strings.Join(s.Index.Colors(), "\n"))
		return nil
	}

	for _, key := range s.Index.Keys() {
		fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", key, s.Flat[key])
	}
	return nil
}

func runGenerate(cmd *cobra.Command, args []string) error {
	s, err := scalemix.Load(flagPalette)
	if err != nil {
		return err
	}

	if err := s.Generate(flagTemplates, flagOut, flagApp); err != nil {
		return fmt.Errorf("generating: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Generated files in %s\n", flagOut)
	return nil
}

func runFmt(cmd *cobra.Command, args []string) error {
	hasErrors := false
	needsFormatting := false

	for _, path := range args {
		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error reading %s: %v\n", path, err)
			hasErrors = true
			continue
		}

		formatted, changed, err := format.Source(data, path)
		if err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "Error formatting %s: %v\n", path, err)
			hasErrors = true
			continue
		}
		if !changed {
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), path)
		needsFormatting = true

		if !flagCheck {
			if err := os.WriteFile(path, []byte(formatted), 0o644); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Error writing %s: %v\n", path, err)
				hasErrors = true
			}
		}
	}

	if hasErrors || (flagCheck && needsFormatting) {
		os.Exit(1)
	}

	return nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
