package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/jsvensson/scalemix/internal/lsp"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"
)

var (
	flagPalette string
	flagVerbose int
	version     = "dev"
)

var rootCmd = &cobra.Command{
	Use:          "scalemix-lsp",
	Short:        "Language server previewing color scale values",
	Version:      version,
	Args:         cobra.NoArgs,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		_ = godotenv.Load()
		if !cmd.Flags().Changed("palette") {
			flagPalette = os.Getenv("SCALEMIX_PALETTE")
		}
		commonlog.Configure(flagVerbose, nil)

		return lsp.NewServer(version, flagPalette).Run()
	},
}

func init() {
	rootCmd.Flags().StringVarP(&flagPalette, "palette", "p", "", "path to palette file (or set SCALEMIX_PALETTE)")
	rootCmd.Flags().CountVarP(&flagVerbose, "verbose", "v", "log verbosity (can be repeated)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
