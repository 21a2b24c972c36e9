package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "assettools",
	Short: "Asset build pipeline utilities",
	Long: `assettools provides small utilities used in the asset build pipeline.

Supported operations:
  - Package files into a USTAR archive with per-entry LZ4 compression
  - Extract such archives back into a directory tree
  - Merge material definitions into a glTF scene file`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
}
