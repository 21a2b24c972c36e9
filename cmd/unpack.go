package cmd

import (
	"fmt"

	"assettools/pkg/lz4tar"
	"github.com/spf13/cobra"
)

var unpackOutput string

var unpackCmd = &cobra.Command{
	Use:   "unpack <archive>",
	Short: "Extract a packed archive into a directory tree",
	Long: `Extract the contents of an archive produced by the pack command.

Entries carrying a .lz4 suffix are decompressed; the suffix is stripped from
the written file name and the decompressed length is verified against the
size declared in the LZ4 frame header.

Examples:
  # Extract into the current directory
  assettools unpack assets.tar

  # Extract into a custom directory
  assettools unpack assets.tar -o extracted/`,
	Args: cobra.ExactArgs(1),
	RunE: runUnpack,
}

func init() {
	rootCmd.AddCommand(unpackCmd)

	unpackCmd.Flags().StringVarP(&unpackOutput, "output", "o", ".",
		"output directory for extracted files")
}

func runUnpack(cmd *cobra.Command, args []string) error {
	if err := lz4tar.Unpack(args[0], unpackOutput); err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}
	return nil
}
