package cmd

import (
	"fmt"
	"os"
	"strings"

	"assettools/pkg/lz4tar"
	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	packOutput     string
	packCompress   int
	packPrefix     string
	packNoCompress []string
)

var packCmd = &cobra.Command{
	Use:   "pack [inputs...]",
	Short: "Package files into a USTAR archive with optional LZ4 compression",
	Long: `Package files and directories into a USTAR archive.

Directory inputs are expanded recursively; every regular file found becomes
one archive entry. When a compression level is set, each entry is compressed
as an LZ4 frame carrying the uncompressed size, and its archive path gets a
.lz4 suffix. Extensions listed with --no-compress are stored as-is.

An input starting with '@' names a response file containing one input path
per line.

Examples:
  # Pack a media directory uncompressed
  assettools pack media/ -o assets.tar

  # Pack with LZ4 level 9, skipping already-compressed textures
  assettools pack media/ -o assets.tar -c 9 -n .jpg -n .png

  # Apply an archive path prefix and read inputs from a response file
  assettools pack @filelist.txt -o assets.tar -p game/data`,
	Args: cobra.ArbitraryArgs,
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)

	packCmd.Flags().StringVarP(&packOutput, "output", "o", "",
		"output archive file name")
	packCmd.Flags().IntVarP(&packCompress, "compress", "c", 0,
		"LZ4 compression level, 0 = uncompressed")
	packCmd.Flags().StringVarP(&packPrefix, "prefix", "p", "",
		"path prefix for archive files")
	packCmd.Flags().StringArrayVarP(&packNoCompress, "no-compress", "n", nil,
		"file extensions to skip compression for (repeatable)")
	packCmd.MarkFlagRequired("output")
}

func runPack(cmd *cobra.Command, args []string) error {
	inputs, err := expandResponseFiles(args)
	if err != nil {
		return err
	}

	opts := lz4tar.Options{
		Output:     packOutput,
		Level:      packCompress,
		Prefix:     packPrefix,
		NoCompress: packNoCompress,
	}

	packer, err := lz4tar.NewPacker(opts)
	if err != nil {
		return fmt.Errorf("failed to create archive: %w", err)
	}
	defer packer.Close()

	for _, input := range inputs {
		if err := packer.Add(input); err != nil {
			return err
		}
	}

	if err := packer.Close(); err != nil {
		return fmt.Errorf("failed to finalize archive: %w", err)
	}

	if packCompress != 0 {
		totals := packer.Totals()
		if totals.Emitted > 0 {
			p := message.NewPrinter(language.English)
			p.Printf("Original size: %d bytes, compressed size: %d bytes (ratio = %.2fx)\n",
				totals.Original, totals.Emitted,
				float64(totals.Original)/float64(totals.Emitted))
		}
	}
	return nil
}

// expandResponseFiles replaces every "@file" argument with the paths listed
// in that file, one per line. Blank lines are skipped.
func expandResponseFiles(args []string) ([]string, error) {
	var inputs []string
	for _, arg := range args {
		if !strings.HasPrefix(arg, "@") {
			inputs = append(inputs, arg)
			continue
		}
		lines, err := readResponseFile(arg[1:])
		if err != nil {
			return nil, err
		}
		inputs = append(inputs, lines...)
	}
	return inputs, nil
}

func readResponseFile(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read response file %s: %w", path, err)
	}
	var paths []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			paths = append(paths, line)
		}
	}
	return paths, nil
}
