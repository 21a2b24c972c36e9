package lz4tar

import (
	"archive/tar"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pierrec/lz4/v4"
)

// Unpack extracts an archive produced by a Packer into outputDir,
// recreating the directory tree. Entries with a .lz4 suffix are
// decompressed and written without the suffix.
func Unpack(archivePath, outputDir string) error {
	f, err := os.Open(archivePath)
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer f.Close()

	tr := tar.NewReader(f)
	for {
		header, err := tr.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read archive: %w", err)
		}
		if header.Typeflag != tar.TypeReg {
			continue
		}

		contents, err := io.ReadAll(tr)
		if err != nil {
			return fmt.Errorf("failed to read entry %s: %w", header.Name, err)
		}

		name := header.Name
		if strings.HasSuffix(name, ".lz4") {
			name = strings.TrimSuffix(name, ".lz4")
			contents, err = Decompress(contents)
			if err != nil {
				return fmt.Errorf("failed to decompress %s: %w", header.Name, err)
			}
		}
		fmt.Println(name)

		dest := filepath.Join(outputDir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
			return fmt.Errorf("failed to create directory for %s: %w", name, err)
		}
		if err := os.WriteFile(dest, contents, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", name, err)
		}
	}
	return nil
}

// Decompress decodes a single LZ4 frame. When the frame header declares an
// uncompressed size, the decoded length is verified against it.
func Decompress(frame []byte) ([]byte, error) {
	zr := lz4.NewReader(bytes.NewReader(frame))
	data, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}
	if size := zr.Size(); size != 0 && size != len(data) {
		return nil, fmt.Errorf("decompressed %d bytes, frame header declares %d", len(data), size)
	}
	return data, nil
}
