// Package lz4tar packages files into USTAR archives with optional
// per-entry LZ4 frame compression.
package lz4tar

import (
	"archive/tar"
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/pierrec/lz4/v4"
)

// Options configures archive creation.
type Options struct {
	Output     string   // Output archive file name
	Level      int      // LZ4 compression level, 0 = store uncompressed
	Prefix     string   // Path prefix applied to every archive entry
	NoCompress []string // File extensions exempt from compression, with leading dot
}

// Totals holds the byte counts accumulated over a packing run.
type Totals struct {
	Original int64 // Sum of input file sizes
	Emitted  int64 // Sum of entry sizes as written to the archive
}

// Packer writes files into a USTAR archive. Each entry is either stored
// verbatim or compressed as an LZ4 frame, in which case its archive path
// carries a .lz4 suffix.
type Packer struct {
	opts   Options
	out    *os.File
	tw     *tar.Writer
	totals Totals
}

// NewPacker creates the output archive file and a packer writing to it.
func NewPacker(opts Options) (*Packer, error) {
	out, err := os.Create(opts.Output)
	if err != nil {
		return nil, err
	}

	return &Packer{
		opts: opts,
		out:  out,
		tw:   tar.NewWriter(out),
	}, nil
}

// Add appends one input to the archive. Directory inputs are expanded
// recursively; every regular file underneath becomes one entry, in
// traversal order. The first unreadable file aborts with an error.
func (p *Packer) Add(input string) error {
	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("cannot read file %s: %w", input, err)
	}

	if !info.IsDir() {
		return p.addFile(input)
	}

	return filepath.WalkDir(input, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("cannot read file %s: %w", name, err)
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		return p.addFile(name)
	})
}

func (p *Packer) addFile(file string) error {
	archivePath := NormalizePath(file, p.opts.Prefix)
	fmt.Println(archivePath)

	contents, err := os.ReadFile(file)
	if err != nil {
		return fmt.Errorf("cannot read file %s: %w", file, err)
	}
	p.totals.Original += int64(len(contents))

	if p.opts.Level != 0 && !p.exempt(file) {
		contents, err = Compress(contents, p.opts.Level)
		if err != nil {
			return fmt.Errorf("failed to compress %s: %w", file, err)
		}
		archivePath += ".lz4"
	}
	p.totals.Emitted += int64(len(contents))

	header := &tar.Header{
		Name:   archivePath,
		Mode:   0644,
		Size:   int64(len(contents)),
		Format: tar.FormatUSTAR,
	}
	if err := p.tw.WriteHeader(header); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", archivePath, err)
	}
	if _, err := p.tw.Write(contents); err != nil {
		return fmt.Errorf("failed to write entry %s: %w", archivePath, err)
	}
	return nil
}

func (p *Packer) exempt(file string) bool {
	ext := filepath.Ext(file)
	for _, skip := range p.opts.NoCompress {
		if skip == ext {
			return true
		}
	}
	return false
}

// Totals returns the byte counts accumulated so far.
func (p *Packer) Totals() Totals {
	return p.totals
}

// Close finalizes the archive and closes the output file. Calling Close
// again after a successful close is a no-op.
func (p *Packer) Close() error {
	if p.out == nil {
		return nil
	}
	err := p.tw.Close()
	if cerr := p.out.Close(); err == nil {
		err = cerr
	}
	p.out = nil
	return err
}

// NormalizePath converts an input path to its archive form: redundant
// . and .. segments collapsed, the optional prefix prepended, and
// separators converted to forward slashes. Normalization is idempotent.
func NormalizePath(file, prefix string) string {
	name := filepath.ToSlash(filepath.Clean(file))
	if prefix != "" {
		name = path.Join(filepath.ToSlash(prefix), name)
	}
	return name
}

// Compress encodes data as a single LZ4 frame with the uncompressed size
// recorded in the frame header. Levels above 9 clamp to the maximum.
func Compress(data []byte, level int) ([]byte, error) {
	var buf bytes.Buffer
	zw := lz4.NewWriter(&buf)
	err := zw.Apply(
		lz4.CompressionLevelOption(compressionLevel(level)),
		lz4.SizeOption(uint64(len(data))),
	)
	if err != nil {
		return nil, err
	}
	if _, err := zw.Write(data); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func compressionLevel(level int) lz4.CompressionLevel {
	levels := []lz4.CompressionLevel{
		lz4.Fast,
		lz4.Level1, lz4.Level2, lz4.Level3,
		lz4.Level4, lz4.Level5, lz4.Level6,
		lz4.Level7, lz4.Level8, lz4.Level9,
	}
	switch {
	case level < 1:
		return lz4.Fast
	case level >= len(levels):
		return lz4.Level9
	default:
		return levels[level]
	}
}
