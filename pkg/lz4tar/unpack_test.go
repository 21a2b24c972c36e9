package lz4tar

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnpackRestoresPackedTree(t *testing.T) {
	chdir(t, t.TempDir())
	files := map[string][]byte{
		"media/a.txt":     bytes.Repeat([]byte("alpha "), 300),
		"media/sub/b.bin": bytes.Repeat([]byte{0xC0, 0xFF}, 512),
		"media/tex.png":   []byte("not really a png"),
	}
	for name, data := range files {
		writeFile(t, name, data)
	}

	pack(t, Options{
		Output:     "out.tar",
		Level:      4,
		Prefix:     "assets",
		NoCompress: []string{".png"},
	}, "media")

	require.NoError(t, Unpack("out.tar", "extracted"))

	for name, want := range files {
		got, err := os.ReadFile(filepath.Join("extracted", "assets", name))
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}
}

func TestUnpackUncompressedArchive(t *testing.T) {
	chdir(t, t.TempDir())
	writeFile(t, "a.txt", []byte("stored as-is"))
	pack(t, Options{Output: "out.tar"}, "a.txt")

	require.NoError(t, Unpack("out.tar", "extracted"))

	got, err := os.ReadFile(filepath.Join("extracted", "a.txt"))
	require.NoError(t, err)
	assert.Equal(t, []byte("stored as-is"), got)
}

func TestUnpackMissingArchive(t *testing.T) {
	err := Unpack(filepath.Join(t.TempDir(), "nope.tar"), t.TempDir())
	require.Error(t, err)
}
