package gltfmat

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sceneJSON = `{
	"asset": {"version": "2.0"},
	"nodes": [{"mesh": 0}],
	"materials": [
		{"name": "Wall", "pbrMetallicRoughness": {"baseColorFactor": [0.5, 0.5, 0.5, 1]}},
		{"name": "Missing"}
	]
}`

const matJSON = `{
	"Wall": {
		"AlphaTested": true,
		"Diffuse": [1, 0, 0],
		"Specular": [0, 0, 0],
		"Shininess": 0.5
	}
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadDefinitions(t *testing.T) {
	defs, err := LoadDefinitions(writeTemp(t, "scene.mat.json", matJSON))
	require.NoError(t, err)
	require.Contains(t, defs, "Wall")
	assert.True(t, defs["Wall"].AlphaTested)
	assert.Equal(t, []float64{1, 0, 0}, defs["Wall"].Diffuse)
}

func TestLoadDefinitionsMalformed(t *testing.T) {
	_, err := LoadDefinitions(writeTemp(t, "bad.json", "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid JSON")
}

func TestLoadDocumentMalformed(t *testing.T) {
	_, err := LoadDocument(writeTemp(t, "bad.gltf", "[1, 2"))
	require.Error(t, err)
}

func TestMergeAndSavePreservesUnrelatedKeys(t *testing.T) {
	defs, err := LoadDefinitions(writeTemp(t, "scene.mat.json", matJSON))
	require.NoError(t, err)
	doc, err := LoadDocument(writeTemp(t, "scene.gltf", sceneJSON))
	require.NoError(t, err)

	doc.MergeMaterials(defs, MetalRough)

	out := filepath.Join(t.TempDir(), "merged.gltf")
	require.NoError(t, doc.Save(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "\n    \""), "expected 4-space indentation")

	var saved map[string]any
	require.NoError(t, json.Unmarshal(data, &saved))

	// Untouched top-level keys survive the rewrite.
	asset, ok := saved["asset"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "2.0", asset["version"])
	assert.Contains(t, saved, "nodes")

	// The rewritten lists are always materialized.
	for _, key := range []string{"materials", "textures", "images", "extensionsUsed"} {
		_, ok := saved[key].([]any)
		assert.True(t, ok, "%s must be an array", key)
	}

	materials, _ := saved["materials"].([]any)
	require.Len(t, materials, 2)

	wall, ok := materials[0].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Wall", wall["name"])
	assert.Equal(t, "MASK", wall["alphaMode"])
	assert.Equal(t, true, wall["doubleSided"])
	mr, ok := wall["pbrMetallicRoughness"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 0.0, 0.0, 1.0}, mr["baseColorFactor"])
	assert.Equal(t, 0.5, mr["roughnessFactor"])
	assert.Equal(t, 0.0, mr["metallicFactor"])

	// The unmatched material degrades to its name alone.
	missing, ok := materials[1].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, map[string]any{"name": "Missing"}, missing)
}

func TestSaveEmptyDocumentMaterializesLists(t *testing.T) {
	out := filepath.Join(t.TempDir(), "empty.gltf")
	doc := &Document{}
	require.NoError(t, doc.Save(out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var saved map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(data, &saved))
	assert.Len(t, saved, 4)
	for _, key := range []string{"materials", "textures", "images", "extensionsUsed"} {
		assert.Contains(t, saved, key)
	}
}

func TestLoadDocumentParsesExistingLists(t *testing.T) {
	path := writeTemp(t, "scene.gltf", `{
		"images": [{"uri": "old.png"}],
		"textures": [{"source": 0}],
		"extensionsUsed": ["KHR_materials_pbrSpecularGlossiness"]
	}`)
	doc, err := LoadDocument(path)
	require.NoError(t, err)

	require.Len(t, doc.Images, 1)
	assert.Equal(t, "old.png", doc.Images[0].URI)
	require.Len(t, doc.Textures, 1)
	require.NotNil(t, doc.Textures[0].Source)
	assert.Equal(t, 0, *doc.Textures[0].Source)
	assert.Equal(t, []string{ExtSpecGloss}, doc.ExtensionsUsed)

	// Pre-existing images keep their indices for dedup.
	set := &textureSet{doc: doc}
	assert.Equal(t, 0, set.addImage("old.png"))
	assert.Equal(t, 1, set.addImage("new.png"))
}
