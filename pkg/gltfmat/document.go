package gltfmat

import (
	"encoding/json"
	"fmt"
	"os"
)

// Mode selects the PBR convention for rebuilt materials.
type Mode int

const (
	MetalRough Mode = iota
	SpecGloss
)

// Document is a glTF scene file with the lists the merger rewrites parsed
// into typed form. Every other top-level key is carried through untouched.
type Document struct {
	Materials      []Material
	Textures       []Texture
	Images         []Image
	ExtensionsUsed []string

	rest map[string]json.RawMessage
}

// LoadDefinitions reads and parses a material definition file.
func LoadDefinitions(path string) (Definitions, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var defs Definitions
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}
	return defs, nil
}

// LoadDocument reads and parses a glTF scene file.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	raw := map[string]json.RawMessage{}
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("invalid JSON in %s: %w", path, err)
	}

	doc := &Document{rest: raw}
	for key, dst := range map[string]any{
		"materials":      &doc.Materials,
		"textures":       &doc.Textures,
		"images":         &doc.Images,
		"extensionsUsed": &doc.ExtensionsUsed,
	} {
		msg, ok := raw[key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(msg, dst); err != nil {
			return nil, fmt.Errorf("invalid %s in %s: %w", key, path, err)
		}
		delete(raw, key)
	}
	return doc, nil
}

// MarshalJSON folds the rewritten lists back in beside the passthrough
// keys. The four rewritten lists are emitted even when empty.
func (d *Document) MarshalJSON() ([]byte, error) {
	out := make(map[string]json.RawMessage, len(d.rest)+4)
	for k, v := range d.rest {
		out[k] = v
	}
	for key, val := range map[string]any{
		"materials":      nonNil(d.Materials),
		"textures":       nonNil(d.Textures),
		"images":         nonNil(d.Images),
		"extensionsUsed": nonNil(d.ExtensionsUsed),
	} {
		msg, err := json.Marshal(val)
		if err != nil {
			return nil, err
		}
		out[key] = msg
	}
	return json.Marshal(out)
}

// Save writes the document as JSON indented with four spaces.
func (d *Document) Save(path string) error {
	data, err := json.MarshalIndent(d, "", "    ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func nonNil[S ~[]E, E any](s S) S {
	if s == nil {
		return S{}
	}
	return s
}
