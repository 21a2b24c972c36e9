package gltfmat

import (
	"fmt"
	"os"
	"strings"
)

// textureSet appends images and textures to a document, deduplicating
// images by URI and textures by their (source, DDS source) index pair.
type textureSet struct {
	doc    *Document
	anyDDS bool
}

// addImage returns the index of the image with the given URI, appending a
// new entry when none exists.
func (s *textureSet) addImage(uri string) int {
	for i, img := range s.doc.Images {
		if img.URI == uri {
			return i
		}
	}
	s.doc.Images = append(s.doc.Images, Image{URI: uri})
	return len(s.doc.Images) - 1
}

// addTexture resolves a texture path to a texture index. A DDS path is
// registered together with a same-named PNG or JPEG companion found next
// to it on disk; when no companion exists the texture has no non-DDS
// source and a warning is printed.
func (s *textureSet) addTexture(path string) int {
	var regular, dds *int

	if strings.HasSuffix(strings.ToLower(path), ".dds") {
		s.anyDDS = true

		if companion, ok := findCompanion(path[:len(path)-4]); ok {
			regular = ref(s.addImage(companion))
		} else {
			fmt.Printf("WARNING: non-DDS texture not found for %s\n", path)
		}
		dds = ref(s.addImage(path))
	} else {
		regular = ref(s.addImage(path))
	}

	for i, tex := range s.doc.Textures {
		var texDDS *int
		if tex.Extensions != nil && tex.Extensions.DDS != nil {
			texDDS = ref(tex.Extensions.DDS.Source)
		}
		if indexEqual(tex.Source, regular) && indexEqual(texDDS, dds) {
			return i
		}
	}

	tex := Texture{Source: regular}
	if dds != nil {
		tex.Extensions = &TextureExtensions{DDS: &DDSSource{Source: *dds}}
	}
	s.doc.Textures = append(s.doc.Textures, tex)
	return len(s.doc.Textures) - 1
}

func findCompanion(base string) (string, bool) {
	for _, ext := range []string{".png", ".jpg"} {
		if _, err := os.Stat(base + ext); err == nil {
			return base + ext, true
		}
	}
	return "", false
}

func indexEqual(a, b *int) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}
