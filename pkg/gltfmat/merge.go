package gltfmat

import "fmt"

// MergeMaterials rebuilds the document's material list from defs in the
// existing order, registering referenced textures and images along the
// way. Materials without a definition degrade to a name-only node. The
// extensions the rebuilt document relies on are recorded in
// extensionsUsed.
func (d *Document) MergeMaterials(defs Definitions, mode Mode) {
	set := &textureSet{doc: d}

	materials := make([]Material, 0, len(d.Materials))
	for _, node := range d.Materials {
		def, ok := defs[node.Name]
		if !ok {
			fmt.Printf("WARNING: definition for %s not found\n", node.Name)
			materials = append(materials, Material{Name: node.Name})
			continue
		}
		materials = append(materials, buildMaterial(node.Name, def, mode, set))
	}
	d.Materials = materials

	if mode == SpecGloss {
		d.declareExtension(ExtSpecGloss)
	}
	if set.anyDDS {
		d.declareExtension(ExtDDS)
	}
}

func (d *Document) declareExtension(name string) {
	for _, ext := range d.ExtensionsUsed {
		if ext == name {
			return
		}
	}
	d.ExtensionsUsed = append(d.ExtensionsUsed, name)
}

func buildMaterial(name string, def Definition, mode Mode, set *textureSet) Material {
	m := Material{Name: name}

	switch {
	case def.AlphaTested:
		m.AlphaMode = AlphaMask
		m.DoubleSided = true
	case def.Transparent:
		m.AlphaMode = AlphaBlend
		m.DoubleSided = true
	default:
		m.AlphaMode = AlphaOpaque
	}

	if len(def.Emittance) == 3 && anyNonZero(def.Emittance) {
		m.EmissiveFactor = append([]float64(nil), def.Emittance...)
	}

	// Exactly one shading block per node, picked by the merge mode.
	var metalRough *MetallicRoughness
	var specGloss *SpecularGlossiness
	if mode == SpecGloss {
		specGloss = &SpecularGlossiness{}
		m.Extensions = &MaterialExtensions{SpecularGlossiness: specGloss}
	} else {
		metalRough = &MetallicRoughness{}
		m.PBRMetallicRoughness = metalRough
	}

	if path := def.Textures[SlotEmittance]; path != "" {
		m.EmissiveTexture = &TextureRef{Index: set.addTexture(path)}
	}
	if path := def.Textures[SlotBumpmap]; path != "" {
		m.NormalTexture = &TextureRef{Index: set.addTexture(path)}
	}

	var haveDiffuseTex, haveSpecularTex bool
	if path := def.Textures[SlotDiffuse]; path != "" {
		tex := &TextureRef{Index: set.addTexture(path)}
		if mode == SpecGloss {
			specGloss.DiffuseTexture = tex
		} else {
			metalRough.BaseColorTexture = tex
		}
		haveDiffuseTex = true
	}
	if path := def.Textures[SlotSpecular]; path != "" {
		tex := &TextureRef{Index: set.addTexture(path)}
		if mode == SpecGloss {
			specGloss.SpecularGlossinessTexture = tex
		} else {
			metalRough.MetallicRoughnessTexture = tex
		}
		haveSpecularTex = true
	}

	if !haveDiffuseTex && len(def.Diffuse) == 3 {
		opacity := 1.0
		if def.Opacity != nil {
			opacity = *def.Opacity
		}
		factor := append(append([]float64(nil), def.Diffuse...), opacity)
		if mode == SpecGloss {
			specGloss.DiffuseFactor = factor
		} else {
			metalRough.BaseColorFactor = factor
		}
	}

	if !haveSpecularTex {
		if mode == SpecGloss {
			if len(def.Specular) == 3 {
				specGloss.SpecularFactor = append([]float64(nil), def.Specular...)
			}
			specGloss.GlossinessFactor = ref(def.Shininess)
		} else {
			if len(def.Specular) == 3 && len(def.Diffuse) == 3 {
				metalRough.MetallicFactor = ref(metalness(def.Specular, def.Diffuse))
			}
			metalRough.RoughnessFactor = ref(1.0 - def.Shininess)
		}
	}

	return m
}

// metalness approximates a metallic factor from legacy specular and
// diffuse colors: the mean over channels of specular/(specular+diffuse).
// A channel whose sum is zero contributes 0.
func metalness(specular, diffuse []float64) float64 {
	var m float64
	for i := 0; i < 3; i++ {
		if sum := specular[i] + diffuse[i]; sum != 0 {
			m += specular[i] / sum
		}
	}
	return m / 3.0
}

func anyNonZero(values []float64) bool {
	for _, v := range values {
		if v != 0 {
			return true
		}
	}
	return false
}
