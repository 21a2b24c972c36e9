// Package gltfmat merges external material definitions into glTF scene
// documents, rewriting the material, texture, and image lists.
package gltfmat

// Definition is one entry of a .mat.json material definition file.
type Definition struct {
	AlphaTested bool              `json:"AlphaTested"`
	Transparent bool              `json:"Transparent"`
	Emittance   []float64         `json:"Emittance"`
	Textures    map[string]string `json:"Textures"`
	Diffuse     []float64         `json:"Diffuse"`
	Specular    []float64         `json:"Specular"`
	Shininess   float64           `json:"Shininess"`
	Opacity     *float64          `json:"Opacity"` // nil means fully opaque (1.0)
}

// Definitions maps material names to their definitions.
type Definitions map[string]Definition

// Texture slot names used by Definition.Textures.
const (
	SlotEmittance = "Emittance"
	SlotBumpmap   = "Bumpmap"
	SlotDiffuse   = "Diffuse"
	SlotSpecular  = "Specular"
)

// Alpha modes of a glTF material.
const (
	AlphaOpaque = "OPAQUE"
	AlphaMask   = "MASK"
	AlphaBlend  = "BLEND"
)

// Extension names the merger may declare in extensionsUsed.
const (
	ExtSpecGloss = "KHR_materials_pbrSpecularGlossiness"
	ExtDDS       = "MSFT_texture_dds"
)

// TextureRef points at an entry of the document's texture list.
type TextureRef struct {
	Index int `json:"index"`
}

// MetallicRoughness is the core glTF PBR shading block.
type MetallicRoughness struct {
	BaseColorFactor          []float64   `json:"baseColorFactor,omitempty"`
	BaseColorTexture         *TextureRef `json:"baseColorTexture,omitempty"`
	MetallicFactor           *float64    `json:"metallicFactor,omitempty"`
	RoughnessFactor          *float64    `json:"roughnessFactor,omitempty"`
	MetallicRoughnessTexture *TextureRef `json:"metallicRoughnessTexture,omitempty"`
}

// SpecularGlossiness is the KHR_materials_pbrSpecularGlossiness block.
type SpecularGlossiness struct {
	DiffuseFactor             []float64   `json:"diffuseFactor,omitempty"`
	DiffuseTexture            *TextureRef `json:"diffuseTexture,omitempty"`
	SpecularFactor            []float64   `json:"specularFactor,omitempty"`
	GlossinessFactor          *float64    `json:"glossinessFactor,omitempty"`
	SpecularGlossinessTexture *TextureRef `json:"specularGlossinessTexture,omitempty"`
}

// MaterialExtensions holds the extension blocks a material may carry.
type MaterialExtensions struct {
	SpecularGlossiness *SpecularGlossiness `json:"KHR_materials_pbrSpecularGlossiness,omitempty"`
}

// Material is one node of the document's material list. Rebuilt nodes carry
// exactly one shading block: PBRMetallicRoughness, or the
// specular-glossiness block under Extensions.
type Material struct {
	Name                 string              `json:"name,omitempty"`
	AlphaMode            string              `json:"alphaMode,omitempty"`
	DoubleSided          bool                `json:"doubleSided,omitempty"`
	EmissiveFactor       []float64           `json:"emissiveFactor,omitempty"`
	EmissiveTexture      *TextureRef         `json:"emissiveTexture,omitempty"`
	NormalTexture        *TextureRef         `json:"normalTexture,omitempty"`
	PBRMetallicRoughness *MetallicRoughness  `json:"pbrMetallicRoughness,omitempty"`
	Extensions           *MaterialExtensions `json:"extensions,omitempty"`
}

// Image is one entry of the document's image list, identified by URI.
type Image struct {
	URI      string `json:"uri,omitempty"`
	MimeType string `json:"mimeType,omitempty"`
	Name     string `json:"name,omitempty"`
}

// DDSSource names the DDS image behind a texture.
type DDSSource struct {
	Source int `json:"source"`
}

// TextureExtensions holds the extension blocks a texture may carry.
type TextureExtensions struct {
	DDS *DDSSource `json:"MSFT_texture_dds,omitempty"`
}

// Texture is one entry of the document's texture list. Source is the
// non-DDS image; a DDS variant, when present, lives in the extension block.
type Texture struct {
	Sampler    *int               `json:"sampler,omitempty"`
	Source     *int               `json:"source,omitempty"`
	Name       string             `json:"name,omitempty"`
	Extensions *TextureExtensions `json:"extensions,omitempty"`
}

func ref[T any](v T) *T {
	return &v
}
