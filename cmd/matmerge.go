package cmd

import (
	"fmt"

	"assettools/pkg/gltfmat"
	"github.com/spf13/cobra"
)

var (
	mergeMat       string
	mergeGltf      string
	mergeOut       string
	mergeSpecGloss bool
)

var matmergeCmd = &cobra.Command{
	Use:   "matmerge",
	Short: "Merge a material definition file into a glTF scene",
	Long: `Merge an external .mat.json material definition file into a glTF scene.

The scene's materials array is rebuilt from the definitions: alpha mode,
emissive factor, texture references, and either a metallic-roughness or a
specular-glossiness shading block per material. Texture and image lists are
deduplicated and extended; DDS textures get PNG/JPEG fallback images looked
up next to them on disk.

Examples:
  # Merge with the default metallic-roughness convention
  assettools matmerge -m scene.mat.json -g scene.gltf -o merged.gltf

  # Input materials use the specular-glossiness convention
  assettools matmerge -m scene.mat.json -g scene.gltf -o merged.gltf -s`,
	RunE: runMatmerge,
}

func init() {
	rootCmd.AddCommand(matmergeCmd)

	matmergeCmd.Flags().StringVarP(&mergeMat, "mat", "m", "",
		"input material definition file")
	matmergeCmd.Flags().StringVarP(&mergeGltf, "gltf", "g", "",
		"input glTF file")
	matmergeCmd.Flags().StringVarP(&mergeOut, "out", "o", "",
		"output glTF file")
	matmergeCmd.Flags().BoolVarP(&mergeSpecGloss, "spec-gloss", "s", false,
		"input materials are in specular-gloss format")
	matmergeCmd.MarkFlagRequired("mat")
	matmergeCmd.MarkFlagRequired("gltf")
	matmergeCmd.MarkFlagRequired("out")
}

func runMatmerge(cmd *cobra.Command, args []string) error {
	defs, err := gltfmat.LoadDefinitions(mergeMat)
	if err != nil {
		return fmt.Errorf("failed to load material file: %w", err)
	}

	doc, err := gltfmat.LoadDocument(mergeGltf)
	if err != nil {
		return fmt.Errorf("failed to load glTF file: %w", err)
	}

	mode := gltfmat.MetalRough
	if mergeSpecGloss {
		mode = gltfmat.SpecGloss
	}
	doc.MergeMaterials(defs, mode)

	if err := doc.Save(mergeOut); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}
