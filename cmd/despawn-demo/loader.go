package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	"despawn-particles/internal/assets"
	"despawn-particles/internal/convert"
	"despawn-particles/internal/mesh"
	"despawn-particles/internal/utils"
)

// resolveTexturePath accepts a direct path or a bare name searched under
// the asset roots.
func resolveTexturePath(name string) string {
	if name == "" {
		return ""
	}
	if _, err := os.Stat(name); err == nil {
		return name
	}
	return utils.FindTextureFile(name)
}

func loadTexture(as *assets.Server, name string) (assets.Handle[*assets.Image], bool) {
	path := resolveTexturePath(name)
	if path == "" {
		if name != "" {
			utils.Warn("Texture %s not found, using generated image", name)
		}
		return as.Images.Add(assets.NewImage(checker(64, 64, 8))), false
	}
	img, err := convert.LoadImage(path)
	if err != nil {
		utils.Error("Failed to load texture %s: %v", path, err)
		return as.Images.Add(assets.NewImage(checker(64, 64, 8))), false
	}
	utils.Info("Loaded texture %s (%dx%d)", filepath.Base(path), img.Bounds().Dx(), img.Bounds().Dy())
	return as.Images.Add(assets.NewImage(img)), true
}

func loadMesh(as *assets.Server, path string) (assets.Handle[*mesh.Mesh], bool) {
	if path == "" {
		return assets.Handle[*mesh.Mesh]{}, false
	}
	m, err := convert.LoadMDL(path)
	if err != nil {
		utils.Error("Failed to load mesh %s: %v", path, err)
		return assets.Handle[*mesh.Mesh]{}, false
	}
	return as.Meshes.Add(m), true
}

// checker draws a two tone checkerboard with cell pixel squares.
func checker(w, h, cell int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	a := color.RGBA{230, 120, 60, 255}
	b := color.RGBA{60, 140, 230, 255}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetRGBA(x, y, a)
			} else {
				img.SetRGBA(x, y, b)
			}
		}
	}
	return img
}
