package utils

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// AssetRoots are searched in order after the local assets directory.
var AssetRoots []string

var errFound = errors.New("found")

var textureExtensions = []string{".tex", ".png", ".jpg", ".jpeg"}

func exists(p string) bool {
	_, err := os.Stat(p)
	return err == nil
}

func ResolveAssetPath(relPath string) string {
	localPath := filepath.Join("assets", relPath)
	if exists(localPath) {
		return localPath
	}

	for _, root := range AssetRoots {
		p := filepath.Join(root, relPath)
		if exists(p) {
			return p
		}
	}

	return localPath
}

// FindTextureFile looks a sprite image up by name, trying every known
// extension in every search directory before walking the asset trees.
func FindTextureFile(name string) string {
	if name == "" {
		return ""
	}
	if exists(name) {
		return name
	}

	cleanName := strings.TrimPrefix(name, "materials/")
	cleanName = strings.TrimSuffix(cleanName, filepath.Ext(cleanName))

	searchDirs := []string{"assets/materials", "assets", "converted"}
	for _, root := range AssetRoots {
		searchDirs = append(searchDirs, filepath.Join(root, "materials"), root)
	}

	for _, dir := range searchDirs {
		for _, ext := range textureExtensions {
			p := filepath.Join(dir, cleanName+ext)
			if exists(p) {
				return p
			}
		}
		p := filepath.Join(dir, name)
		if exists(p) {
			return p
		}
	}

	var foundPath string
	targetBase := filepath.Base(cleanName)
	for _, d := range append([]string{"assets"}, AssetRoots...) {
		if !exists(d) {
			continue
		}
		_ = filepath.WalkDir(d, func(path string, entry fs.DirEntry, err error) error {
			if err != nil || entry.IsDir() {
				return nil
			}
			ext := filepath.Ext(path)
			base := strings.TrimSuffix(filepath.Base(path), ext)
			if base == targetBase && isTextureExt(ext) {
				foundPath = path
				return errFound
			}
			return nil
		})
		if foundPath != "" {
			break
		}
	}

	return foundPath
}

func isTextureExt(ext string) bool {
	for _, e := range textureExtensions {
		if strings.EqualFold(e, ext) {
			return true
		}
	}
	return false
}
