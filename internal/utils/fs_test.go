package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withRoots(t *testing.T, roots ...string) {
	t.Helper()
	prev := AssetRoots
	AssetRoots = roots
	t.Cleanup(func() { AssetRoots = prev })
}

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, nil, 0o644))
}

func TestFindTextureFile(t *testing.T) {
	root := t.TempDir()
	withRoots(t, root)

	touch(t, filepath.Join(root, "materials", "leaf.tex"))
	touch(t, filepath.Join(root, "deep", "nested", "bark.png"))

	assert.Equal(t, filepath.Join(root, "materials", "leaf.tex"), FindTextureFile("materials/leaf"))
	assert.Equal(t, filepath.Join(root, "materials", "leaf.tex"), FindTextureFile("leaf.png"))
	assert.Equal(t, filepath.Join(root, "deep", "nested", "bark.png"), FindTextureFile("bark"))
	assert.Equal(t, "", FindTextureFile("missing"))
	assert.Equal(t, "", FindTextureFile(""))
}

func TestResolveAssetPath(t *testing.T) {
	root := t.TempDir()
	withRoots(t, root)
	touch(t, filepath.Join(root, "shaders", "despawn.frag"))

	assert.Equal(t, filepath.Join(root, "shaders", "despawn.frag"), ResolveAssetPath("shaders/despawn.frag"))
	assert.Equal(t, filepath.Join("assets", "nope.txt"), ResolveAssetPath("nope.txt"))
}
