package storage_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"photo_portfolio/internal/domain/models"
	storage "photo_portfolio/internal/storage/filestorage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupFileStorage(t *testing.T) (*storage.LocalFileStorage, string) {
	t.Helper()

	tempDir := t.TempDir()

	fs, err := storage.NewLocalFileStorage(tempDir, "/uploads", []string{"landscape", "portrait"})
	require.NoError(t, err)

	return fs, tempDir
}

func TestNewLocalFileStorage_CreatesCategoryDirs(t *testing.T) {
	_, dir := setupFileStorage(t)

	for _, category := range []string{"landscape", "portrait"} {
		info, err := os.Stat(filepath.Join(dir, category))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestResolveIdentity_UnusedNamePassesThrough(t *testing.T) {
	fs, _ := setupFileStorage(t)

	identity, err := fs.ResolveIdentity(context.Background(), "landscape", "IMG_0042.jpg")
	require.NoError(t, err)
	assert.Equal(t, "IMG_0042.jpg", identity)
}

func TestResolveIdentity_CollisionSuffixSequence(t *testing.T) {
	fs, _ := setupFileStorage(t)
	ctx := context.Background()

	for _, want := range []string{"IMG_0042.jpg", "IMG_0042_1.jpg", "IMG_0042_2.jpg"} {
		identity, err := fs.ResolveIdentity(ctx, "landscape", "IMG_0042.jpg")
		require.NoError(t, err)
		assert.Equal(t, want, identity)

		require.NoError(t, fs.Save(ctx, "landscape", identity, []byte("data")))
	}
}

func TestResolveIdentity_FillsFirstGap(t *testing.T) {
	fs, _ := setupFileStorage(t)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, "landscape", "photo.png", []byte("a")))
	require.NoError(t, fs.Save(ctx, "landscape", "photo_2.png", []byte("b")))

	identity, err := fs.ResolveIdentity(ctx, "landscape", "photo.png")
	require.NoError(t, err)
	assert.Equal(t, "photo_1.png", identity)
}

func TestResolveIdentity_SuffixedNameCollides(t *testing.T) {
	fs, _ := setupFileStorage(t)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, "landscape", "photo_1.png", []byte("a")))

	identity, err := fs.ResolveIdentity(ctx, "landscape", "photo_1.png")
	require.NoError(t, err)
	assert.Equal(t, "photo_1_1.png", identity)
}

func TestResolveIdentity_MissingCategoryDir(t *testing.T) {
	fs, _ := setupFileStorage(t)

	_, err := fs.ResolveIdentity(context.Background(), "no-such-category", "IMG.jpg")
	require.Error(t, err)
	assert.True(t, models.IsIdentityResolutionError(err))
}

func TestSaveAndRead(t *testing.T) {
	fs, _ := setupFileStorage(t)
	ctx := context.Background()

	content := []byte("jpeg bytes")
	require.NoError(t, fs.Save(ctx, "portrait", "face.jpg", content))

	got, err := fs.Read(ctx, "portrait", "face.jpg")
	require.NoError(t, err)
	assert.Equal(t, content, got)

	assert.True(t, fs.Exists("portrait", "face.jpg"))
	assert.False(t, fs.Exists("portrait", "other.jpg"))
}

func TestDelete(t *testing.T) {
	fs, _ := setupFileStorage(t)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, "portrait", "face.jpg", []byte("x")))
	require.NoError(t, fs.Delete(ctx, "portrait", "face.jpg"))
	assert.False(t, fs.Exists("portrait", "face.jpg"))
}

func TestDelete_MissingFileReportedAsNotExist(t *testing.T) {
	fs, _ := setupFileStorage(t)

	err := fs.Delete(context.Background(), "portrait", "ghost.jpg")
	require.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestList_FiltersNonImages(t *testing.T) {
	fs, dir := setupFileStorage(t)
	ctx := context.Background()

	require.NoError(t, fs.Save(ctx, "landscape", "b.jpg", []byte("x")))
	require.NoError(t, fs.Save(ctx, "landscape", "a.png", []byte("x")))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "landscape", "notes.txt"), []byte("x"), 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "landscape", "subdir"), 0755))

	names, err := fs.List(ctx, "landscape")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.png", "b.jpg"}, names)
}

func TestHasCategory(t *testing.T) {
	fs, _ := setupFileStorage(t)

	assert.True(t, fs.HasCategory("landscape"))
	assert.False(t, fs.HasCategory("macro"))
}

func TestGetFullPath(t *testing.T) {
	fs, dir := setupFileStorage(t)

	assert.Equal(t, filepath.Join(dir, "landscape", "IMG.jpg"), fs.GetFullPath("landscape", "IMG.jpg"))
	assert.Equal(t, "/uploads", fs.BaseURL())
	assert.Equal(t, dir, fs.GetBaseDir())
}
