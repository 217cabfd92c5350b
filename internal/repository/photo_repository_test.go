package repository_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"photo_portfolio/internal/domain/models"
	"photo_portfolio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError + 1}))
}

func newPhotoRepo(t *testing.T) (*repository.JSONPhotoRepository, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "metadata.json")
	return repository.NewJSONPhotoRepository(discardLogger(), path), path
}

func strPtr(s string) *string { return &s }

func TestPhotoRepository_GetMissingReturnsNil(t *testing.T) {
	repo, _ := newPhotoRepo(t)

	meta, err := repo.Get(context.Background(), "ghost.jpg")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestPhotoRepository_UpsertAndGet(t *testing.T) {
	repo, path := newPhotoRepo(t)
	ctx := context.Background()

	merged, err := repo.Upsert(ctx, "IMG_0042.jpg", models.MetadataPatch{
		Category:   strPtr("landscape"),
		UploadDate: strPtr("2024-03-15 09:30:05"),
		Title:      strPtr("IMG_0042"),
	})
	require.NoError(t, err)
	assert.Equal(t, "landscape", merged.Category)

	got, err := repo.Get(ctx, "IMG_0042.jpg")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, merged, *got)

	// The document on disk carries the record under the photos key.
	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var doc struct {
		Photos map[string]models.PhotoMetadata `json:"photos"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Contains(t, doc.Photos, "IMG_0042.jpg")
}

func TestPhotoRepository_PartialUpsertKeepsOtherFields(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "p.jpg", models.MetadataPatch{
		Category: strPtr("landscape"),
		Title:    strPtr("Sunset"),
		Location: strPtr("Tokyo"),
	})
	require.NoError(t, err)

	merged, err := repo.Upsert(ctx, "p.jpg", models.MetadataPatch{
		Title: strPtr("Sunset over Tokyo"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Sunset over Tokyo", merged.Title)
	assert.Equal(t, "Tokyo", merged.Location)
	assert.Equal(t, "landscape", merged.Category)
}

func TestPhotoRepository_RoundTripIdempotence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	ctx := context.Background()

	repo := repository.NewJSONPhotoRepository(discardLogger(), path)
	comments := []string{"great light"}
	_, err := repo.Upsert(ctx, "p.jpg", models.MetadataPatch{
		Category:   strPtr("landscape"),
		UploadDate: strPtr("2024-03-15 09:30:05"),
		Title:      strPtr("Sunset"),
		Comments:   &comments,
		Exif:       &models.ExifRecord{Camera: "NIKON D850", ISO: "ISO 64"},
	})
	require.NoError(t, err)

	first, err := os.ReadFile(path)
	require.NoError(t, err)

	// A fresh instance reloads the document and a save with no changes
	// must reproduce it byte for byte.
	reloaded := repository.NewJSONPhotoRepository(discardLogger(), path)
	meta, err := reloaded.Get(ctx, "p.jpg")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "NIKON D850", meta.Camera)

	_, err = reloaded.Upsert(ctx, "p.jpg", models.MetadataPatch{})
	require.NoError(t, err)

	second, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, string(first), string(second))
}

func TestPhotoRepository_MissingFileYieldsEmptyStore(t *testing.T) {
	repo, _ := newPhotoRepo(t)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPhotoRepository_CorruptFileYieldsEmptyStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	repo := repository.NewJSONPhotoRepository(discardLogger(), path)

	all, err := repo.All(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestPhotoRepository_DeleteMissingIsNoop(t *testing.T) {
	repo, path := newPhotoRepo(t)

	require.NoError(t, repo.Delete(context.Background(), "ghost.jpg"))

	// A pure no-op must not create the document either.
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestPhotoRepository_Delete(t *testing.T) {
	repo, _ := newPhotoRepo(t)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "p.jpg", models.MetadataPatch{Category: strPtr("landscape")})
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "p.jpg"))

	meta, err := repo.Get(ctx, "p.jpg")
	require.NoError(t, err)
	assert.Nil(t, meta)
}

func TestPhotoRepository_WriteFailureRollsBack(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "metadata.json")

	repo := repository.NewJSONPhotoRepository(discardLogger(), path)
	ctx := context.Background()

	_, err := repo.Upsert(ctx, "p.jpg", models.MetadataPatch{Title: strPtr("Before")})
	require.NoError(t, err)

	// Replace the document with a directory so the rewrite fails.
	require.NoError(t, os.Remove(path))
	require.NoError(t, os.Mkdir(path, 0755))

	_, err = repo.Upsert(ctx, "p.jpg", models.MetadataPatch{Title: strPtr("After")})
	require.Error(t, err)
	assert.True(t, models.IsPersistenceError(err))

	meta, err := repo.Get(ctx, "p.jpg")
	require.NoError(t, err)
	require.NotNil(t, meta)
	assert.Equal(t, "Before", meta.Title, "failed write must not leave the new value in memory")
}

// Two repository instances over the same document model two processes.
// Each loads the store before the other writes, so the second full
// rewrite silently discards the first writer's record.
func TestPhotoRepository_ConcurrentWritersLastWriterWins(t *testing.T) {
	path := filepath.Join(t.TempDir(), "metadata.json")
	ctx := context.Background()

	repoA := repository.NewJSONPhotoRepository(discardLogger(), path)
	repoB := repository.NewJSONPhotoRepository(discardLogger(), path)

	// Force both to load the (empty) document now.
	_, err := repoA.Get(ctx, "x")
	require.NoError(t, err)
	_, err = repoB.Get(ctx, "x")
	require.NoError(t, err)

	_, err = repoA.Upsert(ctx, "a.jpg", models.MetadataPatch{Category: strPtr("landscape")})
	require.NoError(t, err)
	_, err = repoB.Upsert(ctx, "b.jpg", models.MetadataPatch{Category: strPtr("portrait")})
	require.NoError(t, err)

	fresh := repository.NewJSONPhotoRepository(discardLogger(), path)
	all, err := fresh.All(ctx)
	require.NoError(t, err)

	assert.NotContains(t, all, "a.jpg")
	assert.Contains(t, all, "b.jpg")
}
