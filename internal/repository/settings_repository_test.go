package repository_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"photo_portfolio/internal/domain/models"
	"photo_portfolio/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettingsRepository_DefaultsWhenMissing(t *testing.T) {
	repo := repository.NewJSONSettingsRepository(discardLogger(), t.TempDir())
	ctx := context.Background()

	profile, err := repo.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.Profile{}, profile)

	links, err := repo.GetSNSLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SNSLinks{}, links)

	settings, err := repo.GetSiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, models.SiteSettings{}, settings)
}

func TestSettingsRepository_SaveAndReload(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	repo := repository.NewJSONSettingsRepository(discardLogger(), dir)

	profile := models.Profile{Name: "Alex", Title: "Photographer", Bio: "Shoots landscapes", Email: "alex@example.com"}
	require.NoError(t, repo.SaveProfile(ctx, profile))

	links := models.SNSLinks{Twitter: "https://twitter.com/alex", Instagram: "https://instagram.com/alex"}
	require.NoError(t, repo.SaveSNSLinks(ctx, links))

	site := models.SiteSettings{SiteTitle: "Alex Photos", Description: "Portfolio", DarkMode: true}
	require.NoError(t, repo.SaveSiteSettings(ctx, site))

	// A fresh instance reads what was written.
	reloaded := repository.NewJSONSettingsRepository(discardLogger(), dir)

	gotProfile, err := reloaded.GetProfile(ctx)
	require.NoError(t, err)
	assert.Equal(t, profile, gotProfile)

	gotLinks, err := reloaded.GetSNSLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, links, gotLinks)

	gotSite, err := reloaded.GetSiteSettings(ctx)
	require.NoError(t, err)
	assert.Equal(t, site, gotSite)
}

func TestSettingsRepository_CorruptDocumentYieldsDefaults(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "profile.json"), []byte("{{"), 0644))

	repo := repository.NewJSONSettingsRepository(discardLogger(), dir)

	profile, err := repo.GetProfile(context.Background())
	require.NoError(t, err)
	assert.Equal(t, models.Profile{}, profile)
}
