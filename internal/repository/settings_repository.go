package repository

import (
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"photo_portfolio/internal/domain/models"
	"photo_portfolio/internal/lib/logger/sl"
)

const (
	profileFile = "profile.json"
	snsFile     = "sns.json"
	siteFile    = "site.json"
)

// JSONSettingsRepository keeps each settings record (profile, SNS links,
// site settings) as its own JSON document inside the config directory.
// Absence of a document yields defaults, never an error.
type JSONSettingsRepository struct {
	log *slog.Logger
	dir string
	mu  sync.Mutex
}

func NewJSONSettingsRepository(log *slog.Logger, dir string) *JSONSettingsRepository {
	return &JSONSettingsRepository{
		log: log,
		dir: dir,
	}
}

func (r *JSONSettingsRepository) GetProfile(ctx context.Context) (models.Profile, error) {
	var profile models.Profile
	err := r.load(ctx, profileFile, &profile)
	return profile, err
}

func (r *JSONSettingsRepository) SaveProfile(ctx context.Context, profile models.Profile) error {
	return r.save(ctx, profileFile, profile)
}

func (r *JSONSettingsRepository) GetSNSLinks(ctx context.Context) (models.SNSLinks, error) {
	var links models.SNSLinks
	err := r.load(ctx, snsFile, &links)
	return links, err
}

func (r *JSONSettingsRepository) SaveSNSLinks(ctx context.Context, links models.SNSLinks) error {
	return r.save(ctx, snsFile, links)
}

func (r *JSONSettingsRepository) GetSiteSettings(ctx context.Context) (models.SiteSettings, error) {
	var settings models.SiteSettings
	err := r.load(ctx, siteFile, &settings)
	return settings, err
}

func (r *JSONSettingsRepository) SaveSiteSettings(ctx context.Context, settings models.SiteSettings) error {
	return r.save(ctx, siteFile, settings)
}

func (r *JSONSettingsRepository) load(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.dir, name)

	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			r.log.Warn("settings document unreadable, using defaults",
				slog.String("path", path), sl.Err(err))
		}
		return nil
	}

	if err := json.Unmarshal(data, v); err != nil {
		r.log.Warn("settings document corrupt, using defaults",
			slog.String("path", path), sl.Err(err))
	}
	return nil
}

func (r *JSONSettingsRepository) save(ctx context.Context, name string, v any) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	path := filepath.Join(r.dir, name)

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return &models.PersistenceError{Path: path, Err: err}
	}

	return nil
}
