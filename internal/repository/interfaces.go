package repository

import (
	"context"

	"photo_portfolio/internal/domain/models"
)

type PhotoRepository interface {
	Get(ctx context.Context, identity string) (*models.PhotoMetadata, error)
	All(ctx context.Context) (map[string]models.PhotoMetadata, error)
	Upsert(ctx context.Context, identity string, patch models.MetadataPatch) (models.PhotoMetadata, error)
	Delete(ctx context.Context, identity string) error
}

type SettingsRepository interface {
	GetProfile(ctx context.Context) (models.Profile, error)
	SaveProfile(ctx context.Context, profile models.Profile) error
	GetSNSLinks(ctx context.Context) (models.SNSLinks, error)
	SaveSNSLinks(ctx context.Context, links models.SNSLinks) error
	GetSiteSettings(ctx context.Context) (models.SiteSettings, error)
	SaveSiteSettings(ctx context.Context, settings models.SiteSettings) error
}
