package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"photo_portfolio/internal/domain/models"
	"photo_portfolio/internal/lib/imageproc"
	"photo_portfolio/internal/lib/logger/sl"
	"photo_portfolio/internal/repository"
	storage "photo_portfolio/internal/storage/filestorage"
	"photo_portfolio/internal/transport/http/dto"

	gocache "github.com/patrickmn/go-cache"
)

var ErrPhotoNotFound = errors.New("photo not found")

// GalleryService is the read path: category listings, photo details and
// derived images. Thumbnails and optimized views are pure derivations,
// so they are cached in-process keyed by identity and dimensions.
type GalleryService struct {
	log         *slog.Logger
	repo        repository.PhotoRepository
	fileStorage storage.FileStorage
	cache       *gocache.Cache
}

func NewGalleryService(log *slog.Logger, repo repository.PhotoRepository, fileStorage storage.FileStorage, cacheTTL time.Duration) *GalleryService {
	return &GalleryService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
		cache:       gocache.New(cacheTTL, 2*cacheTTL),
	}
}

// ListPhotos returns the gallery items for a category. The directory
// listing is the source of truth for which photos exist; a file without
// a metadata record still appears, with its default title. Metadata
// records without a file are simply not listed.
func (s *GalleryService) ListPhotos(ctx context.Context, category string) ([]dto.PhotoItem, error) {
	const op = "gallery_service.ListPhotos"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category", category),
	)

	names, err := s.fileStorage.List(ctx, category)
	if err != nil {
		log.Error("failed to list category", sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	all, err := s.repo.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	items := make([]dto.PhotoItem, 0, len(names))
	for _, identity := range names {
		title := models.DefaultTitle(identity)
		if meta, ok := all[identity]; ok && meta.Title != "" {
			title = meta.Title
		}

		items = append(items, dto.PhotoItem{
			Identity:     identity,
			Category:     category,
			Title:        title,
			URL:          fmt.Sprintf("%s/%s/%s", s.fileStorage.BaseURL(), category, identity),
			ThumbnailURL: fmt.Sprintf("/api/v1/photos/%s/%s/thumbnail", category, identity),
		})
	}

	return items, nil
}

// PhotoDetails returns the stored metadata for one photo. A photo that
// exists on disk without a metadata record is still served with default
// metadata, per the divergence tolerance of the store.
func (s *GalleryService) PhotoDetails(ctx context.Context, category, identity string) (*dto.PhotoDetail, error) {
	const op = "gallery_service.PhotoDetails"

	meta, err := s.repo.Get(ctx, identity)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if meta == nil {
		if !s.fileStorage.Exists(category, identity) {
			return nil, fmt.Errorf("%s: %w", op, ErrPhotoNotFound)
		}
		meta = &models.PhotoMetadata{
			Category: category,
			Title:    models.DefaultTitle(identity),
			Comments: []string{},
		}
	}

	return &dto.PhotoDetail{
		Identity: identity,
		URL:      fmt.Sprintf("%s/%s/%s", s.fileStorage.BaseURL(), category, identity),
		Metadata: *meta,
	}, nil
}

// Thumbnail derives (and caches) a bounded preview of the photo.
// Undecodable bytes surface an ImageDecodeError for the caller to
// substitute a placeholder.
func (s *GalleryService) Thumbnail(ctx context.Context, category, identity string, maxWidth, maxHeight int) ([]byte, error) {
	const op = "gallery_service.Thumbnail"

	key := fmt.Sprintf("thumb:%s/%s:%dx%d", category, identity, maxWidth, maxHeight)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]byte), nil
	}

	data, err := s.readPhoto(ctx, category, identity, op)
	if err != nil {
		return nil, err
	}

	thumb, err := imageproc.Thumbnail(data, maxWidth, maxHeight)
	if err != nil {
		s.log.Warn("thumbnail derivation failed",
			slog.String("op", op),
			slog.String("category", category),
			slog.String("identity", identity),
			sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(key, thumb, gocache.DefaultExpiration)

	return thumb, nil
}

// Optimized derives (and caches) the orientation-corrected full view.
func (s *GalleryService) Optimized(ctx context.Context, category, identity string, maxDim, quality int) ([]byte, error) {
	const op = "gallery_service.Optimized"

	key := fmt.Sprintf("opt:%s/%s:%d:q%d", category, identity, maxDim, quality)
	if cached, ok := s.cache.Get(key); ok {
		return cached.([]byte), nil
	}

	data, err := s.readPhoto(ctx, category, identity, op)
	if err != nil {
		return nil, err
	}

	optimized, err := imageproc.Optimize(data, maxDim, quality)
	if err != nil {
		s.log.Warn("optimized derivation failed",
			slog.String("op", op),
			slog.String("category", category),
			slog.String("identity", identity),
			sl.Err(err))
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	s.cache.Set(key, optimized, gocache.DefaultExpiration)

	return optimized, nil
}

// InvalidateCache drops all cached derivations. Called after deletes so
// a removed photo's thumbnail does not outlive it.
func (s *GalleryService) InvalidateCache() {
	s.cache.Flush()
}

func (s *GalleryService) readPhoto(ctx context.Context, category, identity, op string) ([]byte, error) {
	data, err := s.fileStorage.Read(ctx, category, identity)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%s: %w", op, ErrPhotoNotFound)
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return data, nil
}
