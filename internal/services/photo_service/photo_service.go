package services

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"photo_portfolio/internal/domain/models"
	"photo_portfolio/internal/lib/exifmeta"
	"photo_portfolio/internal/lib/logger/sl"
	"photo_portfolio/internal/metrics"
	"photo_portfolio/internal/repository"
	storage "photo_portfolio/internal/storage/filestorage"
	"photo_portfolio/internal/transport/http/dto"
)

// PhotoService is the ingestion pipeline: identity resolution, byte
// persistence, EXIF extraction and the metadata upsert, in that order.
type PhotoService struct {
	log         *slog.Logger
	repo        repository.PhotoRepository
	fileStorage storage.FileStorage
}

func NewPhotoService(log *slog.Logger, repo repository.PhotoRepository, fileStorage storage.FileStorage) *PhotoService {
	return &PhotoService{
		log:         log,
		repo:        repo,
		fileStorage: fileStorage,
	}
}

// UploadPhoto ingests one image and returns the resolved identity, which
// may carry a collision suffix and therefore differ from the requested
// file name. Any step failure surfaces the originating error; a failed
// metadata write rolls the stored file back so no partial state remains.
func (s *PhotoService) UploadPhoto(ctx context.Context, input dto.PhotoUploadInput) (string, error) {
	const op = "photo_service.UploadPhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category", input.Category),
		slog.String("filename", input.Filename),
	)

	if !s.fileStorage.HasCategory(input.Category) {
		log.Warn("unknown category")
		return "", fmt.Errorf("%s: unknown category %q", op, input.Category)
	}

	identity, err := s.fileStorage.ResolveIdentity(ctx, input.Category, input.Filename)
	if err != nil {
		log.Error("failed to resolve identity", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	if err := s.fileStorage.Save(ctx, input.Category, identity, input.Data); err != nil {
		log.Error("failed to save file", sl.Err(err))
		return "", fmt.Errorf("%s: %w", op, err)
	}

	exifRecord := exifmeta.Decode(input.Data)
	if exifRecord.IsEmpty() {
		log.Debug("no exif metadata found", slog.String("identity", identity))
	}

	uploadDate := models.NewUploadDate(time.Now())
	title := models.DefaultTitle(identity)
	comments := []string{}

	patch := models.MetadataPatch{
		Category:   &input.Category,
		UploadDate: &uploadDate,
		Title:      &title,
		Comments:   &comments,
		Exif:       &exifRecord,
	}

	if _, err := s.repo.Upsert(ctx, identity, patch); err != nil {
		// Roll the file back so a metadata failure leaves no half-ingested photo.
		if rmErr := s.fileStorage.Delete(ctx, input.Category, identity); rmErr != nil {
			log.Error("rollback of stored file failed", sl.Err(rmErr))
		}
		log.Error("failed to save metadata", sl.Err(err))
		metrics.PhotosIngested.WithLabelValues(input.Category, "error").Inc()
		return "", fmt.Errorf("%s: %w", op, err)
	}

	metrics.PhotosIngested.WithLabelValues(input.Category, "success").Inc()
	log.Info("photo ingested", slog.String("identity", identity))

	return identity, nil
}

// UploadBatch ingests files independently: a failure for one file is
// recorded in its result and never aborts the ingestion of its siblings.
func (s *PhotoService) UploadBatch(ctx context.Context, inputs []dto.PhotoUploadInput) []dto.UploadResult {
	results := make([]dto.UploadResult, 0, len(inputs))

	for _, input := range inputs {
		result := dto.UploadResult{Filename: input.Filename}

		identity, err := s.UploadPhoto(ctx, input)
		if err != nil {
			result.Error = err.Error()
		} else {
			result.Identity = identity
		}

		results = append(results, result)
	}

	return results
}

// DeletePhoto removes the photo file and then its metadata record.
// An already-missing file is tolerated so stale metadata can still be
// cleaned up. If the file removal fails for any other reason the
// metadata is kept, since deleting it would mask a still-present file.
// A metadata delete failure after a successful file removal is logged
// and tolerated: orphaned metadata is accepted, a ghost file is not.
func (s *PhotoService) DeletePhoto(ctx context.Context, category, identity string) error {
	const op = "photo_service.DeletePhoto"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category", category),
		slog.String("identity", identity),
	)

	if err := s.fileStorage.Delete(ctx, category, identity); err != nil {
		if os.IsNotExist(err) {
			log.Warn("photo file already missing, removing metadata only")
		} else {
			log.Error("failed to delete file", sl.Err(err))
			return fmt.Errorf("%s: %w", op, err)
		}
	}

	if err := s.repo.Delete(ctx, identity); err != nil {
		log.Error("failed to delete metadata, orphaned record tolerated", sl.Err(err))
		return nil
	}

	log.Info("photo deleted")

	return nil
}

// UpdateMetadata applies a partial edit through the merge path: fields
// absent from the request keep their stored values.
func (s *PhotoService) UpdateMetadata(ctx context.Context, category, identity string, req dto.UpdateMetadataRequest) (models.PhotoMetadata, error) {
	const op = "photo_service.UpdateMetadata"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category", category),
		slog.String("identity", identity),
	)

	patch := models.MetadataPatch{
		Category:       &category,
		Title:          req.Title,
		Location:       req.Location,
		Description:    req.Description,
		CameraSettings: req.CameraSettings,
	}

	merged, err := s.repo.Upsert(ctx, identity, patch)
	if err != nil {
		log.Error("failed to update metadata", sl.Err(err))
		return models.PhotoMetadata{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("metadata updated")

	return merged, nil
}

// AddComment appends one comment to the photo's ordered comment list.
func (s *PhotoService) AddComment(ctx context.Context, identity, text string) (models.PhotoMetadata, error) {
	const op = "photo_service.AddComment"

	log := s.log.With(
		slog.String("op", op),
		slog.String("identity", identity),
	)

	existing, err := s.repo.Get(ctx, identity)
	if err != nil {
		return models.PhotoMetadata{}, fmt.Errorf("%s: %w", op, err)
	}

	var comments []string
	if existing != nil {
		comments = append(comments, existing.Comments...)
	}
	comments = append(comments, text)

	merged, err := s.repo.Upsert(ctx, identity, models.MetadataPatch{Comments: &comments})
	if err != nil {
		log.Error("failed to save comment", sl.Err(err))
		return models.PhotoMetadata{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("comment added", slog.Int("comments", len(merged.Comments)))

	return merged, nil
}

// RescanExif re-extracts EXIF from the stored file and merges it in.
// Tags the re-scan could not extract keep their previously stored values.
func (s *PhotoService) RescanExif(ctx context.Context, category, identity string) (models.PhotoMetadata, error) {
	const op = "photo_service.RescanExif"

	log := s.log.With(
		slog.String("op", op),
		slog.String("category", category),
		slog.String("identity", identity),
	)

	data, err := s.fileStorage.Read(ctx, category, identity)
	if err != nil {
		log.Error("failed to read photo file", sl.Err(err))
		return models.PhotoMetadata{}, fmt.Errorf("%s: %w", op, err)
	}

	exifRecord := exifmeta.Decode(data)

	merged, err := s.repo.Upsert(ctx, identity, models.MetadataPatch{
		Category: &category,
		Exif:     &exifRecord,
	})
	if err != nil {
		log.Error("failed to save rescanned metadata", sl.Err(err))
		return models.PhotoMetadata{}, fmt.Errorf("%s: %w", op, err)
	}

	log.Info("exif rescanned")

	return merged, nil
}
