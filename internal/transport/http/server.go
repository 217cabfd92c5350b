package http

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"photo_portfolio/internal/config"
	"photo_portfolio/internal/domain/models"
	"photo_portfolio/internal/lib/imageproc"
	"photo_portfolio/internal/lib/logger/sl"
	gallery "photo_portfolio/internal/services/gallery_service"
	"photo_portfolio/internal/transport/http/dto"
	"photo_portfolio/internal/transport/http/dto/request"
	"photo_portfolio/internal/transport/http/dto/response"

	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
)

type PhotoService interface {
	UploadBatch(ctx context.Context, inputs []dto.PhotoUploadInput) []dto.UploadResult
	DeletePhoto(ctx context.Context, category, identity string) error
	UpdateMetadata(ctx context.Context, category, identity string, req dto.UpdateMetadataRequest) (models.PhotoMetadata, error)
	AddComment(ctx context.Context, identity, text string) (models.PhotoMetadata, error)
	RescanExif(ctx context.Context, category, identity string) (models.PhotoMetadata, error)
}

type GalleryService interface {
	ListPhotos(ctx context.Context, category string) ([]dto.PhotoItem, error)
	PhotoDetails(ctx context.Context, category, identity string) (*dto.PhotoDetail, error)
	Thumbnail(ctx context.Context, category, identity string, maxWidth, maxHeight int) ([]byte, error)
	Optimized(ctx context.Context, category, identity string, maxDim, quality int) ([]byte, error)
	InvalidateCache()
}

type AuthService interface {
	Login(ctx context.Context, password string) (string, error)
	ValidateToken(tokenString string) bool
}

type SettingsService interface {
	GetProfile(ctx context.Context) (models.Profile, error)
	SaveProfile(ctx context.Context, profile models.Profile) error
	GetSNSLinks(ctx context.Context) (models.SNSLinks, error)
	SaveSNSLinks(ctx context.Context, links models.SNSLinks) error
	GetSiteSettings(ctx context.Context) (models.SiteSettings, error)
	SaveSiteSettings(ctx context.Context, settings models.SiteSettings) error
}

type Routers struct {
	log             *slog.Logger
	PhotoService    PhotoService
	GalleryService  GalleryService
	AuthService     AuthService
	SettingsService SettingsService
	thumbCfg        config.ThumbnailConfig
	maxUploadSize   int64
}

func NewRouter(
	log *slog.Logger,
	photoService PhotoService,
	galleryService GalleryService,
	authService AuthService,
	settingsService SettingsService,
	thumbCfg config.ThumbnailConfig,
	maxUploadSize int64,
) *Routers {
	return &Routers{
		log:             log,
		PhotoService:    photoService,
		GalleryService:  galleryService,
		AuthService:     authService,
		SettingsService: settingsService,
		thumbCfg:        thumbCfg,
		maxUploadSize:   maxUploadSize,
	}
}

// Login authenticates the admin. On success the session is marked
// authenticated and a bearer token is returned for API clients.
func (r *Routers) Login(c echo.Context) error {
	const op = "http.routers.Login"

	log := r.log.With(
		slog.String("op", op),
	)

	var req request.LoginRequest

	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		log.Warn("invalid login request", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	token, err := r.AuthService.Login(c.Request().Context(), req.Password)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, response.ErrAuthenticationFailed)
	}

	sess, _ := session.Get("session", c)
	sess.Values["authenticated"] = true
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		log.Error("failed to save session", sl.Err(err))
	}

	return c.JSON(http.StatusOK, response.Response{
		Status: "success",
		Data:   map[string]string{"access_token": token},
	})
}

func (r *Routers) Logout(c echo.Context) error {
	sess, _ := session.Get("session", c)
	sess.Values["authenticated"] = false
	if err := sess.Save(c.Request(), c.Response()); err != nil {
		r.log.Error("failed to save session", sl.Err(err))
	}

	return c.JSON(http.StatusOK, response.Response{Status: "success"})
}

// UploadPhotos ingests every file of a multipart form independently and
// reports a per-file result, so one bad file never aborts its siblings.
func (r *Routers) UploadPhotos(c echo.Context) error {
	const op = "http.routers.UploadPhotos"

	log := r.log.With(
		slog.String("op", op),
	)

	category := c.FormValue("category")

	form, err := c.MultipartForm()
	if err != nil {
		log.Warn("invalid multipart form", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	files := form.File["photos"]
	if len(files) == 0 {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
			"no_files", "At least one photo is required"))
	}

	inputs := make([]dto.PhotoUploadInput, 0, len(files))
	rejected := make([]dto.UploadResult, 0)

	for _, fh := range files {
		if r.maxUploadSize > 0 && fh.Size > r.maxUploadSize {
			rejected = append(rejected, dto.UploadResult{
				Filename: fh.Filename,
				Error:    "file exceeds the maximum upload size",
			})
			continue
		}

		src, err := fh.Open()
		if err != nil {
			rejected = append(rejected, dto.UploadResult{Filename: fh.Filename, Error: err.Error()})
			continue
		}

		data, err := io.ReadAll(src)
		src.Close()
		if err != nil {
			rejected = append(rejected, dto.UploadResult{Filename: fh.Filename, Error: err.Error()})
			continue
		}

		inputs = append(inputs, dto.PhotoUploadInput{
			Category: category,
			Filename: fh.Filename,
			Data:     data,
		})
	}

	results := r.PhotoService.UploadBatch(c.Request().Context(), inputs)
	results = append(results, rejected...)

	succeeded := 0
	for _, res := range results {
		if res.Error == "" {
			succeeded++
		}
	}

	if succeeded > 0 {
		r.GalleryService.InvalidateCache()
	}

	log.Info("upload batch processed",
		slog.String("category", category),
		slog.Int("total", len(results)),
		slog.Int("succeeded", succeeded),
	)

	return c.JSON(http.StatusOK, response.Response{
		Status: "success",
		Data: map[string]interface{}{
			"results":   results,
			"succeeded": succeeded,
			"failed":    len(results) - succeeded,
		},
	})
}

func (r *Routers) DeletePhoto(c echo.Context) error {
	const op = "http.routers.DeletePhoto"

	log := r.log.With(
		slog.String("op", op),
		slog.String("category", c.Param("category")),
		slog.String("identity", c.Param("identity")),
	)

	err := r.PhotoService.DeletePhoto(c.Request().Context(), c.Param("category"), c.Param("identity"))
	if err != nil {
		log.Error("failed to delete photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"delete_failed", err.Error()))
	}

	r.GalleryService.InvalidateCache()

	return c.NoContent(http.StatusNoContent)
}

func (r *Routers) UpdateMetadata(c echo.Context) error {
	const op = "http.routers.UpdateMetadata"

	log := r.log.With(
		slog.String("op", op),
		slog.String("identity", c.Param("identity")),
	)

	var req dto.UpdateMetadataRequest
	if err := c.Bind(&req); err != nil {
		log.Warn("invalid request data", sl.Err(err))
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	meta, err := r.PhotoService.UpdateMetadata(c.Request().Context(), c.Param("category"), c.Param("identity"), req)
	if err != nil {
		log.Error("failed to update metadata", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"update_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(meta))
}

func (r *Routers) AddComment(c echo.Context) error {
	const op = "http.routers.AddComment"

	log := r.log.With(
		slog.String("op", op),
		slog.String("identity", c.Param("identity")),
	)

	var req dto.AddCommentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
			"invalid_comment", err.Error()))
	}

	// Comments attach only to photos that exist in the gallery.
	if _, err := r.GalleryService.PhotoDetails(c.Request().Context(), c.Param("category"), c.Param("identity")); err != nil {
		if errors.Is(err, gallery.ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}
		log.Error("failed to check photo", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"comment_failed", err.Error()))
	}

	meta, err := r.PhotoService.AddComment(c.Request().Context(), c.Param("identity"), req.Text)
	if err != nil {
		log.Error("failed to add comment", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"comment_failed", err.Error()))
	}

	return c.JSON(http.StatusCreated, response.SuccessResponse(meta))
}

func (r *Routers) RescanExif(c echo.Context) error {
	const op = "http.routers.RescanExif"

	log := r.log.With(
		slog.String("op", op),
		slog.String("identity", c.Param("identity")),
	)

	meta, err := r.PhotoService.RescanExif(c.Request().Context(), c.Param("category"), c.Param("identity"))
	if err != nil {
		log.Error("failed to rescan exif", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"rescan_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(meta))
}

func (r *Routers) ListPhotos(c echo.Context) error {
	const op = "http.routers.ListPhotos"

	log := r.log.With(
		slog.String("op", op),
		slog.String("category", c.Param("category")),
	)

	items, err := r.GalleryService.ListPhotos(c.Request().Context(), c.Param("category"))
	if err != nil {
		if models.IsIdentityResolutionError(err) {
			return c.JSON(http.StatusNotFound, response.ErrUnknownCategory)
		}
		log.Error("failed to list photos", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"list_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.Response{
		Status: "success",
		Data: map[string]interface{}{
			"photos": items,
			"count":  len(items),
		},
	})
}

func (r *Routers) GetPhoto(c echo.Context) error {
	const op = "http.routers.GetPhoto"

	detail, err := r.GalleryService.PhotoDetails(c.Request().Context(), c.Param("category"), c.Param("identity"))
	if err != nil {
		if errors.Is(err, gallery.ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}
		r.log.Error("failed to get photo", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"detail_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(detail))
}

// Thumbnail serves the bounded preview. Undecodable images degrade to a
// flat placeholder of the requested size instead of an error page.
func (r *Routers) Thumbnail(c echo.Context) error {
	const op = "http.routers.Thumbnail"

	maxWidth := queryInt(c, "w", r.thumbCfg.MaxWidth)
	maxHeight := queryInt(c, "h", r.thumbCfg.MaxHeight)

	data, err := r.GalleryService.Thumbnail(c.Request().Context(), c.Param("category"), c.Param("identity"), maxWidth, maxHeight)
	if err != nil {
		if errors.Is(err, gallery.ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}
		if models.IsImageDecodeError(err) {
			return c.Blob(http.StatusOK, "image/jpeg", imageproc.Placeholder(maxWidth, maxHeight))
		}
		r.log.Error("failed to derive thumbnail", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"thumbnail_failed", err.Error()))
	}

	return c.Blob(http.StatusOK, "image/jpeg", data)
}

// FullView serves the orientation-corrected, size-constrained rendition.
func (r *Routers) FullView(c echo.Context) error {
	const op = "http.routers.FullView"

	maxDim := queryInt(c, "max", r.thumbCfg.OptimizeMaxDim)
	quality := queryInt(c, "quality", r.thumbCfg.Quality)

	data, err := r.GalleryService.Optimized(c.Request().Context(), c.Param("category"), c.Param("identity"), maxDim, quality)
	if err != nil {
		if errors.Is(err, gallery.ErrPhotoNotFound) {
			return c.JSON(http.StatusNotFound, response.ErrPhotoNotFound)
		}
		if models.IsImageDecodeError(err) {
			return c.Blob(http.StatusOK, "image/jpeg", imageproc.Placeholder(maxDim, maxDim))
		}
		r.log.Error("failed to derive full view", slog.String("op", op), sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"full_view_failed", err.Error()))
	}

	return c.Blob(http.StatusOK, "image/jpeg", data)
}

func (r *Routers) GetProfile(c echo.Context) error {
	profile, err := r.SettingsService.GetProfile(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"settings_failed", err.Error()))
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(profile))
}

func (r *Routers) UpdateProfile(c echo.Context) error {
	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
			"invalid_profile", err.Error()))
	}

	profile := models.Profile{Name: req.Name, Title: req.Title, Bio: req.Bio, Email: req.Email}
	if err := r.SettingsService.SaveProfile(c.Request().Context(), profile); err != nil {
		r.log.Error("failed to save profile", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"settings_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(profile))
}

func (r *Routers) GetSNSLinks(c echo.Context) error {
	links, err := r.SettingsService.GetSNSLinks(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"settings_failed", err.Error()))
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(links))
}

func (r *Routers) UpdateSNSLinks(c echo.Context) error {
	var req dto.UpdateSNSLinksRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrorResponseWithDetails(
			"invalid_sns", err.Error()))
	}

	links := models.SNSLinks{Twitter: req.Twitter, Instagram: req.Instagram, Facebook: req.Facebook}
	if err := r.SettingsService.SaveSNSLinks(c.Request().Context(), links); err != nil {
		r.log.Error("failed to save sns links", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"settings_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(links))
}

func (r *Routers) GetSiteSettings(c echo.Context) error {
	settings, err := r.SettingsService.GetSiteSettings(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"settings_failed", err.Error()))
	}
	return c.JSON(http.StatusOK, response.SuccessResponse(settings))
}

func (r *Routers) UpdateSiteSettings(c echo.Context) error {
	var req dto.UpdateSiteSettingsRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, response.ErrInvalidRequestFormat)
	}

	settings := models.SiteSettings{SiteTitle: req.SiteTitle, Description: req.Description, DarkMode: req.DarkMode}
	if err := r.SettingsService.SaveSiteSettings(c.Request().Context(), settings); err != nil {
		r.log.Error("failed to save site settings", sl.Err(err))
		return c.JSON(http.StatusInternalServerError, response.ErrorResponseWithDetails(
			"settings_failed", err.Error()))
	}

	return c.JSON(http.StatusOK, response.SuccessResponse(settings))
}

func queryInt(c echo.Context, name string, fallback int) int {
	if raw := c.QueryParam(name); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			return v
		}
	}
	return fallback
}
