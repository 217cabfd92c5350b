package app

import (
	"log/slog"

	httpapp "photo_portfolio/internal/app/http"
	"photo_portfolio/internal/config"
	"photo_portfolio/internal/repository"
	"photo_portfolio/internal/services/auth"
	gallerysvc "photo_portfolio/internal/services/gallery_service"
	photosvc "photo_portfolio/internal/services/photo_service"
	storage "photo_portfolio/internal/storage/filestorage"
	httprouters "photo_portfolio/internal/transport/http"
)

type App struct {
	HTTPServer *httpapp.Server
}

func New(log *slog.Logger, cfg *config.Config) *App {
	fileStorage, err := storage.NewLocalFileStorage(cfg.FileStorage.BaseDir, cfg.FileStorage.BaseURL, cfg.Categories)
	if err != nil {
		panic(err)
	}

	repo, err := repository.NewRepository(log, cfg.ConfigDir)
	if err != nil {
		panic(err)
	}

	photoService := photosvc.NewPhotoService(log, repo.Photo, fileStorage)
	galleryService := gallerysvc.NewGalleryService(log, repo.Photo, fileStorage, cfg.Thumbnail.CacheTTL)
	authService := auth.New(log, cfg.Admin.PasswordHash, cfg.Admin.TokenSecret, cfg.Admin.TokenTTL)

	routers := httprouters.NewRouter(
		log,
		photoService,
		galleryService,
		authService,
		repo.Settings,
		cfg.Thumbnail,
		cfg.FileStorage.MaxSize,
	)

	server := httpapp.New(
		log,
		cfg.Admin.SessionSecret,
		cfg.HTTP.Host,
		cfg.HTTP.Port,
		cfg.FileStorage.BaseDir,
		cfg.FileStorage.BaseURL,
		routers,
	)

	return &App{
		HTTPServer: server,
	}
}
