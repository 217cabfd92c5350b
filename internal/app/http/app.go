package httpapp

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	custommw "photo_portfolio/internal/middleware"
	httprouters "photo_portfolio/internal/transport/http"

	"github.com/arl/statsviz"
	"github.com/go-playground/validator/v10"
	"github.com/gorilla/sessions"
	"github.com/labstack/echo-contrib/session"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type CustomValidator struct {
	validator *validator.Validate
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

type Server struct {
	m         *http.ServeMux
	log       *slog.Logger
	e         *echo.Echo
	routers   *httprouters.Routers
	host      string
	port      string
	uploadDir string
	baseURL   string
}

func New(log *slog.Logger, sessionSecret, host, port, uploadDir, baseURL string, routers *httprouters.Routers) *Server {
	e := echo.New()
	e.HideBanner = true

	validate := validator.New()
	e.Validator = &CustomValidator{validator: validate}

	e.Use(session.Middleware(sessions.NewCookieStore([]byte(sessionSecret))))

	e.Use(middleware.CORS())
	e.Use(middleware.Recover())

	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogURI:      true,
		LogStatus:   true,
		LogRemoteIP: true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			log.Info("request",
				slog.String("URI", v.URI),
				slog.Int("status", v.Status),
				slog.String("remote ip", v.RemoteIP),
			)

			return nil
		},
	}))

	e.Use(custommw.PrometheusMetrics)

	mux := http.NewServeMux()
	err := statsviz.Register(mux)
	if err != nil {
		log.Info("Statsviz start with error", slog.Any("error:", err.Error()))
	}

	return &Server{
		m:         mux,
		log:       log,
		e:         e,
		routers:   routers,
		host:      host,
		port:      port,
		uploadDir: uploadDir,
		baseURL:   baseURL,
	}
}

func (s *Server) MustRun() {
	const op = "http.Server.MustRun"

	s.log.Info(op, slog.String("Start", "server"))

	if err := s.Start(); err != nil {
		panic(err)
	}
}

func (s *Server) Start() error {
	const op = "http.Server.Start"

	if err := s.e.Start(fmt.Sprintf(":%s", s.port)); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("%s server stopped: %w", op, err)
	}

	return nil
}

func (s *Server) Stop() error {
	const op = "http.Server.Stop"

	optCtx, cancel := context.WithTimeout(context.Background(), time.Second*10)
	defer cancel()

	s.log.Info("stopping", op, "http server")

	if err := s.e.Shutdown(optCtx); err != nil {
		return fmt.Errorf("%s could not shutdown server gracefuly: %w", op, err)
	}

	return nil
}

// adminOnlyMiddleware accepts either an authenticated browser session or
// a bearer token issued by the login endpoint.
func (s *Server) adminOnlyMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		sess, err := session.Get("session", c)
		if err == nil {
			if authed, ok := sess.Values["authenticated"].(bool); ok && authed {
				return next(c)
			}
		}

		authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
		if token, found := strings.CutPrefix(authHeader, "Bearer "); found {
			if s.routers.AuthService.ValidateToken(token) {
				return next(c)
			}
		}

		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "authentication required"})
	}
}

func (s *Server) BuildRouters() {
	s.e.Static(s.baseURL, s.uploadDir)

	api := s.e.Group("/api/v1")
	{
		api.POST("/login", s.routers.Login)
		api.POST("/logout", s.routers.Logout)

		debug := s.e.Group("/debug")
		{
			debug.GET("/statsviz/", echo.WrapHandler(s.m))
			debug.GET("/statsviz/*", echo.WrapHandler(s.m))
		}

		s.e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

		photoGroup := api.Group("/photos")
		{
			photoGroup.GET("/:category", s.routers.ListPhotos)
			photoGroup.GET("/:category/:identity", s.routers.GetPhoto)
			photoGroup.GET("/:category/:identity/thumbnail", s.routers.Thumbnail)
			photoGroup.GET("/:category/:identity/view", s.routers.FullView)
			photoGroup.POST("/:category/:identity/comments", s.routers.AddComment)

			photoGroup.POST("/upload", s.routers.UploadPhotos, s.adminOnlyMiddleware)
			photoGroup.DELETE("/:category/:identity", s.routers.DeletePhoto, s.adminOnlyMiddleware)
			photoGroup.PUT("/:category/:identity/metadata", s.routers.UpdateMetadata, s.adminOnlyMiddleware)
			photoGroup.POST("/:category/:identity/rescan-exif", s.routers.RescanExif, s.adminOnlyMiddleware)
		}

		settingsGroup := api.Group("/settings")
		{
			settingsGroup.GET("/profile", s.routers.GetProfile)
			settingsGroup.GET("/sns", s.routers.GetSNSLinks)
			settingsGroup.GET("/site", s.routers.GetSiteSettings)

			settingsGroup.PUT("/profile", s.routers.UpdateProfile, s.adminOnlyMiddleware)
			settingsGroup.PUT("/sns", s.routers.UpdateSNSLinks, s.adminOnlyMiddleware)
			settingsGroup.PUT("/site", s.routers.UpdateSiteSettings, s.adminOnlyMiddleware)
		}
	}
}
