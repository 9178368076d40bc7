package main

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog/log"

	"github.com/eventgallery/gateway/internal/config"
	"github.com/eventgallery/gateway/internal/gallery"
	"github.com/eventgallery/gateway/internal/handlers"
	"github.com/eventgallery/gateway/internal/index"
	"github.com/eventgallery/gateway/internal/logger"
	custommw "github.com/eventgallery/gateway/internal/middleware"
	"github.com/eventgallery/gateway/internal/storage"
)

func main() {
	logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("invalid configuration")
	}

	store, err := storage.NewClient(storage.Options{
		Endpoint:  cfg.Endpoint,
		Region:    cfg.Region,
		Bucket:    cfg.Bucket,
		AccessKey: cfg.AccessKey,
		SecretKey: cfg.SecretKey,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to create object store client")
	}
	probeStore(store, cfg.Bucket)

	var idx index.Index = index.Noop{}
	if cfg.DatabaseURL != "" {
		pg, err := index.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect image index database")
		}
		defer func() { _ = pg.Close() }()
		idx = pg
		log.Info().Msg("image index enabled")
	}

	if cfg.AdminToken == "" {
		log.Warn().Msg("ADMIN_API_TOKEN not set; admin routes are unprotected")
	}

	svc := gallery.NewService(store, idx, cfg.PublicBaseURL)
	e := newServer(svc, cfg)

	log.Info().Str("port", cfg.Port).Msg("gallery gateway listening")
	if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
		log.Fatal().Err(err).Msg("server stopped")
	}
}

func newServer(svc handlers.GalleryService, cfg config.Config) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogStatus: true,
		LogMethod: true,
		LogURI:    true,
		LogError:  true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			log.Info().
				Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Err(v.Error).
				Msg("request")
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(custommw.SecurityHeaders())
	e.Use(custommw.CORS(cfg.AllowedOrigins))

	foldersHandler := handlers.NewFoldersHandler(svc)
	imagesHandler := handlers.NewImagesHandler(svc)
	uploadHandler := handlers.NewUploadHandler(svc)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "OK")
	})

	// Public reads
	e.GET("/api/folders", foldersHandler.List)
	e.GET("/api/images", imagesHandler.List)
	e.GET("/api/images/download", imagesHandler.Download)
	e.POST("/upload", uploadHandler.Upload)

	// Admin mutations
	admin := e.Group("", custommw.RequireToken(cfg.AdminToken))
	admin.POST("/api/folders", foldersHandler.Create)
	admin.PUT("/api/folders/:id", foldersHandler.Rename)
	admin.DELETE("/api/folders/:id", foldersHandler.Delete)
	admin.DELETE("/api/images", imagesHandler.Delete)

	return e
}

// probeStore checks bucket reachability at startup. A failure is logged,
// not fatal; the store may come up after the gateway does.
func probeStore(store storage.ObjectStore, bucket string) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if _, err := store.List(ctx, storage.ListOptions{Recursive: true, MaxKeys: 1}); err != nil {
		log.Warn().Err(err).Str("bucket", bucket).Msg("object store connection check failed")
		return
	}
	log.Info().Str("bucket", bucket).Msg("connected to object store")
}
