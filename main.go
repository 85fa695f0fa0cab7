package main

import (
	"context"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/umaplan/catalog"
	"github.com/padraicbc/umaplan/config"
	"github.com/padraicbc/umaplan/db"
	"github.com/padraicbc/umaplan/handlers"
	applog "github.com/padraicbc/umaplan/logger"
	"github.com/padraicbc/umaplan/planner"
	"github.com/padraicbc/umaplan/store"
)

func main() {
	cfg := config.Load()
	logger, err := applog.New(cfg.Debug, cfg.LogFile)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	ctx := context.Background()

	// users always live in postgres; plans go wherever STORE_DRIVER points
	bdb := db.Setup(cfg.Store, cfg.Debug)
	defer bdb.Close()

	if err := db.CreateTables(ctx, bdb); err != nil {
		logger.Fatal("create tables failed", zap.Error(err))
	}

	var plans store.Provider
	if cfg.Store.Driver == store.DriverPostgres {
		plans = store.NewPostgres(bdb, false)
	} else {
		plans, err = store.Open(ctx, cfg.Store, cfg.Debug, logger)
		if err != nil {
			logger.Fatal("open plan store failed", zap.Error(err))
		}
	}
	defer plans.Close()

	races := catalog.NewFile(cfg.RacesFile, logger)
	if n := len(races.LoadOrEmpty(ctx)); n == 0 {
		logger.Warn("race catalog is empty", zap.String("path", cfg.RacesFile))
	} else {
		logger.Info("race catalog loaded", zap.String("path", cfg.RacesFile), zap.Int("races", n))
	}

	h := handlers.New(db.NewUsers(bdb), races, plans, handlers.Options{
		JWTKey:    cfg.JWTKey(),
		PublicURL: cfg.PublicURL,
		Timeline:  planner.TimelineOptions{IncludePreDebutSlots: cfg.IncludePreDebutSlots},
		Logger:    logger,
	})

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(echomw.RequestLoggerWithConfig(echomw.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogError:     true,
		LogRequestID: true,
		LogLatency:   true,
		LogValuesFunc: func(c echo.Context, v echomw.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.Int("status", v.Status),
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.String("request_id", v.RequestID),
				zap.Duration("latency", v.Latency),
			}
			if v.Error != nil {
				fields = append(fields, zap.Error(v.Error))
			}
			switch {
			case v.Status >= 500:
				logger.Error("http request", fields...)
			case v.Status >= 400:
				logger.Warn("http request", fields...)
			default:
				logger.Info("http request", fields...)
			}
			return nil
		},
	}))
	e.Use(echomw.Recover())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{"*", "Authorization"},
		AllowCredentials: true,
	}))

	h.Register(e)

	if cfg.StaticDir != "" {
		serveFrontend(e, cfg.StaticDir)
	}

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	autoTLS := &autocert.Manager{
		Prompt:     autocert.AcceptTOS,
		Cache:      autocert.DirCache(".cache"),
		HostPolicy: autocert.HostWhitelist(cfg.TLSDomains...),
	}

	s := &http.Server{
		Addr:         ":443",
		Handler:      e,
		TLSConfig:    autoTLS.TLSConfig(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  15 * time.Second,
	}

	logger.Info("starting server", zap.String("mode", "tls"), zap.Strings("domains", cfg.TLSDomains))
	if err := s.ListenAndServeTLS("", ""); err != http.ErrServerClosed {
		logger.Error("tls server exited", zap.Error(err))
		os.Exit(1)
	}
}

// serveFrontend serves a built single-page app from dir, falling back to
// index.html for client-side routes.
func serveFrontend(e *echo.Echo, dir string) {
	fileServer := http.FileServer(http.Dir(dir))
	e.GET("/*", func(c echo.Context) error {
		path := c.Request().URL.Path

		// If request is for a static file, serve it
		if strings.Contains(path, ".") {
			fileServer.ServeHTTP(c.Response(), c.Request())
			return nil
		}
		return c.File(filepath.Join(dir, "index.html"))
	})
}
