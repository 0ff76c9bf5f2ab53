package main

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"
	"golang.org/x/crypto/acme/autocert"

	"github.com/padraicbc/scorecard/charts"
	"github.com/padraicbc/scorecard/config"
	"github.com/padraicbc/scorecard/db"
	"github.com/padraicbc/scorecard/handlers"
	applog "github.com/padraicbc/scorecard/logger"
	"github.com/padraicbc/scorecard/metrics"
	mw "github.com/padraicbc/scorecard/middleware"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	logger, err := applog.New(cfg.Debug)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	bdb, created, err := db.Setup(cfg)
	if err != nil {
		logger.Fatal("open database failed", zap.String("path", cfg.DBPath), zap.Error(err))
	}
	defer bdb.Close()

	seeded, err := db.Bootstrap(context.Background(), bdb, created)
	if err != nil {
		logger.Fatal("bootstrap failed", zap.Error(err))
	}
	if seeded {
		logger.Info("database initialized with sample data", zap.String("path", cfg.DBPath))
	}

	h := handlers.New(bdb, metrics.New(), logger, charts.Options{
		Width:  cfg.ChartWidth,
		Height: cfg.ChartHeight,
	}, seeded)

	e := echo.New()
	e.HideBanner = true
	e.Use(mw.RequestID())
	e.Use(mw.RequestLogger(logger))
	e.Use(echomw.Recover())
	h.Register(e)

	if cfg.Debug {
		logger.Info("starting server", zap.String("mode", "debug"), zap.String("addr", cfg.Port))
		if err := e.Start(cfg.Port); err != nil && err != http.ErrServerClosed {
			logger.Fatal("server exited", zap.Error(err))
		}
		return
	}

	if len(cfg.TLSDomains) == 0 {
		logger.Fatal("TLS_DOMAINS must be set unless DEBUG is enabled")
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
