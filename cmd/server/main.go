package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v9"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/KingDev1404/freshbulk/internal/config"
	"github.com/KingDev1404/freshbulk/internal/database"
	"github.com/KingDev1404/freshbulk/internal/es"
	"github.com/KingDev1404/freshbulk/internal/httpserver"
	"github.com/KingDev1404/freshbulk/internal/logging"
	authmw "github.com/KingDev1404/freshbulk/internal/middleware/auth"
	loggingmw "github.com/KingDev1404/freshbulk/internal/middleware/logging"
	"github.com/KingDev1404/freshbulk/internal/mykafka"
	"github.com/KingDev1404/freshbulk/internal/repo"
	"github.com/KingDev1404/freshbulk/internal/service"
)

func main() {
	cfg := config.MustLoad()

	logger := logging.New(cfg.LogLevel).With("service", cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	db, err := database.Open(ctx, cfg.DatabaseURL)
	cancel()
	if err != nil {
		log.Fatalf("db open: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("db migrate: %v", err)
	}

	producer := mykafka.NewProducer(cfg.KafkaBrokers)
	if producer == nil {
		logger.Warn("kafka brokers not configured, events disabled")
	}

	var esClient *elasticsearch.Client
	if cfg.ESURL != "" {
		esClient, err = es.NewClient(cfg)
		if err != nil {
			log.Fatalf("elasticsearch: %v", err)
		}
	} else {
		logger.Warn("ES_URL not configured, search disabled")
	}

	r := repo.New(db)
	catalogSvc := &service.CatalogService{Repo: r}
	orderSvc := &service.OrderService{Repo: r}
	authSvc := &service.AuthService{
		Repo:          r,
		JWTSecret:     cfg.JWTAccessSecret,
		RefreshSecret: cfg.JWTRefreshSecret,
	}

	e := echo.New()
	e.Pre(echomw.RemoveTrailingSlash())
	e.Use(echomw.Recover())
	e.Use(echomw.RequestIDWithConfig(echomw.RequestIDConfig{Generator: uuid.NewString}))
	e.Use(loggingmw.RequestLogger(logger))
	e.Use(echomw.CORS())

	httpserver.Register(e, &httpserver.Deps{
		AuthHandler:    &httpserver.AuthHTTP{Svc: authSvc, Producer: producer},
		ProductHandler: &httpserver.ProductHTTP{Svc: catalogSvc, Producer: producer, ES: esClient, Index: cfg.ESIndex},
		OrderHandler:   &httpserver.OrderHTTP{Svc: orderSvc, Producer: producer},
		SearchHandler:  &httpserver.SearchHTTP{ES: esClient, Index: cfg.ESIndex},
		AuthMW:         authmw.New(cfg.JWTAccessSecret),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("listen: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	logger.Info("shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	if sqlDB, err := db.DB(); err == nil {
		if err := sqlDB.Close(); err != nil {
			logger.Error("db close", "error", err)
		}
	}

	if err := producer.Close(); err != nil {
		logger.Error("kafka close", "error", err)
	}

	logger.Info("shutdown complete")
}
