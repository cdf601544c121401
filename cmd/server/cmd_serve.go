package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"github.com/Skotchmaster/flogin/internal/cache"
	"github.com/Skotchmaster/flogin/internal/es"
	"github.com/Skotchmaster/flogin/internal/httpserver"
	"github.com/Skotchmaster/flogin/internal/mykafka"
	"github.com/Skotchmaster/flogin/internal/repo"
	"github.com/Skotchmaster/flogin/internal/service"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, logger, db, err := boot()
	if err != nil {
		return err
	}
	defer closeDB(db, logger)

	repo := &repo.GormRepo{DB: db}
	if err := seedAdmin(cfg, logger, repo); err != nil {
		return err
	}

	catalog := &service.CatalogService{Repo: repo}
	catalogHTTP := &httpserver.CatalogHTTP{Svc: catalog}

	if cfg.RedisAddr != "" {
		ctx, cancel := context.WithTimeout(context.Background(), bootTimeout)
		rdb, err := cache.Connect(ctx, cfg.RedisAddr, cfg.RedisPassword)
		cancel()
		if err != nil {
			return err
		}
		defer closeRedis(rdb, logger)

		catalog.Repo = &cache.ProductStore{ProductStore: repo, RDB: rdb, TTL: cfg.CacheTTL}
		logger.Info("product cache enabled", "addr", cfg.RedisAddr, "ttl", cfg.CacheTTL)
	}

	if len(cfg.KafkaBrokers) > 0 {
		producer, err := mykafka.NewProducer(cfg.KafkaBrokers)
		if err != nil {
			return err
		}
		defer func() {
			if err := producer.Close(); err != nil {
				logger.Error("kafka close", "error", err)
			}
		}()

		catalog.Notifiers = append(catalog.Notifiers, &mykafka.ProductEvents{Producer: producer, Topic: cfg.KafkaTopic})
		logger.Info("product events enabled", "topic", cfg.KafkaTopic)
	}

	if cfg.ESURL != "" {
		client, err := es.NewClient(cfg, logger)
		if err != nil {
			return err
		}
		index := &es.Index{Client: client, Name: cfg.ESIndex}
		catalog.Notifiers = append(catalog.Notifiers, index)
		catalogHTTP.Search = index
	}

	e := httpserver.New(&httpserver.Deps{
		Logger:         logger,
		AuthHandler:    &httpserver.AuthHTTP{Svc: &service.AuthService{Users: repo}},
		CatalogHandler: catalogHTTP,
		HealthHandler:  &httpserver.HealthHTTP{DB: db},
		AllowedOrigin:  cfg.AllowedOrigin,
		LoginRateLimit: cfg.LoginRateLimit,
	})

	srv := &http.Server{
		Addr:              ":" + strconv.Itoa(cfg.ServerPort),
		Handler:           e,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      15 * time.Second,
		ReadHeaderTimeout: 3 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case <-stop:
	}

	logger.Info("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server shutdown", "error", err)
	}

	logger.Info("stopped")
	return nil
}

func closeRedis(rdb *redis.Client, logger *slog.Logger) {
	if err := rdb.Close(); err != nil {
		logger.Error("redis close", "error", err)
	}
}
