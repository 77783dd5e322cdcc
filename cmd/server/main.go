package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jmoiron/sqlx"
	"github.com/juju/clock"
	"github.com/sirupsen/logrus"

	"github.com/iliyamo/booking-directory/internal/config"
	"github.com/iliyamo/booking-directory/internal/database"
	"github.com/iliyamo/booking-directory/internal/handler"
	"github.com/iliyamo/booking-directory/internal/log"
	"github.com/iliyamo/booking-directory/internal/queue"
	"github.com/iliyamo/booking-directory/internal/router"
	"github.com/iliyamo/booking-directory/internal/server"
	"github.com/iliyamo/booking-directory/internal/service"
)

func main() {
	if err := run(); err != nil {
		logrus.WithError(err).Fatal("failed to run")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := log.Init(cfg.LogLevel, cfg.LogFormat); err != nil {
		return err
	}
	policy, err := service.ParseIntegrityPolicy(cfg.IntegrityPolicy)
	if err != nil {
		return err
	}

	db, err := openDB(cfg)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := database.Migrate(ctx, db); err != nil {
		return fmt.Errorf("migrating schema: %w", err)
	}

	var (
		events  service.EventPublisher
		workers []server.Runner
	)
	if cfg.EventsEnabled {
		events = queue.NewPublisher(cfg.AMQPURL)
		workers = append(workers, queue.NewActivityConsumer(cfg.AMQPURL, cfg.ActivityLogPath))
	}

	h := handler.NewDirectoryHandler(
		service.NewDirectory(db, clock.WallClock, policy),
		service.NewMutations(db, events),
	)

	rdb := config.NewRedisClient(config.LoadRedisConfig())
	if rdb != nil {
		defer rdb.Close()
	}

	e := router.New()
	router.RegisterRoutes(e, db)
	router.RegisterDirectory(e, h, rdb, config.LoadCacheConfig(), config.LoadRateLimitConfig())

	logrus.WithFields(logrus.Fields{
		"env":       cfg.Env,
		"db_driver": cfg.DBDriver,
		"integrity": policy.String(),
		"events":    cfg.EventsEnabled,
	}).Info("booking directory starting")

	return server.New(e, ":"+cfg.Port, workers...).Run(ctx)
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	if cfg.DBDriver == "sqlite" {
		return database.OpenSQLite(cfg.SQLitePath)
	}
	return database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
}
