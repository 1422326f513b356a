package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/onair/internal/clock"
	"github.com/Nixie-Tech-LLC/onair/internal/config"
	"github.com/Nixie-Tech-LLC/onair/internal/db"
	playerapi "github.com/Nixie-Tech-LLC/onair/internal/http/api/player/endpoints"
	"github.com/Nixie-Tech-LLC/onair/internal/http/middleware"
	"github.com/Nixie-Tech-LLC/onair/internal/mqtt"
	"github.com/Nixie-Tech-LLC/onair/internal/onair"
	"github.com/Nixie-Tech-LLC/onair/internal/redis"
	"github.com/Nixie-Tech-LLC/onair/internal/station"
)

const (
	redisConnectTimeout = 5 * time.Second
	shutdownTimeout     = 10 * time.Second
)

func main() {
	cfg := LoadEnvironment()
	setupLogging(cfg.LogLevel, cfg.Development())
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	// initialize PostgreSQL
	if err := db.Init(cfg.DatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("db init")
	}
	defer db.Close()

	// run pending migrations
	if err := db.RunMigrations(db.DB, cfg.MigrationsPath); err != nil {
		log.Fatal().Err(err).Msg("db migrate")
	}
	store := db.NewStore(db.DB)

	if cfg.StationFile != "" {
		f, err := config.LoadStationFile(cfg.StationFile, uuid.NewString)
		if err != nil {
			log.Fatal().Err(err).Str("file", cfg.StationFile).Msg("station seed")
		}
		if _, err := station.Seed(store, f); err != nil {
			log.Fatal().Err(err).Msg("station seed")
		}
	}

	resolver := clock.NewResolver(clock.SystemClock{},
		clock.WithHostLocation(time.Local),
		clock.WithVerbose(cfg.Development()),
	)
	svc := station.NewService(store, resolver, cfg.IncomingWindow)

	var (
		pollerOpts  []onair.Option
		cache       playerapi.SnapshotReader
		broadcaster *mqtt.Broadcaster
	)
	if cfg.RedisAddress != "" {
		ctx, cancel := context.WithTimeout(context.Background(), redisConnectTimeout)
		if err := redis.InitRedis(ctx, cfg.RedisAddress, cfg.RedisUsername, cfg.RedisPassword); err != nil {
			log.Error().Err(err).Msg("redis unavailable, serving snapshots live")
		} else {
			snapshots := redis.NewSnapshotCache(redis.Rdb, cfg.TopicPrefix)
			cache = snapshots
			pollerOpts = append(pollerOpts, onair.WithCache(snapshots))
		}
		cancel()
	}
	if cfg.MQTTBrokerURL != "" {
		b, err := mqtt.Connect(cfg.MQTTBrokerURL, cfg.MQTTClientID, cfg.TopicPrefix)
		if err != nil {
			log.Error().Err(err).Msg("mqtt unavailable, on-air changes will not be pushed")
		} else {
			broadcaster = b
			pollerOpts = append(pollerOpts, onair.WithPublisher(b))
			log.Info().Str("topic", b.Topic()).Msg("publishing on-air snapshots")
		}
	}

	poller := onair.NewPoller(svc, pollerOpts...)
	if err := poller.Start(); err != nil {
		log.Fatal().Err(err).Msg("poller start")
	}

	// set up gin router
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger())
	RegisterRoutes(r, cfg, store, InitStorage(cfg), LoadTemplates(cfg.TemplatesPath), svc, resolver, poller, cache)

	srv := &http.Server{
		Addr:              cfg.ServerAddress,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Info().Str("address", cfg.ServerAddress).Msg("listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info().Str("signal", sig.String()).Msg("shutting down")

	poller.Stop()
	if broadcaster != nil {
		broadcaster.Close()
	}
	redis.Close()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}
}
