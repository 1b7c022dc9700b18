package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/andreav/meeting-pulse/internal/api/insights"
	"github.com/andreav/meeting-pulse/internal/cache"
	"github.com/andreav/meeting-pulse/internal/config"
	"github.com/andreav/meeting-pulse/internal/repository"
	"github.com/andreav/meeting-pulse/internal/service/capacity"
	"github.com/andreav/meeting-pulse/internal/service/challenge"
	"github.com/andreav/meeting-pulse/internal/service/planner"
	"github.com/andreav/meeting-pulse/internal/service/scheduler"
	"github.com/andreav/meeting-pulse/internal/service/scoring"
	syncsvc "github.com/andreav/meeting-pulse/internal/service/sync"
	"github.com/andreav/meeting-pulse/pkg/logger"
)

func main() {
	configPath := flag.String("config", "", "path to config file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.Logging.Level, cfg.Logging.Format, cfg.Logging.Output)
	log := logger.Get()

	log.Info().
		Int("port", cfg.Server.Port).
		Str("environment", cfg.Server.Environment).
		Msg("Starting meeting-pulse server")

	db, err := repository.NewDB(&cfg.Database.Postgres, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	if err := db.AutoMigrate(); err != nil {
		log.Fatal().Err(err).Msg("Failed to run database migrations")
	}

	redisCache, err := cache.NewRedisCache(&cfg.Database.Redis, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to redis")
	}
	defer redisCache.Close()

	// Repositories
	userRepo := repository.NewUserRepository(db)
	meetingRepo := repository.NewMeetingRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	capacityRepo := repository.NewCapacityRepository(db)
	predictionRepo := repository.NewPredictionRepository(db)
	challengeRepo := repository.NewChallengeRepository(db)
	achievementRepo := repository.NewAchievementRepository(db)

	// Services
	workday := capacity.Workday{
		StandardHours:        cfg.Workday.StandardHours,
		ContextSwitchMinutes: cfg.Workday.ContextSwitchMinutes,
	}
	cacheTTL := time.Duration(cfg.Database.Redis.CacheTTL) * time.Second

	challengeService := challenge.NewService(
		challengeRepo, meetingRepo, achievementRepo,
		cfg.Challenge.TargetPercentage, cfg.Challenge.LookbackDays, log,
	)
	scoringService := scoring.NewService(meetingRepo, challengeService, log)
	plannerService := planner.NewService(
		meetingRepo, taskRepo, capacityRepo, predictionRepo,
		redisCache, cacheTTL, workday, log,
	)
	syncService := syncsvc.NewService(meetingRepo, taskRepo, userRepo, scoringService, cfg, log)

	// Scheduler
	schedulerService := scheduler.NewService(cfg, userRepo, plannerService, challengeService, log)
	if err := schedulerService.Start(); err != nil {
		log.Fatal().Err(err).Msg("Failed to start scheduler")
	}
	defer schedulerService.Stop()

	// HTTP server
	if cfg.Server.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	router.GET("/health", func(c *gin.Context) {
		if err := db.Health(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy", "error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.Metrics.Prometheus.Enabled {
		router.GET(cfg.Metrics.Prometheus.Path, gin.WrapH(promhttp.Handler()))
	}

	handler := insights.NewHandler(
		plannerService, challengeService, syncService,
		meetingRepo, challengeRepo, achievementRepo, log,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("HTTP server failed")
		}
	}()

	log.Info().Int("port", cfg.Server.Port).Msg("HTTP server listening")

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Forced shutdown")
	}
}
