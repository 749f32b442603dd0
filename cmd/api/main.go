package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"leaguehub/config"
	"leaguehub/internal/domain/activity"
	"leaguehub/internal/domain/league"
	"leaguehub/internal/domain/member"
	domainoutbox "leaguehub/internal/domain/outbox"
	"leaguehub/internal/domain/player"
	"leaguehub/internal/domain/rating"
	"leaguehub/internal/events"
	"leaguehub/internal/guild"
	"leaguehub/internal/handler"
	"leaguehub/internal/outbox"
	"leaguehub/internal/repository"
	"leaguehub/internal/services"
	"leaguehub/internal/validation"
	"leaguehub/pkg/database"
	"leaguehub/pkg/logger"
)

func main() {
	cfg := config.LoadConfig()

	mode := logger.DevelopmentMode
	if cfg.AppMode == gin.ReleaseMode {
		mode = logger.ProductionMode
		gin.SetMode(gin.ReleaseMode)
	}
	log := logger.New(mode)
	defer log.Sync()

	db, err := database.Connect(cfg)
	if err != nil {
		log.Errorf("connect to database: %v", err)
		os.Exit(1)
	}

	if err := db.AutoMigrate(
		&league.League{},
		&player.Player{},
		&player.Tracker{},
		&member.LeagueMember{},
		&activity.Entry{},
		&rating.LeagueRating{},
		&domainoutbox.OutboxEvent{},
	); err != nil {
		log.Errorf("run migrations: %v", err)
		os.Exit(1)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", cfg.RedisHost, cfg.RedisPort),
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		log.Errorf("connect to redis: %v", err)
		os.Exit(1)
	}

	outboxRepo := repository.NewOutboxRepository(db)
	leagueRepo := repository.NewLeagueRepository(db)
	memberRepo := repository.NewMemberRepository(db)
	playerRepo := repository.NewPlayerRepository(db)
	activityRepo := repository.NewActivityRepository(db)
	ratingRepo := repository.NewRatingRepository(db)

	guildChecker := guild.NewRedisMembershipChecker(redisClient)
	validator := validation.NewJoinValidator(leagueRepo, playerRepo, memberRepo, guildChecker)
	writer := outbox.NewWriter(outboxRepo)

	membershipService := services.NewMembershipService(
		repository.NewTxRunner(db),
		memberRepo,
		playerRepo,
		leagueRepo,
		activityRepo,
		ratingRepo,
		writer,
		validator,
		log,
	)

	publisher := events.NewRedisPublisher(redisClient)
	dispatcher := outbox.NewDispatcher(outboxRepo, outbox.NewPublishRouter(publisher, log), log, outbox.Options{
		Interval:     time.Duration(cfg.OutboxPollIntervalMs) * time.Millisecond,
		BatchSize:    cfg.OutboxBatchSize,
		MaxRetries:   cfg.OutboxMaxRetries,
		DrainTimeout: time.Duration(cfg.OutboxDrainTimeoutMs) * time.Millisecond,
	})
	dispatcher.Start()

	router := handler.NewRouter(
		cfg.JWTSecret,
		handler.NewLeagueHandler(leagueRepo, log),
		handler.NewMemberHandler(membershipService, memberRepo, log),
		handler.NewOutboxHandler(outboxRepo, log),
	)

	server := &http.Server{
		Addr:    ":" + cfg.AppPort,
		Handler: router,
	}

	go func() {
		log.Infof("listening on :%s", cfg.AppPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Errorf("http server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Infof("shutting down")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Errorf("http shutdown: %v", err)
	}

	// Stop the dispatcher after the HTTP layer so requests committed during
	// shutdown still get a final dispatch pass.
	dispatcher.Stop()

	if err := redisClient.Close(); err != nil {
		log.Errorf("close redis: %v", err)
	}

	log.Infof("bye")
}
