package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v3"

	"github.com/ranki5/ranki5-go/internal/config"
	"github.com/ranki5/ranki5-go/internal/db"
	"github.com/ranki5/ranki5-go/internal/handler"
	"github.com/ranki5/ranki5-go/internal/middleware"
	"github.com/ranki5/ranki5-go/internal/repository"
	"github.com/ranki5/ranki5-go/internal/router"
	"github.com/ranki5/ranki5-go/internal/service"
	"github.com/ranki5/ranki5-go/internal/youtube"
)

func main() {
	cfg := config.Load()
	middleware.InitLogger(cfg.LogLevel, "ranki5-api")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := db.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}
	defer pool.Close()

	if err := db.EnsureSchema(ctx, pool); err != nil {
		log.Fatalf("failed to ensure schema: %v", err)
	}

	cache := service.NewCacheService(cfg.RedisURL)
	defer cache.Close()

	yt := youtube.NewClient(cfg.YouTubeAPIKey, cfg.YouTubeBaseURL)
	if !yt.Enabled() {
		log.Println("youtube: no API key configured, submissions will store placeholders")
	}

	channelRepo := repository.NewChannelRepo(pool)
	voteRepo := repository.NewVoteRepo(pool)
	userRepo := repository.NewUserRepo(pool)

	authSvc := service.NewAuthService(userRepo, cfg.JWTSecret, cfg.TokenTTL)
	channelSvc := service.NewChannelService(channelRepo, cache)
	submitSvc := service.NewSubmitService(channelRepo, yt, cache)
	voteSvc := service.NewVoteService(voteRepo, channelRepo, cache)
	refreshSvc := service.NewRefreshService(channelRepo, yt, cache)

	statsWorker := service.NewStatsWorker(channelRepo, cfg.SnapshotEvery)
	go statsWorker.Start(ctx)
	defer statsWorker.Stop()

	handler.InitMetrics(pool)

	app := fiber.New(fiber.Config{
		AppName:      "Ranki5 API",
		ServerHeader: "Ranki5",
	})

	router.Setup(app, &router.Handlers{
		Channel: handler.NewChannelHandler(channelSvc),
		Submit:  handler.NewSubmitHandler(submitSvc),
		Vote:    handler.NewVoteHandler(voteSvc),
		Auth:    handler.NewAuthHandler(authSvc),
		Stats:   handler.NewStatsHandler(channelSvc),
		Admin:   handler.NewAdminHandler(refreshSvc),
		Health:  handler.NewHealthHandler(pool, cache.Client()),
	}, authSvc, cfg.CORSOrigins)

	go func() {
		<-ctx.Done()
		log.Println("shutting down")
		_ = app.Shutdown()
	}()

	log.Printf("Ranki5 Go backend starting on :%s (env=%s)", cfg.Port, cfg.Environment)
	if err := app.Listen(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
