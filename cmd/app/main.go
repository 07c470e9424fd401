package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"sorteios-backend/internal/common/cache"
	"sorteios-backend/internal/common/config"
	"sorteios-backend/internal/common/logger"
	"sorteios-backend/internal/common/middleware"
	directoryhttp "sorteios-backend/internal/features/directory/delivery/http"
	directoryservice "sorteios-backend/internal/features/directory/service"
	sorteiohttp "sorteios-backend/internal/features/sorteio/delivery/http"
	redisrepo "sorteios-backend/internal/features/sorteio/repository/redis"
	sorteioservice "sorteios-backend/internal/features/sorteio/service"
	"sorteios-backend/internal/platform/discord"
	redisplatform "sorteios-backend/internal/platform/redis"
)

// @title           Sorteios API
// @version         1.0
// @description     API server for managing guild giveaways and their announcement messages.

// @host      localhost:8080
// @BasePath  /

// @tag.name sorteios
// @tag.description Sorteio management - drafts, publishing, participants and verification

// @tag.name directory
// @tag.description Guild directory - channels and roles for the editor forms

func main() {
	cfg := config.Load()
	logger.Init("sorteios-backend", cfg.Debug)

	logger.Info().
		Str("version", "1.0.0").
		Bool("debug", cfg.Debug).
		Msg("starting sorteios backend")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	redisClient, err := redisplatform.Open(ctx, cfg)
	cancel()
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to redis")
	}
	defer redisClient.Close()

	cacheService := cache.NewCacheService(redisClient)
	discordClient := discord.NewClient(cfg.Platform.BotToken, cfg.Platform.APIBase, cfg.Platform.Timeout)

	sorteioRepository := redisrepo.NewRedisSorteioRepository(redisClient)
	directorySvc := directoryservice.NewDirectoryService(discordClient, cacheService, cfg.Directory.CacheTTL)
	sorteioSvc := sorteioservice.NewSorteioService(sorteioRepository, discordClient, directorySvc)

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(middleware.RequestID())
	router.Use(middleware.Recovery())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Server.Origin}
	corsConfig.AllowMethods = []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Content-Type", "Accept"}
	corsConfig.AllowCredentials = true
	router.Use(cors.New(corsConfig))

	api := router.Group("/")
	api.Use(middleware.Session(redisClient, cfg.Session.CookieName))

	sorteiohttp.NewSorteioHandler(sorteioSvc).RegisterRoutes(api)
	directoryhttp.NewDirectoryHandler(directorySvc).RegisterRoutes(api)

	setupHealth(router, redisClient)

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Int("port", cfg.Server.Port).Msg("starting http server")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server exited")
}

func setupHealth(router *gin.Engine, redisClient *redis.Client) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"timestamp": time.Now().UTC(),
			"service":   "sorteios-backend",
		})
	})

	router.GET("/live", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	router.GET("/ready", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := redisClient.Ping(ctx).Err(); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"status":  "unready",
				"error":   "redis unavailable",
				"details": err.Error(),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "ready",
			"timestamp": time.Now().UTC(),
			"service":   "sorteios-backend",
		})
	})
}
