package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	myPostgres "github.com/mkravets/accounts/internal/adapters/db/postgres"
	myRedis "github.com/mkravets/accounts/internal/adapters/db/redis"
	authsvc "github.com/mkravets/accounts/internal/auth/service"
	"github.com/mkravets/accounts/internal/infra/config"
	lg "github.com/mkravets/accounts/internal/infra/log"
	"github.com/mkravets/accounts/internal/infra/migrate"
	"github.com/mkravets/accounts/internal/infra/server"
	"github.com/mkravets/accounts/internal/token"
	transport "github.com/mkravets/accounts/internal/transport/http"
	"github.com/mkravets/accounts/internal/transport/http/middleware"
)

const serviceName = "auth-service"

func main() {
	zapLog := lg.Must(os.Getenv("LOG_LEVEL"))
	defer zapLog.Sync()

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("failed to load config", zap.Error(err))
	}
	if cfg.RefreshTokenSecret == "" {
		zapLog.Fatal("REFRESH_TOKEN_SECRET is required")
	}
	if cfg.RedisAddress == "" {
		zapLog.Fatal("REDIS_ADDRESS is required")
	}

	db, err := gorm.Open(postgres.Open(cfg.DatabaseURL), &gorm.Config{})
	if err != nil {
		zapLog.Fatal("failed to connect to database", zap.Error(err))
	}
	sqlDB, err := db.DB()
	if err != nil {
		zapLog.Fatal("db handle", zap.Error(err))
	}
	defer sqlDB.Close()
	if err := migrate.Up(sqlDB); err != nil {
		zapLog.Fatal("run migrations", zap.Error(err))
	}

	redisCli := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddress,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	defer redisCli.Close()

	codec := token.NewCodec([]byte(cfg.AccessTokenSecret), []byte(cfg.RefreshTokenSecret), cfg.JWTIssuer)
	issuer := token.NewIssuer(codec, cfg.AccessTokenTTL, cfg.RefreshTokenTTL)

	svc := authsvc.New(
		myPostgres.NewUserRepo(db),
		myRedis.NewSessionStore(redisCli),
		codec,
		issuer,
		cfg.PasswordPepper,
		validator.New(),
	)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(zapLog))
	router.Use(middleware.NewMetrics(serviceName, prometheus.DefaultRegisterer).Handler())
	router.Use(middleware.RateLimitPerIP(50, 100, 10_000, time.Hour))

	if len(cfg.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
			ExposeHeaders:    []string{"Content-Length"},
			AllowCredentials: cfg.AllowCredentials,
			MaxAge:           12 * time.Hour,
		}))
	}

	transport.NewAuthHandler(svc, zapLog).RegisterRoutes(router)
	router.GET("/health", transport.Health(serviceName))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	rootCtx, cancel := context.WithCancel(context.Background())
	g, ctx := errgroup.WithContext(rootCtx)

	g.Go(func() error {
		return server.Run(ctx, cfg.HTTPAddress, router, zapLog)
	})

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
		zapLog.Info("shutdown signal received")
	case <-ctx.Done():
	}
	cancel()

	if err := g.Wait(); err != nil {
		zapLog.Error("server terminated", zap.Error(err))
	}
}
