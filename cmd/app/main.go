package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Domenick1991/cardoctor/api"
	"github.com/Domenick1991/cardoctor/config"
	"github.com/Domenick1991/cardoctor/internal/bootstrap"
	"github.com/Domenick1991/cardoctor/internal/cache"
	"github.com/Domenick1991/cardoctor/internal/kafka"
	"github.com/Domenick1991/cardoctor/internal/logger"
	"github.com/Domenick1991/cardoctor/internal/metrics"
	"github.com/Domenick1991/cardoctor/internal/repository"
	"github.com/Domenick1991/cardoctor/internal/service/catalog"
	"github.com/Domenick1991/cardoctor/internal/service/checkout"
	"github.com/Domenick1991/cardoctor/internal/session"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	lg := logger.New(cfg.Log)
	slog.SetDefault(lg)
	gin.SetMode(gin.ReleaseMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.Database.DSN())
	if err != nil {
		log.Fatalf("connect postgres: %v", err)
	}
	defer pool.Close()

	if err := repository.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	m := metrics.New()

	var servicesCache catalog.Cache
	if cfg.Redis.Addr != "" {
		redisCache := cache.NewRedisCache(cfg.Redis, time.Duration(cfg.Catalog.CacheTTLSeconds)*time.Second)
		defer redisCache.Close()
		if err := redisCache.Ping(ctx); err != nil {
			lg.Warn("redis unavailable, catalog reads fall back to postgres", slog.Any("error", err))
		}
		servicesCache = redisCache
	}

	var producer checkout.Producer
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaProducer := kafka.NewProducer(cfg.Kafka.Brokers, lg)
		defer kafkaProducer.Close()
		if err := kafkaProducer.CheckConnection(ctx); err != nil {
			lg.Warn("kafka unavailable, checkout events may be lost", slog.Any("error", err))
		}
		producer = kafkaProducer
	}

	catalogService := catalog.NewCatalogService(
		repository.NewServiceRepository(pool),
		servicesCache,
		catalog.WithLookupRecorder(m),
		catalog.WithLogger(lg),
	)
	checkoutService := checkout.NewCheckoutService(
		repository.NewCheckoutRepository(pool),
		producer,
		cfg.Kafka.CheckoutTopic,
		checkout.WithNotificationsTopic(cfg.Kafka.NotificationsTopic),
		checkout.WithPublishFailureRecorder(m),
		checkout.WithLogger(lg),
	)

	codec, err := session.NewCodec([]byte(cfg.Session.Secret), time.Duration(cfg.Session.TTLMinutes)*time.Minute)
	if err != nil {
		log.Fatalf("session codec: %v", err)
	}
	lg.Info("session codec ready", slog.Duration("ttl", codec.TTL()))

	router := api.NewRouter(api.RouterConfig{
		TrustedOrigin:         cfg.HTTP.TrustedOrigin,
		Cookie:                cookieOptions(cfg.Session),
		RequireOwnerFilter:    cfg.Security.RequireOwnerFilter,
		ProtectCheckoutWrites: cfg.Security.ProtectCheckoutWrites,
		SwaggerEnabled:        cfg.HTTP.SwaggerEnabled,
	}, api.Deps{
		Catalog:   catalogService,
		Checkouts: checkoutService,
		Codec:     codec,
		Metrics:   m,
		Logger:    lg,
	})

	if err := bootstrap.Run(ctx, cfg, router, lg); err != nil {
		log.Fatalf("server error: %v", err)
	}
}

// cookieOptions keeps SameSite=None for the cross-site front end. Browsers
// refuse SameSite=None without Secure, so local plain-http runs use Lax.
func cookieOptions(cfg config.SessionConfig) session.CookieOptions {
	opts := session.DefaultCookieOptions()
	opts.Name = cfg.CookieName
	opts.Domain = cfg.CookieDomain
	if cfg.InsecureCookie {
		opts.Secure = false
		opts.SameSite = http.SameSiteLaxMode
	}
	return opts
}
