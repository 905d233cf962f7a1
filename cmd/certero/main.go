package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/dropDatabas3/certero/internal/cache"
	"github.com/dropDatabas3/certero/internal/certs"
	"github.com/dropDatabas3/certero/internal/config"
	api "github.com/dropDatabas3/certero/internal/http"
	"github.com/dropDatabas3/certero/internal/http/controllers"
	"github.com/dropDatabas3/certero/internal/metrics"
	"github.com/dropDatabas3/certero/internal/notify"
	"github.com/dropDatabas3/certero/internal/observability/logger"
	"github.com/dropDatabas3/certero/internal/rate"
	"github.com/dropDatabas3/certero/internal/store/pg"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "certero:", err)
		os.Exit(1)
	}
}

func run() error {
	var cfgPath string
	flag.StringVar(&cfgPath, "config", envOr("CERTERO_CONFIG", ""), "ruta al YAML de configuración")
	flag.Parse()

	// .env es opcional, solo conveniencia de dev
	_ = godotenv.Load()

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	if err := cfg.Validate("server.addr", "storage.dsn"); err != nil {
		return err
	}

	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.App.LogLevel,
		ServiceName: "certero",
	})
	defer func() { _ = logger.Sync() }()
	log := logger.Named("main")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Storage
	store, err := pg.New(ctx, cfg.Storage.DSN, pg.Config{
		MaxConns:        cfg.Storage.Postgres.MaxConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
	if err != nil {
		return err
	}
	defer store.Close()
	if err := store.Migrate(ctx); err != nil {
		return err
	}
	log.Info("storage ready")

	// Cache
	cacheClient, err := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		Addr:       cfg.Cache.Redis.Addr,
		Password:   cfg.Cache.Redis.Password,
		DB:         cfg.Cache.Redis.DB,
		Prefix:     cfg.Cache.Redis.Prefix,
		DefaultTTL: cfg.MemoryCacheTTL(),
	})
	if err != nil {
		return err
	}
	defer func() { _ = cacheClient.Close() }()

	// Métricas
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	if err := metrics.Register(registry); err != nil {
		return err
	}

	service := certs.NewService(store, cacheClient)

	// Límite de keygen: redis si el deployment ya lo usa, memoria si no.
	var keygenLimiter rate.Limiter
	if cfg.Cache.Kind == "redis" {
		keygenLimiter = rate.NewRedisLimiter(redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		}), "certero:rl:", 30, time.Minute)
	} else {
		keygenLimiter = rate.NewMemoryLimiter(30, time.Minute)
	}

	router := api.NewRouter(api.RouterDeps{
		Certificates:  controllers.NewCertificatesController(service),
		Keys:          controllers.NewKeysController(service),
		KeygenLimiter: keygenLimiter,
		JWTSecret:     []byte(cfg.Auth.JWTSecret),
		JWTIssuer:     cfg.Auth.Issuer,
		Registry:      registry,
		Readyz: func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			if err := store.Pool().Ping(pingCtx); err != nil {
				return fmt.Errorf("storage: %w", err)
			}
			return cacheClient.Ping(pingCtx)
		},
	})

	srv := api.NewServer(cfg.Server.Addr, router)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("http server listening", logger.String("addr", cfg.Server.Addr))
		return srv.Start()
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if cfg.Notify.Enabled {
		if err := cfg.Validate("notify.smtp.host", "notify.smtp.from"); err != nil {
			return err
		}
		sender := notify.NewSMTPSender(
			cfg.Notify.SMTP.Host,
			cfg.Notify.SMTP.Port,
			cfg.Notify.SMTP.From,
			cfg.Notify.SMTP.User,
			cfg.Notify.SMTP.Pass,
		)
		if cfg.Notify.SMTP.TLSMode != "" {
			sender.TLSMode = cfg.Notify.SMTP.TLSMode
		}

		notifier := notify.NewNotifier(store, sender, cfg.Notify.Recipients)
		notifier.Interval = cfg.NotifyInterval()
		notifier.Window = cfg.NotifyWindow()
		notifier.SkipWeekends = cfg.Notify.SkipWeekends

		g.Go(func() error {
			if err := notifier.Run(gctx); err != nil && err != context.Canceled {
				return err
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil && err != context.Canceled {
		return err
	}
	log.Info("shutdown complete")
	return nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
