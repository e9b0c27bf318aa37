package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"sme-credit-backend/internal/adapter/configcache"
	httpadp "sme-credit-backend/internal/adapter/http"
	"sme-credit-backend/internal/adapter/middleware"
	"sme-credit-backend/internal/adapter/notifier"
	"sme-credit-backend/internal/adapter/repository/mysql"
	"sme-credit-backend/internal/adapter/signature"
	"sme-credit-backend/internal/config"
	appDomain "sme-credit-backend/internal/domain/application"
	"sme-credit-backend/internal/infrastructure/cache"
	"sme-credit-backend/internal/infrastructure/db"
	"sme-credit-backend/internal/infrastructure/logging"
	"sme-credit-backend/internal/usecase/application"
	"sme-credit-backend/internal/usecase/company"
	"sme-credit-backend/internal/usecase/review"
)

const shutdownTimeout = 15 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	log, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer func() { _ = log.Sync() }()

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", zap.Error(err))
		_ = log.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *zap.Logger) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	gdb, err := db.OpenGorm(cfg.DBDriver, cfg.DSN())
	if err != nil {
		return err
	}
	if err := mysql.AutoMigrate(gdb); err != nil {
		return err
	}
	if cfg.SeedDefaults {
		if err := seed(gdb); err != nil {
			return err
		}
		log.Info("default configuration seeded")
	}

	var opts []cache.Option
	if cfg.RedisPassword != "" {
		opts = append(opts, cache.WithPassword(cfg.RedisPassword))
	}
	rdb, err := cache.OpenRedis(cfg.RedisAddr, cfg.RedisDB, opts...)
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	transport, closeTransport := notificationTransport(cfg, rdb, log)
	defer closeTransport()
	dispatcher := notifier.NewDispatcher(transport, cfg.NotifyTimeout, log)

	var signer appDomain.SignatureService = signature.Stub{}
	if cfg.SignatureURL != "" {
		signer = signature.NewClient(cfg.SignatureURL, cfg.SignatureTimeout)
	} else {
		log.Warn("SIGNATURE_URL not set, using local signature stub")
	}

	tx := mysql.NewGormUoW(gdb)
	params := configcache.New(rdb, mysql.NewConfigRepository(gdb), cfg.ConfigCacheTTL, log)
	if cfg.SeedDefaults {
		// a snapshot cached before the seed would hide it until the TTL
		ictx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := params.Invalidate(ictx); err != nil {
			log.Warn("config cache invalidate failed", zap.Error(err))
		}
		cancel()
	}
	issuer := application.NewNumberIssuer(cfg.ApplicationPrefix)
	table := appDomain.DefaultTransitions()

	apps := application.NewUsecase(tx, params, issuer, table, dispatcher, log)
	companies := company.NewUsecase(tx, params, issuer, dispatcher, log)
	reviews := review.NewUsecase(tx, table, signer, cfg.SignatureTimeout, dispatcher, log)

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(echomw.Recover(), echomw.RequestID(), middleware.RequestLogger(log))
	httpadp.Routes{
		Health: httpadp.NewHandler(map[string]httpadp.Check{
			"db": func(ctx context.Context) error {
				sqlDB, err := gdb.DB()
				if err != nil {
					return err
				}
				return sqlDB.PingContext(ctx)
			},
			"redis": func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}),
		Companies:    httpadp.NewCompanyHandler(companies),
		Applications: httpadp.NewApplicationHandler(apps),
		Admin:        httpadp.NewAdminHandler(apps, reviews),
		Idempotency:  middleware.IdempotencyMiddleware(rdb, cfg.IdempotencyTTL(), log),
	}.Register(e)

	srv := &http.Server{
		Addr:              ":" + cfg.AppPort,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(sctx); err != nil {
			return err
		}
		if err := dispatcher.Wait(sctx); err != nil {
			log.Warn("pending notifications dropped", zap.Error(err))
		}
		return nil
	})
	return g.Wait()
}

func seed(gdb *gorm.DB) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := mysql.NewConfigRepository(gdb).SeedDefaults(ctx); err != nil {
		return err
	}
	return mysql.NewIndustryRepository(gdb).SeedDefaults(ctx)
}

// notificationTransport picks the transport named by NOTIFY_TRANSPORT.
func notificationTransport(cfg *config.Config, rdb *redis.Client, log *zap.Logger) (notifier.Transport, func()) {
	switch cfg.NotifyTransport {
	case config.NotifyRedis:
		return notifier.NewRedisTransport(rdb), func() {}
	case config.NotifyKafka:
		k := notifier.NewKafkaTransport(cfg.KafkaBrokers, cfg.KafkaTopic)
		return k, func() {
			if err := k.Close(); err != nil {
				log.Warn("kafka writer close", zap.Error(err))
			}
		}
	default:
		return notifier.NewLogTransport(log), func() {}
	}
}
