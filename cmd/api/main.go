package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/xavierca1/lead-outreach/internal/config"
	"github.com/xavierca1/lead-outreach/internal/entity"
	"github.com/xavierca1/lead-outreach/internal/infra/database"
	"github.com/xavierca1/lead-outreach/internal/infra/http/handlers"
	"github.com/xavierca1/lead-outreach/internal/infra/lock"
	"github.com/xavierca1/lead-outreach/internal/infra/mail"
	"github.com/xavierca1/lead-outreach/internal/infra/queue"
	"github.com/xavierca1/lead-outreach/internal/infra/templates"
	"github.com/xavierca1/lead-outreach/internal/infra/worker"
	"github.com/xavierca1/lead-outreach/internal/logger"
	"github.com/xavierca1/lead-outreach/internal/usecase"
)

const version = "1.0.0"

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadAll()
	if err != nil {
		zerolog.New(os.Stderr).Fatal().Err(err).Msg("invalid configuration")
	}
	log := logger.New(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := database.NewDBConnection(ctx, cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("database unavailable")
	}
	defer db.Close()

	checks := map[string]handlers.HealthCheck{
		"database": db.PingContext,
	}

	// 1. Repositories
	leadRepo := database.NewLeadRepository(db)
	logRepo := database.NewEmailLogRepository(db)

	// 2. Adapters
	catalog, err := templates.LoadDefaultCatalog()
	if err != nil {
		log.Fatal().Err(err).Msg("template catalog")
	}
	composer := templates.NewComposer(catalog)

	transport, err := mail.NewTransport(ctx, cfg.Mail)
	if err != nil {
		log.Fatal().Err(err).Msg("email transport")
	}

	var events queue.EventPublisherInterface = queue.NoopPublisher{}
	if cfg.RabbitMQ.URL != "" {
		rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitMQ.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("rabbitmq unavailable")
		}
		defer rabbitMQ.Close()
		events = queue.NewProducer(rabbitMQ.Ch)
		checks["rabbitmq"] = func(context.Context) error {
			if rabbitMQ.Conn.IsClosed() {
				return errors.New("connection closed")
			}
			return nil
		}
	}

	var sweepLock lock.Locker
	if cfg.Redis.Enabled {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer rdb.Close()
		sweepLock = lock.NewRedisLock(rdb, "outreach:sweep", cfg.Sweep.LockTTL)
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}

	// 3. Use cases
	defaultSender := entity.SenderConfig{
		Name:    cfg.Sender.Name,
		Company: cfg.Sender.Company,
		Phone:   cfg.Sender.Phone,
	}
	selector := usecase.NewFollowUpSelector(leadRepo, logRepo)
	outreach := usecase.NewOutreachUseCase(
		leadRepo,
		composer,
		transport,
		usecase.NewActivityLogWriter(logRepo, log),
		events,
		selector,
		usecase.OutreachOptions{
			FromAddress:   cfg.Mail.FromAddress,
			DefaultSender: defaultSender,
			SendDelay:     cfg.Outreach.SendDelay,
		},
		log,
	)
	sweep := usecase.NewSweepUseCase(selector, outreach, defaultSender, log)

	// 4. Daily sweep
	var sweepWorker *worker.FollowUpSweepWorker
	if cfg.Sweep.Enabled {
		sweepWorker, err = worker.NewFollowUpSweepWorker(sweep, sweepLock, cfg.Sweep.Schedule, cfg.Sweep.Timezone, log)
		if err != nil {
			log.Fatal().Err(err).Msg("sweep worker")
		}
		if err := sweepWorker.Start(ctx); err != nil {
			log.Fatal().Err(err).Msg("sweep worker")
		}
	}

	// 5. HTTP
	router := handlers.NewRouter(handlers.RouterDeps{
		AllowedOrigins: cfg.Server.CORSAllowedOrigins,
		Health:         handlers.NewHealthHandler(version, checks),
		Contacts:       handlers.NewContactHandler(leadRepo),
		Outreach:       handlers.NewOutreachHandler(outreach, selector),
		EmailLogs:      handlers.NewEmailLogHandler(logRepo),
		CaptureLimiter: handlers.NewRateLimiter(ctx, 10, time.Minute, cfg.Server.TrustProxyHeaders),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	httpDone := make(chan struct{})
	go func() {
		defer close(httpDone)
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			log.Error().Err(err).Msg("http shutdown")
		}
	}()

	log.Info().
		Str("addr", cfg.Server.Address).
		Str("email_provider", cfg.Mail.Provider).
		Bool("sweep", cfg.Sweep.Enabled).
		Bool("redis", cfg.Redis.Enabled).
		Bool("rabbitmq", cfg.RabbitMQ.URL != "").
		Msg("lead outreach api starting")

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Fatal().Err(err).Msg("http server")
	}

	// In-flight requests and a running sweep still need the DB, broker and lock.
	<-httpDone
	if sweepWorker != nil {
		<-sweepWorker.Done()
	}
	log.Info().Msg("lead outreach api stopped")
}
