package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/codewithrabha/eventbooking/internal/auth"
	"github.com/codewithrabha/eventbooking/internal/clock"
	"github.com/codewithrabha/eventbooking/internal/config"
	"github.com/codewithrabha/eventbooking/internal/handler"
	"github.com/codewithrabha/eventbooking/internal/middleware"
	"github.com/codewithrabha/eventbooking/internal/notification"
	"github.com/codewithrabha/eventbooking/internal/repository"
	"github.com/codewithrabha/eventbooking/internal/repository/memory"
	"github.com/codewithrabha/eventbooking/internal/router"
	"github.com/codewithrabha/eventbooking/internal/scheduler"
	"github.com/codewithrabha/eventbooking/internal/service"
	"github.com/codewithrabha/eventbooking/internal/service/ports"
	"github.com/codewithrabha/eventbooking/internal/validation"
	"github.com/codewithrabha/eventbooking/migrations"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"
	"github.com/wb-go/wbf/dbpg"
	"github.com/wb-go/wbf/logger"
	"github.com/wb-go/wbf/retry"
)

type App struct {
	cfg        *config.Config
	log        logger.Logger
	db         *dbpg.DB
	redis      *redis.Client
	verifier   *auth.Verifier
	httpServer *http.Server
	scheduler  *scheduler.Scheduler
}

type stores struct {
	events   ports.EventRepo
	bookings ports.BookingRepo
	profiles ports.ProfileRepo
}

func New(cfg *config.Config) (*App, error) {
	app := &App{cfg: cfg}

	log, err := logger.InitLogger(
		cfg.Logger.LogEngine(),
		"EventBooking",
		cfg.Gin.Mode,
		logger.WithLevel(cfg.Logger.LogLevel()),
	)
	if err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}
	app.log = log

	st, err := app.initStores()
	if err != nil {
		return nil, fmt.Errorf("init store: %w", err)
	}

	if err = app.initRedis(); err != nil {
		return nil, fmt.Errorf("init redis: %w", err)
	}

	if err = app.initServices(st); err != nil {
		return nil, fmt.Errorf("init services: %w", err)
	}

	return app, nil
}

func (a *App) initStores() (stores, error) {
	if a.cfg.Store.Driver == config.StoreDriverMemory {
		a.log.Warn("using in-memory store, data is lost on restart")
		m := memory.New()
		return stores{events: m.Events(), bookings: m.Bookings(), profiles: m.Profiles()}, nil
	}

	if err := a.runMigrations(); err != nil {
		return stores{}, fmt.Errorf("migrations: %w", err)
	}

	if err := a.initDB(); err != nil {
		return stores{}, fmt.Errorf("init db: %w", err)
	}

	strategy := retry.Strategy{
		Attempts: a.cfg.Postgres.Retry.Attempts,
		Delay:    a.cfg.Postgres.Retry.Delay,
		Backoff:  a.cfg.Postgres.Retry.Backoff,
	}
	return stores{
		events:   repository.NewEventRepo(a.db, strategy),
		bookings: repository.NewBookingRepo(a.db, strategy),
		profiles: repository.NewProfileRepo(a.db, strategy),
	}, nil
}

func (a *App) initDB() error {
	db, err := dbpg.New(
		a.cfg.Postgres.DSN(),
		nil,
		&dbpg.Options{
			MaxOpenConns: a.cfg.Postgres.MaxOpenConns,
			MaxIdleConns: a.cfg.Postgres.MaxIdleConns,
		},
	)
	if err != nil {
		return fmt.Errorf("connecting to database: %w", err)
	}
	db.Master.SetConnMaxLifetime(a.cfg.Postgres.ConnMaxLifetime)

	if err := db.Master.PingContext(context.Background()); err != nil {
		return fmt.Errorf("pinging database: %w", err)
	}

	a.db = db
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connected",
		logger.String("host", a.cfg.Postgres.Host),
		logger.Int("port", a.cfg.Postgres.Port),
		logger.String("database", a.cfg.Postgres.Database),
	)

	return nil
}

func (a *App) initRedis() error {
	if a.cfg.Redis.Addr == "" {
		a.log.Info("redis address is empty, event cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     a.cfg.Redis.Addr,
		Password: a.cfg.Redis.Password,
		DB:       a.cfg.Redis.DB,
	})
	if err := client.Ping(context.Background()).Err(); err != nil {
		_ = client.Close()
		return fmt.Errorf("pinging redis: %w", err)
	}

	a.redis = client
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "redis connected",
		logger.String("addr", a.cfg.Redis.Addr),
		logger.Duration("ttl", a.cfg.Redis.TTL),
	)
	return nil
}

func (a *App) initServices(st stores) error {
	verifier, err := auth.New(auth.Options{
		Mode:        a.cfg.Auth.Mode,
		Secret:      a.cfg.Auth.JWTSecret,
		JWKSURL:     a.cfg.Auth.JWKSURL,
		Audience:    a.cfg.Auth.Audience,
		Issuer:      a.cfg.Auth.Issuer,
		JWKSRefresh: a.cfg.Auth.JWKSRefresh,
		Leeway:      a.cfg.Auth.Leeway,
	})
	if err != nil {
		return fmt.Errorf("init auth: %w", err)
	}
	a.verifier = verifier

	n, err := notification.NewTelegramNotifier(a.cfg.Telegram.BotToken, a.cfg.Telegram.ChatID, a.log)
	if err != nil {
		return fmt.Errorf("init notifier: %w", err)
	}

	eventCache := repository.NewEventCache(st.events, a.redis, a.cfg.Redis.TTL)
	clk := clock.NewSystem()

	eventService := service.NewEventService(eventCache, a.log)
	bookingService := service.NewBookingService(st.bookings, eventCache, n, clk, a.log)
	profileService := service.NewProfileService(st.profiles, clk)

	a.scheduler = scheduler.New(
		bookingService,
		a.cfg.Scheduler.Interval,
		a.log,
	)

	corsMW, err := middleware.CORS(a.cfg.CORS.AllowedOrigins)
	if err != nil {
		return err
	}

	h := handler.NewHandler(eventService, bookingService, profileService, validation.New(), a.log)
	r := router.InitRouter(
		a.cfg.Gin.Mode,
		h,
		middleware.RequireAuth(verifier, a.log),
		middleware.RequestID(),
		middleware.RequestLogger(a.log),
		middleware.Recovery(a.log),
		corsMW,
	)

	a.httpServer = &http.Server{
		Addr:         a.cfg.Server.Addr,
		Handler:      r,
		ReadTimeout:  a.cfg.Server.ReadTimeout,
		WriteTimeout: a.cfg.Server.WriteTimeout,
		IdleTimeout:  a.cfg.Server.IdleTimeout,
	}

	return nil
}

func (a *App) Run() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go a.scheduler.Start(ctx)

	errCh := make(chan error, 1)
	go func() {
		a.log.LogAttrs(ctx, logger.InfoLevel, "HTTP server starting",
			logger.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.shutdown()
}

func (a *App) shutdown() error {
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "shutting down...")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		a.cfg.Server.WriteTimeout,
	)
	defer cancel()

	if err := a.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	a.log.LogAttrs(context.Background(), logger.InfoLevel, "HTTP server stopped")

	a.verifier.Close()

	if a.redis != nil {
		if err := a.redis.Close(); err != nil {
			return fmt.Errorf("close redis: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "redis connection closed")
	}

	if a.db != nil {
		if err := a.db.Master.Close(); err != nil {
			return fmt.Errorf("close db: %w", err)
		}
		a.log.LogAttrs(context.Background(), logger.InfoLevel, "database connection closed")
	}

	a.log.LogAttrs(context.Background(), logger.InfoLevel, "app stopped")

	return nil
}

func (a *App) runMigrations() error {
	db, err := sql.Open("postgres", a.cfg.Postgres.DSN())
	if err != nil {
		return fmt.Errorf("open db for migrations: %w", err)
	}
	defer db.Close()

	goose.SetBaseFS(migrations.FS)
	if err := goose.SetDialect("postgres"); err != nil {
		return fmt.Errorf("goose dialect: %w", err)
	}

	if err := goose.Up(db, "."); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}

	a.log.Info("migrations applied successfully")
	return nil
}
