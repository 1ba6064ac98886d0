package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/exaring/otelpgx"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/screening-reservation/internal/arbiter"
	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/metinatakli/screening-reservation/internal/events"
	"github.com/metinatakli/screening-reservation/internal/payment"
	"github.com/metinatakli/screening-reservation/internal/repository"
	"github.com/metinatakli/screening-reservation/internal/reservation"
	"github.com/metinatakli/screening-reservation/internal/validation"
	appvalidator "github.com/metinatakli/screening-reservation/internal/validator"
	"github.com/metinatakli/screening-reservation/internal/vcs"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"
	"github.com/riandyrn/otelchi"
	"github.com/stripe/stripe-go/v82"
)

const serviceName = "screening-reservation-api"

var (
	version = vcs.Version()
)

type Application struct {
	config    Config
	logger    *slog.Logger
	validator *validator.Validate
	service   *reservation.Service
}

func NewApp(cfg Config, logger *slog.Logger, validator *validator.Validate, service *reservation.Service) *Application {
	return &Application{
		config:    cfg,
		logger:    logger,
		validator: validator,
		service:   service,
	}
}

func Run() error {
	cfg, err := parseConfig(os.Args[1:])
	if err != nil {
		return err
	}

	if cfg.DisplayVersion {
		fmt.Printf("Version:\t%s\n", version)
		return nil
	}

	stripe.Key = cfg.Stripe.SecretKey

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	shutdownTelemetry, err := InitTelemetry(context.Background(), cfg, logger)
	if err != nil {
		return err
	}
	defer shutdownTelemetry(context.Background())

	logger = newLogger(cfg)

	db, err := NewDatabasePool(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Redis.URL != "" {
		redisClient, err = NewRedisClient(cfg)
		if err != nil {
			return err
		}
		defer redisClient.Close()
	}

	arb, err := newArbiter(cfg, redisClient, logger)
	if err != nil {
		return err
	}

	publisher, err := newPublisher(cfg)
	if err != nil {
		return err
	}
	defer publisher.Close()

	opts := []reservation.Option{
		reservation.WithArbiter(arb),
		reservation.WithPublisher(publisher),
		reservation.WithRules(
			validation.SeatAvailable{},
			validation.SeatBlock{
				MaxStrandedRun: cfg.SeatBlock.MaxStrandedRun,
				EdgesAsWalls:   cfg.SeatBlock.EdgesAsWalls,
			},
		),
	}

	if provider := newPaymentProvider(cfg); provider != nil {
		opts = append(opts, reservation.WithPaymentProvider(provider))
	}

	service := reservation.NewService(logger, NewRepositories(db), opts...)

	app := NewApp(cfg, logger, appvalidator.NewValidator(), service)

	return app.run()
}

func NewRepositories(db *pgxpool.Pool) reservation.Repositories {
	return reservation.Repositories{
		Schedules:      repository.NewPostgresScheduleRepository(db),
		Users:          repository.NewPostgresUserRepository(db),
		Infrastructure: repository.NewPostgresInfrastructureRepository(db),
		Tickets:        repository.NewPostgresTicketRepository(db),
		Tx:             repository.NewPostgresTxManager(db),
	}
}

func newArbiter(cfg Config, redisClient *redis.Client, logger *slog.Logger) (arbiter.Arbiter, error) {
	switch cfg.Arbiter {
	case ArbiterGlobal:
		return arbiter.NewGlobal(), nil
	case ArbiterSchedule:
		return arbiter.NewKeyed(), nil
	case ArbiterRedis:
		if redisClient == nil {
			return nil, errors.New("the redis arbiter requires -redis-url")
		}

		return arbiter.NewRedis(redisClient, logger, arbiter.WithLockTTL(cfg.Redis.LockTTL)), nil
	default:
		return nil, fmt.Errorf("unknown arbiter %q", cfg.Arbiter)
	}
}

type closablePublisher interface {
	events.Publisher
	Close() error
}

type nopCloser struct {
	events.NopPublisher
}

func (nopCloser) Close() error {
	return nil
}

func newPublisher(cfg Config) (closablePublisher, error) {
	if cfg.AMQP.URL == "" {
		return nopCloser{}, nil
	}

	publisher, err := events.NewAMQPPublisher(cfg.AMQP.URL, cfg.AMQP.Queue)
	if err != nil {
		return nil, err
	}

	return publisher, nil
}

// newPaymentProvider returns nil outside development when Stripe is not configured,
// which disables checkout.
func newPaymentProvider(cfg Config) domain.PaymentProvider {
	switch {
	case cfg.Stripe.SecretKey != "":
		return payment.NewStripePaymentProvider(cfg.Stripe.FailureUrl, cfg.Stripe.SuccessUrl)
	case cfg.Env == "dev" || cfg.Env == "test":
		return payment.NewMockPaymentProvider(cfg.Stripe.SuccessUrl)
	default:
		return nil
	}
}

func NewRedisClient(cfg Config) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:            cfg.Redis.URL,
		MaxIdleConns:    cfg.Redis.MaxIdleConns,
		MaxActiveConns:  cfg.Redis.MaxOpenConns,
		ConnMaxIdleTime: cfg.Redis.MaxIdleTime,
	})

	err := errors.Join(redisotel.InstrumentTracing(rdb), redisotel.InstrumentMetrics(rdb))
	if err != nil {
		rdb.Close()
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = rdb.Ping(ctx).Err()
	if err != nil {
		rdb.Close()
		return nil, err
	}

	return rdb, nil
}

func NewDatabasePool(cfg Config) (*pgxpool.Pool, error) {
	config, err := pgxpool.ParseConfig(cfg.DB.DSN)
	if err != nil {
		return nil, err
	}

	config.MaxConnIdleTime = cfg.DB.MaxIdleTime
	config.MaxConns = int32(cfg.DB.MaxOpenConns)
	config.ConnConfig.Tracer = otelpgx.NewTracer()

	db, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	err = db.Ping(ctx)
	if err != nil {
		db.Close()
		return nil, err
	}

	err = otelpgx.RecordStats(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return db, nil
}

func (app *Application) run() error {
	srv := &http.Server{
		Addr:         fmt.Sprintf("0.0.0.0:%d", app.config.Port),
		Handler:      app.Routes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		ErrorLog:     slog.NewLogLogger(app.logger.Handler(), slog.LevelDebug),
	}

	shutdownError := make(chan error)

	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		s := <-quit

		app.logger.Info("shutting down server", "signal", s.String())

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		shutdownError <- srv.Shutdown(ctx)
	}()

	app.logger.Info("starting server", "addr", srv.Addr, "env", app.config.Env, "arbiter", app.config.Arbiter)

	err := srv.ListenAndServe()
	if !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	err = <-shutdownError
	if err != nil {
		return err
	}

	app.logger.Info("stopped server", "addr", srv.Addr)

	return nil
}

func (app *Application) Routes() http.Handler {
	r := chi.NewRouter()

	r.NotFound(app.notFoundResponse)
	r.MethodNotAllowed(app.methodNotAllowedResponse)

	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(app.recoverPanic)
	r.Use(otelchi.Middleware(serviceName, otelchi.WithChiRoutes(r)))

	r.Get("/healthcheck", app.GetHealth)

	r.Route("/schedules/{scheduleId}", func(r chi.Router) {
		r.Get("/layout", app.GetScheduleLayout)
		r.Get("/capacity", app.GetScheduleCapacity)
		r.Post("/reservations", app.CreateReservation)
	})

	r.Route("/reservations/{reservationId}", func(r chi.Router) {
		r.Get("/", app.GetReservation)
		r.Patch("/", app.UpdateReservation)
		r.Delete("/", app.DeleteReservation)
		r.Post("/checkout", app.CreateCheckoutSession)
	})

	r.Get("/users/{userId}/reservations", app.GetReservationsOfUser)

	return r
}
