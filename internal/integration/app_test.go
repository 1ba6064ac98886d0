package integration_test

import (
	"log/slog"
	"os"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/screening-reservation/internal/app"
	"github.com/metinatakli/screening-reservation/internal/arbiter"
	"github.com/metinatakli/screening-reservation/internal/payment"
	"github.com/metinatakli/screening-reservation/internal/repository"
	"github.com/metinatakli/screening-reservation/internal/reservation"
	"github.com/metinatakli/screening-reservation/internal/validation"
	appvalidator "github.com/metinatakli/screening-reservation/internal/validator"
	"github.com/redis/go-redis/v9"
)

type TestApp struct {
	App     *app.Application
	Service *reservation.Service
	DB      *pgxpool.Pool
	Redis   *redis.Client
	Logger  *slog.Logger
}

func newTestApp(cfg app.Config) (*TestApp, error) {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
	validator := appvalidator.NewValidator()

	db, err := app.NewDatabasePool(cfg)
	if err != nil {
		return nil, err
	}

	redisClient, err := app.NewRedisClient(cfg)
	if err != nil {
		db.Close()
		return nil, err
	}

	service := newService(db, logger, arbiter.NewKeyed())

	application := app.NewApp(cfg, logger, validator, service)

	return &TestApp{
		App:     application,
		Service: service,
		DB:      db,
		Redis:   redisClient,
		Logger:  logger,
	}, nil
}

// newService builds a service over the shared pool. Two services built with separate
// in-process arbiters behave like two replicas of the API.
func newService(db *pgxpool.Pool, logger *slog.Logger, arb arbiter.Arbiter) *reservation.Service {
	return reservation.NewService(
		logger,
		app.NewRepositories(db),
		reservation.WithArbiter(arb),
		reservation.WithRules(validation.SeatAvailable{}, validation.SeatBlock{MaxStrandedRun: 1}),
		reservation.WithPaymentProvider(payment.NewMockPaymentProvider("http://localhost:3000/success")),
	)
}

func (a *TestApp) Close() {
	a.Redis.Close()
	a.DB.Close()
}

func newTicketRepository(a *TestApp) *repository.PostgresTicketRepository {
	return repository.NewPostgresTicketRepository(a.DB)
}

func newTxManager(a *TestApp) *repository.PostgresTxManager {
	return repository.NewPostgresTxManager(a.DB)
}
