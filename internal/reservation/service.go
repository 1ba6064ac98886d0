// Package reservation implements seat reservation for scheduled screenings: serialized
// creation, cascading lifecycle operations and occupancy.
package reservation

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/metinatakli/screening-reservation/internal/arbiter"
	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/metinatakli/screening-reservation/internal/events"
	"github.com/metinatakli/screening-reservation/internal/layout"
	"github.com/metinatakli/screening-reservation/internal/validation"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

const instrumentationName = "github.com/metinatakli/screening-reservation/internal/reservation"

type Repositories struct {
	Schedules      domain.ScheduleRepository
	Users          domain.UserRepository
	Infrastructure domain.InfrastructureRepository
	Tickets        domain.TicketRepository
	Tx             domain.TxManager
}

type Service struct {
	logger    *slog.Logger
	schedules domain.ScheduleRepository
	users     domain.UserRepository
	infra     domain.InfrastructureRepository
	tickets   domain.TicketRepository
	tx        domain.TxManager
	arbiter   arbiter.Arbiter
	publisher events.Publisher
	payments  domain.PaymentProvider
	now       func() time.Time
	chain     atomic.Pointer[validation.Chain]

	tracer   trace.Tracer
	created  metric.Int64Counter
	rejected metric.Int64Counter
	lockWait metric.Float64Histogram
}

type Option func(*Service)

// WithArbiter replaces the default process-wide arbiter.
func WithArbiter(a arbiter.Arbiter) Option {
	return func(s *Service) { s.arbiter = a }
}

// WithRules sets the initial validation rules, in order.
func WithRules(rules ...validation.Rule) Option {
	return func(s *Service) {
		chain := validation.NewChain(rules...)
		s.chain.Store(&chain)
	}
}

func WithPublisher(p events.Publisher) Option {
	return func(s *Service) { s.publisher = p }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func NewService(logger *slog.Logger, repos Repositories, opts ...Option) *Service {
	s := &Service{
		logger:    logger,
		schedules: repos.Schedules,
		users:     repos.Users,
		infra:     repos.Infrastructure,
		tickets:   repos.Tickets,
		tx:        repos.Tx,
		arbiter:   arbiter.NewGlobal(),
		publisher: events.NopPublisher{},
		now:       time.Now,
		tracer:    otel.Tracer(instrumentationName),
	}

	defaults := validation.DefaultChain()
	s.chain.Store(&defaults)

	for _, opt := range opts {
		opt(s)
	}

	meter := otel.Meter(instrumentationName)

	s.created = int64Counter(meter, "reservations.created", "Reservations persisted")
	s.rejected = int64Counter(meter, "reservations.rejected", "Reservation requests rejected, by reason")

	lockWait, err := meter.Float64Histogram(
		"reservations.lock_wait",
		metric.WithDescription("Time spent waiting for the reservation arbiter"),
		metric.WithUnit("s"),
	)
	if err != nil {
		otel.Handle(err)
	}
	s.lockWait = lockWait

	return s
}

func int64Counter(meter metric.Meter, name, description string) metric.Int64Counter {
	counter, err := meter.Int64Counter(name, metric.WithDescription(description))
	if err != nil {
		otel.Handle(err)
	}

	return counter
}

// Rules returns the validation chain currently in use.
func (s *Service) Rules() validation.Chain {
	return *s.chain.Load()
}

// AddRule appends a rule to the chain used by subsequent requests.
func (s *Service) AddRule(rule validation.Rule) {
	for {
		current := s.chain.Load()
		next := current.With(rule)

		if s.chain.CompareAndSwap(current, &next) {
			return
		}
	}
}

// ClearRules removes every rule; subsequent selections are only checked for
// entitlement and schedule start.
func (s *Service) ClearRules() {
	s.chain.Store(&validation.Chain{})
}

func (s *Service) UseDefaultRules() {
	defaults := validation.DefaultChain()
	s.chain.Store(&defaults)
}

// GetLayout materializes the current seat layout of a schedule.
func (s *Service) GetLayout(ctx context.Context, scheduleID int) (*layout.Layout, error) {
	_, l, err := s.ScheduleLayout(ctx, scheduleID)
	return l, err
}

// ScheduleLayout returns a schedule together with its current seat layout.
func (s *Service) ScheduleLayout(ctx context.Context, scheduleID int) (*domain.Schedule, *layout.Layout, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.GetLayout", trace.WithAttributes(
		attribute.Int("schedule_id", scheduleID),
	))
	defer span.End()

	schedule, err := s.schedules.GetById(ctx, scheduleID)
	if err != nil {
		return nil, nil, err
	}

	l, err := s.freshLayout(ctx, schedule)
	if err != nil {
		return nil, nil, err
	}

	return schedule, l, nil
}

// freshLayout rebuilds the layout from the latest committed (or, inside RunInTx, the
// transaction's own) free-seat data.
func (s *Service) freshLayout(ctx context.Context, schedule *domain.Schedule) (*layout.Layout, error) {
	free, err := s.tickets.GetFreeSeats(ctx, *schedule)
	if err != nil {
		return nil, err
	}

	return s.hallLayout(ctx, schedule, free)
}

func (s *Service) hallLayout(ctx context.Context, schedule *domain.Schedule, free []int) (*layout.Layout, error) {
	hall, err := s.infra.GetCinemaHallById(ctx, schedule.CinemaHallID)
	if err != nil {
		return nil, err
	}

	seats, err := s.infra.GetActiveSeatsWithRowAndCategory(ctx, hall.ID)
	if err != nil {
		return nil, err
	}

	return layout.Materialize(*hall, seats, free)
}

func (s *Service) publish(ctx context.Context, event events.ReservationEvent) {
	event.OccurredAt = s.now().UTC()

	err := s.publisher.Publish(ctx, event)
	if err != nil {
		s.logger.Error("failed to publish reservation event",
			"type", event.Type,
			"reservation_id", event.ReservationID,
			"error", err,
		)
	}
}

func scheduleKey(scheduleID int) string {
	return fmt.Sprintf("schedule:%d", scheduleID)
}

func checkSelection(seatIDs []int) error {
	if len(seatIDs) == 0 {
		return fmt.Errorf("%w: at least one seat must be selected", domain.ErrInvalidArgument)
	}

	seen := make(map[int]bool, len(seatIDs))
	for _, id := range seatIDs {
		if seen[id] {
			return fmt.Errorf("%w: seat %d is selected more than once", domain.ErrInvalidArgument, id)
		}
		seen[id] = true
	}

	return nil
}

func checkEntitlement(user *domain.User, seatCount int) error {
	if seatCount > user.Role.MaxReservations {
		return fmt.Errorf(
			"%w: %d seats requested, role %q allows %d",
			domain.ErrOutOfRange,
			seatCount,
			user.Role.Name,
			user.Role.MaxReservations,
		)
	}

	return nil
}
