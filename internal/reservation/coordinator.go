package reservation

import (
	"context"
	"errors"
	"time"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/metinatakli/screening-reservation/internal/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

// AddReservation books seatIDs of a schedule for a user.
//
// The whole workflow runs while holding the arbiter, so the layout validated in it
// always reflects reservations committed by earlier holders. Nothing is written unless
// every check and rule passes.
func (s *Service) AddReservation(
	ctx context.Context,
	seatIDs []int,
	scheduleID,
	userID int) (*domain.Reservation, error) {

	ctx, span := s.tracer.Start(ctx, "reservation.AddReservation", trace.WithAttributes(
		attribute.Int("schedule_id", scheduleID),
		attribute.Int("user_id", userID),
		attribute.Int("seat_count", len(seatIDs)),
	))
	defer span.End()

	var reservation *domain.Reservation

	err := s.withArbiter(ctx, scheduleKey(scheduleID), func() error {
		var err error
		reservation, err = s.createReservation(ctx, seatIDs, scheduleID, userID)
		return err
	})
	if err != nil {
		s.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", rejectionReason(err))))
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())

		s.logger.Warn("reservation rejected",
			"schedule_id", scheduleID,
			"user_id", userID,
			"seat_ids", seatIDs,
			"error", err,
		)

		return nil, err
	}

	s.created.Add(ctx, 1)
	span.SetAttributes(attribute.Int("reservation_id", reservation.ID))

	s.publish(ctx, events.ReservationEvent{
		Type:          events.ReservationCreated,
		ReservationID: reservation.ID,
		ScheduleID:    reservation.ScheduleID,
		UserID:        reservation.UserID,
		SeatIDs:       reservation.SeatIDs(),
	})

	return reservation, nil
}

func (s *Service) withArbiter(ctx context.Context, key string, fn func() error) error {
	start := time.Now()

	release, err := s.arbiter.Acquire(ctx, key)
	if err != nil {
		return err
	}
	defer release()

	s.lockWait.Record(ctx, time.Since(start).Seconds())

	return fn()
}

func (s *Service) createReservation(
	ctx context.Context,
	seatIDs []int,
	scheduleID,
	userID int) (*domain.Reservation, error) {

	err := checkSelection(seatIDs)
	if err != nil {
		return nil, err
	}

	schedule, err := s.schedules.GetById(ctx, scheduleID)
	if err != nil {
		return nil, err
	}

	if schedule.Started(s.now()) {
		return nil, domain.ErrScheduleStarted
	}

	user, err := s.users.GetWithRoleById(ctx, userID)
	if err != nil {
		return nil, err
	}

	err = checkEntitlement(user, len(seatIDs))
	if err != nil {
		return nil, err
	}

	l, err := s.freshLayout(ctx, schedule)
	if err != nil {
		return nil, err
	}

	err = s.Rules().Validate(l.Flatten(), seatIDs)
	if err != nil {
		return nil, err
	}

	var reservationID int

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var err error
		reservationID, err = s.tickets.AddReservation(ctx, seatIDs, scheduleID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return s.tickets.GetReservationById(ctx, reservationID)
}

func rejectionReason(err error) string {
	switch {
	case errors.Is(err, domain.ErrRecordNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrScheduleStarted):
		return "schedule_started"
	case errors.Is(err, domain.ErrInvalidArgument):
		return "invalid_argument"
	case errors.Is(err, domain.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, domain.ErrValidationFailed):
		return "validation_failed"
	case errors.Is(err, domain.ErrSeatAlreadyReserved):
		return "seat_already_reserved"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	default:
		return "persistence"
	}
}
