package reservation

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// GetCapacity returns the load factor of a schedule: the share of the hall's seats held
// by seat reservations, in [0, 1]. A hall without seats has a load factor of zero.
func (s *Service) GetCapacity(ctx context.Context, scheduleID int) (float64, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.GetCapacity", trace.WithAttributes(
		attribute.Int("schedule_id", scheduleID),
	))
	defer span.End()

	schedule, err := s.schedules.GetById(ctx, scheduleID)
	if err != nil {
		return 0, err
	}

	reserved, err := s.tickets.CountSeatReservationsByScheduleId(ctx, scheduleID)
	if err != nil {
		return 0, err
	}

	l, err := s.hallLayout(ctx, schedule, nil)
	if err != nil {
		return 0, err
	}

	total := l.Count()
	if total == 0 {
		return 0, nil
	}

	return min(max(float64(reserved)/float64(total), 0), 1), nil
}
