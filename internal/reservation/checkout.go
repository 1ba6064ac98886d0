package reservation

import (
	"context"
	"errors"
	"fmt"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/stripe/stripe-go/v82"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var ErrNoPaymentProvider = errors.New("no payment provider configured")

func WithPaymentProvider(p domain.PaymentProvider) Option {
	return func(s *Service) { s.payments = p }
}

// Checkout opens a payment session for a reservation that has not been paid yet.
func (s *Service) Checkout(ctx context.Context, reservationID int) (*stripe.CheckoutSession, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.Checkout", trace.WithAttributes(
		attribute.Int("reservation_id", reservationID),
	))
	defer span.End()

	if s.payments == nil {
		return nil, ErrNoPaymentProvider
	}

	reservation, err := s.tickets.GetReservationById(ctx, reservationID)
	if err != nil {
		return nil, err
	}

	if reservation.TicketID != nil {
		return nil, domain.ErrAlreadyPaid
	}

	if len(reservation.SeatReservations) == 0 {
		return nil, fmt.Errorf("%w: reservation %d holds no seats", domain.ErrInvalidArgument, reservationID)
	}

	schedule, err := s.schedules.GetById(ctx, reservation.ScheduleID)
	if err != nil {
		return nil, err
	}

	if schedule.Started(s.now()) {
		return nil, domain.ErrScheduleStarted
	}

	user, err := s.users.GetWithRoleById(ctx, reservation.UserID)
	if err != nil {
		return nil, err
	}

	return s.payments.CreateCheckoutSession(ctx, user, *schedule, *reservation)
}
