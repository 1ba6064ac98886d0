package reservation

import (
	"context"
	"fmt"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/metinatakli/screening-reservation/internal/events"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

func (s *Service) GetReservation(ctx context.Context, id int) (*domain.Reservation, error) {
	return s.tickets.GetReservationById(ctx, id)
}

func (s *Service) GetReservationsByUser(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.Reservation, *domain.Metadata, error) {

	return s.tickets.GetReservationsByUserId(ctx, userID, pagination)
}

// DeleteReservation removes a reservation with its seat reservations and ticket.
// It returns false without error when the reservation holds no seats.
func (s *Service) DeleteReservation(ctx context.Context, id int) (bool, error) {
	return s.DeleteReservations(ctx, id)
}

// DeleteReservations cascades every deletion in a single transaction. The result is
// true only if every reservation was deleted; reservations without seats are skipped.
// A step that affects no rows rolls back the whole batch.
func (s *Service) DeleteReservations(ctx context.Context, ids ...int) (bool, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.DeleteReservations", trace.WithAttributes(
		attribute.IntSlice("reservation_ids", ids),
	))
	defer span.End()

	if len(ids) == 0 {
		return false, nil
	}

	allDeleted := true
	var deleted []int

	err := s.tx.RunInTx(ctx, func(ctx context.Context) error {
		for _, id := range ids {
			ok, err := s.deleteCascade(ctx, id)
			if err != nil {
				return err
			}

			if ok {
				deleted = append(deleted, id)
			}
			allDeleted = allDeleted && ok
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		return false, err
	}

	for _, id := range deleted {
		s.publish(ctx, events.ReservationEvent{Type: events.ReservationDeleted, ReservationID: id})
	}

	return allDeleted, nil
}

func (s *Service) deleteCascade(ctx context.Context, id int) (bool, error) {
	seatReservations, err := s.tickets.GetSeatReservationsByReservationId(ctx, id)
	if err != nil {
		return false, err
	}

	if len(seatReservations) == 0 {
		return false, nil
	}

	reservation, err := s.tickets.GetReservationById(ctx, id)
	if err != nil {
		return false, err
	}

	err = s.deleteSeatReservations(ctx, seatReservations)
	if err != nil {
		return false, err
	}

	affected, err := s.tickets.DeleteReservation(ctx, id)
	if err != nil {
		return false, err
	}

	if affected == 0 {
		return false, fmt.Errorf("%w: reservation %d", domain.ErrNoRowsAffected, id)
	}

	if reservation.TicketID != nil {
		affected, err = s.tickets.DeleteTicket(ctx, *reservation.TicketID)
		if err != nil {
			return false, err
		}

		if affected == 0 {
			return false, fmt.Errorf("%w: ticket %d", domain.ErrNoRowsAffected, *reservation.TicketID)
		}
	}

	return true, nil
}

func (s *Service) deleteSeatReservations(ctx context.Context, seatReservations []domain.SeatReservation) error {
	for _, sr := range seatReservations {
		ok, err := s.tickets.DeleteSeatReservation(ctx, sr.ID)
		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("%w: seat reservation %d", domain.ErrNoRowsAffected, sr.ID)
		}
	}

	return nil
}

// UpdateReservation replaces the seats of a reservation with selectedSeatIDs. Seats
// being added are validated against a fresh layout in which the reservation's own seats
// count as free, so seats that are kept never reject themselves.
func (s *Service) UpdateReservation(ctx context.Context, id int, selectedSeatIDs []int) (*domain.Reservation, error) {
	ctx, span := s.tracer.Start(ctx, "reservation.UpdateReservation", trace.WithAttributes(
		attribute.Int("reservation_id", id),
		attribute.Int("seat_count", len(selectedSeatIDs)),
	))
	defer span.End()

	err := checkSelection(selectedSeatIDs)
	if err != nil {
		return nil, err
	}

	reservation, err := s.tickets.GetReservationById(ctx, id)
	if err != nil {
		return nil, err
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

	err = checkEntitlement(user, len(selectedSeatIDs))
	if err != nil {
		return nil, err
	}

	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		current, err := s.tickets.GetSeatReservationsByReservationId(ctx, id)
		if err != nil {
			return err
		}

		removed, kept, added := diffSeats(current, selectedSeatIDs)

		err = s.deleteSeatReservations(ctx, removed)
		if err != nil {
			return err
		}

		if len(added) == 0 {
			return nil
		}

		l, err := s.freshLayout(ctx, schedule)
		if err != nil {
			return err
		}

		own := make([]int, len(current))
		for i, sr := range current {
			own[i] = sr.SeatID
		}

		desired := append(append([]int(nil), kept...), added...)

		err = s.Rules().Validate(l.MarkFree(own...).Flatten(), desired)
		if err != nil {
			return err
		}

		ok, err := s.tickets.AddSeatsToReservation(ctx, id, added)
		if err != nil {
			return err
		}

		if !ok {
			return fmt.Errorf("%w: seats of reservation %d", domain.ErrNoRowsAffected, id)
		}

		return nil
	})
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	updated, err := s.tickets.GetReservationById(ctx, id)
	if err != nil {
		return nil, err
	}

	s.publish(ctx, events.ReservationEvent{
		Type:          events.ReservationUpdated,
		ReservationID: updated.ID,
		ScheduleID:    updated.ScheduleID,
		UserID:        updated.UserID,
		SeatIDs:       updated.SeatIDs(),
	})

	return updated, nil
}

// diffSeats splits the current seat reservations against a selection into rows to
// remove, seat ids to keep and seat ids to add. Order follows the inputs.
func diffSeats(current []domain.SeatReservation, selected []int) (removed []domain.SeatReservation, kept, added []int) {
	selectedSet := make(map[int]bool, len(selected))
	for _, id := range selected {
		selectedSet[id] = true
	}

	currentSet := make(map[int]bool, len(current))
	for _, sr := range current {
		currentSet[sr.SeatID] = true

		if selectedSet[sr.SeatID] {
			kept = append(kept, sr.SeatID)
		} else {
			removed = append(removed, sr)
		}
	}

	for _, id := range selected {
		if !currentSet[id] {
			added = append(added, id)
		}
	}

	return removed, kept, added
}
