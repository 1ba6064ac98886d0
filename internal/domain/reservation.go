package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Reservation struct {
	ID               int
	ScheduleID       int
	UserID           int
	TicketID         *int
	SeatReservations []SeatReservation
	CreatedAt        time.Time
}

// SeatReservation links one reservation to one seat of the reservation's schedule.
type SeatReservation struct {
	ID            int
	ReservationID int
	ScheduleID    int
	SeatID        int
	Seat          *Seat
}

// Ticket is the proof of payment attached to a reservation once it has been paid.
type Ticket struct {
	ID        int
	Code      uuid.UUID
	Price     decimal.Decimal
	CreatedAt time.Time
}

func (r Reservation) SeatIDs() []int {
	ids := make([]int, len(r.SeatReservations))
	for i, sr := range r.SeatReservations {
		ids[i] = sr.SeatID
	}

	return ids
}

// TotalPrice sums the price of every reserved seat. Seats that were not loaded with
// the reservation are priced with the base price.
func (r Reservation) TotalPrice(basePrice decimal.Decimal) decimal.Decimal {
	total := decimal.Zero

	for _, sr := range r.SeatReservations {
		factor := decimal.NewFromInt(1)
		if sr.Seat != nil {
			factor = sr.Seat.PriceFactor()
		}

		total = total.Add(SeatPrice(basePrice, factor))
	}

	return total
}

type TicketRepository interface {
	GetFreeSeats(ctx context.Context, schedule Schedule) ([]int, error)
	AddReservation(ctx context.Context, seatIDs []int, scheduleID, userID int) (int, error)
	GetReservationById(ctx context.Context, id int) (*Reservation, error)
	GetReservationsByUserId(ctx context.Context, userID int, pagination Pagination) ([]Reservation, *Metadata, error)
	GetSeatReservationsByReservationId(ctx context.Context, reservationID int) ([]SeatReservation, error)
	GetSeatReservationsByIds(ctx context.Context, ids []int) ([]SeatReservation, error)
	CountSeatReservationsByScheduleId(ctx context.Context, scheduleID int) (int, error)
	DeleteSeatReservation(ctx context.Context, id int) (bool, error)
	DeleteReservation(ctx context.Context, id int) (int64, error)
	DeleteTicket(ctx context.Context, id int) (int64, error)
	AddSeatsToReservation(ctx context.Context, reservationID int, seatIDs []int) (bool, error)
}

// TxManager runs fn inside a single transaction that is committed when fn returns nil
// and rolled back otherwise. Repositories join the transaction carried by ctx.
type TxManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}
