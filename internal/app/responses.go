package app

import (
	"time"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/metinatakli/screening-reservation/internal/layout"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
)

type ErrorResponse struct {
	Message   string    `json:"message"`
	RequestId string    `json:"requestId,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type ValidationError struct {
	Field string `json:"field"`
	Issue string `json:"issue"`
}

type ValidationErrorResponse struct {
	Message          string            `json:"message"`
	RequestId        string            `json:"requestId,omitempty"`
	Timestamp        time.Time         `json:"timestamp"`
	ValidationErrors []ValidationError `json:"validationErrors"`
}

type SystemInfo struct {
	Version     string `json:"version"`
	Environment string `json:"environment"`
}

type HealthcheckResponse struct {
	Status     string     `json:"status"`
	SystemInfo SystemInfo `json:"systemInfo"`
}

type LayoutSeat struct {
	Id       int              `json:"id"`
	Number   int              `json:"number"`
	Row      int              `json:"row"`
	Column   int              `json:"column"`
	State    domain.SeatState `json:"state"`
	Category string           `json:"category,omitempty"`
	Price    *decimal.Decimal `json:"price,omitempty"`
}

type LayoutResponse struct {
	ScheduleId int             `json:"scheduleId"`
	Rows       int             `json:"rows"`
	Columns    int             `json:"columns"`
	Seats      [][]*LayoutSeat `json:"seats"`
}

type CapacityResponse struct {
	ScheduleId int     `json:"scheduleId"`
	LoadFactor float64 `json:"loadFactor"`
}

type ReservationSeat struct {
	Id     int `json:"id"`
	SeatId int `json:"seatId"`
	Row    int `json:"row,omitempty"`
	Number int `json:"number,omitempty"`
}

type ReservationResponse struct {
	Id         int               `json:"id"`
	ScheduleId int               `json:"scheduleId"`
	UserId     int               `json:"userId"`
	TicketId   *int              `json:"ticketId"`
	Seats      []ReservationSeat `json:"seats"`
	CreatedAt  time.Time         `json:"createdAt"`
}

type Metadata struct {
	CurrentPage  int `json:"currentPage"`
	FirstPage    int `json:"firstPage"`
	LastPage     int `json:"lastPage"`
	PageSize     int `json:"pageSize"`
	TotalRecords int `json:"totalRecords"`
}

type UserReservationsResponse struct {
	Reservations []ReservationResponse `json:"reservations"`
	Metadata     Metadata              `json:"metadata"`
}

type DeleteReservationResponse struct {
	Deleted bool `json:"deleted"`
}

type CheckoutSessionResponse struct {
	SessionId string `json:"sessionId"`
	Url       string `json:"url"`
}

func toLayoutResponse(scheduleID int, basePrice decimal.Decimal, l *layout.Layout) LayoutResponse {
	resp := LayoutResponse{
		ScheduleId: scheduleID,
		Rows:       l.Rows,
		Columns:    l.Columns,
		Seats:      make([][]*LayoutSeat, l.Rows),
	}

	for r, row := range l.Grid() {
		resp.Seats[r] = make([]*LayoutSeat, len(row))

		for c, seat := range row {
			if seat == nil {
				continue
			}

			ls := &LayoutSeat{
				Id:     seat.ID,
				Number: seat.Number,
				Row:    seat.LayoutRow,
				Column: seat.LayoutColumn,
				State:  seat.State,
			}

			if seat.Row != nil {
				ls.Category = seat.Row.Category.Name
			}

			if seat.Free() {
				price := domain.SeatPrice(basePrice, seat.PriceFactor())
				ls.Price = &price
			}

			resp.Seats[r][c] = ls
		}
	}

	return resp
}

func toReservationResponse(r domain.Reservation) ReservationResponse {
	resp := ReservationResponse{
		Id:         r.ID,
		ScheduleId: r.ScheduleID,
		UserId:     r.UserID,
		TicketId:   r.TicketID,
		Seats:      make([]ReservationSeat, len(r.SeatReservations)),
		CreatedAt:  r.CreatedAt,
	}

	for i, sr := range r.SeatReservations {
		seat := ReservationSeat{Id: sr.ID, SeatId: sr.SeatID}

		if sr.Seat != nil {
			seat.Number = sr.Seat.Number
			if sr.Seat.Row != nil {
				seat.Row = sr.Seat.Row.Number
			}
		}

		resp.Seats[i] = seat
	}

	return resp
}

func toReservationResponses(reservations []domain.Reservation) []ReservationResponse {
	resp := make([]ReservationResponse, len(reservations))
	for i, r := range reservations {
		resp[i] = toReservationResponse(r)
	}

	return resp
}

func toApiMetadata(metadata *domain.Metadata) Metadata {
	return Metadata{
		CurrentPage:  metadata.CurrentPage,
		FirstPage:    metadata.FirstPage,
		LastPage:     metadata.LastPage,
		PageSize:     metadata.PageSize,
		TotalRecords: metadata.TotalRecords,
	}
}

func toCheckoutSessionResponse(session *stripe.CheckoutSession) CheckoutSessionResponse {
	return CheckoutSessionResponse{
		SessionId: session.ID,
		Url:       session.URL,
	}
}
