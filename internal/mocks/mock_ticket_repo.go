package mocks

import (
	"context"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockTicketRepo struct {
	mock.Mock
	domain.TicketRepository
}

func (m *MockTicketRepo) GetFreeSeats(ctx context.Context, schedule domain.Schedule) ([]int, error) {
	args := m.Called(ctx, schedule)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]int), args.Error(1)
}

func (m *MockTicketRepo) AddReservation(ctx context.Context, seatIDs []int, scheduleID, userID int) (int, error) {
	args := m.Called(ctx, seatIDs, scheduleID, userID)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepo) GetReservationById(ctx context.Context, id int) (*domain.Reservation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Reservation), args.Error(1)
}

func (m *MockTicketRepo) GetReservationsByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.Reservation, *domain.Metadata, error) {

	args := m.Called(ctx, userID, pagination)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).([]domain.Reservation), args.Get(1).(*domain.Metadata), args.Error(2)
}

func (m *MockTicketRepo) GetSeatReservationsByReservationId(ctx context.Context, reservationID int) ([]domain.SeatReservation, error) {
	args := m.Called(ctx, reservationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatReservation), args.Error(1)
}

func (m *MockTicketRepo) GetSeatReservationsByIds(ctx context.Context, ids []int) ([]domain.SeatReservation, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.SeatReservation), args.Error(1)
}

func (m *MockTicketRepo) CountSeatReservationsByScheduleId(ctx context.Context, scheduleID int) (int, error) {
	args := m.Called(ctx, scheduleID)
	return args.Int(0), args.Error(1)
}

func (m *MockTicketRepo) DeleteSeatReservation(ctx context.Context, id int) (bool, error) {
	args := m.Called(ctx, id)
	return args.Bool(0), args.Error(1)
}

func (m *MockTicketRepo) DeleteReservation(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepo) DeleteTicket(ctx context.Context, id int) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTicketRepo) AddSeatsToReservation(ctx context.Context, reservationID int, seatIDs []int) (bool, error) {
	args := m.Called(ctx, reservationID, seatIDs)
	return args.Bool(0), args.Error(1)
}
