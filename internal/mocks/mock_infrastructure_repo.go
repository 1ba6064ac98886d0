package mocks

import (
	"context"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/stretchr/testify/mock"
)

type MockInfrastructureRepo struct {
	mock.Mock
	domain.InfrastructureRepository
}

func (m *MockInfrastructureRepo) GetActiveSeatsWithRowAndCategory(ctx context.Context, hallID int) ([]domain.Seat, error) {
	args := m.Called(ctx, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Seat), args.Error(1)
}

func (m *MockInfrastructureRepo) GetCinemaHallById(ctx context.Context, hallID int) (*domain.CinemaHall, error) {
	args := m.Called(ctx, hallID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CinemaHall), args.Error(1)
}
