package mocks

import (
	"context"

	"github.com/metinatakli/screening-reservation/internal/domain"
)

type MockScheduleRepo struct {
	domain.ScheduleRepository
	GetByIdFunc func(ctx context.Context, id int) (*domain.Schedule, error)
}

func (m *MockScheduleRepo) GetById(ctx context.Context, id int) (*domain.Schedule, error) {
	return m.GetByIdFunc(ctx, id)
}
