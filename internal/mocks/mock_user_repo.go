package mocks

import (
	"context"

	"github.com/metinatakli/screening-reservation/internal/domain"
)

type MockUserRepo struct {
	domain.UserRepository
	GetWithRoleByIdFunc func(ctx context.Context, id int) (*domain.User, error)
}

func (m *MockUserRepo) GetWithRoleById(ctx context.Context, id int) (*domain.User, error) {
	return m.GetWithRoleByIdFunc(ctx, id)
}
