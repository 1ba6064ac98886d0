package mocks

import (
	"context"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/stretchr/testify/mock"
	"github.com/stripe/stripe-go/v82"
)

type MockPaymentProvider struct {
	mock.Mock
	domain.PaymentProvider
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	user *domain.User,
	schedule domain.Schedule,
	reservation domain.Reservation) (*stripe.CheckoutSession, error) {

	args := m.Called(ctx, user, schedule, reservation)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*stripe.CheckoutSession), args.Error(1)
}
