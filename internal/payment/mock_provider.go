package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/stripe/stripe-go/v82"
)

// MockPaymentProvider stands in for Stripe when no API key is configured. The session
// it returns carries the line items that would have been billed.
type MockPaymentProvider struct {
	successUrl string
}

func NewMockPaymentProvider(successUrl string) *MockPaymentProvider {
	return &MockPaymentProvider{successUrl: successUrl}
}

func (m *MockPaymentProvider) CreateCheckoutSession(
	_ context.Context,
	user *domain.User,
	schedule domain.Schedule,
	reservation domain.Reservation) (*stripe.CheckoutSession, error) {

	params := checkoutParams(user, schedule, reservation)

	var total int64
	for _, item := range params.LineItems {
		total += *item.PriceData.UnitAmount * *item.Quantity
	}

	return &stripe.CheckoutSession{
		ID:                "cs_mock_" + uuid.NewString(),
		URL:               m.successUrl,
		Mode:              stripe.CheckoutSessionModePayment,
		Currency:          stripe.CurrencyUSD,
		AmountTotal:       total,
		CustomerEmail:     user.Email,
		ClientReferenceID: params.Metadata["reservation_id"],
		Metadata:          params.Metadata,
	}, nil
}
