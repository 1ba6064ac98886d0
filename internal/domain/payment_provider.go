package domain

import (
	"context"

	"github.com/stripe/stripe-go/v82"
)

// PaymentProvider opens a hosted checkout for the seats of a reservation.
type PaymentProvider interface {
	CreateCheckoutSession(
		ctx context.Context,
		user *User,
		schedule Schedule,
		reservation Reservation) (*stripe.CheckoutSession, error)
}
