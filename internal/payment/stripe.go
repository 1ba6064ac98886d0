package payment

import (
	"context"
	"fmt"
	"strconv"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/checkout/session"
)

type StripePaymentProvider struct {
	failureUrl string
	successUrl string
}

func NewStripePaymentProvider(failureUrl, successUrl string) *StripePaymentProvider {
	return &StripePaymentProvider{
		failureUrl: failureUrl,
		successUrl: successUrl,
	}
}

func (s *StripePaymentProvider) CreateCheckoutSession(
	ctx context.Context,
	user *domain.User,
	schedule domain.Schedule,
	reservation domain.Reservation) (*stripe.CheckoutSession, error) {

	params := checkoutParams(user, schedule, reservation)
	params.SuccessURL = stripe.String(s.successUrl)
	params.CancelURL = stripe.String(s.failureUrl)
	params.Context = ctx

	return session.New(params)
}

func checkoutParams(user *domain.User, schedule domain.Schedule, reservation domain.Reservation) *stripe.CheckoutSessionParams {
	return &stripe.CheckoutSessionParams{
		LineItems: lineItems(schedule, reservation),
		Mode:      stripe.String(string(stripe.CheckoutSessionModePayment)),
		Metadata: map[string]string{
			"reservation_id": strconv.Itoa(reservation.ID),
			"schedule_id":    strconv.Itoa(schedule.ID),
			"user_id":        strconv.Itoa(user.ID),
		},
		CustomerEmail:     stripe.String(user.Email),
		ClientReferenceID: stripe.String(strconv.Itoa(reservation.ID)),
	}
}

// lineItems bills one line per reserved seat at the schedule's base price scaled by the
// seat's row category.
func lineItems(schedule domain.Schedule, reservation domain.Reservation) []*stripe.CheckoutSessionLineItemParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(reservation.SeatReservations))

	for _, sr := range reservation.SeatReservations {
		factor := decimal.NewFromInt(1)
		label := fmt.Sprintf("Seat %d", sr.SeatID)
		category := "Standard"

		if sr.Seat != nil {
			factor = sr.Seat.PriceFactor()

			if sr.Seat.Row != nil {
				label = fmt.Sprintf("Row %d Seat %d", sr.Seat.Row.Number, sr.Seat.Number)
				if sr.Seat.Row.Category.Name != "" {
					category = sr.Seat.Row.Category.Name
				}
			}
		}

		price := domain.SeatPrice(schedule.BasePrice, factor)

		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:   stripe.String(string(stripe.CurrencyUSD)),
				UnitAmount: stripe.Int64(toCents(price)),
				ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
					Name: stripe.String(fmt.Sprintf("Screening #%d - %s", schedule.ID, label)),
					Description: stripe.String(fmt.Sprintf(
						"Showtime: %s • Category: %s",
						schedule.StartTime.Format("Jan 2, 2006 15:04"),
						category,
					)),
				},
			},
			Quantity: stripe.Int64(1),
		})
	}

	return items
}

func toCents(amount decimal.Decimal) int64 {
	return amount.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
