package domain

import "github.com/shopspring/decimal"

type SeatState string

const (
	SeatFree     SeatState = "free"
	SeatOccupied SeatState = "occupied"
	SeatLocked   SeatState = "locked"
)

// Seat is a physical seat placed at (LayoutRow, LayoutColumn) of its hall's grid.
// Coordinates are zero-based and unique per cinema hall.
type Seat struct {
	ID           int
	Number       int
	LayoutRow    int
	LayoutColumn int
	Locked       bool
	Row          *Row
}

type Row struct {
	ID           int
	Number       int
	CinemaHallID int
	Category     RowCategory
}

// RowCategory determines the price multiplier applied to a schedule's base price.
type RowCategory struct {
	ID          int
	Name        string
	PriceFactor decimal.Decimal
}

// PriceFactor returns the seat's row-category factor, or one when the row is not loaded.
func (s Seat) PriceFactor() decimal.Decimal {
	if s.Row == nil || s.Row.Category.PriceFactor.IsZero() {
		return decimal.NewFromInt(1)
	}

	return s.Row.Category.PriceFactor
}

func SeatPrice(basePrice, factor decimal.Decimal) decimal.Decimal {
	return basePrice.Mul(factor).Round(2)
}
