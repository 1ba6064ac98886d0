package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Schedule struct {
	ID           int
	StartTime    time.Time
	BasePrice    decimal.Decimal
	CinemaHallID int
}

// Started reports whether the screening has begun at the given instant.
func (s Schedule) Started(now time.Time) bool {
	return now.After(s.StartTime)
}

type ScheduleRepository interface {
	GetById(ctx context.Context, id int) (*Schedule, error)
}
