package domain

import (
	"context"
)

// CinemaHall holds the dimensions of the seat grid: SizeRow rows by SizeColumn columns.
type CinemaHall struct {
	ID         int
	Name       string
	SizeRow    int
	SizeColumn int
}

type InfrastructureRepository interface {
	GetActiveSeatsWithRowAndCategory(ctx context.Context, hallID int) ([]Seat, error)
	GetCinemaHallById(ctx context.Context, hallID int) (*CinemaHall, error)
}
