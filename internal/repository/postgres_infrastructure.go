package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/screening-reservation/internal/domain"
)

type PostgresInfrastructureRepository struct {
	db *pgxpool.Pool
}

func NewPostgresInfrastructureRepository(db *pgxpool.Pool) *PostgresInfrastructureRepository {
	return &PostgresInfrastructureRepository{
		db: db,
	}
}

func (p *PostgresInfrastructureRepository) GetCinemaHallById(ctx context.Context, hallID int) (*domain.CinemaHall, error) {
	query := `
		SELECT id, name, size_row, size_column
		FROM cinema_halls
		WHERE id = $1
	`

	var hall domain.CinemaHall

	err := conn(ctx, p.db).QueryRow(ctx, query, hallID).Scan(
		&hall.ID,
		&hall.Name,
		&hall.SizeRow,
		&hall.SizeColumn,
	)
	if err != nil {
		return nil, notFound(err)
	}

	return &hall, nil
}

// GetActiveSeatsWithRowAndCategory returns the seats of a hall that are in service,
// each with its row and the row's price category.
func (p *PostgresInfrastructureRepository) GetActiveSeatsWithRowAndCategory(
	ctx context.Context,
	hallID int) ([]domain.Seat, error) {

	query := `
		SELECT
			s.id,
			s.number,
			s.layout_row,
			s.layout_column,
			s.locked,
			r.id,
			r.number,
			r.cinema_hall_id,
			c.id,
			c.name,
			c.price_factor
		FROM seats s
		JOIN seat_rows r ON s.row_id = r.id
		JOIN row_categories c ON r.row_category_id = c.id
		WHERE s.cinema_hall_id = $1 AND s.active
		ORDER BY s.layout_row, s.layout_column
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, hallID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seats := make([]domain.Seat, 0)

	for rows.Next() {
		var seat domain.Seat
		var row domain.Row

		err = rows.Scan(
			&seat.ID,
			&seat.Number,
			&seat.LayoutRow,
			&seat.LayoutColumn,
			&seat.Locked,
			&row.ID,
			&row.Number,
			&row.CinemaHallID,
			&row.Category.ID,
			&row.Category.Name,
			&row.Category.PriceFactor,
		)
		if err != nil {
			return nil, err
		}

		seat.Row = &row
		seats = append(seats, seat)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seats, nil
}
