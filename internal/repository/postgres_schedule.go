package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/screening-reservation/internal/domain"
)

type PostgresScheduleRepository struct {
	db *pgxpool.Pool
}

func NewPostgresScheduleRepository(db *pgxpool.Pool) *PostgresScheduleRepository {
	return &PostgresScheduleRepository{
		db: db,
	}
}

func (p *PostgresScheduleRepository) GetById(ctx context.Context, id int) (*domain.Schedule, error) {
	query := `
		SELECT id, start_time, base_price, cinema_hall_id
		FROM schedules
		WHERE id = $1
	`

	var schedule domain.Schedule

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&schedule.ID,
		&schedule.StartTime,
		&schedule.BasePrice,
		&schedule.CinemaHallID,
	)
	if err != nil {
		return nil, notFound(err)
	}

	return &schedule, nil
}
