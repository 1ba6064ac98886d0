package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/metinatakli/screening-reservation/internal/domain"
)

type PostgresTicketRepository struct {
	db *pgxpool.Pool
}

func NewPostgresTicketRepository(db *pgxpool.Pool) *PostgresTicketRepository {
	return &PostgresTicketRepository{
		db: db,
	}
}

// GetFreeSeats returns the ids of the hall's active, unlocked seats that hold no seat
// reservation for the schedule. Inside a transaction the schedule row is locked first,
// so concurrent writers to the same schedule queue up behind it.
func (p *PostgresTicketRepository) GetFreeSeats(ctx context.Context, schedule domain.Schedule) ([]int, error) {
	q := conn(ctx, p.db)

	if tx, ok := txFromContext(ctx); ok {
		_, err := tx.Exec(ctx, `SELECT id FROM schedules WHERE id = $1 FOR UPDATE`, schedule.ID)
		if err != nil {
			return nil, err
		}
	}

	query := `
		SELECT s.id
		FROM seats s
		WHERE s.cinema_hall_id = $1
			AND s.active
			AND NOT s.locked
			AND NOT EXISTS (
				SELECT 1
				FROM seat_reservations sr
				WHERE sr.schedule_id = $2 AND sr.seat_id = s.id
			)
		ORDER BY s.id
	`

	rows, err := q.Query(ctx, query, schedule.CinemaHallID, schedule.ID)
	if err != nil {
		return nil, err
	}

	return pgx.CollectRows(rows, pgx.RowTo[int])
}

// AddReservation inserts a reservation and one seat reservation per seat. It must run
// inside a transaction for the inserts to be atomic.
func (p *PostgresTicketRepository) AddReservation(
	ctx context.Context,
	seatIDs []int,
	scheduleID,
	userID int) (int, error) {

	q := conn(ctx, p.db)

	query := `
		INSERT INTO reservations (schedule_id, user_id)
		VALUES ($1, $2)
		RETURNING id
	`

	var reservationID int

	err := q.QueryRow(ctx, query, scheduleID, userID).Scan(&reservationID)
	if err != nil {
		return 0, err
	}

	rows := make([][]any, 0, len(seatIDs))
	for _, seatID := range seatIDs {
		rows = append(rows, []any{reservationID, scheduleID, seatID})
	}

	_, err = q.CopyFrom(
		ctx,
		pgx.Identifier{"seat_reservations"},
		[]string{"reservation_id", "schedule_id", "seat_id"},
		pgx.CopyFromRows(rows),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return 0, domain.ErrSeatAlreadyReserved
		}

		return 0, err
	}

	return reservationID, nil
}

func (p *PostgresTicketRepository) GetReservationById(ctx context.Context, id int) (*domain.Reservation, error) {
	query := `
		SELECT id, schedule_id, user_id, ticket_id, created_at
		FROM reservations
		WHERE id = $1
	`

	var reservation domain.Reservation

	err := conn(ctx, p.db).QueryRow(ctx, query, id).Scan(
		&reservation.ID,
		&reservation.ScheduleID,
		&reservation.UserID,
		&reservation.TicketID,
		&reservation.CreatedAt,
	)
	if err != nil {
		return nil, notFound(err)
	}

	seatReservations, err := p.seatReservationsWithSeats(ctx, []int{id})
	if err != nil {
		return nil, err
	}

	reservation.SeatReservations = seatReservations[id]

	return &reservation, nil
}

func (p *PostgresTicketRepository) GetReservationsByUserId(
	ctx context.Context,
	userID int,
	pagination domain.Pagination) ([]domain.Reservation, *domain.Metadata, error) {

	query := fmt.Sprintf(`
		SELECT COUNT(*) OVER(), id, schedule_id, user_id, ticket_id, created_at
		FROM reservations
		WHERE user_id = $1
		ORDER BY %s
		LIMIT $2 OFFSET $3
	`, reservationOrder(pagination))

	rows, err := conn(ctx, p.db).Query(ctx, query, userID, pagination.Limit(), pagination.Offset())
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	reservations := make([]domain.Reservation, 0)
	totalRecords := 0

	for rows.Next() {
		var reservation domain.Reservation

		err = rows.Scan(
			&totalRecords,
			&reservation.ID,
			&reservation.ScheduleID,
			&reservation.UserID,
			&reservation.TicketID,
			&reservation.CreatedAt,
		)
		if err != nil {
			return nil, nil, err
		}

		reservations = append(reservations, reservation)
	}

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	ids := make([]int, len(reservations))
	for i, r := range reservations {
		ids[i] = r.ID
	}

	seatReservations, err := p.seatReservationsWithSeats(ctx, ids)
	if err != nil {
		return nil, nil, err
	}

	for i := range reservations {
		reservations[i].SeatReservations = seatReservations[reservations[i].ID]
	}

	metadata := domain.NewMetadata(totalRecords, pagination)

	return reservations, metadata, nil
}

// reservationOrder builds the ORDER BY clause of a reservation listing. Unknown columns
// fall back to newest first; id breaks ties so pages are stable.
func reservationOrder(pagination domain.Pagination) string {
	switch pagination.SortColumn() {
	case "created_at":
		return fmt.Sprintf("created_at %s, id %s", pagination.SortDirection(), pagination.SortDirection())
	case "id":
		return fmt.Sprintf("id %s", pagination.SortDirection())
	default:
		return "created_at DESC, id DESC"
	}
}

// seatReservationsWithSeats loads the seat reservations of the given reservations with
// their seat, row and price category, grouped by reservation id.
func (p *PostgresTicketRepository) seatReservationsWithSeats(
	ctx context.Context,
	reservationIDs []int) (map[int][]domain.SeatReservation, error) {

	result := make(map[int][]domain.SeatReservation, len(reservationIDs))
	if len(reservationIDs) == 0 {
		return result, nil
	}

	query := `
		SELECT
			sr.id,
			sr.reservation_id,
			sr.schedule_id,
			sr.seat_id,
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
		FROM seat_reservations sr
		JOIN seats s ON sr.seat_id = s.id
		JOIN seat_rows r ON s.row_id = r.id
		JOIN row_categories c ON r.row_category_id = c.id
		WHERE sr.reservation_id = ANY($1)
		ORDER BY sr.reservation_id, sr.id
	`

	rows, err := conn(ctx, p.db).Query(ctx, query, reservationIDs)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var sr domain.SeatReservation
		var seat domain.Seat
		var row domain.Row

		err = rows.Scan(
			&sr.ID,
			&sr.ReservationID,
			&sr.ScheduleID,
			&sr.SeatID,
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

		seat.ID = sr.SeatID
		seat.Row = &row
		sr.Seat = &seat

		result[sr.ReservationID] = append(result[sr.ReservationID], sr)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}

func (p *PostgresTicketRepository) GetSeatReservationsByReservationId(
	ctx context.Context,
	reservationID int) ([]domain.SeatReservation, error) {

	query := `
		SELECT id, reservation_id, schedule_id, seat_id
		FROM seat_reservations
		WHERE reservation_id = $1
		ORDER BY id
	`

	return p.collectSeatReservations(ctx, query, reservationID)
}

func (p *PostgresTicketRepository) GetSeatReservationsByIds(ctx context.Context, ids []int) ([]domain.SeatReservation, error) {
	query := `
		SELECT id, reservation_id, schedule_id, seat_id
		FROM seat_reservations
		WHERE id = ANY($1)
		ORDER BY id
	`

	return p.collectSeatReservations(ctx, query, ids)
}

func (p *PostgresTicketRepository) collectSeatReservations(
	ctx context.Context,
	query string,
	args ...any) ([]domain.SeatReservation, error) {

	rows, err := conn(ctx, p.db).Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	seatReservations := make([]domain.SeatReservation, 0)

	for rows.Next() {
		var sr domain.SeatReservation

		err = rows.Scan(&sr.ID, &sr.ReservationID, &sr.ScheduleID, &sr.SeatID)
		if err != nil {
			return nil, err
		}

		seatReservations = append(seatReservations, sr)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return seatReservations, nil
}

func (p *PostgresTicketRepository) CountSeatReservationsByScheduleId(ctx context.Context, scheduleID int) (int, error) {
	var count int

	err := conn(ctx, p.db).QueryRow(ctx,
		`SELECT COUNT(*) FROM seat_reservations WHERE schedule_id = $1`,
		scheduleID,
	).Scan(&count)

	return count, err
}

func (p *PostgresTicketRepository) DeleteSeatReservation(ctx context.Context, id int) (bool, error) {
	tag, err := conn(ctx, p.db).Exec(ctx, `DELETE FROM seat_reservations WHERE id = $1`, id)
	if err != nil {
		return false, err
	}

	return tag.RowsAffected() == 1, nil
}

func (p *PostgresTicketRepository) DeleteReservation(ctx context.Context, id int) (int64, error) {
	tag, err := conn(ctx, p.db).Exec(ctx, `DELETE FROM reservations WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

func (p *PostgresTicketRepository) DeleteTicket(ctx context.Context, id int) (int64, error) {
	tag, err := conn(ctx, p.db).Exec(ctx, `DELETE FROM tickets WHERE id = $1`, id)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// AddSeatsToReservation attaches seats to an existing reservation on the reservation's
// schedule. It reports false when the reservation does not exist.
func (p *PostgresTicketRepository) AddSeatsToReservation(
	ctx context.Context,
	reservationID int,
	seatIDs []int) (bool, error) {

	query := `
		INSERT INTO seat_reservations (reservation_id, schedule_id, seat_id)
		SELECT r.id, r.schedule_id, seat.id
		FROM reservations r
		CROSS JOIN unnest($2::int[]) AS seat(id)
		WHERE r.id = $1
	`

	tag, err := conn(ctx, p.db).Exec(ctx, query, reservationID, seatIDs)
	if err != nil {
		if isUniqueViolation(err) {
			return false, domain.ErrSeatAlreadyReserved
		}

		return false, err
	}

	return tag.RowsAffected() == int64(len(seatIDs)), nil
}
