package reservation

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/shopspring/decimal"
)

const (
	testHallRows    = 2
	testHallColumns = 5
)

var testNow = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testHall() *domain.CinemaHall {
	return &domain.CinemaHall{ID: 1, Name: "Hall 1", SizeRow: testHallRows, SizeColumn: testHallColumns}
}

// testSeatID numbers the seats of the test hall row by row, starting at one.
func testSeatID(row, col int) int {
	return row*testHallColumns + col + 1
}

func testSeats() []domain.Seat {
	seats := make([]domain.Seat, 0, testHallRows*testHallColumns)

	for r := 0; r < testHallRows; r++ {
		for c := 0; c < testHallColumns; c++ {
			seats = append(seats, domain.Seat{
				ID:           testSeatID(r, c),
				Number:       c + 1,
				LayoutRow:    r,
				LayoutColumn: c,
			})
		}
	}

	return seats
}

func allSeatIDs() []int {
	ids := make([]int, 0, testHallRows*testHallColumns)
	for _, seat := range testSeats() {
		ids = append(ids, seat.ID)
	}

	return ids
}

// freeExcept returns every seat id of the test hall not listed in taken.
func freeExcept(taken ...int) []int {
	skip := make(map[int]bool, len(taken))
	for _, id := range taken {
		skip[id] = true
	}

	var ids []int
	for _, id := range allSeatIDs() {
		if !skip[id] {
			ids = append(ids, id)
		}
	}

	return ids
}

func testSchedule() *domain.Schedule {
	return &domain.Schedule{
		ID:           1,
		StartTime:    testNow.Add(2 * time.Hour),
		BasePrice:    decimal.RequireFromString("12.50"),
		CinemaHallID: 1,
	}
}

func testUser(maxReservations int) *domain.User {
	return &domain.User{
		ID:    1,
		Name:  "Jane",
		Email: "jane@example.com",
		Role:  domain.Role{ID: 1, Name: "customer", MaxReservations: maxReservations},
	}
}

func seatReservations(reservationID int, seatIDs ...int) []domain.SeatReservation {
	srs := make([]domain.SeatReservation, len(seatIDs))
	for i, id := range seatIDs {
		srs[i] = domain.SeatReservation{ID: reservationID*100 + i, ReservationID: reservationID, ScheduleID: 1, SeatID: id}
	}

	return srs
}

// memoryTickets is an in-memory ticket store enforcing the one-reservation-per-seat
// constraint of the database.
type memoryTickets struct {
	domain.TicketRepository

	mu           sync.Mutex
	nextID       int
	reservations map[int]*domain.Reservation
	seatOwner    map[int]int
	inserts      int
}

func newMemoryTickets() *memoryTickets {
	return &memoryTickets{
		nextID:       1,
		reservations: make(map[int]*domain.Reservation),
		seatOwner:    make(map[int]int),
	}
}

func (m *memoryTickets) GetFreeSeats(_ context.Context, _ domain.Schedule) ([]int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var free []int
	for _, id := range allSeatIDs() {
		if _, taken := m.seatOwner[id]; !taken {
			free = append(free, id)
		}
	}

	return free, nil
}

func (m *memoryTickets) AddReservation(_ context.Context, seatIDs []int, scheduleID, userID int) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, id := range seatIDs {
		if _, taken := m.seatOwner[id]; taken {
			return 0, domain.ErrSeatAlreadyReserved
		}
	}

	id := m.nextID
	m.nextID++
	m.inserts++

	m.reservations[id] = &domain.Reservation{
		ID:               id,
		ScheduleID:       scheduleID,
		UserID:           userID,
		SeatReservations: seatReservations(id, seatIDs...),
		CreatedAt:        testNow,
	}

	for _, seatID := range seatIDs {
		m.seatOwner[seatID] = id
	}

	return id, nil
}

func (m *memoryTickets) GetReservationById(_ context.Context, id int) (*domain.Reservation, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.reservations[id]
	if !ok {
		return nil, domain.ErrRecordNotFound
	}

	copied := *r
	return &copied, nil
}

type directTx struct{}

func (directTx) RunInTx(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type staticInfrastructure struct {
	domain.InfrastructureRepository
}

func (staticInfrastructure) GetActiveSeatsWithRowAndCategory(context.Context, int) ([]domain.Seat, error) {
	return testSeats(), nil
}

func (staticInfrastructure) GetCinemaHallById(context.Context, int) (*domain.CinemaHall, error) {
	return testHall(), nil
}
