// Package layout materializes the seat grid of a cinema hall for one schedule.
package layout

import (
	"fmt"

	"github.com/metinatakli/screening-reservation/internal/domain"
)

// Seat is a placed seat annotated with its live state for a schedule.
type Seat struct {
	domain.Seat
	State domain.SeatState
}

func (s Seat) Free() bool {
	return s.State == domain.SeatFree
}

// Layout is a dense Rows x Columns grid. A nil cell means no seat exists at that position,
// which is distinct from a seat that exists but is not selectable.
type Layout struct {
	Rows    int
	Columns int
	cells   [][]*Seat
}

// Materialize places every seat at its grid coordinate and derives its state: locked seats
// are Locked, seats in freeSeatIDs are Free, everything else is Occupied.
func Materialize(hall domain.CinemaHall, seats []domain.Seat, freeSeatIDs []int) (*Layout, error) {
	err := ValidatePlacement(hall, seats)
	if err != nil {
		return nil, err
	}

	free := make(map[int]bool, len(freeSeatIDs))
	for _, id := range freeSeatIDs {
		free[id] = true
	}

	l := newLayout(hall.SizeRow, hall.SizeColumn)

	for _, seat := range seats {
		state := domain.SeatOccupied

		switch {
		case seat.Locked:
			state = domain.SeatLocked
		case free[seat.ID]:
			state = domain.SeatFree
		}

		l.cells[seat.LayoutRow][seat.LayoutColumn] = &Seat{Seat: seat, State: state}
	}

	return l, nil
}

// ValidatePlacement rejects seats placed outside the hall grid or sharing a coordinate.
func ValidatePlacement(hall domain.CinemaHall, seats []domain.Seat) error {
	if hall.SizeRow < 0 || hall.SizeColumn < 0 {
		return fmt.Errorf("%w: hall %d has negative dimensions", domain.ErrInvalidArgument, hall.ID)
	}

	taken := make(map[[2]int]int, len(seats))

	for _, seat := range seats {
		if seat.LayoutRow < 0 || seat.LayoutRow >= hall.SizeRow ||
			seat.LayoutColumn < 0 || seat.LayoutColumn >= hall.SizeColumn {
			return fmt.Errorf(
				"%w: seat %d at (%d,%d) is outside the %dx%d grid",
				domain.ErrInvalidArgument,
				seat.ID,
				seat.LayoutRow,
				seat.LayoutColumn,
				hall.SizeRow,
				hall.SizeColumn,
			)
		}

		coord := [2]int{seat.LayoutRow, seat.LayoutColumn}
		if other, ok := taken[coord]; ok {
			return fmt.Errorf(
				"%w: seats %d and %d share position (%d,%d)",
				domain.ErrInvalidArgument,
				other,
				seat.ID,
				seat.LayoutRow,
				seat.LayoutColumn,
			)
		}

		taken[coord] = seat.ID
	}

	return nil
}

func newLayout(rows, columns int) *Layout {
	cells := make([][]*Seat, rows)
	for i := range cells {
		cells[i] = make([]*Seat, columns)
	}

	return &Layout{Rows: rows, Columns: columns, cells: cells}
}

// At returns the seat at (row, column), or nil when the cell is empty or out of range.
func (l *Layout) At(row, column int) *Seat {
	if row < 0 || row >= l.Rows || column < 0 || column >= l.Columns {
		return nil
	}

	return l.cells[row][column]
}

// Flatten lists the placed seats in row-major order.
func (l *Layout) Flatten() []Seat {
	seats := make([]Seat, 0, l.Rows*l.Columns)

	for _, row := range l.cells {
		for _, cell := range row {
			if cell != nil {
				seats = append(seats, *cell)
			}
		}
	}

	return seats
}

// Grid returns a copy of the cells, nil marking positions without a seat.
func (l *Layout) Grid() [][]*Seat {
	grid := make([][]*Seat, l.Rows)

	for i, row := range l.cells {
		grid[i] = make([]*Seat, len(row))
		for j, cell := range row {
			if cell != nil {
				seat := *cell
				grid[i][j] = &seat
			}
		}
	}

	return grid
}

func (l *Layout) Count() int {
	count := 0

	for _, row := range l.cells {
		for _, cell := range row {
			if cell != nil {
				count++
			}
		}
	}

	return count
}

func (l *Layout) CountByState() map[domain.SeatState]int {
	counts := make(map[domain.SeatState]int, 3)

	for _, row := range l.cells {
		for _, cell := range row {
			if cell != nil {
				counts[cell.State]++
			}
		}
	}

	return counts
}

// MarkFree returns a copy of the layout where the given seats are Free unless locked.
func (l *Layout) MarkFree(seatIDs ...int) *Layout {
	ids := make(map[int]bool, len(seatIDs))
	for _, id := range seatIDs {
		ids[id] = true
	}

	marked := &Layout{Rows: l.Rows, Columns: l.Columns, cells: l.Grid()}

	for _, row := range marked.cells {
		for _, cell := range row {
			if cell != nil && ids[cell.ID] && cell.State != domain.SeatLocked {
				cell.State = domain.SeatFree
			}
		}
	}

	return marked
}
