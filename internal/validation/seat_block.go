package validation

import (
	"fmt"
	"sort"

	"github.com/metinatakli/screening-reservation/internal/layout"
)

const SeatBlockRule = "SeatBlockValidation"

// SeatBlock rejects selections that strand a short run of free seats in a row.
//
// After the selection is applied, a run of 1..MaxStrandedRun free seats is stranded when
// both of its neighbours are non-free seats and at least one of them is being selected.
// An empty cell ends a run; when EdgesAsWalls is set, the hall edge or an aisle also
// counts as a non-free neighbour.
type SeatBlock struct {
	MaxStrandedRun int
	EdgesAsWalls   bool
}

// NewSeatBlock returns the default policy: never leave exactly one free seat between two
// taken seats of the same row.
func NewSeatBlock() SeatBlock {
	return SeatBlock{MaxStrandedRun: 1}
}

func (SeatBlock) Name() string {
	return SeatBlockRule
}

type neighbour int

const (
	wall neighbour = iota
	takenSeat
	selectedSeat
)

func (b SeatBlock) Validate(snapshot []layout.Seat, desired []int) error {
	if b.MaxStrandedRun < 1 || len(desired) == 0 {
		return nil
	}

	selected := make(map[int]bool, len(desired))
	for _, id := range desired {
		selected[id] = true
	}

	rows := make(map[int]map[int]layout.Seat)
	for _, seat := range snapshot {
		if rows[seat.LayoutRow] == nil {
			rows[seat.LayoutRow] = make(map[int]layout.Seat)
		}
		rows[seat.LayoutRow][seat.LayoutColumn] = seat
	}

	rowNumbers := make([]int, 0, len(rows))
	for r := range rows {
		rowNumbers = append(rowNumbers, r)
	}
	sort.Ints(rowNumbers)

	for _, r := range rowNumbers {
		err := b.checkRow(r, rows[r], selected)
		if err != nil {
			return err
		}
	}

	return nil
}

func (b SeatBlock) checkRow(row int, cells map[int]layout.Seat, selected map[int]bool) error {
	columns := make([]int, 0, len(cells))
	for c := range cells {
		columns = append(columns, c)
	}
	sort.Ints(columns)

	classify := func(col int) (neighbour, bool) {
		seat, ok := cells[col]
		switch {
		case !ok:
			return wall, false
		case selected[seat.ID]:
			return selectedSeat, false
		case !seat.Free():
			return takenSeat, false
		default:
			return 0, true
		}
	}

	for i := 0; i < len(columns); i++ {
		start := columns[i]
		if _, free := classify(start); !free {
			continue
		}

		left, leftFree := classify(start - 1)
		if leftFree {
			continue
		}

		end := start
		for {
			if _, free := classify(end + 1); !free {
				break
			}
			end++
		}

		right, _ := classify(end + 1)
		length := end - start + 1

		if length <= b.MaxStrandedRun && b.encloses(left, right) {
			return fmt.Errorf(
				"selection leaves %d isolated seat(s) in row %d starting at column %d",
				length,
				row,
				start,
			)
		}

		for i+1 < len(columns) && columns[i+1] <= end {
			i++
		}
	}

	return nil
}

func (b SeatBlock) encloses(left, right neighbour) bool {
	if left != selectedSeat && right != selectedSeat {
		return false
	}

	closed := func(n neighbour) bool {
		return n != wall || b.EdgesAsWalls
	}

	return closed(left) && closed(right)
}
