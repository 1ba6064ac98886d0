package validation

import (
	"fmt"

	"github.com/metinatakli/screening-reservation/internal/layout"
)

const SeatAvailableRule = "SeatAvailableValidation"

// SeatAvailable requires every desired seat to exist in the layout and be Free.
type SeatAvailable struct{}

func (SeatAvailable) Name() string {
	return SeatAvailableRule
}

func (SeatAvailable) Validate(snapshot []layout.Seat, desired []int) error {
	byID := make(map[int]layout.Seat, len(snapshot))
	for _, seat := range snapshot {
		byID[seat.ID] = seat
	}

	for _, id := range desired {
		seat, ok := byID[id]
		if !ok {
			return fmt.Errorf("seat %d does not exist in this hall", id)
		}

		if !seat.Free() {
			return fmt.Errorf("seat %d is %s", id, seat.State)
		}
	}

	return nil
}
