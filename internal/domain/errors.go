package domain

import (
	"errors"
	"fmt"
)

var (
	ErrRecordNotFound      = errors.New("record not found")
	ErrInvalidArgument     = errors.New("invalid argument")
	ErrScheduleStarted     = fmt.Errorf("%w: the screening has already started", ErrInvalidArgument)
	ErrOutOfRange          = errors.New("seat count exceeds the role's reservation limit")
	ErrValidationFailed    = errors.New("seat selection rejected")
	ErrNoRowsAffected      = errors.New("no rows affected")
	ErrSeatAlreadyReserved = errors.New("seat(s) are already reserved")
	ErrAlreadyPaid         = errors.New("reservation has already been paid")
)

// ValidationError names the rule that rejected a seat selection.
type ValidationError struct {
	Rule string
	Err  error
}

func (e *ValidationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: rejected by %s", ErrValidationFailed, e.Rule)
	}

	return fmt.Sprintf("%s: rejected by %s: %s", ErrValidationFailed, e.Rule, e.Err)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

func IsNotFound(err error) bool {
	return errors.Is(err, ErrRecordNotFound)
}

func IsValidation(err error) bool {
	return errors.Is(err, ErrInvalidArgument) ||
		errors.Is(err, ErrOutOfRange)
}

func IsConflict(err error) bool {
	return errors.Is(err, ErrValidationFailed) ||
		errors.Is(err, ErrSeatAlreadyReserved) ||
		errors.Is(err, ErrAlreadyPaid)
}
