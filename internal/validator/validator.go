package validator

import (
	"fmt"
	"slices"
	"strings"

	"github.com/go-playground/validator/v10"
)

const (
	ErrRequired   = "is required"
	ErrMinValue   = "must be at least %s"
	ErrMaxValue   = "must be at most %s"
	ErrMinItems   = "must contain at least %s item(s)"
	ErrMaxItems   = "must contain at most %s item(s)"
	ErrDuplicates = "must not contain duplicate values"
	ErrSortValue  = "must be one of %s"
)

// SortableColumns are the reservation list orderings accepted by the sort parameter; a
// leading '-' sorts descending.
var SortableColumns = []string{"created_at", "id"}

type CreateReservationRequest struct {
	UserId  int   `json:"userId" validate:"required,min=1"`
	SeatIds []int `json:"seatIds" validate:"required,min=1,max=50,unique,dive,min=1"`
}

type UpdateReservationRequest struct {
	SeatIds []int `json:"seatIds" validate:"required,min=1,max=50,unique,dive,min=1"`
}

type PaginationParams struct {
	Page     int    `validate:"min=1,max=10000"`
	PageSize int    `validate:"min=1,max=100"`
	Sort     string `validate:"omitempty,sort"`
}

func NewValidator() *validator.Validate {
	validator := validator.New(validator.WithRequiredStructEnabled())

	validator.RegisterValidation("sort", validateSort)

	return validator
}

func validateSort(fl validator.FieldLevel) bool {
	column := strings.TrimPrefix(fl.Field().String(), "-")

	return slices.Contains(SortableColumns, column)
}

// ValidationMessage converts validator errors into readable messages
func ValidationMessage(err validator.FieldError) string {
	isSlice := err.Kind().String() == "slice"

	switch err.Tag() {
	case "required":
		return ErrRequired
	case "min":
		if isSlice {
			return fmt.Sprintf(ErrMinItems, err.Param())
		}
		return fmt.Sprintf(ErrMinValue, err.Param())
	case "max":
		if isSlice {
			return fmt.Sprintf(ErrMaxItems, err.Param())
		}
		return fmt.Sprintf(ErrMaxValue, err.Param())
	case "unique":
		return ErrDuplicates
	case "sort":
		return fmt.Sprintf(ErrSortValue, strings.Join(SortableColumns, ", "))
	default:
		return "is invalid"
	}
}
