package app

import (
	"net/http"

	"github.com/metinatakli/screening-reservation/internal/domain"
	appvalidator "github.com/metinatakli/screening-reservation/internal/validator"
)

func (app *Application) GetReservation(w http.ResponseWriter, r *http.Request) {
	reservationId, err := readIDParam(r, "reservationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	reservation, err := app.service.GetReservation(r.Context(), reservationId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(*reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) UpdateReservation(w http.ResponseWriter, r *http.Request) {
	reservationId, err := readIDParam(r, "reservationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input appvalidator.UpdateReservationRequest

	err = app.readJSON(w, r, &input)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(input)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	reservation, err := app.service.UpdateReservation(r.Context(), reservationId, input.SeatIds)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toReservationResponse(*reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

// DeleteReservation answers 404 when the reservation holds no seats, since nothing was
// deleted.
func (app *Application) DeleteReservation(w http.ResponseWriter, r *http.Request) {
	reservationId, err := readIDParam(r, "reservationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	deleted, err := app.service.DeleteReservation(r.Context(), reservationId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	if !deleted {
		app.notFoundResponse(w, r)
		return
	}

	err = app.writeJSON(w, http.StatusOK, DeleteReservationResponse{Deleted: true}, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetReservationsOfUser(w http.ResponseWriter, r *http.Request) {
	userId, err := readIDParam(r, "userId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	params, err := readPaginationParams(r)
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	err = app.validator.Struct(params)
	if err != nil {
		app.failedValidationResponse(w, r, err)
		return
	}

	pagination := domain.Pagination{
		Page:     params.Page,
		PageSize: params.PageSize,
		Sort:     params.Sort,
	}

	reservations, metadata, err := app.service.GetReservationsByUser(r.Context(), userId, pagination)
	if err != nil {
		app.serverErrorResponse(w, r, err)
		return
	}

	resp := UserReservationsResponse{
		Reservations: toReservationResponses(reservations),
		Metadata:     toApiMetadata(metadata),
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateCheckoutSession(w http.ResponseWriter, r *http.Request) {
	reservationId, err := readIDParam(r, "reservationId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	session, err := app.service.Checkout(r.Context(), reservationId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toCheckoutSessionResponse(session), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func readPaginationParams(r *http.Request) (appvalidator.PaginationParams, error) {
	var params appvalidator.PaginationParams
	var err error

	params.Page, err = readInt(r, "page", DefaultPage)
	if err != nil {
		return params, err
	}

	params.PageSize, err = readInt(r, "pageSize", DefaultPageSize)
	if err != nil {
		return params, err
	}

	params.Sort = r.URL.Query().Get("sort")

	return params, nil
}
