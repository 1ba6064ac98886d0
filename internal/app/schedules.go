package app

import (
	"net/http"

	appvalidator "github.com/metinatakli/screening-reservation/internal/validator"
)

func (app *Application) GetScheduleLayout(w http.ResponseWriter, r *http.Request) {
	scheduleId, err := readIDParam(r, "scheduleId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	schedule, l, err := app.service.ScheduleLayout(r.Context(), scheduleId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusOK, toLayoutResponse(schedule.ID, schedule.BasePrice, l), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) GetScheduleCapacity(w http.ResponseWriter, r *http.Request) {
	scheduleId, err := readIDParam(r, "scheduleId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	loadFactor, err := app.service.GetCapacity(r.Context(), scheduleId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	resp := CapacityResponse{
		ScheduleId: scheduleId,
		LoadFactor: loadFactor,
	}

	err = app.writeJSON(w, http.StatusOK, resp, nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}

func (app *Application) CreateReservation(w http.ResponseWriter, r *http.Request) {
	scheduleId, err := readIDParam(r, "scheduleId")
	if err != nil {
		app.badRequestResponse(w, r, err)
		return
	}

	var input appvalidator.CreateReservationRequest

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

	reservation, err := app.service.AddReservation(r.Context(), input.SeatIds, scheduleId, input.UserId)
	if err != nil {
		app.reservationErrorResponse(w, r, err)
		return
	}

	err = app.writeJSON(w, http.StatusCreated, toReservationResponse(*reservation), nil)
	if err != nil {
		app.serverErrorResponse(w, r, err)
	}
}
