package app

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/metinatakli/screening-reservation/internal/domain"
	"github.com/metinatakli/screening-reservation/internal/mocks"
	"github.com/metinatakli/screening-reservation/internal/reservation"
	"github.com/metinatakli/screening-reservation/internal/validator"
	"github.com/shopspring/decimal"
)

var testNow = time.Date(2026, 10, 15, 18, 0, 0, 0, time.UTC)

type testDeps struct {
	schedule  *domain.Schedule
	user      *domain.User
	infra     *mocks.MockInfrastructureRepo
	tickets   *mocks.MockTicketRepo
	tx        *mocks.MockTxManager
	publisher *mocks.MockPublisher
	payments  *mocks.MockPaymentProvider
}

func newTestDeps() *testDeps {
	return &testDeps{
		schedule: &domain.Schedule{
			ID:           1,
			StartTime:    testNow.Add(3 * time.Hour),
			BasePrice:    decimal.RequireFromString("10.00"),
			CinemaHallID: 1,
		},
		user: &domain.User{
			ID:    1,
			Name:  "Jane",
			Email: "jane@example.com",
			Role:  domain.Role{ID: 1, Name: "customer", MaxReservations: 4},
		},
		infra:     new(mocks.MockInfrastructureRepo),
		tickets:   new(mocks.MockTicketRepo),
		tx:        new(mocks.MockTxManager),
		publisher: new(mocks.MockPublisher),
		payments:  new(mocks.MockPaymentProvider),
	}
}

func (d *testDeps) service() *reservation.Service {
	repos := reservation.Repositories{
		Schedules: &mocks.MockScheduleRepo{
			GetByIdFunc: func(ctx context.Context, id int) (*domain.Schedule, error) {
				if id != d.schedule.ID {
					return nil, domain.ErrRecordNotFound
				}
				return d.schedule, nil
			},
		},
		Users: &mocks.MockUserRepo{
			GetWithRoleByIdFunc: func(ctx context.Context, id int) (*domain.User, error) {
				if id != d.user.ID {
					return nil, domain.ErrRecordNotFound
				}
				return d.user, nil
			},
		},
		Infrastructure: d.infra,
		Tickets:        d.tickets,
		Tx:             d.tx,
	}

	return reservation.NewService(testLogger(), repos,
		reservation.WithPublisher(d.publisher),
		reservation.WithPaymentProvider(d.payments),
		reservation.WithClock(func() time.Time { return testNow }),
	)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestApplication(opts ...func(*Application)) *Application {
	app := &Application{
		config:    Config{Env: "test", Arbiter: ArbiterGlobal},
		validator: validator.NewValidator(),
		logger:    testLogger(),
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// testHallSeats returns a 1x4 hall with seats 1..4; the first row is premium.
func testHallSeats() (*domain.CinemaHall, []domain.Seat) {
	hall := &domain.CinemaHall{ID: 1, Name: "Hall 1", SizeRow: 1, SizeColumn: 4}
	row := &domain.Row{ID: 1, Number: 1, CinemaHallID: 1, Category: domain.RowCategory{
		ID: 1, Name: "Premium", PriceFactor: decimal.RequireFromString("1.5"),
	}}

	seats := make([]domain.Seat, 4)
	for i := range seats {
		seats[i] = domain.Seat{ID: i + 1, Number: i + 1, LayoutRow: 0, LayoutColumn: i, Row: row}
	}

	return hall, seats
}

func executeRequest(t *testing.T, method, url string, body any) (*httptest.ResponseRecorder, *http.Request) {
	var reader io.Reader = http.NoBody

	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		reader = bytes.NewReader(jsonData)
	}

	r := httptest.NewRequest(method, url, reader)
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()

	return w, r
}

func checkErrorResponse(t *testing.T, w *httptest.ResponseRecorder, tt struct {
	wantStatus     int
	wantErrMessage string
}) {
	if tt.wantStatus >= 200 && tt.wantStatus < 300 {
		return
	}

	switch tt.wantStatus {
	case http.StatusUnprocessableEntity:
		var validationResp ValidationErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&validationResp); err != nil {
			t.Fatalf("Failed to decode validation error response: %v", err)
		}

		errorSet := make(map[string]bool)
		for _, vErr := range validationResp.ValidationErrors {
			errorSet[vErr.Issue] = true
		}

		if !errorSet[tt.wantErrMessage] {
			t.Errorf("Expected validation error message '%s' not found in response", tt.wantErrMessage)
		}
	default:
		var errorResp ErrorResponse
		if err := json.NewDecoder(w.Body).Decode(&errorResp); err != nil {
			t.Fatalf("Failed to decode error response: %v", err)
		}

		if tt.wantErrMessage != "" && errorResp.Message != tt.wantErrMessage {
			t.Errorf("Error message = %v, want %v", errorResp.Message, tt.wantErrMessage)
		}
	}
}

func ptr[T any](v T) *T {
	return &v
}
