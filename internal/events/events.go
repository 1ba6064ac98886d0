// Package events publishes reservation lifecycle events to a message broker.
package events

import (
	"context"
	"time"
)

type Type string

const (
	ReservationCreated Type = "reservation.created"
	ReservationUpdated Type = "reservation.updated"
	ReservationDeleted Type = "reservation.deleted"
)

// ReservationEvent carries enough for downstream consumers (notifications, analytics)
// to act without querying the primary database.
type ReservationEvent struct {
	Type          Type      `json:"type"`
	ReservationID int       `json:"reservation_id"`
	ScheduleID    int       `json:"schedule_id,omitempty"`
	UserID        int       `json:"user_id,omitempty"`
	SeatIDs       []int     `json:"seat_ids,omitempty"`
	OccurredAt    time.Time `json:"occurred_at"`
}

type Publisher interface {
	Publish(ctx context.Context, event ReservationEvent) error
}

// NopPublisher drops every event. It is used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, ReservationEvent) error {
	return nil
}
