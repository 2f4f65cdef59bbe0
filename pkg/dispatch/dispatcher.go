// Package dispatch delivers stored notifications to external consumers.
// Delivery is best effort: callers log a failed Dispatch and move on.
package dispatch

import (
	"context"
	"errors"
	"time"
)

// Event is the wire form of a stored notification.
type Event struct {
	NotificationID string    `json:"notification_id"`
	TireID         string    `json:"tire_id"`
	VehicleID      string    `json:"vehicle_id"`
	TireLabel      string    `json:"tire_label"`
	OldAlertType   *string   `json:"old_alert_type"`
	NewAlertType   string    `json:"new_alert_type"`
	SeverityLevel  int       `json:"severity_level"`
	Title          string    `json:"title"`
	Body           string    `json:"body"`
	SentAt         time.Time `json:"sent_at"`
}

type Dispatcher interface {
	Dispatch(ctx context.Context, event Event) error
	Close() error
}

// Multi fans an event out to every dispatcher and joins their errors.
type Multi []Dispatcher

func (m Multi) Dispatch(ctx context.Context, event Event) error {
	var errs []error
	for _, d := range m {
		if err := d.Dispatch(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (m Multi) Close() error {
	var errs []error
	for _, d := range m {
		if err := d.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
