package models

import "time"

// Service inputs and views shared by the tpms core and its transports.

type ReadingInput struct {
	TireID        string
	PressureValue float64
	PressureUnit  string
}

// ReadingResult is what ingestion returns. NotificationFailed is set when the
// reading and state change were committed but the notification was not.
type ReadingResult struct {
	ReadingID          string    `json:"reading_id"`
	PressureValue      float64   `json:"pressure_value"`
	CreatedAt          time.Time `json:"created_at"`
	AlertType          string    `json:"alert_type"`
	Transitioned       bool      `json:"transitioned"`
	NotificationID     string    `json:"notification_id,omitempty"`
	NotificationFailed bool      `json:"notification_failed"`
}

// NotificationView is a stored notification plus the vehicle of its tire.
type NotificationView struct {
	Notification
	VehicleID string `json:"vehicle_id"`
}

type TireInput struct {
	VehicleID       string
	Label           string
	OptimalPressure float64
	PressureUnit    string
}

// TireUpdate changes only the fields that are set. OptimalPressure and
// PressureUnit are applied together or not at all.
type TireUpdate struct {
	Label           *string
	OptimalPressure *float64
	PressureUnit    *string
}

// TireView is a tire with its latest reading.
type TireView struct {
	Tire
	CurrentPressure   *float64   `json:"current_pressure"`
	PressureUpdatedAt *time.Time `json:"pressure_updated_at"`
}

type VehicleInput struct {
	Make  string
	Model string
	Year  int
}

// VehicleUpdate changes only the fields that are set.
type VehicleUpdate struct {
	Make  *string
	Model *string
	Year  *int
}

type UserInput struct {
	Name     string
	Email    string
	Password string
}
