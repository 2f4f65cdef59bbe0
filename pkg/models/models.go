package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	AlertTypeNormal               = "normal"
	AlertTypeLowPressureWarning   = "low_pressure_warning"
	AlertTypeLowPressureCritical  = "low_pressure_critical"
	AlertTypeHighPressureWarning  = "high_pressure_warning"
	AlertTypeHighPressureCritical = "high_pressure_critical"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)

type User struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"user_id"`
	Name         string    `gorm:"size:100;not null" json:"name"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:256;not null" json:"-"`
	Role         string    `gorm:"size:20;not null;default:customer" json:"role"`
	CreatedAt    time.Time `json:"created_at"`

	Vehicles []Vehicle `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
}

type Vehicle struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"vehicle_id"`
	UserID    string    `gorm:"type:varchar(36);index;not null" json:"user_id"`
	Make      string    `gorm:"size:100" json:"make"`
	Model     string    `gorm:"size:100" json:"model"`
	Year      int       `json:"year,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Tires []Tire `gorm:"foreignKey:VehicleID;constraint:OnDelete:CASCADE" json:"-"`
}

// Tire is the only mutable state on the ingestion path: CurrentAlertType is
// nil until the first reading is classified.
type Tire struct {
	ID               string    `gorm:"type:varchar(36);primaryKey" json:"tire_id"`
	VehicleID        string    `gorm:"type:varchar(36);index;not null" json:"vehicle_id"`
	Label            string    `gorm:"size:100;not null" json:"label"`
	OptimalPressure  float64   `gorm:"not null" json:"optimal_pressure"`
	PressureUnit     string    `gorm:"size:10;not null" json:"pressure_unit"`
	CurrentAlertType *string   `gorm:"size:50" json:"current_alert_type"`
	SensorCode       string    `gorm:"size:6;uniqueIndex;not null" json:"sensor_code"`
	InstalledAt      time.Time `json:"installed_at"`

	Readings      []PressureReading `gorm:"foreignKey:TireID;constraint:OnDelete:CASCADE" json:"-"`
	Notifications []Notification    `gorm:"foreignKey:TireID;constraint:OnDelete:CASCADE" json:"-"`
}

// AlertType is immutable reference data, seeded at startup.
type AlertType struct {
	Code          string  `gorm:"column:alert_type;size:50;primaryKey" json:"alert_type"`
	DeviationMin  float64 `gorm:"not null" json:"deviation_min"`
	DeviationMax  float64 `gorm:"not null" json:"deviation_max"`
	SeverityLevel int     `gorm:"not null;default:0" json:"severity_level"`
	Description   string  `gorm:"type:text" json:"description"`
}

// Contains reports whether ratio lies in [DeviationMin, DeviationMax].
func (a AlertType) Contains(ratio float64) bool {
	return a.DeviationMin <= ratio && ratio <= a.DeviationMax
}

type PressureReading struct {
	ID            string    `gorm:"type:varchar(36);primaryKey" json:"reading_id"`
	TireID        string    `gorm:"type:varchar(36);index:idx_reading_tire_created;not null" json:"tire_id"`
	PressureValue float64   `gorm:"not null" json:"pressure_value"`
	CreatedAt     time.Time `gorm:"index:idx_reading_tire_created" json:"created_at"`
}

type Notification struct {
	ID           string    `gorm:"type:varchar(36);primaryKey" json:"notification_id"`
	TireID       string    `gorm:"type:varchar(36);index;not null" json:"tire_id"`
	OldAlertType *string   `gorm:"size:50" json:"old_alert_type"`
	NewAlertType string    `gorm:"size:50;not null" json:"new_alert_type"`
	Title        string    `gorm:"size:255;not null" json:"title"`
	Body         string    `gorm:"type:text;not null" json:"body"`
	SentAt       time.Time `gorm:"index" json:"sent_at"`
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (u *User) BeforeCreate(*gorm.DB) error            { newID(&u.ID); return nil }
func (v *Vehicle) BeforeCreate(*gorm.DB) error         { newID(&v.ID); return nil }
func (t *Tire) BeforeCreate(*gorm.DB) error            { newID(&t.ID); return nil }
func (r *PressureReading) BeforeCreate(*gorm.DB) error { newID(&r.ID); return nil }
func (n *Notification) BeforeCreate(*gorm.DB) error    { newID(&n.ID); return nil }
