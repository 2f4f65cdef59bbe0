// Package tpms is the tire pressure monitoring core. Readings are converted
// into the tire's unit, classified against the alert catalog, stored, and on a
// change of alert type a notification is emitted. The owner-scoped directory
// of users, vehicles and tires lives here as well.
package tpms

//go:generate mockgen -source=tpms.go -destination=mocks/mock_tpms.go -package=mocks -exclude_interfaces=UnitOfWork

import (
	"context"

	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/db"
	"liyu1981.xyz/tpms-service/pkg/dispatch"
	"liyu1981.xyz/tpms-service/pkg/models"
	"liyu1981.xyz/tpms-service/pkg/observability"
)

type IReading interface {
	AddReading(ctx context.Context, userID string, input *models.ReadingInput) (*models.ReadingResult, error)
	GetTireReadings(ctx context.Context, userID, tireID string, days int) ([]models.PressureReading, error)
}

type INotification interface {
	Emit(ctx context.Context, tireID string, oldAlertType *string, newAlertType string) (*models.Notification, error)
	GetUserNotifications(ctx context.Context, userID string, limit int) ([]models.NotificationView, error)
	GetVehicleNotifications(ctx context.Context, userID, vehicleID string, limit int) ([]models.NotificationView, error)
}

type ITire interface {
	AddTire(ctx context.Context, userID string, input *models.TireInput) (*models.Tire, error)
	GetTire(ctx context.Context, userID, tireID string) (*models.TireView, error)
	ListVehicleTires(ctx context.Context, userID, vehicleID string) ([]models.TireView, error)
	UpdateTire(ctx context.Context, userID, tireID string, update *models.TireUpdate) (*models.Tire, error)
	DeleteTire(ctx context.Context, userID, tireID string) error
}

type IVehicle interface {
	AddVehicle(ctx context.Context, userID string, input *models.VehicleInput) (*models.Vehicle, error)
	GetVehicle(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error)
	ListUserVehicles(ctx context.Context, userID string) ([]models.Vehicle, error)
	UpdateVehicle(ctx context.Context, userID, vehicleID string, update *models.VehicleUpdate) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, userID, vehicleID string) error
}

type IUser interface {
	Register(ctx context.Context, input *models.UserInput) (*models.User, error)
	Authenticate(ctx context.Context, email, password string) (*models.User, error)
	GetUser(ctx context.Context, userID string) (*models.User, error)
}

// UnitOfWork runs fn in one transaction; see db.UnitOfWork.
type UnitOfWork interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type TPMS struct {
	Db         db.DB
	UoW        UnitOfWork
	Catalog    *AlertCatalog
	Dispatcher dispatch.Dispatcher
	Metrics    *observability.Metrics

	Reading      IReading
	Notification INotification
	Tire         ITire
	Vehicle      IVehicle
	User         IUser

	tireLocks TireLocks
}

type ServiceOpts struct {
	Reading      IReading
	Notification INotification
	Tire         ITire
	Vehicle      IVehicle
	User         IUser
}

// New wires the default services over database. The catalog still has to be
// loaded with LoadCatalog.
func New(database db.DB) *TPMS {
	t := &TPMS{Db: database, UoW: db.NewUnitOfWork(database.Conn)}
	return t.WithServices(ServiceOpts{
		Reading:      t.GetIReading(),
		Notification: t.GetINotification(),
		Tire:         t.GetITire(),
		Vehicle:      t.GetIVehicle(),
		User:         t.GetIUser(),
	})
}

func (t *TPMS) WithServices(opts ServiceOpts) *TPMS {
	if opts.Reading != nil {
		t.Reading = opts.Reading
	}
	if opts.Notification != nil {
		t.Notification = opts.Notification
	}
	if opts.Tire != nil {
		t.Tire = opts.Tire
	}
	if opts.Vehicle != nil {
		t.Vehicle = opts.Vehicle
	}
	if opts.User != nil {
		t.User = opts.User
	}
	return t
}

func (t *TPMS) WithDispatcher(d dispatch.Dispatcher) *TPMS {
	t.Dispatcher = d
	return t
}

func (t *TPMS) WithMetrics(m *observability.Metrics) *TPMS {
	t.Metrics = m
	return t
}

func (t *TPMS) LoadCatalog(ctx context.Context) error {
	catalog, err := LoadAlertCatalog(ctx, t.Db.Conn)
	if err != nil {
		return err
	}
	t.Catalog = catalog
	return nil
}
