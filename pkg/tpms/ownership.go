package tpms

import (
	"errors"

	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/models"
)

func lookupError(err error, format string, args ...any) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return notFoundError(format, args...)
	}
	return persistenceError("Database lookup failed", err)
}

// ownedVehicle loads the vehicle through q and checks it belongs to userID.
func ownedVehicle(q *gorm.DB, userID, vehicleID string) (*models.Vehicle, error) {
	var vehicle models.Vehicle
	if err := q.First(&vehicle, "id = ?", vehicleID).Error; err != nil {
		return nil, lookupError(err, "Vehicle %s not found", vehicleID)
	}
	if vehicle.UserID != userID {
		return nil, forbiddenError("Forbidden: You do not own this vehicle")
	}
	return &vehicle, nil
}

// ownedTire loads the tire through q and checks its vehicle belongs to userID.
func ownedTire(q *gorm.DB, userID, tireID string) (*models.Tire, error) {
	var tire models.Tire
	if err := q.First(&tire, "id = ?", tireID).Error; err != nil {
		return nil, lookupError(err, "Tire %s not found", tireID)
	}

	var vehicle models.Vehicle
	if err := q.Select("id", "user_id").First(&vehicle, "id = ?", tire.VehicleID).Error; err != nil {
		return nil, lookupError(err, "Vehicle %s not found", tire.VehicleID)
	}
	if vehicle.UserID != userID {
		return nil, forbiddenError("Forbidden: You do not own this tire")
	}
	return &tire, nil
}
