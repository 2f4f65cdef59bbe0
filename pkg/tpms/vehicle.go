package tpms

import (
	"context"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/models"
)

const firstVehicleYear = 1886

func validateVehicleInput(input *models.VehicleInput) error {
	if input == nil {
		return validationError("Missing required fields: make, model")
	}
	var missing []string
	if strings.TrimSpace(input.Make) == "" {
		missing = append(missing, "make")
	}
	if strings.TrimSpace(input.Model) == "" {
		missing = append(missing, "model")
	}
	if len(missing) > 0 {
		return validationError("Missing required fields: %s", strings.Join(missing, ", "))
	}
	return validateVehicleYear(input.Year)
}

// validateVehicleYear accepts 0 as "not set".
func validateVehicleYear(year int) error {
	if year != 0 && (year < firstVehicleYear || year > clock.Now().Year()+1) {
		return validationError("Invalid vehicle year")
	}
	return nil
}

func (t *TPMS) addVehicle(ctx context.Context, userID string, input *models.VehicleInput) (*models.Vehicle, error) {
	if err := validateVehicleInput(input); err != nil {
		return nil, err
	}

	conn := t.Db.Conn.WithContext(ctx)
	if _, err := t.getUser(ctx, userID); err != nil {
		return nil, err
	}

	vehicle := models.Vehicle{
		UserID:    userID,
		Make:      strings.TrimSpace(input.Make),
		Model:     strings.TrimSpace(input.Model),
		Year:      input.Year,
		CreatedAt: clock.Now().UTC(),
	}
	if err := conn.Create(&vehicle).Error; err != nil {
		return nil, persistenceError("Failed to add vehicle", err)
	}

	common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSVehicle).
		Info("Vehicle added", zap.String("vehicle_id", vehicle.ID), zap.String("user_id", userID))
	return &vehicle, nil
}

func (t *TPMS) getVehicle(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error) {
	return ownedVehicle(t.Db.Conn.WithContext(ctx), userID, vehicleID)
}

func (t *TPMS) listUserVehicles(ctx context.Context, userID string) ([]models.Vehicle, error) {
	vehicles := []models.Vehicle{}
	err := t.Db.Conn.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&vehicles).Error
	if err != nil {
		return nil, persistenceError("Failed to get user vehicles", err)
	}
	return vehicles, nil
}

func (t *TPMS) updateVehicle(ctx context.Context, userID, vehicleID string, update *models.VehicleUpdate) (*models.Vehicle, error) {
	if update == nil {
		return nil, validationError("Nothing to update")
	}

	var vehicle *models.Vehicle
	err := t.UoW.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if vehicle, err = ownedVehicle(tx, userID, vehicleID); err != nil {
			return err
		}

		changes := map[string]any{}
		if update.Make != nil {
			vehicleMake := strings.TrimSpace(*update.Make)
			if vehicleMake == "" {
				return validationError("Make must not be empty")
			}
			changes["make"] = vehicleMake
			vehicle.Make = vehicleMake
		}
		if update.Model != nil {
			model := strings.TrimSpace(*update.Model)
			if model == "" {
				return validationError("Model must not be empty")
			}
			changes["model"] = model
			vehicle.Model = model
		}
		if update.Year != nil {
			if err := validateVehicleYear(*update.Year); err != nil {
				return err
			}
			changes["year"] = *update.Year
			vehicle.Year = *update.Year
		}
		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&models.Vehicle{}).Where("id = ?", vehicleID).Updates(changes).Error; err != nil {
			return persistenceError("Failed to update vehicle", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSVehicle).
		Info("Vehicle updated", zap.String("vehicle_id", vehicleID))
	return vehicle, nil
}

func (t *TPMS) deleteVehicle(ctx context.Context, userID, vehicleID string) error {
	err := t.UoW.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := ownedVehicle(tx, userID, vehicleID); err != nil {
			return err
		}
		if err := tx.Delete(&models.Vehicle{}, "id = ?", vehicleID).Error; err != nil {
			return persistenceError("Failed to delete vehicle", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSVehicle).
		Info("Vehicle deleted", zap.String("vehicle_id", vehicleID))
	return nil
}

type IVehicleImpl struct {
	tpms *TPMS
}

func (iv *IVehicleImpl) AddVehicle(ctx context.Context, userID string, input *models.VehicleInput) (*models.Vehicle, error) {
	return iv.tpms.addVehicle(ctx, userID, input)
}

func (iv *IVehicleImpl) GetVehicle(ctx context.Context, userID, vehicleID string) (*models.Vehicle, error) {
	return iv.tpms.getVehicle(ctx, userID, vehicleID)
}

func (iv *IVehicleImpl) ListUserVehicles(ctx context.Context, userID string) ([]models.Vehicle, error) {
	return iv.tpms.listUserVehicles(ctx, userID)
}

func (iv *IVehicleImpl) UpdateVehicle(ctx context.Context, userID, vehicleID string, update *models.VehicleUpdate) (*models.Vehicle, error) {
	return iv.tpms.updateVehicle(ctx, userID, vehicleID, update)
}

func (iv *IVehicleImpl) DeleteVehicle(ctx context.Context, userID, vehicleID string) error {
	return iv.tpms.deleteVehicle(ctx, userID, vehicleID)
}

func (t *TPMS) GetIVehicle() IVehicle {
	return &IVehicleImpl{tpms: t}
}
