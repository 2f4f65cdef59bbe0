package tpms

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"strings"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/models"
)

const (
	sensorCodeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	sensorCodeLength   = 6
	sensorCodeAttempts = 16
)

func generateSensorCode() (string, error) {
	alphabetSize := big.NewInt(int64(len(sensorCodeAlphabet)))
	var sb strings.Builder
	for range sensorCodeLength {
		n, err := rand.Int(rand.Reader, alphabetSize)
		if err != nil {
			return "", err
		}
		sb.WriteByte(sensorCodeAlphabet[n.Int64()])
	}
	return sb.String(), nil
}

func (t *TPMS) uniqueSensorCode(tx *gorm.DB) (string, error) {
	for range sensorCodeAttempts {
		code, err := generateSensorCode()
		if err != nil {
			return "", persistenceError("Failed to generate sensor code", err)
		}
		var count int64
		if err := tx.Model(&models.Tire{}).Where("sensor_code = ?", code).Count(&count).Error; err != nil {
			return "", persistenceError("Failed to generate sensor code", err)
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", &Error{Kind: KindConflict, Message: "Could not allocate a unique sensor code"}
}

// validateOptimalPressure checks value as a pressure in unit and returns it
// with the stored precision.
func validateOptimalPressure(value float64, unit string) (float64, string, error) {
	parsedUnit, err := ParsePressureUnit(unit)
	if err != nil {
		return 0, "", validationError("Invalid pressure unit. Use 'bar', 'psi', or 'kPa'")
	}
	optimal, err := ConvertPressure(value, string(parsedUnit), string(parsedUnit))
	if err != nil {
		return 0, "", err
	}
	optimal = roundPressure(optimal)
	if optimal <= 0 {
		return 0, "", validationError("Optimal pressure must be greater than 0")
	}
	return optimal, string(parsedUnit), nil
}

func (t *TPMS) addTire(ctx context.Context, userID string, input *models.TireInput) (*models.Tire, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSTire)

	if input == nil || strings.TrimSpace(input.VehicleID) == "" || strings.TrimSpace(input.Label) == "" || input.PressureUnit == "" {
		return nil, validationError("Missing required fields: vehicle_id, label, optimal_pressure, pressure_unit")
	}

	var tire models.Tire
	err := t.UoW.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := ownedVehicle(tx, userID, input.VehicleID); err != nil {
			return err
		}

		optimal, unit, err := validateOptimalPressure(input.OptimalPressure, input.PressureUnit)
		if err != nil {
			return err
		}

		code, err := t.uniqueSensorCode(tx)
		if err != nil {
			return err
		}

		tire = models.Tire{
			VehicleID:       input.VehicleID,
			Label:           strings.TrimSpace(input.Label),
			OptimalPressure: optimal,
			PressureUnit:    unit,
			SensorCode:      code,
			InstalledAt:     clock.Now().UTC(),
		}
		if err := tx.Create(&tire).Error; err != nil {
			return persistenceError("Failed to add tire", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info("Tire added",
		zap.String("tire_id", tire.ID),
		zap.String("vehicle_id", tire.VehicleID),
		zap.String("sensor_code", tire.SensorCode))
	return &tire, nil
}

func (t *TPMS) latestReading(conn *gorm.DB, tireID string) (*models.PressureReading, error) {
	var reading models.PressureReading
	err := conn.Where("tire_id = ?", tireID).Order("created_at desc").Limit(1).Take(&reading).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, persistenceError("Failed to get latest reading", err)
	}
	return &reading, nil
}

func (t *TPMS) tireView(conn *gorm.DB, tire models.Tire) (models.TireView, error) {
	view := models.TireView{Tire: tire}
	latest, err := t.latestReading(conn, tire.ID)
	if err != nil {
		return view, err
	}
	if latest != nil {
		view.CurrentPressure = &latest.PressureValue
		view.PressureUpdatedAt = &latest.CreatedAt
	}
	return view, nil
}

func (t *TPMS) getTire(ctx context.Context, userID, tireID string) (*models.TireView, error) {
	conn := t.Db.Conn.WithContext(ctx)
	tire, err := ownedTire(conn, userID, tireID)
	if err != nil {
		return nil, err
	}
	view, err := t.tireView(conn, *tire)
	if err != nil {
		return nil, err
	}
	return &view, nil
}

func (t *TPMS) listVehicleTires(ctx context.Context, userID, vehicleID string) ([]models.TireView, error) {
	conn := t.Db.Conn.WithContext(ctx)
	if _, err := ownedVehicle(conn, userID, vehicleID); err != nil {
		return nil, err
	}

	var tires []models.Tire
	if err := conn.Where("vehicle_id = ?", vehicleID).Order("installed_at asc").Find(&tires).Error; err != nil {
		return nil, persistenceError("Failed to get vehicle tires", err)
	}

	views := make([]models.TireView, 0, len(tires))
	for _, tire := range tires {
		view, err := t.tireView(conn, tire)
		if err != nil {
			return nil, err
		}
		views = append(views, view)
	}
	return views, nil
}

func (t *TPMS) updateTire(ctx context.Context, userID, tireID string, update *models.TireUpdate) (*models.Tire, error) {
	if update == nil {
		return nil, validationError("Nothing to update")
	}

	unlock := t.tireLocks.Lock(tireID)
	defer unlock()

	var tire *models.Tire
	err := t.UoW.WithTx(ctx, func(tx *gorm.DB) error {
		var err error
		if tire, err = ownedTire(tx, userID, tireID); err != nil {
			return err
		}

		changes := map[string]any{}
		if update.Label != nil {
			label := strings.TrimSpace(*update.Label)
			if label == "" {
				return validationError("Label must not be empty")
			}
			changes["label"] = label
			tire.Label = label
		}
		if update.OptimalPressure != nil && update.PressureUnit != nil {
			optimal, unit, err := validateOptimalPressure(*update.OptimalPressure, *update.PressureUnit)
			if err != nil {
				return err
			}
			changes["optimal_pressure"] = optimal
			changes["pressure_unit"] = unit
			tire.OptimalPressure = optimal
			tire.PressureUnit = unit
		}
		if len(changes) == 0 {
			return nil
		}

		if err := tx.Model(&models.Tire{}).Where("id = ?", tireID).Updates(changes).Error; err != nil {
			return persistenceError("Failed to update tire", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSTire).
		Info("Tire updated", zap.String("tire_id", tireID))
	return tire, nil
}

func (t *TPMS) deleteTire(ctx context.Context, userID, tireID string) error {
	unlock := t.tireLocks.Lock(tireID)
	defer unlock()

	err := t.UoW.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := ownedTire(tx, userID, tireID); err != nil {
			return err
		}
		if err := tx.Delete(&models.Tire{}, "id = ?", tireID).Error; err != nil {
			return persistenceError("Failed to delete tire", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSTire).
		Info("Tire deleted", zap.String("tire_id", tireID))
	return nil
}

type ITireImpl struct {
	tpms *TPMS
}

func (it *ITireImpl) AddTire(ctx context.Context, userID string, input *models.TireInput) (*models.Tire, error) {
	return it.tpms.addTire(ctx, userID, input)
}

func (it *ITireImpl) GetTire(ctx context.Context, userID, tireID string) (*models.TireView, error) {
	return it.tpms.getTire(ctx, userID, tireID)
}

func (it *ITireImpl) ListVehicleTires(ctx context.Context, userID, vehicleID string) ([]models.TireView, error) {
	return it.tpms.listVehicleTires(ctx, userID, vehicleID)
}

func (it *ITireImpl) UpdateTire(ctx context.Context, userID, tireID string, update *models.TireUpdate) (*models.Tire, error) {
	return it.tpms.updateTire(ctx, userID, tireID, update)
}

func (it *ITireImpl) DeleteTire(ctx context.Context, userID, tireID string) error {
	return it.tpms.deleteTire(ctx, userID, tireID)
}

func (t *TPMS) GetITire() ITire {
	return &ITireImpl{tpms: t}
}
