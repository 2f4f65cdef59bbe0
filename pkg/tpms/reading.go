package tpms

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/models"
	"liyu1981.xyz/tpms-service/pkg/observability"
)

func validateReadingInput(input *models.ReadingInput) error {
	if input == nil {
		return validationError("Missing required fields: tire_id, pressure_value, pressure_unit")
	}
	var missing []string
	if strings.TrimSpace(input.TireID) == "" {
		missing = append(missing, "tire_id")
	}
	if strings.TrimSpace(input.PressureUnit) == "" {
		missing = append(missing, "pressure_unit")
	}
	if len(missing) > 0 {
		return validationError("Missing required fields: %s", strings.Join(missing, ", "))
	}
	if _, err := uuid.Parse(strings.TrimSpace(input.TireID)); err != nil {
		return validationError("Invalid tire_id format")
	}
	return nil
}

func (t *TPMS) addReading(ctx context.Context, userID string, input *models.ReadingInput) (*models.ReadingResult, error) {
	start := clock.Now()
	result, err := t.ingestReading(ctx, userID, input)

	outcome := observability.OutcomeStored
	if err != nil {
		outcome = observability.OutcomeRejected
		if k := KindOf(err); k == KindPersistence || k == KindConflict {
			outcome = observability.OutcomeFailed
		}
	}
	t.Metrics.ObserveReading(outcome, clock.Since(start).Seconds())
	return result, err
}

func (t *TPMS) ingestReading(ctx context.Context, userID string, input *models.ReadingInput) (*models.ReadingResult, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSReading)

	if err := validateReadingInput(input); err != nil {
		return nil, err
	}

	logger.Info("Received reading for tire",
		zap.String("tire_id", input.TireID),
		zap.Float64("pressure_value", input.PressureValue),
		zap.String("pressure_unit", input.PressureUnit))

	if t.Catalog == nil {
		return nil, persistenceError("Alert catalog not loaded", nil)
	}

	unlock := t.tireLocks.Lock(input.TireID)
	defer unlock()

	var (
		reading      models.PressureReading
		oldAlertType *string
		class        Classification
	)

	err := t.UoW.WithTx(ctx, func(tx *gorm.DB) error {
		tire, err := ownedTire(tx, userID, input.TireID)
		if err != nil {
			return err
		}

		converted, err := ConvertPressure(input.PressureValue, input.PressureUnit, tire.PressureUnit)
		if err != nil {
			return err
		}

		class, err = Classify(t.Catalog, converted, tire.OptimalPressure)
		if err != nil {
			return err
		}
		oldAlertType = tire.CurrentAlertType

		reading = models.PressureReading{
			TireID:        tire.ID,
			PressureValue: roundPressure(converted),
			CreatedAt:     clock.Now().UTC(),
		}
		if err := tx.Create(&reading).Error; err != nil {
			return persistenceError("Failed to add pressure reading", err)
		}

		if !changed(oldAlertType, class.AlertType) {
			return nil
		}
		return swapAlertType(tx, tire.ID, oldAlertType, class.AlertType)
	})
	if err != nil {
		if KindOf(err) == KindPersistence || KindOf(err) == KindConflict {
			logger.Error("Failed to store reading", zap.String("tire_id", input.TireID), zap.Error(err))
		}
		return nil, err
	}

	logger.Info("Reading stored",
		zap.String("tire_id", input.TireID),
		zap.String("reading_id", reading.ID),
		zap.Float64("ratio", class.Ratio),
		zap.String("alert_type", class.AlertType))

	result := &models.ReadingResult{
		ReadingID:     reading.ID,
		PressureValue: reading.PressureValue,
		CreatedAt:     reading.CreatedAt,
		AlertType:     class.AlertType,
	}
	if !changed(oldAlertType, class.AlertType) {
		return result, nil
	}

	result.Transitioned = true
	t.Metrics.ObserveTransition(class.AlertType)
	logger.Info("Alert transition detected",
		zap.String("tire_id", input.TireID),
		zap.Stringp("old_alert_type", oldAlertType),
		zap.String("new_alert_type", class.AlertType))

	// the reading and the new state are committed, a failed notification only
	// gets reported
	notification, err := t.Notification.Emit(ctx, input.TireID, oldAlertType, class.AlertType)
	if err != nil {
		result.NotificationFailed = true
		t.Metrics.ObserveNotificationFailure()
		common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSNotification).
			Error("Notification failed",
				zap.String("tire_id", input.TireID),
				zap.String("new_alert_type", class.AlertType),
				zap.Error(err))
		return result, nil
	}
	result.NotificationID = notification.ID
	return result, nil
}

// changed treats a tire with no alert yet as different from every alert type.
func changed(old *string, next string) bool {
	return old == nil || *old != next
}

// swapAlertType is a compare-and-set on current_alert_type.
func swapAlertType(tx *gorm.DB, tireID string, old *string, next string) error {
	q := tx.Model(&models.Tire{}).Where("id = ?", tireID)
	if old == nil {
		q = q.Where("current_alert_type IS NULL")
	} else {
		q = q.Where("current_alert_type = ?", *old)
	}

	res := q.Update("current_alert_type", next)
	if res.Error != nil {
		return persistenceError("Failed to update tire status", res.Error)
	}
	if res.RowsAffected == 0 {
		return &Error{Kind: KindConflict, Message: "Tire status changed concurrently, retry the reading"}
	}
	return nil
}

func (t *TPMS) getTireReadings(ctx context.Context, userID, tireID string, days int) ([]models.PressureReading, error) {
	if days < 0 {
		return nil, validationError("Days parameter must be a positive integer")
	}

	conn := t.Db.Conn.WithContext(ctx)
	if _, err := ownedTire(conn, userID, tireID); err != nil {
		return nil, err
	}

	q := conn.Where("tire_id = ?", tireID)
	if days > 0 {
		q = q.Where("created_at >= ?", clock.Now().UTC().Add(-time.Duration(days)*24*time.Hour))
	}

	var readings []models.PressureReading
	if err := q.Order("created_at desc").Find(&readings).Error; err != nil {
		return nil, persistenceError("Failed to get pressure readings", err)
	}
	return readings, nil
}

type IReadingImpl struct {
	tpms *TPMS
}

func (ir *IReadingImpl) AddReading(ctx context.Context, userID string, input *models.ReadingInput) (*models.ReadingResult, error) {
	return ir.tpms.addReading(ctx, userID, input)
}

func (ir *IReadingImpl) GetTireReadings(ctx context.Context, userID, tireID string, days int) ([]models.PressureReading, error) {
	return ir.tpms.getTireReadings(ctx, userID, tireID, days)
}

func (t *TPMS) GetIReading() IReading {
	return &IReadingImpl{tpms: t}
}
