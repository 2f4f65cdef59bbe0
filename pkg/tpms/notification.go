package tpms

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/dispatch"
	"liyu1981.xyz/tpms-service/pkg/models"
)

const DefaultNotificationLimit = 10

func notificationTitle(newAlertType string) string {
	return fmt.Sprintf("Tire status changed to %s", newAlertType)
}

func notificationBody(label string, alert models.AlertType) string {
	return fmt.Sprintf("Your tire '%s' status changed to %s, %s.", label, alert.Code, alert.Description)
}

func (t *TPMS) emit(ctx context.Context, tireID string, oldAlertType *string, newAlertType string) (*models.Notification, error) {
	logger := common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSNotification)

	if t.Catalog == nil {
		return nil, persistenceError("Alert catalog not loaded", nil)
	}
	alert, ok := t.Catalog.Lookup(newAlertType)
	if !ok {
		return nil, notFoundError("Alert type %s not found", newAlertType)
	}
	if oldAlertType != nil {
		if _, ok := t.Catalog.Lookup(*oldAlertType); !ok {
			return nil, notFoundError("Alert type %s not found", *oldAlertType)
		}
	}

	conn := t.Db.Conn.WithContext(ctx)

	var tire models.Tire
	if err := conn.Select("id", "vehicle_id", "label").First(&tire, "id = ?", tireID).Error; err != nil {
		return nil, lookupError(err, "Tire %s not found", tireID)
	}

	notification := models.Notification{
		TireID:       tireID,
		OldAlertType: oldAlertType,
		NewAlertType: newAlertType,
		Title:        notificationTitle(newAlertType),
		Body:         notificationBody(tire.Label, alert),
		SentAt:       clock.Now().UTC(),
	}
	if err := conn.Create(&notification).Error; err != nil {
		return nil, persistenceError("Failed to store notification", err)
	}

	logger.Info("Notification stored",
		zap.String("notification_id", notification.ID),
		zap.String("tire_id", tireID),
		zap.Stringp("old_alert_type", oldAlertType),
		zap.String("new_alert_type", newAlertType))

	t.dispatch(ctx, dispatch.Event{
		NotificationID: notification.ID,
		TireID:         tireID,
		VehicleID:      tire.VehicleID,
		TireLabel:      tire.Label,
		OldAlertType:   oldAlertType,
		NewAlertType:   newAlertType,
		SeverityLevel:  alert.SeverityLevel,
		Title:          notification.Title,
		Body:           notification.Body,
		SentAt:         notification.SentAt,
	})

	return &notification, nil
}

// dispatch hands the stored notification to external delivery. Failures are
// logged only.
func (t *TPMS) dispatch(ctx context.Context, event dispatch.Event) {
	if t.Dispatcher == nil {
		return
	}
	if err := t.Dispatcher.Dispatch(ctx, event); err != nil {
		common.GetCategoryLogger(common.LoggerNameDispatch, common.LoggerCategoryTPMSNotification).
			Warn("Notification dispatch failed",
				zap.String("notification_id", event.NotificationID),
				zap.Error(err))
	}
}

func notificationViews(conn *gorm.DB) *gorm.DB {
	return conn.Table("notifications").
		Select("notifications.*, tires.vehicle_id AS vehicle_id").
		Joins("JOIN tires ON tires.id = notifications.tire_id").
		Joins("JOIN vehicles ON vehicles.id = tires.vehicle_id")
}

func checkLimit(limit int) (int, error) {
	if limit == 0 {
		return DefaultNotificationLimit, nil
	}
	if limit < 0 {
		return 0, validationError("Limit must be a positive integer")
	}
	return limit, nil
}

func (t *TPMS) getUserNotifications(ctx context.Context, userID string, limit int) ([]models.NotificationView, error) {
	limit, err := checkLimit(limit)
	if err != nil {
		return nil, err
	}

	views := []models.NotificationView{}
	err = notificationViews(t.Db.Conn.WithContext(ctx)).
		Where("vehicles.user_id = ?", userID).
		Order("notifications.sent_at desc").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, persistenceError("Failed to get notifications", err)
	}
	return views, nil
}

func (t *TPMS) getVehicleNotifications(ctx context.Context, userID, vehicleID string, limit int) ([]models.NotificationView, error) {
	limit, err := checkLimit(limit)
	if err != nil {
		return nil, err
	}

	conn := t.Db.Conn.WithContext(ctx)
	if _, err := ownedVehicle(conn, userID, vehicleID); err != nil {
		return nil, err
	}

	views := []models.NotificationView{}
	err = notificationViews(conn).
		Where("tires.vehicle_id = ?", vehicleID).
		Order("notifications.sent_at desc").
		Limit(limit).
		Scan(&views).Error
	if err != nil {
		return nil, persistenceError("Failed to get notifications", err)
	}
	return views, nil
}

type INotificationImpl struct {
	tpms *TPMS
}

func (in *INotificationImpl) Emit(ctx context.Context, tireID string, oldAlertType *string, newAlertType string) (*models.Notification, error) {
	return in.tpms.emit(ctx, tireID, oldAlertType, newAlertType)
}

func (in *INotificationImpl) GetUserNotifications(ctx context.Context, userID string, limit int) ([]models.NotificationView, error) {
	return in.tpms.getUserNotifications(ctx, userID, limit)
}

func (in *INotificationImpl) GetVehicleNotifications(ctx context.Context, userID, vehicleID string, limit int) ([]models.NotificationView, error) {
	return in.tpms.getVehicleNotifications(ctx, userID, vehicleID, limit)
}

func (t *TPMS) GetINotification() INotification {
	return &INotificationImpl{tpms: t}
}
