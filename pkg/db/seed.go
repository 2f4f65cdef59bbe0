package db

import (
	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/models"
)

// DefaultAlertTypes is the severity table shipped with the service. Ranges are
// inclusive and touch at their bounds; the higher severity wins on a shared bound.
var DefaultAlertTypes = []models.AlertType{
	{
		Code:          models.AlertTypeNormal,
		DeviationMin:  0.90,
		DeviationMax:  1.10,
		SeverityLevel: 0,
		Description:   "Pressure is normal (deviation from -10% to +10%)",
	},
	{
		Code:          models.AlertTypeLowPressureWarning,
		DeviationMin:  0.80,
		DeviationMax:  0.90,
		SeverityLevel: 1,
		Description:   "Slight decrease in pressure (10-20%)",
	},
	{
		Code:          models.AlertTypeLowPressureCritical,
		DeviationMin:  0.00,
		DeviationMax:  0.80,
		SeverityLevel: 2,
		Description:   "Critical decrease in pressure (more than 20%)",
	},
	{
		Code:          models.AlertTypeHighPressureWarning,
		DeviationMin:  1.10,
		DeviationMax:  1.20,
		SeverityLevel: 1,
		Description:   "Slight increase in pressure (10-20%)",
	},
	{
		Code:          models.AlertTypeHighPressureCritical,
		DeviationMin:  1.20,
		DeviationMax:  10.00,
		SeverityLevel: 2,
		Description:   "Critical increase in pressure (more than 20%)",
	},
}

// SeedAlertTypes inserts DefaultAlertTypes when the table is empty and
// returns how many rows were written.
func SeedAlertTypes(conn *gorm.DB) (int, error) {
	var count int64
	if err := conn.Model(&models.AlertType{}).Count(&count).Error; err != nil {
		return 0, err
	}
	if count > 0 {
		return 0, nil
	}

	rows := make([]models.AlertType, len(DefaultAlertTypes))
	copy(rows, DefaultAlertTypes)
	if err := conn.Create(&rows).Error; err != nil {
		return 0, err
	}
	return len(rows), nil
}
