package tpms

import (
	"context"
	"sort"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"liyu1981.xyz/tpms-service/pkg/common"
	"liyu1981.xyz/tpms-service/pkg/models"
)

// AlertCatalog is an immutable snapshot of the alert types, kept in
// classification order: severity descending, then code. It is safe for
// concurrent readers.
type AlertCatalog struct {
	entries []models.AlertType
	byCode  map[string]models.AlertType
}

func NewAlertCatalog(entries []models.AlertType) *AlertCatalog {
	sorted := make([]models.AlertType, len(entries))
	copy(sorted, entries)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SeverityLevel != sorted[j].SeverityLevel {
			return sorted[i].SeverityLevel > sorted[j].SeverityLevel
		}
		return sorted[i].Code < sorted[j].Code
	})

	byCode := make(map[string]models.AlertType, len(sorted))
	for _, e := range sorted {
		byCode[e.Code] = e
	}
	return &AlertCatalog{entries: sorted, byCode: byCode}
}

func LoadAlertCatalog(ctx context.Context, conn *gorm.DB) (*AlertCatalog, error) {
	var rows []models.AlertType
	if err := conn.WithContext(ctx).Find(&rows).Error; err != nil {
		return nil, persistenceError("Failed to load alert types", err)
	}
	if len(rows) == 0 {
		return nil, notFoundError("No alert types configured")
	}

	catalog := NewAlertCatalog(rows)
	common.GetCategoryLogger(common.LoggerNameTPMSCore, common.LoggerCategoryTPMSCatalog).
		Info("Alert catalog loaded", zap.Strings("alert_types", catalog.Codes()))
	return catalog, nil
}

// Classify returns the first entry, in severity order, whose inclusive bounds
// contain ratio. Unmatched ratios resolve to normal.
func (c *AlertCatalog) Classify(ratio float64) string {
	for _, e := range c.entries {
		if e.Contains(ratio) {
			return e.Code
		}
	}
	return models.AlertTypeNormal
}

func (c *AlertCatalog) Lookup(code string) (models.AlertType, bool) {
	e, ok := c.byCode[code]
	return e, ok
}

func (c *AlertCatalog) Entries() []models.AlertType {
	out := make([]models.AlertType, len(c.entries))
	copy(out, c.entries)
	return out
}

func (c *AlertCatalog) Codes() []string {
	return common.Mapper(c.entries, func(e models.AlertType) string { return e.Code })
}
