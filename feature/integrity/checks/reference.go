package checks

import (
	"context"
	"fmt"

	"kawa-inventory/feature/inventory/models"

	"gorm.io/gorm"
)

// ReferenceReport summarizes the data a sync depends on.
type ReferenceReport struct {
	Locations   int64  `json:"locations"`
	Commodities int64  `json:"commodities"`
	LinkedUsers int64  `json:"linked_users"`
	Status      string `json:"status"` // "ok", "empty"
}

// CheckReferenceData counts known locations, commodities and linked users.
// Empty reference tables make every storage or item count as unknown.
func CheckReferenceData(ctx context.Context, db *gorm.DB) (*ReferenceReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &ReferenceReport{Status: "ok"}
	db = db.WithContext(ctx)

	if err := db.Model(&models.Location{}).Count(&report.Locations).Error; err != nil {
		return nil, fmt.Errorf("failed to count locations: %w", err)
	}
	if err := db.Model(&models.Commodity{}).Count(&report.Commodities).Error; err != nil {
		return nil, fmt.Errorf("failed to count commodities: %w", err)
	}
	if err := db.Model(&models.User{}).
		Where("fio_username <> '' AND fio_api_key <> ''").
		Count(&report.LinkedUsers).Error; err != nil {
		return nil, fmt.Errorf("failed to count linked users: %w", err)
	}

	if report.Locations == 0 || report.Commodities == 0 {
		report.Status = "empty"
	}
	return report, nil
}
