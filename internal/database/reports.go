package database

import (
	"time"

	"wholesale-pos/internal/models"

	"gorm.io/gorm"
)

// SalesRangeResult holds revenue and order count for a date range.
// Shared by the sales report endpoint and the AI assistant.
type SalesRangeResult struct {
	TotalRevenue float64
	TotalCount   int64
}

// SalesInRange sums net amounts and counts transactions between start and end.
func SalesInRange(db *gorm.DB, start, end time.Time) (*SalesRangeResult, error) {
	var result SalesRangeResult

	// COALESCE ensures we get 0 instead of NULL if no sales exist
	err := db.Model(&models.SaleTransaction{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Select("COALESCE(SUM(net_amount), 0)").
		Scan(&result.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	err = db.Model(&models.SaleTransaction{}).
		Where("created_at BETWEEN ? AND ?", start, end).
		Count(&result.TotalCount).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}
