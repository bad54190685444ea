package repository

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"
)

// formatNumber builds a display document number <PREFIX>-YYYYMMDD-NNNN.
// Numbers are human-facing identifiers only; the UUID-derived ID is the key.
func formatNumber(prefix string, day time.Time, seq int) string {
	return fmt.Sprintf("%s-%s-%04d", prefix, day.Format("20060102"), seq)
}

// nextNumber scans the highest number issued today for the given model
// and returns the next one in sequence.
func nextNumber(ctx context.Context, db *gorm.DB, model interface{}, prefix string) (string, error) {
	day := time.Now()
	dayPrefix := fmt.Sprintf("%s-%s-", prefix, day.Format("20060102"))

	var maxNumber string
	err := db.WithContext(ctx).
		Model(model).
		Select("COALESCE(MAX(number), '')").
		Where("number LIKE ?", dayPrefix+"%").
		Scan(&maxNumber).Error
	if err != nil {
		return "", err
	}

	var seq int
	if maxNumber != "" {
		fmt.Sscanf(maxNumber, dayPrefix+"%04d", &seq)
	}
	seq++
	return formatNumber(prefix, day, seq), nil
}
