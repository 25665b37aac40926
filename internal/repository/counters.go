// Package repository provides data access layer implementations for the application.
package repository

import (
	"snsapp/internal/models"
	"snsapp/internal/observability"

	"gorm.io/gorm"
)

// adjustCounter applies delta to a denormalized counter column on the row
// identified by id. It must run on the same *gorm.DB handle as the join-row
// mutation it mirrors so both commit or roll back together.
//
// Decrements are not clamped: a counter observed below zero after a decrement
// is a data-integrity bug elsewhere, surfaced through logs and metrics rather
// than silently corrected.
func adjustCounter(tx *gorm.DB, model interface{}, id uint, column string, delta int) error {
	res := tx.Model(model).Where("id = ?", id).
		UpdateColumn(column, gorm.Expr(column+" + ?", delta))
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Counter row", id)
	}

	if delta < 0 {
		var value int
		if err := tx.Model(model).Where("id = ?", id).Select(column).Scan(&value).Error; err == nil && value < 0 {
			observability.CounterUnderflow.WithLabelValues(column).Inc()
			observability.With(tx.Statement.Context).Warn("denormalized counter went negative",
				"column", column, "id", id, "value", value)
		}
	}
	return nil
}
