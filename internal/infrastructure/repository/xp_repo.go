package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"startupcopilot/internal/domain"
)

type XPTransactionRepository struct {
	db *gorm.DB
}

func NewXPTransactionRepository(db *gorm.DB) *XPTransactionRepository {
	return &XPTransactionRepository{db: db}
}

func (r *XPTransactionRepository) Create(ctx context.Context, tx *domain.XPTransaction) error {
	if tx.ID == uuid.Nil {
		tx.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(tx).Error
}

// SumInWindow — суммарный XP за окно [from, to).
func (r *XPTransactionRepository) SumInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	var sum *int
	err := r.db.WithContext(ctx).Model(&domain.XPTransaction{}).
		Select("sum(amount)").
		Where("user_id = ? AND created_at >= ? AND created_at < ?", userID, from, to).
		Scan(&sum).Error
	if err != nil || sum == nil {
		return 0, err
	}
	return *sum, nil
}

// CountBySourceInWindow считает транзакции с данной меткой источника.
// Недельный отчёт оценивает "закрытые пункты чек-листа" именно так —
// по меткам checklist_item, отдельного журнала событий нет.
func (r *XPTransactionRepository) CountBySourceInWindow(ctx context.Context, userID uuid.UUID, source domain.XPSource, from, to time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.XPTransaction{}).
		Where("user_id = ? AND source = ? AND created_at >= ? AND created_at < ?", userID, source, from, to).
		Count(&count).Error
	return int(count), err
}
