package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"startupcopilot/internal/domain"
)

type QuestRepository struct {
	db *gorm.DB
}

func NewQuestRepository(db *gorm.DB) *QuestRepository {
	return &QuestRepository{db: db}
}

// GetOrCreate возвращает задание на (пользователь, день), создавая его
// при первом обращении. FirstOrCreate, чтобы повторная генерация в тот
// же день не плодила дубликаты и не давала фармить XP.
func (r *QuestRepository) GetOrCreate(ctx context.Context, q *domain.DailyQuest) (bool, error) {
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	result := r.db.WithContext(ctx).
		Where(domain.DailyQuest{UserID: q.UserID, QuestDate: q.QuestDate}).
		Attrs(domain.DailyQuest{
			ID:        q.ID,
			ProjectID: q.ProjectID,
			QuestKey:  q.QuestKey,
			Label:     q.Label,
			XPReward:  q.XPReward,
			Baseline:  q.Baseline,
			CreatedAt: time.Now(),
		}).
		FirstOrCreate(q)
	return result.RowsAffected > 0, result.Error
}

func (r *QuestRepository) GetForDay(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyQuest, error) {
	var q domain.DailyQuest
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND quest_date = ?", userID, date).
		First(&q).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &q, err
}

// MarkCompleted закрывает задание ровно один раз: условие
// completed = false в апдейте гарантирует, что повторное завершение
// не пройдёт и XP не начислится дважды.
func (r *QuestRepository) MarkCompleted(ctx context.Context, id, userID uuid.UUID, at time.Time) (bool, error) {
	result := r.db.WithContext(ctx).Model(&domain.DailyQuest{}).
		Where("id = ? AND user_id = ? AND completed = false", id, userID).
		Updates(map[string]interface{}{
			"completed":    true,
			"completed_at": at,
		})
	return result.RowsAffected > 0, result.Error
}

// CountCompletedInWindow — выполненные задания, чья календарная дата
// попала в окно [fromDate, toDate).
func (r *QuestRepository) CountCompletedInWindow(ctx context.Context, userID uuid.UUID, fromDate, toDate string) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.DailyQuest{}).
		Where("user_id = ? AND completed = true AND quest_date >= ? AND quest_date < ?", userID, fromDate, toDate).
		Count(&count).Error
	return int(count), err
}
