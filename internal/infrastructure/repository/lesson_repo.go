package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"startupcopilot/internal/domain"
)

type LessonProgressRepository struct {
	db *gorm.DB
}

func NewLessonProgressRepository(db *gorm.DB) *LessonProgressRepository {
	return &LessonProgressRepository{db: db}
}

// MarkCompleted фиксирует прохождение урока. Возвращает true только
// при первом завершении — награды начисляются один раз.
func (r *LessonProgressRepository) MarkCompleted(ctx context.Context, userID uuid.UUID, lessonID string, stage domain.Stage, at time.Time) (bool, error) {
	var existing domain.LessonProgress
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND lesson_id = ?", userID, lessonID).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return false, err
	}

	if err == nil {
		if existing.Status == "completed" {
			return false, nil
		}
		err = r.db.WithContext(ctx).Model(&domain.LessonProgress{}).
			Where("user_id = ? AND lesson_id = ? AND status <> 'completed'", userID, lessonID).
			Updates(map[string]interface{}{
				"status":       "completed",
				"completed_at": at,
			}).Error
		return err == nil, err
	}

	entry := domain.LessonProgress{
		UserID:      userID,
		LessonID:    lessonID,
		Stage:       stage,
		Status:      "completed",
		CompletedAt: &at,
		CreatedAt:   at,
	}
	if err := r.db.WithContext(ctx).Create(&entry).Error; err != nil {
		return false, err
	}
	return true, nil
}

// CountCompletedInWindow — уроки, завершённые в окне [from, to).
func (r *LessonProgressRepository) CountCompletedInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.LessonProgress{}).
		Where("user_id = ? AND status = 'completed' AND completed_at >= ? AND completed_at < ?", userID, from, to).
		Count(&count).Error
	return int(count), err
}

type LevelDefinitionRepository struct {
	db *gorm.DB
}

func NewLevelDefinitionRepository(db *gorm.DB) *LevelDefinitionRepository {
	return &LevelDefinitionRepository{db: db}
}

// List — определения уровней по возрастанию порога.
func (r *LevelDefinitionRepository) List(ctx context.Context) ([]domain.LevelDefinition, error) {
	var defs []domain.LevelDefinition
	err := r.db.WithContext(ctx).Order("min_xp asc").Find(&defs).Error
	return defs, err
}

// Seed заливает зашитую таблицу при пустой конфигурации,
// чтобы свежая база сразу была рабочей.
func (r *LevelDefinitionRepository) Seed(ctx context.Context, defs []domain.LevelDefinition) error {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.LevelDefinition{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&defs).Error
}
