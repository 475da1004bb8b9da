package domain

import (
	"time"

	"github.com/google/uuid"
)

// XPSource — откуда начислен опыт. Источник важен для недельного
// отчёта: пункты чек-листа считаются именно по этим меткам.
type XPSource string

const (
	XPSourceDailyQuest    XPSource = "daily_quest"
	XPSourceLesson        XPSource = "lesson"
	XPSourceChecklistItem XPSource = "checklist_item"
	XPSourceStreakBonus   XPSource = "streak_bonus"
	XPSourceManual        XPSource = "manual"
)

type XPTransaction struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID      uuid.UUID `gorm:"type:uuid;index"`
	Amount      int
	Source      XPSource `gorm:"type:varchar(32);index"`
	Description string
	CreatedAt   time.Time `gorm:"index"`
}

// DailyQuest — одно задание на (пользователь, день).
type DailyQuest struct {
	ID     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID uuid.UUID `gorm:"type:uuid;uniqueIndex:idx_quest_user_date" json:"user_id"`
	// Календарная дата в таймзоне пользователя (YYYY-MM-DD).
	QuestDate string    `gorm:"uniqueIndex:idx_quest_user_date" json:"quest_date"`
	ProjectID uuid.UUID `gorm:"type:uuid" json:"project_id"`

	QuestKey string `json:"quest_key"`
	Label    string `json:"label"`
	XPReward int    `json:"xp_reward"`
	// Заполненность канваса на момент генерации — точка отсчёта
	// для заданий "заполните ещё один блок".
	Baseline int `gorm:"default:0" json:"-"`

	Completed   bool       `gorm:"default:false" json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

type LessonProgress struct {
	UserID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LessonID string    `gorm:"primaryKey"`
	Stage    Stage     `gorm:"type:varchar(32)"`

	Status      string `gorm:"default:'in_progress'"`
	CompletedAt *time.Time
	CreatedAt   time.Time
}
