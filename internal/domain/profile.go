package domain

import (
	"time"

	"github.com/google/uuid"
)

type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primaryKey"`
	Email    string    `gorm:"uniqueIndex"`
	Username string

	// IANA-таймзона пользователя, все "сегодня/вчера" считаем в ней.
	Timezone string `gorm:"default:'Europe/Moscow'"`

	XP    int `gorm:"default:0"`
	Level int `gorm:"default:1"`

	Streak int `gorm:"default:0"`
	// Дата последней зачётной активности (YYYY-MM-DD в таймзоне юзера).
	LastActivityDate string
	// Когда была потрачена заморозка стрика (не чаще раза в неделю).
	FreezeUsedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LevelDefinition — порог уровня из конфигурации.
// Список обязан быть отсортирован по min_xp и содержать уровень 1 с 0 XP.
type LevelDefinition struct {
	Level int    `gorm:"primaryKey"`
	Title string
	MinXP int `gorm:"column:min_xp;uniqueIndex"`
	Icon  string
}
