package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"startupcopilot/internal/domain"
)

type ProfileRepository struct {
	db  *gorm.DB
	rdb *redis.Client
}

func NewProfileRepository(db *gorm.DB, rdb *redis.Client) *ProfileRepository {
	return &ProfileRepository{db: db, rdb: rdb}
}

func (r *ProfileRepository) Create(ctx context.Context, p *domain.Profile) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *ProfileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	var p domain.Profile
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &p, err
}

// AddXP атомарно прибавляет опыт и возвращает новое значение.
func (r *ProfileRepository) AddXP(ctx context.Context, id uuid.UUID, amount int) (int, error) {
	err := r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("xp", gorm.Expr("xp + ?", amount)).Error
	if err != nil {
		return 0, err
	}
	var p domain.Profile
	if err := r.db.WithContext(ctx).Select("xp").Where("id = ?", id).First(&p).Error; err != nil {
		return 0, err
	}
	return p.XP, nil
}

func (r *ProfileRepository) UpdateLevel(ctx context.Context, id uuid.UUID, level int) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("level", level).Error
}

func (r *ProfileRepository) UpdateStreak(ctx context.Context, id uuid.UUID, streak int, lastActivityDate string) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"streak":             streak,
			"last_activity_date": lastActivityDate,
		}).Error
}

func (r *ProfileRepository) SaveFreeze(ctx context.Context, id uuid.UUID, lastActivityDate string, usedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_activity_date": lastActivityDate,
			"freeze_used_at":     usedAt,
		}).Error
}

func (r *ProfileRepository) UpdateTimezone(ctx context.Context, id uuid.UUID, tz string) error {
	return r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("id = ?", id).
		Update("timezone", tz).Error
}

// LeaderboardEntry — строка рейтинга по XP.
type LeaderboardEntry struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	XP       int       `json:"xp"`
	Level    int       `json:"level"`
	Streak   int       `json:"streak"`
}

const leaderboardCacheKey = "leaderboard:top"

// GetLeaderboard отдаёт топ по XP. Кешируем в Redis на минуту:
// рейтинг дёргает каждый дашборд, точность до секунды не нужна.
func (r *ProfileRepository) GetLeaderboard(ctx context.Context, limit int) ([]LeaderboardEntry, error) {
	if limit <= 0 || limit > 100 {
		limit = 10
	}

	if cached, err := r.rdb.Get(ctx, leaderboardCacheKey).Result(); err == nil {
		var entries []LeaderboardEntry
		if json.Unmarshal([]byte(cached), &entries) == nil && len(entries) >= limit {
			return entries[:limit], nil
		}
	}

	var profiles []domain.Profile
	err := r.db.WithContext(ctx).
		Order("xp desc").
		Limit(100).
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}

	entries := make([]LeaderboardEntry, 0, len(profiles))
	for _, p := range profiles {
		entries = append(entries, LeaderboardEntry{
			UserID:   p.ID,
			Username: p.Username,
			XP:       p.XP,
			Level:    p.Level,
			Streak:   p.Streak,
		})
	}

	if raw, err := json.Marshal(entries); err == nil {
		r.rdb.Set(ctx, leaderboardCacheKey, raw, time.Minute)
	}

	if len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// GetUserRank — позиция пользователя в рейтинге по XP.
func (r *ProfileRepository) GetUserRank(ctx context.Context, id uuid.UUID) (int, error) {
	p, err := r.GetByID(ctx, id)
	if err != nil || p == nil {
		return 0, err
	}
	var above int64
	err = r.db.WithContext(ctx).Model(&domain.Profile{}).
		Where("xp > ?", p.XP).
		Count(&above).Error
	return int(above) + 1, err
}
