package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

const dailyActivityBonusXP = 10

type StreakProfiles interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	UpdateStreak(ctx context.Context, id uuid.UUID, streak int, lastActivityDate string) error
	SaveFreeze(ctx context.Context, id uuid.UUID, lastActivityDate string, usedAt time.Time) error
}

type StreakService struct {
	profiles StreakProfiles
	xp       *XPService
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewStreakService(profiles StreakProfiles, xp *XPService, log *zap.SugaredLogger) *StreakService {
	return &StreakService{profiles: profiles, xp: xp, log: log, now: time.Now}
}

// Status — состояние серии для дашборда. Профиля нет — секции нет.
func (s *StreakService) Status(ctx context.Context, userID uuid.UUID) (*engine.StreakStatus, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	st := engine.EvaluateStreak(p, s.now())
	return &st, nil
}

// MarkActivity фиксирует зачётную активность и выдаёт дневной бонус
// за первое событие дня. Как CompleteLesson у стрика курсов: бонус
// только когда серия реально сдвинулась.
func (s *StreakService) MarkActivity(ctx context.Context, userID uuid.UUID) (bool, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil || p == nil {
		return false, err
	}
	if !engine.MarkActivity(p, s.now()) {
		return false, nil
	}
	if err := s.profiles.UpdateStreak(ctx, userID, p.Streak, p.LastActivityDate); err != nil {
		return false, err
	}
	if _, err := s.xp.Award(ctx, userID, dailyActivityBonusXP, domain.XPSourceStreakBonus, "Ежедневная активность"); err != nil {
		s.log.Warnw("daily bonus award failed", "user_id", userID, "error", err)
	}
	return true, nil
}

// UseFreeze тратит недельную заморозку, спасая серию после пропуска.
func (s *StreakService) UseFreeze(ctx context.Context, userID uuid.UUID) error {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if p == nil {
		return engine.ErrFreezeNotNeeded
	}
	if err := engine.ApplyFreeze(p, s.now()); err != nil {
		return err
	}
	return s.profiles.SaveFreeze(ctx, userID, p.LastActivityDate, *p.FreezeUsedAt)
}
