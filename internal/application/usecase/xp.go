package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

type XPProfiles interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	AddXP(ctx context.Context, id uuid.UUID, amount int) (int, error)
	UpdateLevel(ctx context.Context, id uuid.UUID, level int) error
}

type XPTransactions interface {
	Create(ctx context.Context, tx *domain.XPTransaction) error
}

// LevelSource — снапшот определений уровней (TTL-кеш поверх конфигурации).
type LevelSource interface {
	Get(ctx context.Context) []domain.LevelDefinition
}

type XPService struct {
	profiles XPProfiles
	txs      XPTransactions
	levels   LevelSource
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewXPService(profiles XPProfiles, txs XPTransactions, levels LevelSource, log *zap.SugaredLogger) *XPService {
	return &XPService{profiles: profiles, txs: txs, levels: levels, log: log, now: time.Now}
}

type AwardResult struct {
	Amount    int                     `json:"amount"`
	NewXP     int                     `json:"new_xp"`
	LeveledUp bool                    `json:"leveled_up"`
	NewLevel  *domain.LevelDefinition `json:"new_level,omitempty"`
}

// Award начисляет опыт: транзакция в журнал, инкремент профиля,
// проверка пересечения порога уровня. Отрицательные суммы клампим —
// XP уходит в отображение и рейтинги, минусов там быть не должно.
func (s *XPService) Award(ctx context.Context, userID uuid.UUID, amount int, source domain.XPSource, description string) (AwardResult, error) {
	if amount < 0 {
		amount = 0
	}
	if amount == 0 {
		p, err := s.profiles.GetByID(ctx, userID)
		if err != nil || p == nil {
			return AwardResult{}, err
		}
		return AwardResult{NewXP: p.XP}, nil
	}

	tx := &domain.XPTransaction{
		UserID:      userID,
		Amount:      amount,
		Source:      source,
		Description: description,
		CreatedAt:   s.now(),
	}
	if err := s.txs.Create(ctx, tx); err != nil {
		return AwardResult{}, err
	}

	newXP, err := s.profiles.AddXP(ctx, userID, amount)
	if err != nil {
		return AwardResult{}, err
	}

	res := AwardResult{Amount: amount, NewXP: newXP}

	defs := s.levels.Get(ctx)
	up := engine.CheckLevelUp(defs, newXP-amount, newXP)
	if up.LeveledUp {
		res.LeveledUp = true
		res.NewLevel = up.NewLevel
		// Сохраняем итоговый уровень, даже если начисление перескочило
		// несколько порогов сразу.
		final := engine.ResolveLevel(defs, newXP)
		if err := s.profiles.UpdateLevel(ctx, userID, final.Level); err != nil {
			s.log.Warnw("level update failed", "user_id", userID, "level", final.Level, "error", err)
		}
	}
	return res, nil
}

// LevelInfoFor — текущий уровень и прогресс до следующего.
func (s *XPService) LevelInfoFor(ctx context.Context, userID uuid.UUID) (*engine.LevelInfo, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	info := engine.ResolveLevel(s.levels.Get(ctx), p.XP)
	return &info, nil
}
