package usecase

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

// Dashboard — агрегат независимых секций. Любое поле может быть nil:
// секция либо неприменима (нет данных), либо её загрузка упала —
// фронтенд просто не рендерит её, без баннеров с ошибками.
type Dashboard struct {
	Scorecard    *domain.Scorecard    `json:"scorecard,omitempty"`
	Level        *engine.LevelInfo    `json:"level,omitempty"`
	Streak       *engine.StreakStatus `json:"streak,omitempty"`
	Quest        *QuestView           `json:"quest,omitempty"`
	WeeklyReport *engine.WeeklyReport `json:"weekly_report,omitempty"`
}

type DashboardService struct {
	scorecard *ScorecardService
	xp        *XPService
	streak    *StreakService
	quests    *QuestService
	report    *ReportService
	log       *zap.SugaredLogger
}

func NewDashboardService(scorecard *ScorecardService, xp *XPService, streak *StreakService, quests *QuestService, report *ReportService, log *zap.SugaredLogger) *DashboardService {
	return &DashboardService{scorecard: scorecard, xp: xp, streak: streak, quests: quests, report: report, log: log}
}

// Load собирает секции параллельно с изоляцией сбоев (settle, не
// fail-fast). Метод не возвращает ошибку: дашборд рендерится всегда,
// хоть бы и пустой.
func (s *DashboardService) Load(ctx context.Context, userID uuid.UUID) Dashboard {
	var d Dashboard

	errs := settle(
		func() (err error) {
			d.Scorecard, err = s.scorecard.RecomputeForUser(ctx, userID)
			return err
		},
		func() (err error) {
			d.Level, err = s.xp.LevelInfoFor(ctx, userID)
			return err
		},
		func() (err error) {
			d.Streak, err = s.streak.Status(ctx, userID)
			return err
		},
		func() (err error) {
			d.Quest, err = s.quests.GetOrGenerate(ctx, userID)
			return err
		},
		func() (err error) {
			if !s.report.ShouldShow() {
				return nil
			}
			d.WeeklyReport, err = s.report.Weekly(ctx, userID)
			return err
		},
	)

	names := [...]string{"scorecard", "level", "streak", "quest", "weekly_report"}
	for i, err := range errs {
		if err != nil {
			s.log.Warnw("dashboard section failed", "section", names[i], "user_id", userID, "error", err)
		}
	}
	return d
}
