package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

type ReportXP interface {
	SumInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
	CountBySourceInWindow(ctx context.Context, userID uuid.UUID, source domain.XPSource, from, to time.Time) (int, error)
}

type ReportLessons interface {
	CountCompletedInWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (int, error)
}

type ReportQuests interface {
	CountCompletedInWindow(ctx context.Context, userID uuid.UUID, fromDate, toDate string) (int, error)
}

type ReportHistory interface {
	FirstAndLastInWindow(ctx context.Context, projectID uuid.UUID, from, to time.Time) (*domain.ScorecardHistory, *domain.ScorecardHistory, error)
	Latest(ctx context.Context, projectID uuid.UUID) (*domain.ScorecardHistory, error)
}

type ReportService struct {
	profiles QuestProfiles
	projects QuestProjects
	xps      ReportXP
	lessons  ReportLessons
	quests   ReportQuests
	history  ReportHistory
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewReportService(profiles QuestProfiles, projects QuestProjects, xps ReportXP, lessons ReportLessons, quests ReportQuests, history ReportHistory, log *zap.SugaredLogger) *ReportService {
	return &ReportService{profiles: profiles, projects: projects, xps: xps, lessons: lessons, quests: quests, history: history, log: log, now: time.Now}
}

// Weekly собирает отчёт строго за прошлую неделю (пн-вс, UTC).
// Профиля нет — отчёта нет, это не ошибка.
func (s *ReportService) Weekly(ctx context.Context, userID uuid.UUID) (*engine.WeeklyReport, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil || p == nil {
		return nil, err
	}

	from, to := engine.PrevWeekWindowUTC(s.now())

	in := engine.WeeklyReportInput{StreakDays: p.Streak}

	if in.XPEarned, err = s.xps.SumInWindow(ctx, userID, from, to); err != nil {
		return nil, err
	}
	if in.LessonsCompleted, err = s.lessons.CountCompletedInWindow(ctx, userID, from, to); err != nil {
		return nil, err
	}
	// Пункты чек-листа считаем по меткам XP-транзакций: отдельного
	// журнала событий нет, это осознанное приближение.
	if in.ChecklistItemsDone, err = s.xps.CountBySourceInWindow(ctx, userID, domain.XPSourceChecklistItem, from, to); err != nil {
		return nil, err
	}
	if in.QuestsCompleted, err = s.quests.CountCompletedInWindow(ctx, userID,
		from.Format(engine.DateLayout), to.Format(engine.DateLayout)); err != nil {
		return nil, err
	}

	project, err := s.projects.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if project != nil {
		first, last, err := s.history.FirstAndLastInWindow(ctx, project.ID, from, to)
		if err != nil {
			return nil, err
		}
		switch {
		case first != nil:
			in.HasScore = true
			in.ScoreDelta = last.Total - first.Total
			in.CurrentScore = last.Total
		default:
			// В окне записей не было — берём последнюю известную оценку.
			latest, err := s.history.Latest(ctx, project.ID)
			if err != nil {
				return nil, err
			}
			if latest != nil {
				in.HasScore = true
				in.CurrentScore = latest.Total
			}
		}
	}

	report := engine.BuildWeeklyReport(in, from, to.AddDate(0, 0, -1))
	return &report, nil
}

// ShouldShow — отчёт показываем только по понедельникам и воскресеньям.
func (s *ReportService) ShouldShow() bool {
	return engine.ShouldShowWeeklyReport(s.now())
}
