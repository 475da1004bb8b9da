package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

// Не чаще одной записи истории в час: автосейв канваса дёргает
// пересчёт постоянно, журнал не должен расти без ограничений.
const historyThrottle = time.Hour

type ScorecardProjects interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.Project, error)
	SaveScorecard(ctx context.Context, id uuid.UUID, sc domain.Scorecard) error
}

type ScorecardHistoryStore interface {
	Latest(ctx context.Context, projectID uuid.UUID) (*domain.ScorecardHistory, error)
	Append(ctx context.Context, projectID uuid.UUID, sc domain.Scorecard, at time.Time) error
}

type ScorecardService struct {
	projects ScorecardProjects
	history  ScorecardHistoryStore
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewScorecardService(projects ScorecardProjects, history ScorecardHistoryStore, log *zap.SugaredLogger) *ScorecardService {
	return &ScorecardService{projects: projects, history: history, log: log, now: time.Now}
}

// Recompute пересчитывает скоркард и сохраняет его на проект.
// Проекта нет — возвращаем nil без ошибки, вызывающая сторона
// просто не рендерит секцию.
func (s *ScorecardService) Recompute(ctx context.Context, projectID uuid.UUID) (*domain.Scorecard, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return s.recompute(ctx, p)
}

// RecomputeForUser — то же для активного проекта пользователя.
func (s *ScorecardService) RecomputeForUser(ctx context.Context, userID uuid.UUID) (*domain.Scorecard, error) {
	p, err := s.projects.GetActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, nil
	}
	return s.recompute(ctx, p)
}

func (s *ScorecardService) recompute(ctx context.Context, p *domain.Project) (*domain.Scorecard, error) {
	sc := engine.ComputeScorecard(p.Artifacts.Data(), p.Progress.Data(), p.BMC.Data(), p.VPC.Data())

	if err := s.projects.SaveScorecard(ctx, p.ID, sc); err != nil {
		return nil, err
	}

	// История — best effort: скоркард уже сохранён на проекте,
	// сорвавшаяся запись журнала не должна ронять пересчёт.
	if err := s.appendHistoryThrottled(ctx, p.ID, sc); err != nil {
		s.log.Warnw("scorecard history append failed", "project_id", p.ID, "error", err)
	}
	return &sc, nil
}

func (s *ScorecardService) appendHistoryThrottled(ctx context.Context, projectID uuid.UUID, sc domain.Scorecard) error {
	latest, err := s.history.Latest(ctx, projectID)
	if err != nil {
		return err
	}
	now := s.now()
	if latest != nil && now.Sub(latest.CreatedAt) <= historyThrottle {
		return nil
	}
	return s.history.Append(ctx, projectID, sc, now)
}
