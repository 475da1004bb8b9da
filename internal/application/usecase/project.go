package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
)

const checklistItemXP = 15

// ErrProjectNotFound — проект не существует или принадлежит другому
// пользователю (для клиента это одно и то же).
var ErrProjectNotFound = errors.New("project not found")

type ProjectStore interface {
	Create(ctx context.Context, p *domain.Project) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Project, error)
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.Project, error)
	UpdateStage(ctx context.Context, id uuid.UUID, stage domain.Stage) error
	UpdateArtifacts(ctx context.Context, id uuid.UUID, a domain.Artifacts) error
	UpdateBMC(ctx context.Context, id uuid.UUID, bmc domain.BMCData) error
	UpdateVPC(ctx context.Context, id uuid.UUID, vpc domain.VPCData) error
	UpdateUnitEconomics(ctx context.Context, id uuid.UUID, ue domain.UnitEconomics) error
	UpdateProgress(ctx context.Context, id uuid.UUID, progress domain.ProgressData) error
}

// ProjectService — мутации проекта. Каждая мутация тянет за собой
// пересчёт скоркарда и проверку автозачёта дневного задания.
type ProjectService struct {
	projects  ProjectStore
	scorecard *ScorecardService
	quests    *QuestService
	xp        *XPService
	streak    *StreakService
	log       *zap.SugaredLogger
}

func NewProjectService(projects ProjectStore, scorecard *ScorecardService, quests *QuestService, xp *XPService, streak *StreakService, log *zap.SugaredLogger) *ProjectService {
	return &ProjectService{projects: projects, scorecard: scorecard, quests: quests, xp: xp, streak: streak, log: log}
}

func (s *ProjectService) Create(ctx context.Context, userID uuid.UUID, name string) (*domain.Project, error) {
	if name == "" {
		return nil, fmt.Errorf("project name is required")
	}
	p := &domain.Project{UserID: userID, Name: name, Stage: domain.StageIdea}
	if err := s.projects.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) GetActive(ctx context.Context, userID uuid.UUID) (*domain.Project, error) {
	return s.projects.GetActiveByUser(ctx, userID)
}

// Get возвращает проект пользователя по id.
func (s *ProjectService) Get(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	return s.owned(ctx, userID, projectID)
}

// owned загружает проект и проверяет владельца: чужой проект
// неотличим от несуществующего.
func (s *ProjectService) owned(ctx context.Context, userID, projectID uuid.UUID) (*domain.Project, error) {
	p, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if p == nil || p.UserID != userID {
		return nil, ErrProjectNotFound
	}
	return p, nil
}

func (s *ProjectService) SetStage(ctx context.Context, userID, projectID uuid.UUID, stage domain.Stage) error {
	p, err := s.owned(ctx, userID, projectID)
	if err != nil || p == nil {
		return err
	}
	if err := s.projects.UpdateStage(ctx, projectID, stage); err != nil {
		return err
	}
	return s.afterMutation(ctx, userID, projectID)
}

func (s *ProjectService) SaveArtifacts(ctx context.Context, userID, projectID uuid.UUID, a domain.Artifacts) error {
	p, err := s.owned(ctx, userID, projectID)
	if err != nil || p == nil {
		return err
	}
	if err := s.projects.UpdateArtifacts(ctx, projectID, a); err != nil {
		return err
	}
	return s.afterMutation(ctx, userID, projectID)
}

func (s *ProjectService) SaveBMC(ctx context.Context, userID, projectID uuid.UUID, bmc domain.BMCData) error {
	p, err := s.owned(ctx, userID, projectID)
	if err != nil || p == nil {
		return err
	}
	if err := s.projects.UpdateBMC(ctx, projectID, bmc); err != nil {
		return err
	}
	return s.afterMutation(ctx, userID, projectID)
}

func (s *ProjectService) SaveVPC(ctx context.Context, userID, projectID uuid.UUID, vpc domain.VPCData) error {
	p, err := s.owned(ctx, userID, projectID)
	if err != nil || p == nil {
		return err
	}
	if err := s.projects.UpdateVPC(ctx, projectID, vpc); err != nil {
		return err
	}
	return s.afterMutation(ctx, userID, projectID)
}

func (s *ProjectService) SaveUnitEconomics(ctx context.Context, userID, projectID uuid.UUID, ue domain.UnitEconomics) error {
	p, err := s.owned(ctx, userID, projectID)
	if err != nil || p == nil {
		return err
	}
	if err := s.projects.UpdateUnitEconomics(ctx, projectID, ue); err != nil {
		return err
	}
	return s.afterMutation(ctx, userID, projectID)
}

// SaveProgress обновляет чек-листы этапов и начисляет XP за новые
// закрытые пункты. Метка checklist_item в журнале транзакций — по ней
// недельный отчёт считает "применённые знания".
func (s *ProjectService) SaveProgress(ctx context.Context, userID, projectID uuid.UUID, progress domain.ProgressData) error {
	p, err := s.owned(ctx, userID, projectID)
	if err != nil || p == nil {
		return err
	}

	newItems := newlyCompletedItems(p.Progress.Data(), progress)

	if err := s.projects.UpdateProgress(ctx, projectID, progress); err != nil {
		return err
	}

	for _, item := range newItems {
		if _, err := s.xp.Award(ctx, userID, checklistItemXP, domain.XPSourceChecklistItem, "Пункт чек-листа: "+item); err != nil {
			s.log.Warnw("checklist xp award failed", "user_id", userID, "item", item, "error", err)
		}
	}
	if len(newItems) > 0 {
		if _, err := s.streak.MarkActivity(ctx, userID); err != nil {
			s.log.Warnw("streak update failed", "user_id", userID, "error", err)
		}
	}
	return s.afterMutation(ctx, userID, projectID)
}

// afterMutation: пересчёт скоркарда и автозачёт задания по свежему
// состоянию. Ошибки здесь не отменяют уже применённую мутацию.
func (s *ProjectService) afterMutation(ctx context.Context, userID, projectID uuid.UUID) error {
	if _, err := s.scorecard.Recompute(ctx, projectID); err != nil {
		s.log.Warnw("scorecard recompute failed", "project_id", projectID, "error", err)
	}
	fresh, err := s.projects.GetByID(ctx, projectID)
	if err != nil || fresh == nil {
		return err
	}
	if err := s.quests.SyncWithProject(ctx, userID, fresh); err != nil {
		s.log.Warnw("quest sync failed", "user_id", userID, "error", err)
	}
	return nil
}

func newlyCompletedItems(old, updated domain.ProgressData) []string {
	done := map[string]bool{}
	for stage, sp := range old {
		for _, item := range sp.CompletedItems {
			done[string(stage)+"/"+item] = true
		}
	}
	var fresh []string
	for stage, sp := range updated {
		for _, item := range sp.CompletedItems {
			if !done[string(stage)+"/"+item] {
				fresh = append(fresh, item)
			}
		}
	}
	return fresh
}
