package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

type QuestStore interface {
	GetOrCreate(ctx context.Context, q *domain.DailyQuest) (bool, error)
	GetForDay(ctx context.Context, userID uuid.UUID, date string) (*domain.DailyQuest, error)
	MarkCompleted(ctx context.Context, id, userID uuid.UUID, at time.Time) (bool, error)
}

type QuestProjects interface {
	GetActiveByUser(ctx context.Context, userID uuid.UUID) (*domain.Project, error)
}

type QuestProfiles interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
}

type QuestService struct {
	quests   QuestStore
	projects QuestProjects
	profiles QuestProfiles
	xp       *XPService
	streak   *StreakService
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewQuestService(quests QuestStore, projects QuestProjects, profiles QuestProfiles, xp *XPService, streak *StreakService, log *zap.SugaredLogger) *QuestService {
	return &QuestService{quests: quests, projects: projects, profiles: profiles, xp: xp, streak: streak, log: log, now: time.Now}
}

// QuestView — задание вместе с маршрутом для кнопки.
type QuestView struct {
	domain.DailyQuest
	ActionURL string `json:"action_url"`
}

// GetOrGenerate возвращает задание на сегодня, генерируя его при первом
// обращении. Повторный вызов в тот же день отдаёт ту же запись:
// навигация туда-сюда не создаёт новых заданий.
func (s *QuestService) GetOrGenerate(ctx context.Context, userID uuid.UUID) (*QuestView, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil || p == nil {
		return nil, err
	}
	project, err := s.projects.GetActiveByUser(ctx, userID)
	if err != nil || project == nil {
		return nil, err
	}

	def := engine.SelectQuest(project)
	quest := &domain.DailyQuest{
		UserID:    userID,
		QuestDate: engine.Today(s.now(), p.Timezone),
		ProjectID: project.ID,
		QuestKey:  def.Key,
		Label:     def.Label,
		XPReward:  def.XPReward,
		Baseline:  engine.QuestBaseline(def.Key, project),
	}
	if _, err := s.quests.GetOrCreate(ctx, quest); err != nil {
		return nil, err
	}
	return &QuestView{DailyQuest: *quest, ActionURL: engine.QuestActionURL(quest.QuestKey)}, nil
}

type CompleteQuestResult struct {
	Success   bool `json:"success"`
	XPAwarded int  `json:"xp_awarded"`
}

// Complete закрывает задание по явному действию пользователя.
// Повторное завершение не начисляет XP: условный апдейт в хранилище
// пропускает только первый вызов.
func (s *QuestService) Complete(ctx context.Context, userID, questID uuid.UUID) (CompleteQuestResult, error) {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil || p == nil {
		return CompleteQuestResult{}, err
	}

	// Просроченные задания (вчерашние и старше) завершить нельзя:
	// квест живёт до местной полуночи.
	quest, err := s.quests.GetForDay(ctx, userID, engine.Today(s.now(), p.Timezone))
	if err != nil {
		return CompleteQuestResult{}, err
	}
	if quest == nil || quest.ID != questID {
		return CompleteQuestResult{}, nil
	}

	updated, err := s.quests.MarkCompleted(ctx, questID, userID, s.now())
	if err != nil || !updated {
		return CompleteQuestResult{}, err
	}

	if _, err := s.xp.Award(ctx, userID, quest.XPReward, domain.XPSourceDailyQuest, quest.Label); err != nil {
		s.log.Warnw("quest xp award failed", "user_id", userID, "quest_id", questID, "error", err)
	}
	if _, err := s.streak.MarkActivity(ctx, userID); err != nil {
		s.log.Warnw("streak update failed", "user_id", userID, "error", err)
	}
	return CompleteQuestResult{Success: true, XPAwarded: quest.XPReward}, nil
}

// CompleteByKey — автозачёт по ключу: событие в продукте (урок,
// заполненный блок) закрывает сегодняшнее задание с тем же ключом.
func (s *QuestService) CompleteByKey(ctx context.Context, userID uuid.UUID, questKey string) error {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil || p == nil {
		return err
	}
	quest, err := s.quests.GetForDay(ctx, userID, engine.Today(s.now(), p.Timezone))
	if err != nil || quest == nil || quest.Completed || quest.QuestKey != questKey {
		return err
	}
	_, err = s.Complete(ctx, userID, quest.ID)
	return err
}

// SyncWithProject проверяет предикат автозачёта после изменения проекта.
func (s *QuestService) SyncWithProject(ctx context.Context, userID uuid.UUID, project *domain.Project) error {
	p, err := s.profiles.GetByID(ctx, userID)
	if err != nil || p == nil {
		return err
	}
	quest, err := s.quests.GetForDay(ctx, userID, engine.Today(s.now(), p.Timezone))
	if err != nil || quest == nil || quest.Completed {
		return err
	}
	if !engine.QuestSatisfied(quest.QuestKey, quest.Baseline, project) {
		return nil
	}
	_, err = s.Complete(ctx, userID, quest.ID)
	return err
}
