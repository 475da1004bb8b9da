package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

const lessonXP = 25

type LessonStore interface {
	MarkCompleted(ctx context.Context, userID uuid.UUID, lessonID string, stage domain.Stage, at time.Time) (bool, error)
}

type LessonService struct {
	lessons LessonStore
	xp      *XPService
	streak  *StreakService
	quests  *QuestService
	log     *zap.SugaredLogger
	now     func() time.Time
}

func NewLessonService(lessons LessonStore, xp *XPService, streak *StreakService, quests *QuestService, log *zap.SugaredLogger) *LessonService {
	return &LessonService{lessons: lessons, xp: xp, streak: streak, quests: quests, log: log, now: time.Now}
}

type CompleteLessonResult struct {
	AlreadyCompleted bool `json:"already_completed"`
	XPAwarded        int  `json:"xp_awarded"`
}

// Complete фиксирует прохождение урока. Награды только за первое
// завершение: повторное прохождение того же урока XP не даёт.
func (s *LessonService) Complete(ctx context.Context, userID uuid.UUID, lessonID string, stage domain.Stage) (CompleteLessonResult, error) {
	if lessonID == "" {
		return CompleteLessonResult{}, fmt.Errorf("lesson id is required")
	}
	if stage != "" && !stage.IsValid() {
		return CompleteLessonResult{}, fmt.Errorf("unknown stage: %q", stage)
	}

	created, err := s.lessons.MarkCompleted(ctx, userID, lessonID, stage, s.now())
	if err != nil {
		return CompleteLessonResult{}, err
	}
	if !created {
		return CompleteLessonResult{AlreadyCompleted: true}, nil
	}

	if _, err := s.xp.Award(ctx, userID, lessonXP, domain.XPSourceLesson, "Урок: "+lessonID); err != nil {
		s.log.Warnw("lesson xp award failed", "user_id", userID, "lesson_id", lessonID, "error", err)
	}
	if _, err := s.streak.MarkActivity(ctx, userID); err != nil {
		s.log.Warnw("streak update failed", "user_id", userID, "error", err)
	}
	// Урок закрывает сегодняшнее задание "пройдите урок", если оно есть.
	if err := s.quests.CompleteByKey(ctx, userID, engine.QuestCompleteLesson); err != nil {
		s.log.Warnw("implicit quest completion failed", "user_id", userID, "error", err)
	}
	return CompleteLessonResult{XPAwarded: lessonXP}, nil
}
