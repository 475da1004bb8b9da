package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"startupcopilot/internal/domain"
	"startupcopilot/internal/engine"
)

func testLogger() *zap.SugaredLogger {
	return zap.NewNop().Sugar()
}

// --- профили ---

type fakeProfiles struct {
	byID map[uuid.UUID]*domain.Profile
}

func newFakeProfiles(profiles ...*domain.Profile) *fakeProfiles {
	f := &fakeProfiles{byID: map[uuid.UUID]*domain.Profile{}}
	for _, p := range profiles {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProfiles) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	return f.byID[id], nil
}

func (f *fakeProfiles) AddXP(_ context.Context, id uuid.UUID, amount int) (int, error) {
	p, ok := f.byID[id]
	if !ok {
		return 0, errors.New("profile not found")
	}
	p.XP += amount
	return p.XP, nil
}

func (f *fakeProfiles) UpdateLevel(_ context.Context, id uuid.UUID, level int) error {
	if p, ok := f.byID[id]; ok {
		p.Level = level
	}
	return nil
}

func (f *fakeProfiles) UpdateStreak(_ context.Context, id uuid.UUID, streak int, lastActivityDate string) error {
	if p, ok := f.byID[id]; ok {
		p.Streak = streak
		p.LastActivityDate = lastActivityDate
	}
	return nil
}

func (f *fakeProfiles) SaveFreeze(_ context.Context, id uuid.UUID, lastActivityDate string, usedAt time.Time) error {
	if p, ok := f.byID[id]; ok {
		p.LastActivityDate = lastActivityDate
		used := usedAt
		p.FreezeUsedAt = &used
	}
	return nil
}

// --- журнал XP ---

type fakeXPLog struct {
	entries []domain.XPTransaction
}

func (f *fakeXPLog) Create(_ context.Context, tx *domain.XPTransaction) error {
	f.entries = append(f.entries, *tx)
	return nil
}

func (f *fakeXPLog) totalBySource(source domain.XPSource) int {
	sum := 0
	for _, e := range f.entries {
		if e.Source == source {
			sum += e.Amount
		}
	}
	return sum
}

type staticLevels struct{}

func (staticLevels) Get(context.Context) []domain.LevelDefinition {
	return engine.FallbackLevels()
}

// --- проекты ---

type fakeProjects struct {
	byID map[uuid.UUID]*domain.Project
}

func newFakeProjects(projects ...*domain.Project) *fakeProjects {
	f := &fakeProjects{byID: map[uuid.UUID]*domain.Project{}}
	for _, p := range projects {
		f.byID[p.ID] = p
	}
	return f
}

func (f *fakeProjects) Create(_ context.Context, p *domain.Project) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	f.byID[p.ID] = p
	return nil
}

func (f *fakeProjects) GetByID(_ context.Context, id uuid.UUID) (*domain.Project, error) {
	return f.byID[id], nil
}

func (f *fakeProjects) GetActiveByUser(_ context.Context, userID uuid.UUID) (*domain.Project, error) {
	for _, p := range f.byID {
		if p.UserID == userID {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakeProjects) SaveScorecard(_ context.Context, id uuid.UUID, sc domain.Scorecard) error {
	if p, ok := f.byID[id]; ok {
		p.Score = sc.Total
	}
	return nil
}

// --- история скоркарда ---

type fakeHistory struct {
	entries []domain.ScorecardHistory
}

func (f *fakeHistory) Append(_ context.Context, projectID uuid.UUID, sc domain.Scorecard, at time.Time) error {
	f.entries = append(f.entries, domain.ScorecardHistory{
		ID: uuid.New(), ProjectID: projectID, Total: sc.Total, CreatedAt: at,
	})
	return nil
}

func (f *fakeHistory) Latest(_ context.Context, projectID uuid.UUID) (*domain.ScorecardHistory, error) {
	var latest *domain.ScorecardHistory
	for i := range f.entries {
		e := &f.entries[i]
		if e.ProjectID != projectID {
			continue
		}
		if latest == nil || e.CreatedAt.After(latest.CreatedAt) {
			latest = e
		}
	}
	return latest, nil
}

func (f *fakeHistory) FirstAndLastInWindow(_ context.Context, projectID uuid.UUID, from, to time.Time) (*domain.ScorecardHistory, *domain.ScorecardHistory, error) {
	var first, last *domain.ScorecardHistory
	for i := range f.entries {
		e := &f.entries[i]
		if e.ProjectID != projectID || e.CreatedAt.Before(from) || !e.CreatedAt.Before(to) {
			continue
		}
		if first == nil || e.CreatedAt.Before(first.CreatedAt) {
			first = e
		}
		if last == nil || e.CreatedAt.After(last.CreatedAt) {
			last = e
		}
	}
	return first, last, nil
}

// --- дневные задания ---

type fakeQuests struct {
	byUserDate map[string]*domain.DailyQuest
}

func newFakeQuests() *fakeQuests {
	return &fakeQuests{byUserDate: map[string]*domain.DailyQuest{}}
}

func questKey(userID uuid.UUID, date string) string {
	return userID.String() + "|" + date
}

func (f *fakeQuests) GetOrCreate(_ context.Context, q *domain.DailyQuest) (bool, error) {
	key := questKey(q.UserID, q.QuestDate)
	if existing, ok := f.byUserDate[key]; ok {
		*q = *existing
		return false, nil
	}
	if q.ID == uuid.Nil {
		q.ID = uuid.New()
	}
	stored := *q
	f.byUserDate[key] = &stored
	return true, nil
}

func (f *fakeQuests) GetForDay(_ context.Context, userID uuid.UUID, date string) (*domain.DailyQuest, error) {
	if q, ok := f.byUserDate[questKey(userID, date)]; ok {
		copied := *q
		return &copied, nil
	}
	return nil, nil
}

func (f *fakeQuests) MarkCompleted(_ context.Context, id, userID uuid.UUID, at time.Time) (bool, error) {
	for _, q := range f.byUserDate {
		if q.ID == id && q.UserID == userID && !q.Completed {
			q.Completed = true
			completedAt := at
			q.CompletedAt = &completedAt
			return true, nil
		}
	}
	return false, nil
}
