package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"startupcopilot/internal/domain"
)

func TestRecomputeHistoryThrottled(t *testing.T) {
	userID := uuid.New()
	project := &domain.Project{
		ID:     uuid.New(),
		UserID: userID,
		Stage:  domain.StageIdea,
		Artifacts: datatypes.NewJSONType(domain.Artifacts{
			"problem": "Ручной учёт заявок в таблицах",
		}),
	}
	projects := newFakeProjects(project)
	history := &fakeHistory{}

	now := time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)
	svc := NewScorecardService(projects, history, testLogger())
	svc.now = func() time.Time { return now }

	ctx := context.Background()
	sc, err := svc.Recompute(ctx, project.ID)
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if sc == nil {
		t.Fatal("expected a scorecard")
	}
	if project.Score != sc.Total {
		t.Errorf("project score = %d, want %d", project.Score, sc.Total)
	}
	if len(history.entries) != 1 {
		t.Fatalf("history rows = %d, want 1", len(history.entries))
	}

	// Повторный пересчёт в пределах часа — журнал не растёт.
	now = now.Add(30 * time.Minute)
	if _, err := svc.Recompute(ctx, project.ID); err != nil {
		t.Fatalf("Recompute (30m later): %v", err)
	}
	if len(history.entries) != 1 {
		t.Fatalf("history rows after throttled recompute = %d, want 1", len(history.entries))
	}

	// Спустя больше часа — новая запись.
	now = now.Add(2 * time.Hour)
	if _, err := svc.Recompute(ctx, project.ID); err != nil {
		t.Fatalf("Recompute (2h later): %v", err)
	}
	if len(history.entries) != 2 {
		t.Fatalf("history rows after window = %d, want 2", len(history.entries))
	}
}

func TestRecomputeMissingProject(t *testing.T) {
	svc := NewScorecardService(newFakeProjects(), &fakeHistory{}, testLogger())

	sc, err := svc.Recompute(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Recompute: %v", err)
	}
	if sc != nil {
		t.Fatal("missing project must yield no scorecard")
	}

	sc, err = svc.RecomputeForUser(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("RecomputeForUser: %v", err)
	}
	if sc != nil {
		t.Fatal("user without a project must yield no scorecard")
	}
}
