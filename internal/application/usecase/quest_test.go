package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"startupcopilot/internal/domain"
)

type questHarness struct {
	quests   *fakeQuests
	profiles *fakeProfiles
	projects *fakeProjects
	xpLog    *fakeXPLog
	svc      *QuestService
	user     uuid.UUID
}

func newQuestHarness(t *testing.T, now time.Time) *questHarness {
	t.Helper()

	userID := uuid.New()
	profiles := newFakeProfiles(&domain.Profile{ID: userID, Timezone: "UTC", Level: 1})
	projects := newFakeProjects(&domain.Project{ID: uuid.New(), UserID: userID, Stage: domain.StageIdea})
	quests := newFakeQuests()
	xpLog := &fakeXPLog{}

	clock := func() time.Time { return now }
	xp := NewXPService(profiles, xpLog, staticLevels{}, testLogger())
	xp.now = clock
	streak := NewStreakService(profiles, xp, testLogger())
	streak.now = clock
	svc := NewQuestService(quests, projects, profiles, xp, streak, testLogger())
	svc.now = clock

	return &questHarness{quests: quests, profiles: profiles, projects: projects, xpLog: xpLog, svc: svc, user: userID}
}

func (h *questHarness) setNow(now time.Time) {
	clock := func() time.Time { return now }
	h.svc.now = clock
	h.svc.xp.now = clock
	h.svc.streak.now = clock
}

func TestGetOrGenerateStableWithinDay(t *testing.T) {
	h := newQuestHarness(t, time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	first, err := h.svc.GetOrGenerate(ctx, h.user)
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}
	if first == nil || first.ID == uuid.Nil {
		t.Fatal("expected a generated quest with an id")
	}

	second, err := h.svc.GetOrGenerate(ctx, h.user)
	if err != nil {
		t.Fatalf("GetOrGenerate (repeat): %v", err)
	}
	if second.ID != first.ID {
		t.Fatalf("repeated generation gave a different quest: %s vs %s", second.ID, first.ID)
	}
	if len(h.quests.byUserDate) != 1 {
		t.Fatalf("expected a single stored quest, got %d", len(h.quests.byUserDate))
	}
	if second.ActionURL == "" {
		t.Error("expected an action url on the quest view")
	}
}

func TestCompleteQuestAwardsOnce(t *testing.T) {
	h := newQuestHarness(t, time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	quest, err := h.svc.GetOrGenerate(ctx, h.user)
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}

	res, err := h.svc.Complete(ctx, h.user, quest.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if !res.Success || res.XPAwarded != quest.XPReward {
		t.Fatalf("first completion = %+v, want success with %d xp", res, quest.XPReward)
	}

	// Повторное завершение того же задания — ноль начислений.
	res, err = h.svc.Complete(ctx, h.user, quest.ID)
	if err != nil {
		t.Fatalf("Complete (repeat): %v", err)
	}
	if res.Success {
		t.Fatal("second completion must not succeed")
	}

	if got := h.xpLog.totalBySource(domain.XPSourceDailyQuest); got != quest.XPReward {
		t.Errorf("quest xp logged = %d, want %d", got, quest.XPReward)
	}
	// Первая активность дня даёт дневной бонус ровно один раз.
	if got := h.xpLog.totalBySource(domain.XPSourceStreakBonus); got != dailyActivityBonusXP {
		t.Errorf("streak bonus logged = %d, want %d", got, dailyActivityBonusXP)
	}
	if p := h.profiles.byID[h.user]; p.XP != quest.XPReward+dailyActivityBonusXP {
		t.Errorf("profile xp = %d, want %d", p.XP, quest.XPReward+dailyActivityBonusXP)
	}
}

func TestCompleteUnknownQuestID(t *testing.T) {
	h := newQuestHarness(t, time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	if _, err := h.svc.GetOrGenerate(ctx, h.user); err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}

	res, err := h.svc.Complete(ctx, h.user, uuid.New())
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.Success {
		t.Fatal("completion with a foreign id must not succeed")
	}
	if got := len(h.xpLog.entries); got != 0 {
		t.Errorf("xp entries = %d, want 0", got)
	}
}

func TestCompleteExpiredQuest(t *testing.T) {
	h := newQuestHarness(t, time.Date(2025, 9, 17, 23, 0, 0, 0, time.UTC))
	ctx := context.Background()

	quest, err := h.svc.GetOrGenerate(ctx, h.user)
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}

	// Наступил следующий день: вчерашнее задание завершить уже нельзя.
	h.setNow(time.Date(2025, 9, 18, 1, 0, 0, 0, time.UTC))

	res, err := h.svc.Complete(ctx, h.user, quest.ID)
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if res.Success {
		t.Fatal("yesterday's quest must not be completable today")
	}
}

func TestCompleteByKeyMismatch(t *testing.T) {
	h := newQuestHarness(t, time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC))
	ctx := context.Background()

	quest, err := h.svc.GetOrGenerate(ctx, h.user)
	if err != nil {
		t.Fatalf("GetOrGenerate: %v", err)
	}

	if err := h.svc.CompleteByKey(ctx, h.user, "no_such_key"); err != nil {
		t.Fatalf("CompleteByKey: %v", err)
	}
	stored, _ := h.quests.GetForDay(ctx, h.user, quest.QuestDate)
	if stored.Completed {
		t.Fatal("mismatched key must not complete the quest")
	}

	if err := h.svc.CompleteByKey(ctx, h.user, quest.QuestKey); err != nil {
		t.Fatalf("CompleteByKey (matching): %v", err)
	}
	stored, _ = h.quests.GetForDay(ctx, h.user, quest.QuestDate)
	if !stored.Completed {
		t.Fatal("matching key must complete the quest")
	}
}
