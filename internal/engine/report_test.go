package engine

import (
	"strings"
	"testing"
	"time"
)

func TestPluralRu(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{1, "урок"},
		{2, "урока"},
		{5, "уроков"},
		{11, "уроков"},
		{12, "уроков"},
		{19, "уроков"},
		{21, "урок"},
		{25, "уроков"},
		{102, "урока"},
		{111, "уроков"},
	}
	for _, c := range cases {
		if got := PluralRu(c.n, "урок", "урока", "уроков"); got != c.want {
			t.Errorf("PluralRu(%d)=%q, want %q", c.n, got, c.want)
		}
	}
}

func TestGenerateSummaryNoActivity(t *testing.T) {
	got := GenerateSummary(WeeklyReportInput{})
	if got != "На этой неделе активности не было." {
		t.Fatalf("summary=%q", got)
	}
}

func TestGenerateSummaryFull(t *testing.T) {
	in := WeeklyReportInput{
		XPEarned:           120,
		LessonsCompleted:   2,
		ChecklistItemsDone: 1,
		QuestsCompleted:    5,
		HasScore:           true,
		ScoreDelta:         3,
		StreakDays:         8,
	}
	got := GenerateSummary(in)
	for _, want := range []string{
		"заработали 120 XP",
		"прошли 2 урока",
		"закрыли 1 пункт чек-листа",
		"выполнили 5 заданий",
		"выросла на 3 балла",
		"8 дней подряд",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary %q misses %q", got, want)
		}
	}
}

func TestGenerateSummaryDecline(t *testing.T) {
	got := GenerateSummary(WeeklyReportInput{XPEarned: 10, HasScore: true, ScoreDelta: -5})
	if !strings.Contains(got, "снизилась на 5 баллов") {
		t.Fatalf("summary=%q", got)
	}
	// Без записей в истории дельту не упоминаем вовсе.
	got = GenerateSummary(WeeklyReportInput{XPEarned: 10, ScoreDelta: -5})
	if strings.Contains(got, "снизилась") {
		t.Fatalf("summary mentions delta without score history: %q", got)
	}
}

func TestGenerateSummaryShortStreakSilent(t *testing.T) {
	got := GenerateSummary(WeeklyReportInput{XPEarned: 10, StreakDays: 6})
	if strings.Contains(got, "подряд") {
		t.Fatalf("streak below 7 mentioned: %q", got)
	}
}

func TestGenerateRecommendationPriorities(t *testing.T) {
	// Правило 1: полная тишина.
	got := GenerateRecommendation(WeeklyReportInput{})
	if !strings.Contains(got, "ежедневного задания") {
		t.Fatalf("no-activity rec=%q", got)
	}

	// Правило 2: уроки без чек-листа — важнее падающего скора.
	got = GenerateRecommendation(WeeklyReportInput{LessonsCompleted: 3, HasScore: true, ScoreDelta: -2})
	if !strings.Contains(got, "примените знания") {
		t.Fatalf("lessons-without-checklist rec=%q", got)
	}

	// Правило 3: падение скора.
	got = GenerateRecommendation(WeeklyReportInput{ChecklistItemsDone: 2, HasScore: true, ScoreDelta: -2})
	if !strings.Contains(got, "Business Model Canvas") {
		t.Fatalf("score-decline rec=%q", got)
	}

	// Правило 4: не было квестов.
	got = GenerateRecommendation(WeeklyReportInput{ChecklistItemsDone: 2})
	if !strings.Contains(got, "ежедневные задания") {
		t.Fatalf("no-quests rec=%q", got)
	}

	// Дефолт.
	got = GenerateRecommendation(WeeklyReportInput{ChecklistItemsDone: 2, QuestsCompleted: 3})
	if !strings.Contains(got, "Отличный темп") {
		t.Fatalf("default rec=%q", got)
	}
}

func TestShouldShowWeeklyReport(t *testing.T) {
	monday := time.Date(2025, 9, 15, 10, 0, 0, 0, time.UTC)
	sunday := time.Date(2025, 9, 21, 10, 0, 0, 0, time.UTC)
	wednesday := time.Date(2025, 9, 17, 10, 0, 0, 0, time.UTC)
	if !ShouldShowWeeklyReport(monday) || !ShouldShowWeeklyReport(sunday) {
		t.Fatalf("report hidden on monday/sunday")
	}
	if ShouldShowWeeklyReport(wednesday) {
		t.Fatalf("report shown midweek")
	}
}

func TestBuildWeeklyReportCarriesWindow(t *testing.T) {
	from := time.Date(2025, 9, 8, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC)
	rep := BuildWeeklyReport(WeeklyReportInput{XPEarned: 50}, from, to)
	if rep.WeekStart != "2025-09-08" || rep.WeekEnd != "2025-09-15" {
		t.Fatalf("window %s..%s", rep.WeekStart, rep.WeekEnd)
	}
	if rep.Summary == "" || rep.Recommendation == "" {
		t.Fatalf("texts not generated")
	}
}
