package engine

import (
	"fmt"
	"strings"
	"time"
)

// WeeklyReportInput — агрегаты за прошлую неделю (пн-вс), собранные
// вызывающей стороной из журналов транзакций.
type WeeklyReportInput struct {
	XPEarned           int
	LessonsCompleted   int
	ChecklistItemsDone int
	QuestsCompleted    int
	// HasScore == false, когда у проекта ещё нет ни одной записи
	// в истории скоркарда.
	HasScore     bool
	ScoreDelta   int
	CurrentScore int
	StreakDays   int
}

type WeeklyReport struct {
	WeekStart string `json:"week_start"`
	WeekEnd   string `json:"week_end"`

	XPEarned           int `json:"xp_earned"`
	LessonsCompleted   int `json:"lessons_completed"`
	ChecklistItemsDone int `json:"checklist_items_done"`
	QuestsCompleted    int `json:"quests_completed"`
	ScoreDelta         int `json:"score_delta"`
	CurrentScore       int `json:"current_score"`
	StreakDays         int `json:"streak_days"`

	Summary        string `json:"summary"`
	Recommendation string `json:"recommendation"`
}

// BuildWeeklyReport собирает отчёт и генерирует тексты. Без ИИ:
// сводка и рекомендация — чистые правила.
func BuildWeeklyReport(in WeeklyReportInput, weekStart, weekEnd time.Time) WeeklyReport {
	return WeeklyReport{
		WeekStart:          weekStart.Format(DateLayout),
		WeekEnd:            weekEnd.Format(DateLayout),
		XPEarned:           in.XPEarned,
		LessonsCompleted:   in.LessonsCompleted,
		ChecklistItemsDone: in.ChecklistItemsDone,
		QuestsCompleted:    in.QuestsCompleted,
		ScoreDelta:         in.ScoreDelta,
		CurrentScore:       in.CurrentScore,
		StreakDays:         in.StreakDays,
		Summary:            GenerateSummary(in),
		Recommendation:     GenerateRecommendation(in),
	}
}

// GenerateSummary — перечисление достижений недели с правильными
// русскими формами множественного числа.
func GenerateSummary(in WeeklyReportInput) string {
	var parts []string
	if in.XPEarned > 0 {
		parts = append(parts, fmt.Sprintf("заработали %d XP", in.XPEarned))
	}
	if in.LessonsCompleted > 0 {
		parts = append(parts, fmt.Sprintf("прошли %d %s",
			in.LessonsCompleted, PluralRu(in.LessonsCompleted, "урок", "урока", "уроков")))
	}
	if in.ChecklistItemsDone > 0 {
		parts = append(parts, fmt.Sprintf("закрыли %d %s чек-листа",
			in.ChecklistItemsDone, PluralRu(in.ChecklistItemsDone, "пункт", "пункта", "пунктов")))
	}
	if in.QuestsCompleted > 0 {
		parts = append(parts, fmt.Sprintf("выполнили %d %s",
			in.QuestsCompleted, PluralRu(in.QuestsCompleted, "задание", "задания", "заданий")))
	}

	var b strings.Builder
	if len(parts) == 0 {
		b.WriteString("На этой неделе активности не было.")
	} else {
		b.WriteString("За неделю вы " + strings.Join(parts, ", ") + ".")
	}

	if in.HasScore && in.ScoreDelta > 0 {
		b.WriteString(fmt.Sprintf(" Оценка проекта выросла на %d %s.",
			in.ScoreDelta, PluralRu(in.ScoreDelta, "балл", "балла", "баллов")))
	} else if in.HasScore && in.ScoreDelta < 0 {
		d := -in.ScoreDelta
		b.WriteString(fmt.Sprintf(" Оценка проекта снизилась на %d %s.",
			d, PluralRu(d, "балл", "балла", "баллов")))
	}

	if in.StreakDays >= 7 {
		b.WriteString(fmt.Sprintf(" Серия: %d %s подряд!",
			in.StreakDays, PluralRu(in.StreakDays, "день", "дня", "дней")))
	}
	return b.String()
}

// GenerateRecommendation возвращает текст первого сработавшего
// правила. Порядок правил — это приоритет.
func GenerateRecommendation(in WeeklyReportInput) string {
	noActivity := in.XPEarned == 0 && in.LessonsCompleted == 0 &&
		in.ChecklistItemsDone == 0 && in.QuestsCompleted == 0

	switch {
	case noActivity:
		return "Начните с ежедневного задания — оно занимает меньше десяти минут."
	case in.LessonsCompleted > 0 && in.ChecklistItemsDone == 0:
		return "Вы хорошо учитесь — теперь примените знания: закройте пункт чек-листа текущего этапа."
	case in.HasScore && in.ScoreDelta < 0:
		return "Оценка проекта снижается. Вернитесь к Business Model Canvas и уточните сегменты аудитории."
	case in.QuestsCompleted == 0:
		return "Попробуйте ежедневные задания — они дают стабильный прирост XP."
	default:
		return "Отличный темп! Продолжайте в том же духе."
	}
}

// ShouldShowWeeklyReport: отчёт показываем только в понедельник и
// воскресенье (UTC), в остальные дни секция скрыта.
func ShouldShowWeeklyReport(now time.Time) bool {
	switch now.UTC().Weekday() {
	case time.Monday, time.Sunday:
		return true
	default:
		return false
	}
}
