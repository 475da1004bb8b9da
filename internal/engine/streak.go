package engine

import (
	"time"

	"startupcopilot/internal/domain"
)

// StreakMilestone — ближайшая награда за непрерывную серию.
type StreakMilestone struct {
	Days     int    `json:"days"`
	XPReward int    `json:"xp_reward"`
	Label    string `json:"label"`
}

// Держим расписание стабильным: клиенты показывают его в прогресс-баре.
var streakMilestones = []StreakMilestone{
	{Days: 3, XPReward: 15, Label: "Три дня подряд"},
	{Days: 7, XPReward: 40, Label: "Неделя без пропусков"},
	{Days: 14, XPReward: 90, Label: "Две недели"},
	{Days: 30, XPReward: 200, Label: "Месяц дисциплины"},
	{Days: 60, XPReward: 450, Label: "Два месяца"},
	{Days: 100, XPReward: 800, Label: "Сто дней"},
}

type StreakStatus struct {
	Count           int              `json:"count"`
	ActiveToday     bool             `json:"active_today"`
	AtRisk          bool             `json:"at_risk"`
	FreezeAvailable bool             `json:"freeze_available"`
	NextMilestone   *StreakMilestone `json:"next_milestone"`
}

// EvaluateStreak — чтение без побочных эффектов: что показать на дашборде.
//
//   - активность сегодня или вчера: серия жива;
//   - пропущен ровно один день: "под угрозой", можно спасти заморозкой;
//   - дольше: серия уже сгорела, показываем 0.
func EvaluateStreak(p *domain.Profile, now time.Time) StreakStatus {
	today := Today(now, p.Timezone)
	st := StreakStatus{Count: p.Streak}

	switch {
	case p.LastActivityDate == today:
		st.ActiveToday = true
	case p.LastActivityDate == Yesterday(now, p.Timezone):
		// Ждём сегодняшнюю активность, серия пока цела.
	case DaysBetween(p.LastActivityDate, today) == 2:
		st.AtRisk = true
		st.FreezeAvailable = freezeAvailable(p, now)
		if !st.FreezeAvailable {
			st.Count = 0
		}
	default:
		st.Count = 0
	}

	st.NextMilestone = NextStreakMilestone(st.Count)
	return st
}

// NextStreakMilestone returns the nearest milestone above count, nil
// when the schedule is exhausted.
func NextStreakMilestone(count int) *StreakMilestone {
	for _, m := range streakMilestones {
		if m.Days > count {
			milestone := m
			return &milestone
		}
	}
	return nil
}

// MarkActivity фиксирует зачётную активность. Возвращает true только
// при первом событии за день — на это завязан дневной бонус.
func MarkActivity(p *domain.Profile, now time.Time) bool {
	today := Today(now, p.Timezone)
	if p.LastActivityDate == today {
		return false
	}
	if p.LastActivityDate == Yesterday(now, p.Timezone) {
		p.Streak++
	} else {
		p.Streak = 1
	}
	p.LastActivityDate = today
	return true
}

// ApplyFreeze спасает серию после одного пропущенного дня.
// Одна заморозка на календарную неделю (понедельник, таймзона юзера).
func ApplyFreeze(p *domain.Profile, now time.Time) error {
	today := Today(now, p.Timezone)
	if DaysBetween(p.LastActivityDate, today) != 2 {
		return ErrFreezeNotNeeded
	}
	if !freezeAvailable(p, now) {
		return ErrFreezeAlreadyUsed
	}
	// Пропущенный день закрываем заморозкой: серия продолжится,
	// как только пользователь что-то сделает сегодня.
	p.LastActivityDate = Yesterday(now, p.Timezone)
	used := now
	p.FreezeUsedAt = &used
	return nil
}

func freezeAvailable(p *domain.Profile, now time.Time) bool {
	if p.FreezeUsedAt == nil {
		return true
	}
	return p.FreezeUsedAt.Before(WeekStart(now, p.Timezone))
}
