package engine

import (
	"testing"
	"time"
)

func TestTodayRespectsTimezone(t *testing.T) {
	// 23:30 UTC: в Москве уже следующий день.
	now := time.Date(2025, 9, 16, 23, 30, 0, 0, time.UTC)
	if got := Today(now, "Europe/Moscow"); got != "2025-09-17" {
		t.Fatalf("Today(msk)=%s, want 2025-09-17", got)
	}
	if got := Today(now, "UTC"); got != "2025-09-16" {
		t.Fatalf("Today(utc)=%s, want 2025-09-16", got)
	}
	if got := Yesterday(now, "Europe/Moscow"); got != "2025-09-16" {
		t.Fatalf("Yesterday(msk)=%s, want 2025-09-16", got)
	}
}

func TestTodayUnknownTimezoneFallsBack(t *testing.T) {
	now := time.Date(2025, 9, 16, 12, 0, 0, 0, time.UTC)
	if got := Today(now, "Mars/Olympus"); got != Today(now, DefaultTimezone) {
		t.Fatalf("unknown tz did not fall back to default")
	}
	if got := Today(now, ""); got != Today(now, DefaultTimezone) {
		t.Fatalf("empty tz did not fall back to default, got %s", got)
	}
}

func TestDaysBetween(t *testing.T) {
	if got := DaysBetween("2025-09-15", "2025-09-17"); got != 2 {
		t.Fatalf("DaysBetween=%d, want 2", got)
	}
	if got := DaysBetween("2025-09-17", "2025-09-17"); got != 0 {
		t.Fatalf("same day=%d, want 0", got)
	}
	if got := DaysBetween("", "2025-09-17"); got < 1000 {
		t.Fatalf("malformed date treated as recent: %d", got)
	}
}

func TestWeekStartMonday(t *testing.T) {
	// Среда.
	now := time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC)
	ws := WeekStart(now, "UTC")
	if ws.Weekday() != time.Monday || ws.Format(DateLayout) != "2025-09-15" {
		t.Fatalf("WeekStart=%v, want Monday 2025-09-15", ws)
	}

	// Воскресенье относится к текущей неделе, не к следующей.
	sunday := time.Date(2025, 9, 21, 12, 0, 0, 0, time.UTC)
	if got := WeekStart(sunday, "UTC").Format(DateLayout); got != "2025-09-15" {
		t.Fatalf("WeekStart(sunday)=%s, want 2025-09-15", got)
	}
}

func TestPrevWeekWindowUTC(t *testing.T) {
	now := time.Date(2025, 9, 17, 12, 0, 0, 0, time.UTC)
	from, to := PrevWeekWindowUTC(now)
	if from.Format(DateLayout) != "2025-09-08" || to.Format(DateLayout) != "2025-09-15" {
		t.Fatalf("window [%v, %v), want [2025-09-08, 2025-09-15)", from, to)
	}
	if to.Sub(from) != 7*24*time.Hour {
		t.Fatalf("window length=%v, want 168h", to.Sub(from))
	}
}
