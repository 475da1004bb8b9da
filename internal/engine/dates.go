package engine

import "time"

const (
	// DefaultTimezone используется, когда у пользователя таймзона не задана.
	DefaultTimezone = "Europe/Moscow"

	// DateLayout — календарная дата без времени, чтобы не ловить
	// сдвиг на день при сравнении активности в разных таймзонах.
	DateLayout = "2006-01-02"
)

func loadLocation(tz string) *time.Location {
	if tz == "" {
		tz = DefaultTimezone
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc, err = time.LoadLocation(DefaultTimezone)
		if err != nil {
			return time.UTC
		}
	}
	return loc
}

// Today returns the calendar date "now" in the given IANA timezone.
func Today(now time.Time, tz string) string {
	return now.In(loadLocation(tz)).Format(DateLayout)
}

// Yesterday returns the previous calendar date in the given timezone.
func Yesterday(now time.Time, tz string) string {
	return now.In(loadLocation(tz)).AddDate(0, 0, -1).Format(DateLayout)
}

// DaysBetween returns to-from in whole calendar days.
// Malformed dates count as "очень давно".
func DaysBetween(from, to string) int {
	f, err := time.Parse(DateLayout, from)
	if err != nil {
		return 1 << 20
	}
	t, err := time.Parse(DateLayout, to)
	if err != nil {
		return 1 << 20
	}
	return int(t.Sub(f).Hours() / 24)
}

// WeekStart returns Monday 00:00 of the current ISO week in the timezone.
func WeekStart(now time.Time, tz string) time.Time {
	local := now.In(loadLocation(tz))
	weekday := int(local.Weekday())
	if weekday == 0 { // воскресенье
		weekday = 7
	}
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, local.Location())
	return day.AddDate(0, 0, -(weekday - 1))
}

// PrevWeekWindowUTC returns [monday 00:00; next monday 00:00) of the
// *previous* week in UTC. The weekly report covers exactly this window,
// not a rolling seven days.
func PrevWeekWindowUTC(now time.Time) (time.Time, time.Time) {
	end := WeekStart(now.UTC(), "UTC")
	return end.AddDate(0, 0, -7), end
}
