package views

import "time"

// FormatDate labels t relative to now by calendar day in loc: "Today at
// 15:04", "Yesterday at 15:04", or "2 Jan 15:04" for anything else.
func FormatDate(t, now time.Time, loc *time.Location) string {
	if t.IsZero() {
		return ""
	}
	if loc == nil {
		loc = time.Local
	}
	local := t.In(loc)
	clock := local.Format("15:04")
	day := startOfDay(local)
	today := startOfDay(now.In(loc))
	switch {
	case day.Equal(today):
		return "Today at " + clock
	case day.Equal(today.AddDate(0, 0, -1)):
		return "Yesterday at " + clock
	default:
		return local.Format("2 Jan 15:04")
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
