package dialogue

import (
	"regexp"
	"strings"
	"time"
)

var isoDatePattern = regexp.MustCompile(`\b(\d{4}-\d{2}-\d{2})\b`)

var weekdays = map[string]time.Weekday{
	"sunday": time.Sunday, "monday": time.Monday, "tuesday": time.Tuesday,
	"wednesday": time.Wednesday, "thursday": time.Thursday,
	"friday": time.Friday, "saturday": time.Saturday,
	"sun": time.Sunday, "mon": time.Monday, "tue": time.Tuesday, "tues": time.Tuesday,
	"wed": time.Wednesday, "thu": time.Thursday, "thurs": time.Thursday,
	"fri": time.Friday, "sat": time.Saturday,
}

// ParseRelativeDate is the deterministic arm of the date-resolution
// capability: exact-date passthrough, today/tomorrow, and
// "this/next <weekday>" arithmetic against the supplied clock. Returns
// false when the text carries no recognizable date.
func ParseRelativeDate(text string, now time.Time) (string, bool) {
	if m := isoDatePattern.FindStringSubmatch(text); m != nil {
		if _, err := time.Parse("2006-01-02", m[1]); err == nil {
			return m[1], true
		}
	}

	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "tomorrow"):
		return now.AddDate(0, 0, 1).Format("2006-01-02"), true
	case strings.Contains(lower, "today") || strings.Contains(lower, "tonight"):
		return now.Format("2006-01-02"), true
	}

	next := strings.Contains(lower, "next ")
	for _, tok := range strings.Fields(lower) {
		tok = strings.Trim(tok, ",.!?")
		wd, ok := weekdays[tok]
		if !ok {
			continue
		}
		days := (int(wd) - int(now.Weekday()) + 7) % 7
		if days == 0 {
			days = 7
		}
		if next {
			days += 7
		}
		return now.AddDate(0, 0, days).Format("2006-01-02"), true
	}

	return "", false
}
