package util

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const isoDate = "2006-01-02"

// FormatDate formats a date string (YYYY-MM-DD) for display.
func FormatDate(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "Unknown"
	}
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02, 2006")
}

// FormatDateHuman formats a trip date relative to today.
// "Today", "Tomorrow", "Yesterday", "in 3d", "3d ago", "Jan 15", "Jan 15 '24"
func FormatDateHuman(date string) string {
	return formatDateHumanAt(date, time.Now())
}

func formatDateHumanAt(date string, now time.Time) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return "Unknown"
	}
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return date
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	days := int(t.Sub(today).Hours() / 24)

	switch {
	case days == 0:
		return "Today"
	case days == 1:
		return "Tomorrow"
	case days == -1:
		return "Yesterday"
	case days > 1 && days < 7:
		return fmt.Sprintf("in %dd", days)
	case days < -1 && days > -7:
		return fmt.Sprintf("%dd ago", -days)
	case t.Year() == now.Year():
		return t.Format("Jan 02")
	default:
		return t.Format("Jan 02 '06")
	}
}

// FormatDateRange formats a start/end pair compactly:
// "Mar 01 – 04, 2024", "Mar 28 – Apr 02, 2024", "Dec 30, 2024 – Jan 02, 2025".
func FormatDateRange(start, end string) string {
	s, errS := time.Parse(isoDate, strings.TrimSpace(start))
	e, errE := time.Parse(isoDate, strings.TrimSpace(end))
	switch {
	case errS != nil && errE != nil:
		return "Dates TBD"
	case errE != nil:
		return "From " + s.Format("Jan 02, 2006")
	case errS != nil:
		return "Until " + e.Format("Jan 02, 2006")
	case s.Equal(e):
		return s.Format("Jan 02, 2006")
	case s.Year() != e.Year():
		return s.Format("Jan 02, 2006") + " – " + e.Format("Jan 02, 2006")
	case s.Month() != e.Month():
		return s.Format("Jan 02") + " – " + e.Format("Jan 02, 2006")
	default:
		return s.Format("Jan 02") + " – " + e.Format("02, 2006")
	}
}

// FormatDays formats a day count: "1 day", "4 days".
func FormatDays(n int) string {
	if n == 1 {
		return "1 day"
	}
	return strconv.Itoa(n) + " days"
}

// FormatDayHeading formats a day plan heading: "Day 2 · Sat, Mar 02".
func FormatDayHeading(dayNumber int, date time.Time) string {
	return fmt.Sprintf("Day %d · %s", dayNumber, date.Format("Mon, Jan 02"))
}

// TodayISO returns today's date in ISO 8601 format (YYYY-MM-DD).
func TodayISO() string {
	return time.Now().Format(isoDate)
}

// ParseDateInput parses flexible user input and normalizes to ISO (YYYY-MM-DD).
// Empty input is allowed and returns "". "today", "tomorrow" and "+N" (days
// from today) are accepted as shortcuts.
func ParseDateInput(input string) (string, error) {
	return parseDateInputAt(input, time.Now())
}

func parseDateInputAt(input string, now time.Time) (string, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return "", nil
	}

	switch strings.ToLower(s) {
	case "today":
		return now.Format(isoDate), nil
	case "tomorrow":
		return now.AddDate(0, 0, 1).Format(isoDate), nil
	}
	if strings.HasPrefix(s, "+") {
		if n, err := strconv.Atoi(s[1:]); err == nil && n >= 0 {
			return now.AddDate(0, 0, n).Format(isoDate), nil
		}
	}

	layouts := []string{
		isoDate,
		"January 2, 2006",
		"Jan 2, 2006",
		"Jan 2 2006",
		"2 Jan 2006",
		"1/2/2006",
		"01/02/2006",
	}

	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(isoDate), nil
		}
	}

	return "", fmt.Errorf("invalid date format")
}

// TruncateString truncates a string to maxLen and adds "..." if needed.
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen < 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}

// FormatDateShort formats an ISO date as "Mar 02". Empty input stays empty
// and unparseable input is returned as is.
func FormatDateShort(date string) string {
	date = strings.TrimSpace(date)
	if date == "" {
		return ""
	}
	t, err := time.Parse(isoDate, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 02")
}
