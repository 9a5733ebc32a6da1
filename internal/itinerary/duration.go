package itinerary

import (
	"fmt"
	"strings"
	"time"
)

// ComputeDuration returns the elapsed time between two date-time pairs as
// "<H> Hour[s] <M> Minute[s]". ok is false unless all four inputs are present,
// well formed and ordered; callers then keep the previous value. A zero
// duration yields "" with ok true, meaning unspecified.
func ComputeDuration(startDate, startTime, endDate, endTime string) (string, bool) {
	for _, v := range []string{startDate, startTime, endDate, endTime} {
		if strings.TrimSpace(v) == "" {
			return "", false
		}
	}
	start, err := combine(startDate, startTime)
	if err != nil {
		return "", false
	}
	end, err := combine(endDate, endTime)
	if err != nil {
		return "", false
	}
	if end.Before(start) {
		return "", false
	}

	elapsed := end.Sub(start)
	hours := int(elapsed / time.Hour)
	minutes := int((elapsed % time.Hour) / time.Minute)
	return FormatDuration(hours, minutes), true
}

// FormatDuration renders whole hours and minutes, omitting zero parts.
func FormatDuration(hours, minutes int) string {
	var parts []string
	if hours > 0 {
		parts = append(parts, pluralize(hours, "Hour"))
	}
	if minutes > 0 {
		parts = append(parts, pluralize(minutes, "Minute"))
	}
	return strings.Join(parts, " ")
}

func pluralize(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
