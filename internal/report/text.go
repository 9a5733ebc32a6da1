package report

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tripsee/internal/model"
	"tripsee/internal/util"
)

var (
	bold   = color.New(color.Bold).SprintFunc()
	faint  = color.New(color.Faint).SprintFunc()
	tagged = color.New(color.FgHiMagenta, color.Bold).SprintFunc()
)

func statusText(s model.ItemStatus) string {
	switch s {
	case model.StatusConfirmed:
		return color.GreenString(string(s))
	case model.StatusCancelled:
		return color.RedString(string(s))
	default:
		return color.YellowString(string(s))
	}
}

// WriteText prints the trip header and one table per day.
func WriteText(w io.Writer, trip model.Trip, days []model.DayPlan) error {
	if _, err := fmt.Fprintln(w, bold(trip.Name)); err != nil {
		return err
	}
	summary := util.FormatDateRange(trip.StartDate, trip.EndDate)
	if trip.Destination.Name != "" {
		summary = trip.Destination.Label() + "  ·  " + summary
	}
	if _, err := fmt.Fprintln(w, faint(summary)); err != nil {
		return err
	}

	for _, day := range days {
		if _, err := fmt.Fprintf(w, "\n%s\n", bold(util.FormatDayHeading(day.DayNumber, day.Date))); err != nil {
			return err
		}
		if len(day.Items) == 0 {
			if _, err := fmt.Fprintln(w, faint("  nothing planned")); err != nil {
				return err
			}
			continue
		}

		tbl := uitable.New()
		tbl.Separator = "  "
		tbl.MaxColWidth = 40
		for _, item := range day.Items {
			l := LineFor(item, day.Date)
			t := l.Time
			if t == "" {
				t = "--:--"
			}
			tbl.AddRow(" ", t, l.Type, l.Name, l.Where, tagged(l.Tags), statusText(l.Status))
		}
		if _, err := fmt.Fprintln(w, tbl); err != nil {
			return err
		}
	}
	return nil
}
