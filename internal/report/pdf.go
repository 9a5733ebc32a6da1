package report

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/phpdave11/gofpdf"

	"tripsee/internal/model"
	"tripsee/internal/util"
)

// WritePDF writes the trip's day plans to path, one section per day.
func WritePDF(path string, trip model.Trip, days []model.DayPlan) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	if err := RenderPDF(f, trip, days); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", path, err)
	}
	return nil
}

// RenderPDF writes the PDF document to w.
func RenderPDF(w io.Writer, trip model.Trip, days []model.DayPlan) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(trip.Name, true)
	pdf.SetAuthor("TripSee", false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.Cell(0, 10, tr(trip.Name))
	pdf.Ln(10)

	summary := strings.ReplaceAll(util.FormatDateRange(trip.StartDate, trip.EndDate), "–", "-")
	if trip.Destination.Name != "" {
		summary = trip.Destination.Label() + "  |  " + summary
	}
	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(90, 90, 90)
	pdf.Cell(0, 7, tr(summary))
	pdf.Ln(10)
	pdf.SetTextColor(0, 0, 0)

	for _, day := range days {
		heading := fmt.Sprintf("Day %d - %s", day.DayNumber, day.Date.Format("Monday, Jan 02"))
		pdf.SetFont("Helvetica", "B", 13)
		pdf.SetFillColor(230, 236, 228)
		pdf.CellFormat(0, 8, tr(heading), "", 1, "L", true, 0, "")
		pdf.Ln(1)

		if len(day.Items) == 0 {
			pdf.SetFont("Helvetica", "I", 10)
			pdf.Cell(0, 6, "Nothing planned")
			pdf.Ln(8)
			continue
		}

		for _, item := range day.Items {
			l := LineFor(item, day.Date)
			t := l.Time
			if t == "" {
				t = "--:--"
			}
			pdf.SetFont("Helvetica", "B", 10)
			pdf.CellFormat(16, 6, t, "", 0, "L", false, 0, "")
			pdf.CellFormat(26, 6, tr(l.Type), "", 0, "L", false, 0, "")
			pdf.SetFont("Helvetica", "", 10)
			pdf.CellFormat(90, 6, tr(util.TruncateString(l.Name, 48)), "", 0, "L", false, 0, "")
			if l.Tags != "" {
				pdf.SetFont("Helvetica", "B", 8)
				pdf.CellFormat(24, 6, l.Tags, "", 0, "L", false, 0, "")
			} else {
				pdf.CellFormat(24, 6, "", "", 0, "L", false, 0, "")
			}
			pdf.SetFont("Helvetica", "", 9)
			pdf.CellFormat(0, 6, string(l.Status), "", 1, "R", false, 0, "")

			var extra []string
			if l.Where != "" {
				extra = append(extra, l.Where)
			}
			if item.Duration != "" {
				extra = append(extra, item.Duration)
			}
			if l.Cost != "" {
				extra = append(extra, l.Cost)
			}
			if len(extra) > 0 {
				pdf.SetFont("Helvetica", "", 9)
				pdf.SetTextColor(90, 90, 90)
				pdf.CellFormat(16, 5, "", "", 0, "L", false, 0, "")
				pdf.MultiCell(0, 5, tr(strings.Join(extra, "  |  ")), "", "L", false)
				pdf.SetTextColor(0, 0, 0)
			}
		}
		pdf.Ln(4)
	}

	if trip.Notes != "" {
		pdf.SetFont("Helvetica", "B", 11)
		pdf.Cell(0, 7, "Notes")
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 10)
		pdf.MultiCell(0, 5, tr(trip.Notes), "", "L", false)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render pdf: %w", err)
	}
	return nil
}
