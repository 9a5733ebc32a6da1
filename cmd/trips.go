package cmd

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/spf13/cobra"

	"tripsee/internal/db"
	"tripsee/internal/itinerary"
	"tripsee/internal/model"
	"tripsee/internal/report"
	"tripsee/internal/search"
	"tripsee/internal/ui"
	"tripsee/internal/util"
)

var bold = color.New(color.Bold).SprintFunc()

func addTrips(topLevel *cobra.Command, opts *rootOptions) {
	var filter string

	cmd := &cobra.Command{
		Use:   "trips",
		Short: "List saved trips",
		Example: `
tripsee trips
tripsee trips --filter japan
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			database, err := openDatabase(opts.config)
			if err != nil {
				return err
			}
			defer database.Close()

			rows, err := db.ListTrips(cmd.Context(), database, filter)
			if err != nil {
				return err
			}
			renderTrips(cmd.OutOrStdout(), rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "only trips whose name, destination or country contains this text")
	topLevel.AddCommand(cmd)
}

func renderTrips(w io.Writer, rows []model.TripRow) {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "No trips yet. Run tripsee and press a to plan one.")
		return
	}

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 32
	tbl.AddRow(bold("ID"), bold("Name"), bold("Destination"), bold("Dates"), bold("Items"), bold("Booked"))
	for _, r := range rows {
		dest := r.Destination
		if r.Country != "" {
			dest += ", " + r.Country
		}
		tbl.AddRow(r.ID, r.Name, dest, util.FormatDateRange(r.StartDate, r.EndDate), r.ItemCount, fmt.Sprintf("%d/%d", r.Confirmed, r.ItemCount))
	}
	_, _ = fmt.Fprintln(w, tbl)
}

func parseTripID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid trip id %q", arg)
	}
	return id, nil
}

// loadPlan fetches a trip with its items and partitions them into days.
func loadPlan(cmd *cobra.Command, opts *rootOptions, arg string) (model.Trip, []model.DayPlan, error) {
	id, err := parseTripID(arg)
	if err != nil {
		return model.Trip{}, nil, err
	}
	database, err := openDatabase(opts.config)
	if err != nil {
		return model.Trip{}, nil, err
	}
	defer database.Close()

	detail, err := db.GetTripDetail(cmd.Context(), database, id)
	if err != nil {
		return model.Trip{}, nil, err
	}
	days, err := itinerary.PlanTrip(detail)
	if err != nil {
		return detail.Trip, nil, err
	}
	return detail.Trip, days, nil
}

func addItinerary(topLevel *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "itinerary <trip-id>",
		Short: "Print a trip's day plans",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			trip, days, err := loadPlan(cmd, opts, args[0])
			if err != nil {
				return err
			}
			return report.WriteText(cmd.OutOrStdout(), trip, days)
		},
	}
	topLevel.AddCommand(cmd)
}

func addExport(topLevel *cobra.Command, opts *rootOptions) {
	var out string

	cmd := &cobra.Command{
		Use:   "export <trip-id>",
		Short: "Export a trip's day plans as PDF",
		Example: `
tripsee export 3
tripsee export 3 --out ~/Desktop/paris.pdf
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			trip, days, err := loadPlan(cmd, opts, args[0])
			if err != nil {
				return err
			}
			path := out
			if path == "" {
				path = ui.ExportFileName(trip)
			}
			if err := report.WritePDF(path, trip, days); err != nil {
				return err
			}
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "Exported %s\n", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "", "output file (default: <trip-name>-<start-date>.pdf)")
	topLevel.AddCommand(cmd)
}

func addSearch(topLevel *cobra.Command) {
	var byID bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search the destination catalog",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			catalog, err := search.NewCatalog(0)
			if err != nil {
				return err
			}

			var results []model.Destination
			if byID {
				d, err := catalog.Lookup(args[0])
				if err != nil {
					return err
				}
				results = []model.Destination{d}
			} else {
				results, err = catalog.Search(cmd.Context(), args[0])
				if err != nil {
					return err
				}
			}
			renderDestinations(cmd.OutOrStdout(), results)
			return nil
		},
	}

	cmd.Flags().BoolVar(&byID, "id", false, "treat the query as a catalog id")
	topLevel.AddCommand(cmd)
}

func renderDestinations(w io.Writer, results []model.Destination) {
	if len(results) == 0 {
		_, _ = fmt.Fprintln(w, "No destinations found.")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("ID"), bold("Name"), bold("Address"), bold("Country"), bold("Lat/Lng"))
	for _, d := range results {
		tbl.AddRow(d.ID, d.Name, d.Address, d.Country, fmt.Sprintf("%.4f, %.4f", d.Coordinates.Lat, d.Coordinates.Lng))
	}
	_, _ = fmt.Fprintln(w, tbl)
}
