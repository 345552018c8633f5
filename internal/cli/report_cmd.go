package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"tips-bot/internal/domain"
	"tips-bot/pkg/money"
)

func newListCmd(app *App, owner func() int64) *cobra.Command {
	var qf queryFlags
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List shifts, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.query()
			if err != nil {
				return err
			}
			shifts, err := app.Shifts.GetShifts(cmd.Context(), owner(), q)
			if err != nil {
				return err
			}
			if len(shifts) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No shifts.")
				return nil
			}
			return printShifts(cmd.OutOrStdout(), app.Config.CurrencySymbol, shifts)
		},
	}
	qf.bind(cmd.Flags())
	return cmd
}

func newSummaryCmd(app *App, owner func() int64) *cobra.Command {
	var qf queryFlags
	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Totals, hourly and per-down rates with a venue breakdown",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			q, err := qf.query()
			if err != nil {
				return err
			}
			sum, err := app.Shifts.Summary(cmd.Context(), owner(), q)
			if err != nil {
				return err
			}
			return printSummary(cmd.OutOrStdout(), app.Config.CurrencySymbol, sum)
		},
	}
	qf.bind(cmd.Flags())
	return cmd
}

func newExportCmd(app *App, owner func() int64) *cobra.Command {
	var (
		qf  queryFlags
		out string
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write shifts and summary to an XLSX workbook",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				return errors.New("--out is required")
			}
			q, err := qf.query()
			if err != nil {
				return err
			}
			buf, err := app.Export.Workbook(cmd.Context(), owner(), q)
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing %s: %w", out, err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", out)
			return nil
		},
	}
	qf.bind(cmd.Flags())
	cmd.Flags().StringVarP(&out, "out", "o", "", "Output file")
	return cmd
}

func printShifts(w io.Writer, symbol string, shifts []domain.Shift) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDAY\tVENUE\tIN\tOUT\tHOURS\tTOKES\tDOWNS")
	for _, s := range shifts {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%.2f\t%s\t%s\n",
			s.ID, s.Date.Format("2006-01-02"), s.Date.Weekday().String()[:3], s.Venue,
			orDash(domain.FormatClock(s.ClockIn)), orDash(domain.FormatClock(s.ClockOut)),
			s.Hours(), money.Format(symbol, s.TokesCash), s.Downs.String())
	}
	return tw.Flush()
}

func printSummary(w io.Writer, symbol string, sum domain.Summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "Shifts\t%d\n", sum.Count)
	fmt.Fprintf(tw, "Hours\t%.2f\n", sum.Hours())
	fmt.Fprintf(tw, "Downs\t%s\n", sum.Downs.String())
	fmt.Fprintf(tw, "Tokes\t%s\n", money.Format(symbol, sum.Total))
	fmt.Fprintf(tw, "Per hour\t%s\n", money.FormatRate(symbol, sum.Hourly))
	fmt.Fprintf(tw, "Per down\t%s\n", money.FormatRate(symbol, sum.PerDown))
	if err := tw.Flush(); err != nil {
		return err
	}
	if len(sum.ByVenue) == 0 {
		return nil
	}

	names := make([]string, 0, len(sum.ByVenue))
	for name := range sum.ByVenue {
		names = append(names, name)
	}
	sort.Strings(names)

	fmt.Fprintln(w)
	tw = tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "VENUE\tSHIFTS\tHOURS\tDOWNS\tTOKES\tPER HOUR\tPER DOWN")
	for _, name := range names {
		v := sum.ByVenue[name]
		fmt.Fprintf(tw, "%s\t%d\t%.2f\t%s\t%s\t%s\t%s\n",
			name, v.Count, v.Hours(), v.Downs.String(), money.Format(symbol, v.Total),
			money.FormatRate(symbol, v.Hourly()), money.FormatRate(symbol, v.PerDown()))
	}
	return tw.Flush()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
