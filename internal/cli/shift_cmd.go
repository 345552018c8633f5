package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"tips-bot/internal/domain"
	"tips-bot/pkg/money"
)

// shiftFlags are the write-side flags of log and edit.
type shiftFlags struct {
	date, clockIn, clockOut string
	hours                   float64
	tokes, downs            string
	venue, notes            string
}

func (f *shiftFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.date, "date", "", "Day the shift started (YYYY-MM-DD, default today)")
	fs.StringVar(&f.clockIn, "in", "", "Clock-in time HH:MM")
	fs.StringVar(&f.clockOut, "out", "", "Clock-out time HH:MM; at or before --in means next day")
	fs.Float64Var(&f.hours, "hours", 0, "Hours worked, instead of --in/--out (multiple of 0.25)")
	fs.StringVar(&f.tokes, "tokes", "0", "Tokes, e.g. 215.50")
	fs.StringVar(&f.downs, "downs", "0", "Downs dealt")
	fs.StringVar(&f.venue, "venue", "", "Venue")
	fs.StringVar(&f.notes, "notes", "", "Free text notes")
}

func (f *shiftFlags) input(fs *pflag.FlagSet) (domain.ShiftInput, error) {
	in := domain.ShiftInput{
		Date:     time.Now(),
		ClockIn:  f.clockIn,
		ClockOut: f.clockOut,
		Venue:    f.venue,
		Notes:    f.notes,
	}
	if f.date != "" {
		d, err := domain.ParseDate(f.date)
		if err != nil {
			return in, err
		}
		in.Date = d
	}
	if fs.Changed("hours") {
		h := f.hours
		in.Hours = &h
	}
	cents, err := money.ParseCents(f.tokes)
	if err != nil {
		return in, fmt.Errorf("--tokes: %w", err)
	}
	in.TokesCash = cents
	downs, err := money.ParseDowns(f.downs)
	if err != nil {
		return in, fmt.Errorf("--downs: %w", err)
	}
	in.Downs = downs
	return in, nil
}

// update builds a partial update from the flags that were set.
func (f *shiftFlags) update(fs *pflag.FlagSet) (domain.ShiftUpdate, error) {
	var u domain.ShiftUpdate
	if fs.Changed("date") || fs.Changed("venue") || fs.Changed("notes") {
		u.Identity = &domain.IdentityPatch{}
		if fs.Changed("date") {
			d, err := domain.ParseDate(f.date)
			if err != nil {
				return u, err
			}
			u.Identity.Date = &d
		}
		if fs.Changed("venue") {
			u.Identity.Venue = &f.venue
		}
		if fs.Changed("notes") {
			u.Identity.Notes = &f.notes
		}
	}
	if fs.Changed("in") || fs.Changed("out") || fs.Changed("hours") {
		u.Timing = &domain.TimingPatch{ClockIn: f.clockIn, ClockOut: f.clockOut}
		if fs.Changed("hours") {
			h := f.hours
			u.Timing.Hours = &h
		}
	}
	if fs.Changed("tokes") || fs.Changed("downs") {
		u.Money = &domain.MoneyPatch{}
		if fs.Changed("tokes") {
			cents, err := money.ParseCents(f.tokes)
			if err != nil {
				return u, fmt.Errorf("--tokes: %w", err)
			}
			u.Money.TokesCash = &cents
		}
		if fs.Changed("downs") {
			downs, err := money.ParseDowns(f.downs)
			if err != nil {
				return u, fmt.Errorf("--downs: %w", err)
			}
			u.Money.Downs = &downs
		}
	}
	return u, nil
}

func newLogCmd(app *App, owner func() int64) *cobra.Command {
	var flags shiftFlags
	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a shift",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			in, err := flags.input(cmd.Flags())
			if err != nil {
				return err
			}
			sh, err := app.Shifts.LogShift(cmd.Context(), owner(), in)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describeShift(app, sh))
			return nil
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func newEditCmd(app *App, owner func() int64) *cobra.Command {
	var flags shiftFlags
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change fields of a logged shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := flags.update(cmd.Flags())
			if err != nil {
				return err
			}
			sh, err := app.Shifts.UpdateShift(cmd.Context(), owner(), args[0], u)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), describeShift(app, sh))
			return nil
		},
	}
	flags.bind(cmd.Flags())
	return cmd
}

func newRmCmd(app *App, owner func() int64) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Delete a logged shift",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Shifts.DeleteShift(cmd.Context(), owner(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	}
}

func newVenuesCmd(app *App, owner func() int64) *cobra.Command {
	return &cobra.Command{
		Use:   "venues",
		Short: "List venues, most recently worked first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			venues, err := app.Shifts.Venues(cmd.Context(), owner())
			if err != nil {
				return err
			}
			for _, v := range venues {
				fmt.Fprintln(cmd.OutOrStdout(), v)
			}
			return nil
		},
	}
}

func describeShift(app *App, sh domain.Shift) string {
	timing := fmt.Sprintf("%.2fh", sh.Hours())
	if sh.ClockIn != nil {
		timing = fmt.Sprintf("%s-%s %s", domain.FormatClock(sh.ClockIn), domain.FormatClock(sh.ClockOut), timing)
	}
	return fmt.Sprintf("%s  %s  %s  %s  tokes %s  downs %s",
		sh.ID, sh.Date.Format("2006-01-02"), sh.Venue, timing,
		money.Format(app.Config.CurrencySymbol, sh.TokesCash), sh.Downs.String())
}

func newEmployeesCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "employees",
		Short: "List employees registered through the bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			employees, err := app.Employees.GetAllEmployees(cmd.Context())
			if err != nil {
				return err
			}
			for _, e := range employees {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", e.ID, e.Name, e.Role)
			}
			return nil
		},
	}
}
