package cli

import (
	"context"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"tips-bot/config"
	"tips-bot/internal/app/service"
	"tips-bot/internal/domain"
)

// App holds the services the commands run against.
type App struct {
	Config    *config.Config
	Log       *logrus.Logger
	Shifts    domain.ShiftService
	Employees *service.EmployeeService
	Export    *service.ExportService
	Async     *service.AsyncService

	// Connect opens the database at dbPath and fills in the services.
	// It is skipped when Shifts is already set.
	Connect func(ctx context.Context, app *App, dbPath string) error
}

// NewRootCmd creates the top-level "tipsbot" command.
func NewRootCmd(app *App) *cobra.Command {
	var (
		dbPath     string
		employeeID int64
	)

	root := &cobra.Command{
		Use:          "tipsbot",
		Short:        "Log dealer shifts and see what they pay",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Shifts != nil || app.Connect == nil {
				return nil
			}
			return app.Connect(cmd.Context(), app, dbPath)
		},
	}
	root.PersistentFlags().StringVar(&dbPath, "db", app.Config.DBPath, "SQLite database file")
	root.PersistentFlags().Int64Var(&employeeID, "employee", app.Config.EmployeeID, "Employee (Telegram user) ID the shifts belong to")

	owner := func() int64 { return employeeID }
	root.AddCommand(
		newBotCmd(app),
		newLogCmd(app, owner),
		newEditCmd(app, owner),
		newRmCmd(app, owner),
		newListCmd(app, owner),
		newSummaryCmd(app, owner),
		newVenuesCmd(app, owner),
		newExportCmd(app, owner),
		newEmployeesCmd(app),
	)
	return root
}
