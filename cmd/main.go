package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"tips-bot/config"
	"tips-bot/internal/app/service"
	"tips-bot/internal/cli"
	"tips-bot/internal/repository/sqlite"
	"tips-bot/pkg/logger"
	"tips-bot/pkg/workerpool"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.LoadConfig(ctx)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	pool := workerpool.NewWorkerPool(cfg.Workers, cfg.QueueSize)
	defer pool.Close()

	var db *sql.DB
	app := &cli.App{
		Config: cfg,
		Log:    log,
		Async:  service.NewAsyncService(pool),
		Connect: func(ctx context.Context, app *cli.App, dbPath string) error {
			var err error
			db, err = sqlite.Open(ctx, dbPath)
			if err != nil {
				return err
			}
			log.WithField("db", dbPath).Debug("database ready")

			shifts := service.NewShiftService(sqlite.NewSqliteShiftRepo(db), log)
			app.Shifts = shifts
			app.Employees = service.NewEmployeeService(sqlite.NewSqliteEmployeeRepo(db))
			app.Export = service.NewExportService(shifts)
			return nil
		},
	}

	err = cli.NewRootCmd(app).ExecuteContext(ctx)
	if db != nil {
		db.Close()
	}
	if err != nil {
		// os.Exit skips deferred calls.
		pool.Close()
		stop()
		os.Exit(1)
	}
}
