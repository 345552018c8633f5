package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/telebot.v3"

	"tips-bot/internal/delivery/telegram"
	"tips-bot/pkg/calendar"
	"tips-bot/pkg/logger"
)

func newBotCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "bot",
		Short: "Run the Telegram bot",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Config.RequireToken(); err != nil {
				return err
			}
			bot, err := telebot.NewBot(telebot.Settings{
				Token:  app.Config.TelegramToken,
				Poller: &telebot.LongPoller{Timeout: 10 * time.Second},
				OnError: func(err error, c telebot.Context) {
					var data any
					if c != nil && c.Sender() != nil {
						data = c.Sender().ID
					}
					logger.LogError(app.Log, "telegram", "OnError", data, err)
				},
			})
			if err != nil {
				return fmt.Errorf("starting bot: %w", err)
			}

			handler := &telegram.Handler{
				Bot:       bot,
				Shifts:    app.Shifts,
				Async:     app.Async,
				Employees: app.Employees,
				Export:    app.Export,
				Calendar:  &calendar.CalendarController{Bot: bot},
				Log:       app.Log,
				Currency:  app.Config.CurrencySymbol,
			}
			handler.Register()

			go func() {
				<-cmd.Context().Done()
				bot.Stop()
			}()
			app.Log.WithField("bot", bot.Me.Username).Info("bot started")
			bot.Start()
			app.Log.Info("bot stopped")
			return nil
		},
	}
}
