package telegram

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"tips-bot/internal/app/service"
	"tips-bot/internal/delivery/telegram/flows"
	"tips-bot/internal/delivery/telegram/keyboards"
	"tips-bot/internal/delivery/telegram/router"
	"tips-bot/internal/domain"
	"tips-bot/internal/repository/sqlite"
	"tips-bot/pkg/calendar"
	"tips-bot/pkg/logger"
)

const defaultTimeout = 10 * time.Second

type Handler struct {
	Bot       *telebot.Bot
	Shifts    domain.ShiftService
	Async     *service.AsyncService
	Employees *service.EmployeeService
	Export    *service.ExportService
	Calendar  *calendar.CalendarController
	Log       logrus.FieldLogger
	Currency  string
	Timeout   time.Duration

	logFlow     *flows.LogShiftFlow
	summaryFlow *flows.SummaryFlow
}

var (
	btnLogShift  = telebot.Btn{Text: "📝 Log shift"}
	btnThisMonth = telebot.Btn{Text: "📊 This month"}
	btnPickMonth = telebot.Btn{Text: "🗓 Pick month"}
	btnVenues    = telebot.Btn{Text: "📍 Venues"}
)

func (h *Handler) Register() {
	if h.Timeout <= 0 {
		h.Timeout = defaultTimeout
	}
	h.logFlow = &flows.LogShiftFlow{
		Shifts:    h.Shifts,
		Employees: h.Employees,
		Calendar:  h.Calendar,
		Log:       h.Log,
		Currency:  h.Currency,
		Timeout:   h.Timeout,
	}
	h.summaryFlow = &flows.SummaryFlow{
		Shifts:   h.Shifts,
		Export:   h.Export,
		Async:    h.Async,
		Log:      h.Log,
		Currency: h.Currency,
		Timeout:  h.Timeout,
	}

	r := router.New(h.Log)
	r.CalDelegate = h.Calendar.HandleCallback
	h.logFlow.Register(r)
	h.summaryFlow.Register(r)
	r.Attach(h.Bot)

	h.Bot.Handle("/start", h.handleStart)
	h.Bot.Handle("/cancel", h.handleCancel)
	h.Bot.Handle("/venues", h.handleVenues)
	h.Bot.Handle(telebot.OnText, h.handleText)
}

func (h *Handler) handleText(c telebot.Context) error {
	// Menu buttons always win over a half-finished shift.
	switch c.Text() {
	case btnLogShift.Text:
		h.logFlow.Cancel(c.Chat().ID)
		return h.logFlow.AskDate(c)
	case btnThisMonth.Text:
		h.logFlow.Cancel(c.Chat().ID)
		return h.summaryFlow.Show(c, time.Now().Format("2006-01"), keyboards.FilterAll)
	case btnPickMonth.Text:
		h.logFlow.Cancel(c.Chat().ID)
		return h.summaryFlow.ShowMonthPicker(c)
	case btnVenues.Text:
		return h.handleVenues(c)
	}
	if handled, err := h.logFlow.HandleText(c); handled {
		return err
	}
	return c.Send("Use the menu below, or /start to bring it back.", mainMenu())
}

func (h *Handler) handleStart(c telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.Timeout)
	defer cancel()
	empID := c.Sender().ID
	if _, err := h.Employees.GetEmployeeByID(ctx, empID); err != nil {
		if !errors.Is(err, sqlite.ErrNotFound) {
			logger.LogError(h.Log, "telegram", "handleStart", empID, err)
		}
		if err := h.Employees.CreateOrUpdateEmployee(ctx, employeeFromContext(c)); err != nil {
			logger.LogError(h.Log, "telegram", "CreateOrUpdateEmployee", empID, err)
		} else {
			h.Log.WithField("employee", empID).Info("employee registered")
		}
	}
	return c.Send("Welcome! Log your shifts and see what you make per hour and per down.", mainMenu())
}

func (h *Handler) handleCancel(c telebot.Context) error {
	if h.logFlow.Cancel(c.Chat().ID) {
		return c.Send("Shift discarded.", mainMenu())
	}
	return c.Send("Nothing to cancel.", mainMenu())
}

func (h *Handler) handleVenues(c telebot.Context) error {
	ctx, cancel := context.WithTimeout(context.Background(), h.Timeout)
	defer cancel()
	venues, err := h.Shifts.Venues(ctx, c.Sender().ID)
	if err != nil {
		logger.LogError(h.Log, "telegram", "handleVenues", c.Sender().ID, err)
		return c.Send("Could not load venues, please try again later.")
	}
	if len(venues) == 0 {
		return c.Send("No venues yet. Log a shift first.")
	}
	return c.Send("Your venues:\n• " + strings.Join(venues, "\n• "))
}

func mainMenu() *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true}
	markup.Reply(
		markup.Row(markup.Text(btnLogShift.Text)),
		markup.Row(markup.Text(btnThisMonth.Text), markup.Text(btnPickMonth.Text)),
		markup.Row(markup.Text(btnVenues.Text)),
	)
	return markup
}

// employeeFromContext builds an Employee from the Telegram sender.
func employeeFromContext(c telebot.Context) domain.Employee {
	return domain.Employee{
		ID:     c.Sender().ID,
		Name:   c.Sender().FirstName,
		ChatID: c.Chat().ID,
		Role:   "dealer",
	}
}
