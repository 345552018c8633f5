package flows

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"tips-bot/internal/app/service"
	"tips-bot/internal/delivery/telegram/keyboards"
	"tips-bot/internal/delivery/telegram/middleware"
	"tips-bot/internal/delivery/telegram/router"
	"tips-bot/internal/domain"
	"tips-bot/pkg/calendar"
	"tips-bot/pkg/money"
)

// LogShiftFlow walks a chat through logging one shift.
type LogShiftFlow struct {
	Shifts    domain.ShiftService
	Employees *service.EmployeeService
	Calendar  *calendar.CalendarController
	Log       logrus.FieldLogger
	Currency  string
	Timeout   time.Duration

	mu     sync.Mutex
	drafts map[int64]*chatDraft
}

// chatDraft guards one chat's draft; telebot runs each update in its own
// goroutine, so replies from one chat can arrive concurrently.
type chatDraft struct {
	mu    sync.Mutex
	draft *Draft
}

func (f *LogShiftFlow) Register(r *router.CallbackRouter) {
	r.Register("log_today", func(c telebot.Context, _ string) error {
		return f.Begin(c, time.Now())
	})
	r.Register("log_yesterday", func(c telebot.Context, _ string) error {
		return f.Begin(c, time.Now().AddDate(0, 0, -1))
	})
	f.Calendar.OnDate = func(date time.Time, c telebot.Context) error {
		return f.Begin(c, date)
	}
	r.Register("log_other", func(c telebot.Context, _ string) error {
		return f.Calendar.ShowCalendar(c)
	})
}

// AskDate offers the quick date choices.
func (f *LogShiftFlow) AskDate(c telebot.Context) error {
	markup := &telebot.ReplyMarkup{}
	markup.Inline(markup.Row(
		markup.Data("Today", "log_today"),
		markup.Data("Yesterday", "log_yesterday"),
		markup.Data("Other date", "log_other"),
	))
	return c.Send("Which day did the shift start?", markup)
}

func (f *LogShiftFlow) Begin(c telebot.Context, date time.Time) error {
	d := f.start(c.Chat().ID, date)
	f.Log.WithFields(logrus.Fields{"chat": c.Chat().ID, "date": d.Input.Date.Format("2006-01-02")}).Debug("log flow started")
	return middleware.EditOrSend(c, d.Prompt())
}

func (f *LogShiftFlow) Cancel(chatID int64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.drafts[chatID]
	delete(f.drafts, chatID)
	return ok
}

// start replaces the chat's draft with a fresh one and returns a copy of it.
func (f *LogShiftFlow) start(chatID int64, date time.Time) Draft {
	d := NewDraft(domain.CalendarDay(date))
	snapshot := *d
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.drafts == nil {
		f.drafts = make(map[int64]*chatDraft)
	}
	f.drafts[chatID] = &chatDraft{draft: d}
	return snapshot
}

// advance feeds one reply into the chat's draft and returns a copy of it.
// ok is false when the chat has no shift in progress. A finished draft is
// removed from the chat before advance returns, so only one reply can finish
// it.
func (f *LogShiftFlow) advance(chatID int64, text string) (d Draft, ok bool, err error) {
	f.mu.Lock()
	cd, ok := f.drafts[chatID]
	f.mu.Unlock()
	if !ok {
		return Draft{}, false, nil
	}

	cd.mu.Lock()
	defer cd.mu.Unlock()
	f.mu.Lock()
	current := f.drafts[chatID] == cd
	f.mu.Unlock()
	if !current {
		// Finished, cancelled or restarted while this reply waited.
		return Draft{}, false, nil
	}

	err = cd.draft.Feed(text)
	if err == nil && cd.draft.Done() {
		f.mu.Lock()
		delete(f.drafts, chatID)
		f.mu.Unlock()
	}
	return *cd.draft, true, err
}

// HandleText feeds a text message into the chat's draft. It reports false when
// the chat has no shift in progress.
func (f *LogShiftFlow) HandleText(c telebot.Context) (bool, error) {
	chatID := c.Chat().ID
	d, ok, err := f.advance(chatID, c.Text())
	if !ok {
		return false, nil
	}
	if err != nil {
		return true, c.Send("Hmm, " + err.Error() + ".\n" + d.Prompt())
	}
	if !d.Done() {
		if d.Step == StepVenue {
			return true, f.askVenue(c, &d)
		}
		return true, c.Send(d.Prompt())
	}

	ctx, cancel := context.WithTimeout(context.Background(), f.Timeout)
	defer cancel()
	employeeID := c.Sender().ID
	sh, err := f.Shifts.LogShift(ctx, employeeID, d.Input)
	if err != nil {
		var fe *domain.FieldError
		if errors.As(err, &fe) {
			return true, c.Send("Could not log the shift: " + fe.Field + " " + fe.Reason + ".")
		}
		f.Log.WithError(err).WithField("chat", chatID).Error("logging shift")
		return true, c.Send("Could not save the shift, please try again later.")
	}
	f.rememberVenue(ctx, employeeID, sh.Venue)
	return true, c.Send(f.describe(sh), &telebot.ReplyMarkup{RemoveKeyboard: true})
}

func (f *LogShiftFlow) rememberVenue(ctx context.Context, employeeID int64, venue string) {
	if f.Employees == nil {
		return
	}
	if err := f.Employees.RememberVenue(ctx, employeeID, venue); err != nil {
		f.Log.WithError(err).WithField("employee", employeeID).Warn("saving default venue")
	}
}

func (f *LogShiftFlow) askVenue(c telebot.Context, d *Draft) error {
	ctx, cancel := context.WithTimeout(context.Background(), f.Timeout)
	defer cancel()
	employeeID := c.Sender().ID
	venues, err := f.Shifts.Venues(ctx, employeeID)
	if err != nil || len(venues) == 0 {
		return c.Send(d.Prompt())
	}
	var preferred string
	if f.Employees != nil {
		if e, err := f.Employees.GetEmployeeByID(ctx, employeeID); err == nil {
			preferred = e.DefaultVenue
		}
	}
	return c.Send(d.Prompt(), keyboards.BuildVenueKeyboard(venues, preferred))
}

func (f *LogShiftFlow) describe(sh domain.Shift) string {
	timing := fmt.Sprintf("%.2fh", sh.Hours())
	if sh.ClockIn != nil {
		timing = fmt.Sprintf("%s–%s (%.2fh)", domain.FormatClock(sh.ClockIn), domain.FormatClock(sh.ClockOut), sh.Hours())
		if sh.Overnight() {
			timing += ", overnight"
		}
	}
	return fmt.Sprintf("Shift logged ✅\n%s at %s\n%s\nTokes: %s · Downs: %s",
		sh.Date.Format("Mon 02.01.2006"), sh.Venue, timing,
		money.Format(f.Currency, sh.TokesCash), sh.Downs.String())
}
