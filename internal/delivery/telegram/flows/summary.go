package flows

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gopkg.in/telebot.v3"

	"tips-bot/internal/app/service"
	"tips-bot/internal/delivery/telegram/keyboards"
	"tips-bot/internal/delivery/telegram/middleware"
	"tips-bot/internal/delivery/telegram/router"
	"tips-bot/internal/domain"
	"tips-bot/pkg/money"
)

// SummaryFlow answers the month picker and the summary filter buttons.
type SummaryFlow struct {
	Shifts   domain.ShiftService
	Export   *service.ExportService
	Async    *service.AsyncService
	Log      logrus.FieldLogger
	Currency string
	Timeout  time.Duration
}

func (f *SummaryFlow) Register(r *router.CallbackRouter) {
	r.Register("month_prev", func(c telebot.Context, payload string) error {
		y, _ := strconv.Atoi(payload)
		title, markup := keyboards.BuildMonthKeyboard(y-1, time.Now())
		return middleware.EditOrSend(c, title, markup)
	})
	r.Register("month_next", func(c telebot.Context, payload string) error {
		y, _ := strconv.Atoi(payload)
		title, markup := keyboards.BuildMonthKeyboard(y+1, time.Now())
		return middleware.EditOrSend(c, title, markup)
	})
	r.Register("pick_month", func(c telebot.Context, payload string) error {
		return f.Show(c, payload, keyboards.FilterAll)
	})
	r.Register("pick_year", func(c telebot.Context, payload string) error {
		return f.Show(c, payload, keyboards.FilterAll)
	})
	r.Register("sum_filter", func(c telebot.Context, payload string) error {
		period, filter, _ := strings.Cut(payload, "|")
		return f.Show(c, period, filter)
	})
	r.Register("sum_export", func(c telebot.Context, payload string) error {
		period, filter, _ := strings.Cut(payload, "|")
		return f.SendExport(c, period, filter)
	})
}

// ShowMonthPicker sends the month keyboard for the current year.
func (f *SummaryFlow) ShowMonthPicker(c telebot.Context) error {
	title, markup := keyboards.BuildMonthKeyboard(time.Now().Year(), time.Now())
	return c.Send(title, markup)
}

// Show renders the summary of period ("YYYY" or "YYYY-MM") under filter.
func (f *SummaryFlow) Show(c telebot.Context, period, filter string) error {
	q, title, err := PeriodQuery(period, filter)
	if err != nil {
		return c.Send("Unknown period.")
	}
	ctx, cancel := context.WithTimeout(context.Background(), f.Timeout)
	defer cancel()
	employeeID := c.Sender().ID
	sum, err := service.Run(ctx, f.Async, func() (domain.Summary, error) {
		return f.Shifts.Summary(ctx, employeeID, q)
	})
	if err != nil {
		f.Log.WithError(err).WithField("employee", employeeID).Error("building summary")
		return c.Send("Could not build the summary, please try again later.")
	}
	return middleware.EditOrSend(c, FormatSummary(title, sum, f.Currency), keyboards.BuildSummaryFilters(period, filter))
}

// SendExport sends the shifts of period as an XLSX document.
func (f *SummaryFlow) SendExport(c telebot.Context, period, filter string) error {
	q, _, err := PeriodQuery(period, filter)
	if err != nil {
		return c.Send("Unknown period.")
	}
	ctx, cancel := context.WithTimeout(context.Background(), f.Timeout)
	defer cancel()
	employeeID := c.Sender().ID
	buf, err := service.Run(ctx, f.Async, func() (*bytes.Buffer, error) {
		return f.Export.Workbook(ctx, employeeID, q)
	})
	if err != nil {
		f.Log.WithError(err).WithField("employee", employeeID).Error("exporting shifts")
		return c.Send("Could not export, please try again later.")
	}
	doc := &telebot.Document{
		File:     telebot.FromReader(buf),
		FileName: "shifts-" + period + ".xlsx",
	}
	return c.Send(doc)
}

// PeriodQuery expands a "YYYY" or "YYYY-MM" period and a day filter into a
// query and a title.
func PeriodQuery(period, filter string) (domain.Query, string, error) {
	var opts []domain.QueryOption
	var title string
	if ys, ms, ok := strings.Cut(period, "-"); ok {
		y, err1 := strconv.Atoi(ys)
		m, err2 := strconv.Atoi(ms)
		if err1 != nil || err2 != nil || m < 1 || m > 12 {
			return domain.Query{}, "", fmt.Errorf("bad period %q", period)
		}
		opts = append(opts, domain.InMonth(y, time.Month(m)))
		title = fmt.Sprintf("%s %d", time.Month(m), y)
	} else {
		y, err := strconv.Atoi(period)
		if err != nil {
			return domain.Query{}, "", fmt.Errorf("bad period %q", period)
		}
		opts = append(opts, domain.InYear(y))
		title = strconv.Itoa(y)
	}
	switch filter {
	case keyboards.FilterWeekdays:
		opts = append(opts, domain.OnWeekdays(domain.Weekdays...))
		title += ", weekdays"
	case keyboards.FilterWeekends:
		opts = append(opts, domain.OnWeekdays(domain.Weekends...))
		title += ", weekends"
	}
	return domain.NewQuery(opts...), title, nil
}

// FormatSummary renders a summary as a chat message.
func FormatSummary(title string, s domain.Summary, symbol string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "📊 %s\n", title)
	if s.Count == 0 {
		b.WriteString("No shifts.")
		return b.String()
	}
	fmt.Fprintf(&b, "Shifts: %d · Hours: %.2f · Downs: %s\n", s.Count, s.Hours(), s.Downs.String())
	fmt.Fprintf(&b, "Tokes: %s\n", money.Format(symbol, s.Total))
	fmt.Fprintf(&b, "Per hour: %s · Per down: %s\n", money.FormatRate(symbol, s.Hourly), money.FormatRate(symbol, s.PerDown))

	venues := make([]string, 0, len(s.ByVenue))
	for v := range s.ByVenue {
		venues = append(venues, v)
	}
	sort.Slice(venues, func(i, j int) bool {
		a, b := s.ByVenue[venues[i]], s.ByVenue[venues[j]]
		if a.Total != b.Total {
			return a.Total > b.Total
		}
		return venues[i] < venues[j]
	})
	if len(venues) > 1 {
		b.WriteString("\nBy venue:\n")
		for _, name := range venues {
			v := s.ByVenue[name]
			fmt.Fprintf(&b, "• %s: %s · %.2fh · %d shifts · %s/h\n",
				name, money.Format(symbol, v.Total), v.Hours(), v.Count, money.FormatRate(symbol, v.Hourly()))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}
