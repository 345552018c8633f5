package calendar

import (
	"strconv"
	"strings"
	"time"

	"gopkg.in/telebot.v3"
)

// CalendarController renders an inline month calendar and reports the picked
// day through OnDate.
type CalendarController struct {
	Bot    *telebot.Bot
	OnDate func(time.Time, telebot.Context) error
}

// ShowCalendar sends or edits an inline calendar for the current month.
func (cc *CalendarController) ShowCalendar(c telebot.Context) error {
	now := time.Now()
	return SendCalendar(c, now.Year(), int(now.Month()))
}

// SendCalendar builds and sends the calendar for the given month.
func SendCalendar(c telebot.Context, year, month int) error {
	title, markup := BuildCalendar(year, month)
	if c.Callback() != nil {
		return c.Edit(title, markup)
	}
	return c.Send(title, markup)
}

// BuildCalendar lays the days of the month out in rows of seven with month
// paging underneath.
func BuildCalendar(year, month int) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	days := daysInMonth(year, month)
	var rows []telebot.Row
	week := telebot.Row{}
	for d := 1; d <= days; d++ {
		btn := markup.Data(strconv.Itoa(d), "cal_day", strconv.Itoa(d)+"-"+strconv.Itoa(month)+"-"+strconv.Itoa(year))
		week = append(week, btn)
		if len(week) == 7 {
			rows = append(rows, week)
			week = telebot.Row{}
		}
	}
	if len(week) > 0 {
		rows = append(rows, week)
	}
	prev := markup.Data("<", "cal_prev", strconv.Itoa(month-1)+"-"+strconv.Itoa(year))
	next := markup.Data(">", "cal_next", strconv.Itoa(month+1)+"-"+strconv.Itoa(year))
	rows = append(rows, telebot.Row{prev, next})
	markup.Inline(rows...)
	title := "Pick the shift date: " + time.Month(month).String() + " " + strconv.Itoa(year)
	return title, markup
}

// HandleCallback handles "cal_day|d-m-y", "cal_prev|m-y" and "cal_next|m-y".
func (cc *CalendarController) HandleCallback(c telebot.Context, data string) error {
	key, payload, _ := strings.Cut(data, "|")
	switch key {
	case "cal_day":
		date, ok := ParseDay(payload)
		if !ok {
			return c.Send("Could not read that date.")
		}
		if cc.OnDate != nil {
			return cc.OnDate(date, c)
		}
		return nil
	case "cal_prev", "cal_next":
		year, month, ok := ParseMonth(payload)
		if !ok {
			return c.Send("Could not read that month.")
		}
		return SendCalendar(c, year, month)
	}
	return nil
}

// ParseDay reads a "d-m-y" payload.
func ParseDay(payload string) (time.Time, bool) {
	parts := SplitDateData(payload)
	if len(parts) != 3 {
		return time.Time{}, false
	}
	day, err1 := strconv.Atoi(parts[0])
	month, err2 := strconv.Atoi(parts[1])
	year, err3 := strconv.Atoi(parts[2])
	if err1 != nil || err2 != nil || err3 != nil || month < 1 || month > 12 || day < 1 || day > daysInMonth(year, month) {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// ParseMonth reads an "m-y" payload, wrapping month 0 and 13 into the
// neighbouring years.
func ParseMonth(payload string) (year, month int, ok bool) {
	parts := SplitDateData(payload)
	if len(parts) != 2 {
		return 0, 0, false
	}
	month, err1 := strconv.Atoi(parts[0])
	year, err2 := strconv.Atoi(parts[1])
	if err1 != nil || err2 != nil || month < 0 || month > 13 {
		return 0, 0, false
	}
	if month < 1 {
		month = 12
		year--
	}
	if month > 12 {
		month = 1
		year++
	}
	return year, month, true
}

// SplitDateData splits a date payload into its parts.
func SplitDateData(data string) []string {
	return strings.Split(data, "-")
}

func daysInMonth(year, month int) int {
	t := time.Date(year, time.Month(month)+1, 0, 0, 0, 0, 0, time.UTC)
	return t.Day()
}
