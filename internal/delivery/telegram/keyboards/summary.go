package keyboards

import (
	"gopkg.in/telebot.v3"
)

// Day filters offered under a summary. The payload is "<period>|<filter>".
const (
	FilterAll      = "all"
	FilterWeekdays = "wk"
	FilterWeekends = "we"
)

// BuildSummaryFilters renders the day-of-week filter row for a summary of period
// ("YYYY" or "YYYY-MM"), marking the active filter.
func BuildSummaryFilters(period, active string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{}
	label := func(text, filter string) string {
		if filter == active {
			return "• " + text
		}
		return text
	}
	markup.Inline(markup.Row(
		markup.Data(label("All days", FilterAll), "sum_filter", period, FilterAll),
		markup.Data(label("Weekdays", FilterWeekdays), "sum_filter", period, FilterWeekdays),
		markup.Data(label("Weekends", FilterWeekends), "sum_filter", period, FilterWeekends),
	), markup.Row(
		markup.Data("📤 Export", "sum_export", period, active),
	))
	return markup
}

const maxVenueButtons = 6

// BuildVenueKeyboard offers the known venues as one-tap replies, preferred
// first when it is set.
func BuildVenueKeyboard(venues []string, preferred string) *telebot.ReplyMarkup {
	markup := &telebot.ReplyMarkup{ResizeKeyboard: true, OneTimeKeyboard: true}
	ordered := make([]string, 0, len(venues)+1)
	if preferred != "" {
		ordered = append(ordered, preferred)
	}
	for _, v := range venues {
		if v != preferred {
			ordered = append(ordered, v)
		}
	}
	var rows []telebot.Row
	for i, v := range ordered {
		if i == maxVenueButtons {
			break
		}
		rows = append(rows, markup.Row(markup.Text(v)))
	}
	markup.Reply(rows...)
	return markup
}
