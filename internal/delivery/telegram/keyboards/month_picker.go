package keyboards

import (
	"fmt"
	"strconv"
	"time"

	"gopkg.in/telebot.v3"
)

const monthsPerRow = 3

// BuildMonthKeyboard lays out the twelve months of year with year paging.
// Picking a month sends "pick_month|YYYY-MM"; the month containing now is
// marked.
func BuildMonthKeyboard(year int, now time.Time) (string, *telebot.ReplyMarkup) {
	markup := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	var row telebot.Row
	for m := time.January; m <= time.December; m++ {
		label := m.String()[:3]
		if year == now.Year() && m == now.Month() {
			label = "• " + label
		}
		row = append(row, markup.Data(label, "pick_month", fmt.Sprintf("%04d-%02d", year, int(m))))
		if len(row) == monthsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	y := strconv.Itoa(year)
	rows = append(rows,
		markup.Row(markup.Data("Whole "+y, "pick_year", y)),
		markup.Row(
			markup.Data("← "+strconv.Itoa(year-1), "month_prev", y),
			markup.Data(strconv.Itoa(year+1)+" →", "month_next", y),
		),
	)
	markup.Inline(rows...)
	return "Pick a month: " + y, markup
}
