package cli

import (
	"errors"
	"time"

	"github.com/spf13/pflag"

	"tips-bot/internal/domain"
)

// queryFlags are the filter flags shared by list, summary and export.
type queryFlags struct {
	from, to string
	year     int
	month    int
	dow      []string
	venues   []string
}

func (f *queryFlags) bind(fs *pflag.FlagSet) {
	fs.StringVar(&f.from, "from", "", "First day, inclusive (YYYY-MM-DD)")
	fs.StringVar(&f.to, "to", "", "Last day, exclusive (YYYY-MM-DD)")
	fs.IntVar(&f.year, "year", 0, "Whole year, instead of --from/--to")
	fs.IntVar(&f.month, "month", 0, "Month 1-12 within --year")
	fs.StringSliceVar(&f.dow, "dow", nil, "Days of week: 0-6 or sun..sat, comma separated")
	fs.StringArrayVar(&f.venues, "venue", nil, "Venue name, exact match (repeatable)")
}

func (f *queryFlags) query() (domain.Query, error) {
	var opts []domain.QueryOption
	switch {
	case f.year != 0 && (f.from != "" || f.to != ""):
		return domain.Query{}, errors.New("use either --year/--month or --from/--to")
	case f.month != 0 && f.year == 0:
		return domain.Query{}, errors.New("--month needs --year")
	case f.month < 0 || f.month > 12:
		return domain.Query{}, errors.New("--month must be 1-12")
	case f.year != 0 && f.month != 0:
		opts = append(opts, domain.InMonth(f.year, time.Month(f.month)))
	case f.year != 0:
		opts = append(opts, domain.InYear(f.year))
	default:
		from, err := optionalDate(f.from)
		if err != nil {
			return domain.Query{}, err
		}
		to, err := optionalDate(f.to)
		if err != nil {
			return domain.Query{}, err
		}
		opts = append(opts, domain.InRange(from, to))
	}
	days, err := domain.ParseWeekdays(f.dow)
	if err != nil {
		return domain.Query{}, err
	}
	opts = append(opts, domain.OnWeekdays(days...), domain.AtVenues(f.venues...))
	return domain.NewQuery(opts...), nil
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := domain.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
