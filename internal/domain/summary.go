package domain

import "github.com/shopspring/decimal"

// Summary aggregates the shifts a Query selected. Money and rates are in
// cents; Hourly is cents per hour and PerDown cents per down.
type Summary struct {
	Total    int64
	Quarters int64
	Downs    decimal.Decimal
	Count    int
	Hourly   float64
	PerDown  float64
	ByVenue  map[string]VenueTotals
}

func (s Summary) Hours() float64 {
	return float64(s.Quarters) / 4
}

// VenueTotals holds the base sums for one venue. Rates are derived on demand.
type VenueTotals struct {
	Total    int64
	Quarters int64
	Downs    decimal.Decimal
	Count    int
}

func (v VenueTotals) Hours() float64 {
	return float64(v.Quarters) / 4
}

func (v VenueTotals) Hourly() float64 {
	return HourlyRate(v.Total, v.Quarters)
}

func (v VenueTotals) PerDown() float64 {
	return PerDownRate(v.Total, v.Downs)
}

func (v *VenueTotals) add(s Shift) {
	v.Total += s.TokesCash
	v.Quarters += int64(s.Quarters)
	v.Downs = v.Downs.Add(s.Downs)
	v.Count++
}

// Summarize filters shifts with q and reduces them in a single pass.
// It never fails: no matches gives a zero Summary.
func Summarize(shifts []Shift, q Query) Summary {
	m := q.compile()
	var all VenueTotals
	byVenue := make(map[string]VenueTotals)
	for _, s := range shifts {
		if !m.matches(s) {
			continue
		}
		all.add(s)
		v := byVenue[s.Venue]
		v.add(s)
		byVenue[s.Venue] = v
	}
	return Summary{
		Total:    all.Total,
		Quarters: all.Quarters,
		Downs:    all.Downs,
		Count:    all.Count,
		Hourly:   all.Hourly(),
		PerDown:  all.PerDown(),
		ByVenue:  byVenue,
	}
}

// HourlyRate divides total by the hours in quarters, or returns 0 when there
// are no hours.
func HourlyRate(total, quarters int64) float64 {
	if quarters <= 0 {
		return 0
	}
	return float64(total) * 4 / float64(quarters)
}

// PerDownRate divides total by downs, or returns 0 when there are no downs.
func PerDownRate(total int64, downs decimal.Decimal) float64 {
	if !downs.IsPositive() {
		return 0
	}
	return decimal.NewFromInt(total).Div(downs).InexactFloat64()
}
