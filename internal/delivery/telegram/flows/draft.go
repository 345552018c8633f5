package flows

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"tips-bot/internal/domain"
	"tips-bot/pkg/money"
)

type Step int

const (
	StepClockIn Step = iota
	StepClockOut
	StepTokes
	StepDowns
	StepVenue
	StepDone
)

// Draft collects a shift one chat message at a time.
type Draft struct {
	Step  Step
	Input domain.ShiftInput
}

func NewDraft(date time.Time) *Draft {
	return &Draft{Step: StepClockIn, Input: domain.ShiftInput{Date: date}}
}

func (d *Draft) Prompt() string {
	date := d.Input.Date.Format("Mon 02.01.2006")
	switch d.Step {
	case StepClockIn:
		return "Shift on " + date + ".\nClock-in time (e.g. 20:00), or hours worked (e.g. 7.5)?"
	case StepClockOut:
		return "Clock-out time?"
	case StepTokes:
		return "Tokes for the shift (e.g. 215.50)?"
	case StepDowns:
		return "How many downs?"
	case StepVenue:
		return "Where did you work?"
	}
	return ""
}

// Feed consumes one reply. A returned error is meant for the user; the step
// stays put so they can answer again.
func (d *Draft) Feed(text string) error {
	text = strings.TrimSpace(text)
	switch d.Step {
	case StepClockIn:
		if _, err := domain.ParseClock(text); err == nil {
			d.Input.ClockIn = text
			d.Step = StepClockOut
			return nil
		}
		h, err := strconv.ParseFloat(strings.TrimSuffix(strings.ToLower(text), "h"), 64)
		if err != nil {
			return errors.New("send a time like 20:00 or hours like 7.5")
		}
		if _, err := domain.QuartersFromHours(h); err != nil {
			return errors.New("hours must be above zero in steps of 0.25")
		}
		d.Input.Hours = &h
		d.Step = StepTokes
	case StepClockOut:
		if _, err := domain.ParseClock(text); err != nil {
			return errors.New("send a time like 04:30")
		}
		probe := d.Input
		probe.ClockOut = text
		probe.Venue = "pending"
		if _, err := domain.NormalizeShift(probe); err != nil {
			// Start the timing over; the clock-in was probably wrong too.
			d.Input.ClockIn = ""
			d.Step = StepClockIn
			return errors.New("that shift rounds to zero hours, send the clock-in again")
		}
		d.Input.ClockOut = text
		d.Step = StepTokes
	case StepTokes:
		cents, err := money.ParseCents(text)
		if err != nil {
			return err
		}
		d.Input.TokesCash = cents
		d.Step = StepDowns
	case StepDowns:
		downs, err := money.ParseDowns(text)
		if err != nil {
			return errors.New("downs must be a non-negative number")
		}
		d.Input.Downs = downs
		d.Step = StepVenue
	case StepVenue:
		if text == "" {
			return errors.New("venue can't be empty")
		}
		d.Input.Venue = text
		d.Step = StepDone
	}
	return nil
}

func (d *Draft) Done() bool {
	return d.Step == StepDone
}
