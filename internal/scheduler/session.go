package scheduler

import (
	"fmt"
	"time"
)

// Calendar decides whether the exchange trading session is open. Session
// bounds are inclusive on both ends, minute resolution.
type Calendar struct {
	days  map[time.Weekday]bool
	open  int // minutes since midnight
	close int
	loc   *time.Location
}

// NewCalendar parses "HH:MM" session bounds in the given IANA timezone.
func NewCalendar(days []time.Weekday, open, close, tz string) (*Calendar, error) {
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", tz, err)
	}
	openMin, err := parseClock(open)
	if err != nil {
		return nil, fmt.Errorf("session open: %w", err)
	}
	closeMin, err := parseClock(close)
	if err != nil {
		return nil, fmt.Errorf("session close: %w", err)
	}
	if closeMin < openMin {
		return nil, fmt.Errorf("session close %s before open %s", close, open)
	}

	set := make(map[time.Weekday]bool, len(days))
	for _, d := range days {
		set[d] = true
	}
	return &Calendar{days: set, open: openMin, close: closeMin, loc: loc}, nil
}

// IsOpen reports whether t falls inside the trading session.
func (c *Calendar) IsOpen(t time.Time) bool {
	local := t.In(c.loc)
	if !c.days[local.Weekday()] {
		return false
	}
	minutes := local.Hour()*60 + local.Minute()
	return minutes >= c.open && minutes <= c.close
}

// Location returns the exchange timezone.
func (c *Calendar) Location() *time.Location { return c.loc }

func parseClock(s string) (int, error) {
	t, err := time.Parse("15:04", s)
	if err != nil {
		return 0, fmt.Errorf("parse clock %q: %w", s, err)
	}
	return t.Hour()*60 + t.Minute(), nil
}
