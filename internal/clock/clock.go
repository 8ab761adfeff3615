// Package clock formats the dashboard clock face in a fixed time zone.
package clock

import (
	"fmt"
	"time"
	_ "time/tzdata"
)

const DefaultZone = "Asia/Seoul"

var weekdays = [...]string{"일요일", "월요일", "화요일", "수요일", "목요일", "금요일", "토요일"}

type Clock struct {
	loc    *time.Location
	use24h bool
}

// New loads zone; an empty zone means DefaultZone.
func New(zone string, use24h bool) (*Clock, error) {
	if zone == "" {
		zone = DefaultZone
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("clock: load zone %q: %w", zone, err)
	}
	return &Clock{loc: loc, use24h: use24h}, nil
}

func (c *Clock) Location() *time.Location { return c.loc }
func (c *Clock) Use24Hour() bool          { return c.use24h }

func (c *Clock) Toggle() { c.use24h = !c.use24h }

// Face is a formatted reading of the clock.
type Face struct {
	Hours    string
	Minutes  string
	Seconds  string
	Meridiem string
	Date     string
}

func (f Face) Time() string {
	t := f.Hours + ":" + f.Minutes + ":" + f.Seconds
	if f.Meridiem != "" {
		return f.Meridiem + " " + t
	}
	return t
}

func (c *Clock) Face(now time.Time) Face {
	local := now.In(c.loc)
	f := Face{
		Minutes: fmt.Sprintf("%02d", local.Minute()),
		Seconds: fmt.Sprintf("%02d", local.Second()),
		Date:    fmt.Sprintf("%d년 %d월 %d일 %s", local.Year(), int(local.Month()), local.Day(), weekdays[local.Weekday()]),
	}
	h := local.Hour()
	if c.use24h {
		f.Hours = fmt.Sprintf("%02d", h)
		return f
	}
	f.Meridiem = "오전"
	if h >= 12 {
		f.Meridiem = "오후"
	}
	h %= 12
	if h == 0 {
		h = 12
	}
	f.Hours = fmt.Sprintf("%02d", h)
	return f
}
