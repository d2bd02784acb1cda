// Package schedule matches static departures to a requested date, time and route set.
package schedule

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/uqlakes/busboard/gtfs"
)

// DateLayout is the accepted input date format
const DateLayout = "2006-01-02"

const gtfsDateLayout = "20060102"

// Clock is a time of day with hours and minutes kept as written
type Clock struct {
	Hours   string
	Minutes string
}

func (c Clock) String() string { return c.Hours + ":" + c.Minutes }

var clockPattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-4]):([0-5][0-9])$`)

// ParseTime takes the hours and minutes of a GTFS time such as "09:05:00".
// Seconds are ignored.
func ParseTime(s string) (Clock, error) {
	parts := strings.SplitN(s, ":", 3)
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Clock{}, fmt.Errorf("invalid GTFS time %q", s)
	}
	return Clock{Hours: parts[0], Minutes: parts[1]}, nil
}

// ConvertTime returns minutes since midnight. Hours past 24 are not wrapped.
func ConvertTime(c Clock) (int, error) {
	h, err := strconv.Atoi(c.Hours)
	if err != nil {
		return 0, fmt.Errorf("invalid hours %q: %w", c.Hours, err)
	}
	m, err := strconv.Atoi(c.Minutes)
	if err != nil {
		return 0, fmt.Errorf("invalid minutes %q: %w", c.Minutes, err)
	}
	return h*60 + m, nil
}

// ParseClock validates user input of the form HH:mm
func ParseClock(s string) (Clock, error) {
	m := clockPattern.FindStringSubmatch(strings.TrimSpace(s))
	if m == nil {
		return Clock{}, fmt.Errorf("incorrect time format %q, use HH:mm", s)
	}
	return Clock{Hours: m[1], Minutes: m[2]}, nil
}

// ParseDate validates user input of the form YYYY-MM-DD in loc
func ParseDate(s string, loc *time.Location) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, strings.TrimSpace(s), loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("incorrect date format %q, use YYYY-MM-DD", s)
	}
	return d, nil
}

// DateIsActive reports whether cal runs on date: start and end inclusive,
// and the weekday flag set.
func DateIsActive(date time.Time, cal gtfs.Calendar) bool {
	day := date.Format(gtfsDateLayout)
	if day < cal.Start || day > cal.End {
		return false
	}
	return cal.RunsOn(date.Weekday())
}

// ActiveServices returns the service ids of calendars running on date, in calendar order
func ActiveServices(calendars []gtfs.Calendar, date time.Time) gtfs.IDSet {
	active := gtfs.IDSet{}
	for _, cal := range calendars {
		if DateIsActive(date, cal) {
			active.Add(cal.ServiceID)
		}
	}
	return active
}
