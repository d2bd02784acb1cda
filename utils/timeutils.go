package utils

import (
	"fmt"
	"strconv"
	"time"
)

// ClockFromUnixSeconds formats an epoch as H:MM:00 in loc.
// Hours are not zero padded and seconds are always 00.
func ClockFromUnixSeconds(sec int64, loc *time.Location) string {
	t := time.Unix(sec, 0).In(loc)
	return fmt.Sprintf("%d:%02d:00", t.Hour(), t.Minute())
}

// FormatLatLon renders a position as "<lat>, <lon>" with the shortest
// decimal that round-trips each float32 coordinate
func FormatLatLon(lat, lon float32) string {
	return strconv.FormatFloat(float64(lat), 'f', -1, 32) + ", " + strconv.FormatFloat(float64(lon), 'f', -1, 32)
}

// SameWeekday reports whether a and b fall on the same day of the week in loc
func SameWeekday(a, b time.Time, loc *time.Location) bool {
	return a.In(loc).Weekday() == b.In(loc).Weekday()
}
