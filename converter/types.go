package converter

import (
	"time"

	"github.com/uqlakes/busboard/metrics"
	"github.com/uqlakes/busboard/schedule"
)

// NoLiveData is shown wherever a live value is unavailable
const NoLiveData = "No Live Data"

// BoardRow is a scheduled departure with its live columns
type BoardRow struct {
	schedule.Row
	LiveArrival  string `json:"liveArrivalTime"`
	LivePosition string `json:"liveVehiclePosition"`
}

// Options contains everything the converter needs beyond its data.
// Zero values fall back to time.Local and time.Now.
type Options struct {
	// Location is the board's time zone, used for the weekday gate and
	// for rendering live arrival times.
	Location *time.Location

	// Now is the clock deciding which weekday is "today".
	Now func() time.Time

	// Metrics receives live miss counts. Optional.
	Metrics *metrics.Collector
}
