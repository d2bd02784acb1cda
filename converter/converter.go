package converter

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uqlakes/busboard/gtfs"
	"github.com/uqlakes/busboard/gtfsrt"
	"github.com/uqlakes/busboard/schedule"
	"github.com/uqlakes/busboard/utils"
)

// Converter merges schedule rows with live data for one station
type Converter struct {
	stationStops gtfs.IDSet
	live         gtfsrt.LiveData
	opts         Options

	tripUpdateByTrip map[string]int // trip_id -> index into live.TripUpdates
	vehicleByTrip    map[string]int // trip_id -> index into live.VehiclePositions
}

// NewConverter indexes live records by trip id. When a trip repeats the first record wins.
func NewConverter(stationStops gtfs.IDSet, live gtfsrt.LiveData, opts Options) *Converter {
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}

	c := &Converter{
		stationStops:     stationStops,
		live:             live,
		opts:             opts,
		tripUpdateByTrip: make(map[string]int, len(live.TripUpdates)),
		vehicleByTrip:    make(map[string]int, len(live.VehiclePositions)),
	}
	for i, tu := range live.TripUpdates {
		if _, ok := c.tripUpdateByTrip[tu.Trip.TripID]; !ok {
			c.tripUpdateByTrip[tu.Trip.TripID] = i
		}
	}
	for i, vp := range live.VehiclePositions {
		if _, ok := c.vehicleByTrip[vp.Trip.TripID]; !ok {
			c.vehicleByTrip[vp.Trip.TripID] = i
		}
	}
	return c
}

// Convert builds the final board for a search on date, one row per result row and in the same order
func (c *Converter) Convert(date time.Time, res schedule.Result) []BoardRow {
	rows := make([]BoardRow, 0, len(res.Rows))

	if !utils.SameWeekday(date, c.opts.Now(), c.opts.Location) {
		log.Debug().
			Str("date", date.Format(schedule.DateLayout)).
			Msg("Live data only applies to today's weekday")
		for _, r := range res.Rows {
			rows = append(rows, BoardRow{Row: r, LiveArrival: NoLiveData, LivePosition: NoLiveData})
		}
		return rows
	}

	wa := NewWarningAggregator()
	for _, r := range res.Rows {
		rows = append(rows, c.convertRow(r, wa))
	}
	wa.LogAll(date.Format(schedule.DateLayout))
	wa.Record(c.opts.Metrics)

	return rows
}

func (c *Converter) convertRow(r schedule.Row, wa *WarningAggregator) BoardRow {
	row := BoardRow{Row: r, LiveArrival: NoLiveData, LivePosition: NoLiveData}

	i, ok := c.tripUpdateByTrip[r.TripID]
	if !ok {
		wa.Add(WarningNoTripUpdate, r.TripID)
		return row
	}
	tu := c.live.TripUpdates[i]

	row.LiveArrival = c.liveArrival(tu, wa)
	row.LivePosition = c.livePosition(tu.Trip.TripID, wa)
	return row
}

// liveArrival uses the first stop time update at any station stop
func (c *Converter) liveArrival(tu gtfsrt.TripUpdate, wa *WarningAggregator) string {
	for _, stu := range tu.StopTimeUpdates {
		if !c.stationStops.Has(stu.StopID) {
			continue
		}
		if stu.Arrival == nil || stu.Arrival.Time == nil || *stu.Arrival.Time == 0 {
			wa.Add(WarningNoArrivalTime, tu.Trip.TripID)
			return NoLiveData
		}
		return utils.ClockFromUnixSeconds(*stu.Arrival.Time, c.opts.Location)
	}
	wa.Add(WarningNoStationStopUpdate, tu.Trip.TripID)
	return NoLiveData
}

func (c *Converter) livePosition(tripID string, wa *WarningAggregator) string {
	i, ok := c.vehicleByTrip[tripID]
	if !ok {
		wa.Add(WarningNoVehiclePosition, tripID)
		return NoLiveData
	}
	vp := c.live.VehiclePositions[i]
	if vp.Position == nil {
		wa.Add(WarningNoLatLon, tripID)
		return NoLiveData
	}
	return utils.FormatLatLon(vp.Position.Latitude, vp.Position.Longitude)
}
