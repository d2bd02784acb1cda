package schedule

import (
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uqlakes/busboard/gtfs"
)

// WindowMinutes is how far past the requested time a departure may be
const WindowMinutes = 10

// Query is one departure search
type Query struct {
	Date   time.Time
	Time   Clock
	Routes []gtfs.Route
}

// Row is one scheduled departure shown on the board
type Row struct {
	TripID         string `json:"tripId"`
	RouteShortName string `json:"routeShortName"`
	RouteLongName  string `json:"routeLongName"`
	ServiceID      string `json:"serviceId"`
	Headsign       string `json:"headsign"`
	ScheduledTime  string `json:"scheduledArrivalTime"`
}

// Result holds the matched rows and their trip ids, both in stop time order
type Result struct {
	Rows    []Row
	TripIDs []string
}

// Match finds the station's stop times on q.Routes that run on q.Date and
// arrive (or, lacking an arrival, depart) within WindowMinutes after q.Time.
// Stop times without a departure end their trip here and never match.
func Match(ds *gtfs.Dataset, q Query) (Result, error) {
	requested, err := ConvertTime(q.Time)
	if err != nil {
		return Result{}, err
	}

	active := ActiveServices(ds.Calendars, q.Date)
	routeIDs := gtfs.IDSet{}
	for _, r := range q.Routes {
		routeIDs.Add(r.ID)
	}

	trips := gtfs.IDSet{}
	for _, t := range ds.Trips {
		if active.Has(t.ServiceID) && routeIDs.Has(t.RouteID) {
			trips.Add(t.ID)
		}
	}

	res := Result{Rows: []Row{}, TripIDs: []string{}}
	for _, st := range ds.StopTimes {
		if !trips.Has(st.TripID) || !inWindow(st, requested) {
			continue
		}
		res.Rows = append(res.Rows, displayRow(ds, st))
		res.TripIDs = append(res.TripIDs, st.TripID)
	}

	log.Debug().
		Str("date", q.Date.Format(DateLayout)).
		Str("time", q.Time.String()).
		Int("routes", len(q.Routes)).
		Int("activeServices", len(active)).
		Int("trips", len(trips)).
		Int("rows", len(res.Rows)).
		Msg("Matched scheduled departures")

	return res, nil
}

// inWindow applies the window rule to one stop time
func inWindow(st gtfs.StopTime, requested int) bool {
	if st.DepartureTime == "" {
		return false
	}
	at := st.ArrivalTime
	if at == "" {
		at = st.DepartureTime
	}
	c, err := ParseTime(at)
	if err != nil {
		log.Debug().Err(err).Str("trip", st.TripID).Msg("Skipping stop time")
		return false
	}
	mins, err := ConvertTime(c)
	if err != nil {
		log.Debug().Err(err).Str("trip", st.TripID).Msg("Skipping stop time")
		return false
	}
	diff := mins - requested
	return diff >= 0 && diff <= WindowMinutes
}

func displayRow(ds *gtfs.Dataset, st gtfs.StopTime) Row {
	row := Row{TripID: st.TripID, ScheduledTime: st.ArrivalTime}
	if row.ScheduledTime == "" {
		row.ScheduledTime = st.DepartureTime
	}
	if trip, ok := ds.TripByID(st.TripID); ok {
		row.ServiceID = trip.ServiceID
		row.Headsign = trip.Headsign
		if route, ok := ds.RouteByID(trip.RouteID); ok {
			row.RouteShortName = route.ShortName
			row.RouteLongName = route.LongName
		}
	}
	return row
}
