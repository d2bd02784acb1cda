package gtfs

// Dataset is the station-filtered static data with lookups by key
type Dataset struct {
	Stops     []Stop
	StopTimes []StopTime
	Trips     []Trip
	Routes    []Route
	Calendars []Calendar

	stopIDs   IDSet
	routeIDs  IDSet
	tripByID  map[string]int // trip_id -> index into Trips
	routeByID map[string]int // route_id -> index into Routes
}

// NewDataset indexes the given tables. When ids repeat the first row wins.
func NewDataset(stops []Stop, stopTimes []StopTime, trips []Trip, routes []Route, calendars []Calendar) *Dataset {
	d := &Dataset{
		Stops:     stops,
		StopTimes: stopTimes,
		Trips:     trips,
		Routes:    routes,
		Calendars: calendars,
		stopIDs:   make(IDSet, len(stops)),
		routeIDs:  make(IDSet, len(routes)),
		tripByID:  make(map[string]int, len(trips)),
		routeByID: make(map[string]int, len(routes)),
	}
	for i := range stops {
		d.stopIDs.Add(stops[i].ID)
	}
	for i := range trips {
		if _, ok := d.tripByID[trips[i].ID]; !ok {
			d.tripByID[trips[i].ID] = i
		}
	}
	for i := range routes {
		d.routeIDs.Add(routes[i].ID)
		if _, ok := d.routeByID[routes[i].ID]; !ok {
			d.routeByID[routes[i].ID] = i
		}
	}
	return d
}

// TripByID returns the trip with the given trip_id
func (d *Dataset) TripByID(id string) (Trip, bool) {
	i, ok := d.tripByID[id]
	if !ok {
		return Trip{}, false
	}
	return d.Trips[i], true
}

// RouteByID returns the route with the given route_id
func (d *Dataset) RouteByID(id string) (Route, bool) {
	i, ok := d.routeByID[id]
	if !ok {
		return Route{}, false
	}
	return d.Routes[i], true
}

// StopIDs returns the ids of the station's stops
func (d *Dataset) StopIDs() IDSet { return d.stopIDs }

// RouteIDs returns the ids of every route serving the station
func (d *Dataset) RouteIDs() IDSet { return d.routeIDs }
