package gtfs

import "time"

// Table file names
const (
	StopsFile     = "stops.txt"
	StopTimesFile = "stop_times.txt"
	TripsFile     = "trips.txt"
	RoutesFile    = "routes.txt"
	CalendarFile  = "calendar.txt"
)

type Stop struct {
	ID            string  `csv:"stop_id"`
	Code          string  `csv:"stop_code"`
	Name          string  `csv:"stop_name"`
	Description   string  `csv:"stop_desc"`
	Latitude      float64 `csv:"stop_lat"`
	Longitude     float64 `csv:"stop_lon"`
	ZoneID        string  `csv:"zone_id"`
	URL           string  `csv:"stop_url"`
	LocationType  int     `csv:"location_type"`
	ParentStation string  `csv:"parent_station"`
	PlatformCode  string  `csv:"platform_code"`
}

// StopTime is one scheduled call of a trip at a stop.
// Empty ArrivalTime or DepartureTime means the time is absent.
type StopTime struct {
	TripID        string `csv:"trip_id"`
	ArrivalTime   string `csv:"arrival_time"`
	DepartureTime string `csv:"departure_time"`
	StopID        string `csv:"stop_id"`
	StopSequence  int    `csv:"stop_sequence"`
	PickupType    int    `csv:"pickup_type"`
	DropOffType   int    `csv:"drop_off_type"`
}

type Trip struct {
	RouteID     string `csv:"route_id"`
	ServiceID   string `csv:"service_id"`
	ID          string `csv:"trip_id"`
	Headsign    string `csv:"trip_headsign"`
	DirectionID string `csv:"direction_id"`
	BlockID     string `csv:"block_id"`
	ShapeID     string `csv:"shape_id"`
}

type Route struct {
	ID          string `csv:"route_id"`
	ShortName   string `csv:"route_short_name"`
	LongName    string `csv:"route_long_name"`
	Description string `csv:"route_desc"`
	Type        string `csv:"route_type"`
	URL         string `csv:"route_url"`
	Colour      string `csv:"route_color"`
	TextColour  string `csv:"route_text_color"`
}

// Calendar is a weekly service pattern valid between Start and End inclusive (YYYYMMDD)
type Calendar struct {
	ServiceID string `csv:"service_id"`
	Monday    int    `csv:"monday"`
	Tuesday   int    `csv:"tuesday"`
	Wednesday int    `csv:"wednesday"`
	Thursday  int    `csv:"thursday"`
	Friday    int    `csv:"friday"`
	Saturday  int    `csv:"saturday"`
	Sunday    int    `csv:"sunday"`
	Start     string `csv:"start_date"`
	End       string `csv:"end_date"`
}

// RunsOn reports whether the weekday flag for day is set
func (c *Calendar) RunsOn(day time.Weekday) bool {
	switch day {
	case time.Sunday:
		return c.Sunday == 1
	case time.Monday:
		return c.Monday == 1
	case time.Tuesday:
		return c.Tuesday == 1
	case time.Wednesday:
		return c.Wednesday == 1
	case time.Thursday:
		return c.Thursday == 1
	case time.Friday:
		return c.Friday == 1
	case time.Saturday:
		return c.Saturday == 1
	default:
		return false
	}
}

// IDSet is a set of GTFS identifiers
type IDSet map[string]struct{}

func (s IDSet) Add(id string) { s[id] = struct{}{} }

func (s IDSet) Has(id string) bool {
	_, ok := s[id]
	return ok
}
