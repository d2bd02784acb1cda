package gtfs

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"io/fs"
	"sync"

	"github.com/gocarina/gocsv"
	"github.com/rs/zerolog/log"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var csvReaderOnce sync.Once

// Loader reads the static tables for one parent station
type Loader struct {
	fsys          fs.FS
	parentStation string
}

func NewLoader(fsys fs.FS, parentStation string) *Loader {
	csvReaderOnce.Do(func() {
		gocsv.SetCSVReader(func(in io.Reader) gocsv.CSVReader {
			r := csv.NewReader(in)
			r.FieldsPerRecord = -1
			return r
		})
	})
	return &Loader{fsys: fsys, parentStation: parentStation}
}

// Load runs the whole filter chain
func (l *Loader) Load() (*Dataset, error) {
	stops, err := l.LoadStops()
	if err != nil {
		return nil, err
	}
	stopTimes, err := l.LoadStopTimes(stops)
	if err != nil {
		return nil, err
	}
	trips, err := l.LoadTrips(stopTimes)
	if err != nil {
		return nil, err
	}
	routes, err := l.LoadRoutes(trips)
	if err != nil {
		return nil, err
	}
	calendars, err := l.LoadCalendar(trips)
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("station", l.parentStation).
		Int("stops", len(stops)).
		Int("stopTimes", len(stopTimes)).
		Int("trips", len(trips)).
		Int("routes", len(routes)).
		Int("calendars", len(calendars)).
		Msg("Loaded GTFS static data")

	return NewDataset(stops, stopTimes, trips, routes, calendars), nil
}

// LoadStops keeps stops whose parent_station is the configured station
func (l *Loader) LoadStops() ([]Stop, error) {
	return readTable(l.fsys, StopsFile, func(s *Stop) bool {
		return s.ParentStation == l.parentStation
	})
}

// LoadStopTimes keeps stop times at one of stops
func (l *Loader) LoadStopTimes(stops []Stop) ([]StopTime, error) {
	ids := make(IDSet, len(stops))
	for i := range stops {
		ids.Add(stops[i].ID)
	}
	return readTable(l.fsys, StopTimesFile, func(st *StopTime) bool {
		return ids.Has(st.StopID)
	})
}

// LoadTrips keeps trips that call at the station
func (l *Loader) LoadTrips(stopTimes []StopTime) ([]Trip, error) {
	ids := make(IDSet)
	for i := range stopTimes {
		ids.Add(stopTimes[i].TripID)
	}
	return readTable(l.fsys, TripsFile, func(t *Trip) bool {
		return ids.Has(t.ID)
	})
}

func (l *Loader) LoadRoutes(trips []Trip) ([]Route, error) {
	ids := make(IDSet)
	for i := range trips {
		ids.Add(trips[i].RouteID)
	}
	return readTable(l.fsys, RoutesFile, func(r *Route) bool {
		return ids.Has(r.ID)
	})
}

func (l *Loader) LoadCalendar(trips []Trip) ([]Calendar, error) {
	ids := make(IDSet)
	for i := range trips {
		ids.Add(trips[i].ServiceID)
	}
	return readTable(l.fsys, CalendarFile, func(c *Calendar) bool {
		return ids.Has(c.ServiceID)
	})
}

// readTable streams name row by row, keeping rows accepted by keep in file order
func readTable[T any](fsys fs.FS, name string, keep func(*T) bool) ([]T, error) {
	f, err := fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", name, err)
	}
	defer f.Close()

	br := bufio.NewReader(f)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}

	rowc := make(chan T)
	errc := make(chan error, 1)
	go func() {
		errc <- gocsv.UnmarshalToChan(br, rowc)
	}()

	var rows []T
	total := 0
	for row := range rowc {
		total++
		if keep(&row) {
			rows = append(rows, row)
		}
	}
	if err := <-errc; err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	log.Debug().Str("file", name).Int("read", total).Int("kept", len(rows)).Msg("Filtered GTFS table")
	return rows, nil
}
