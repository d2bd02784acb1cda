package converter

import (
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/uqlakes/busboard/metrics"
)

// Warning type constants
const (
	WarningNoTripUpdate        = "no_trip_update"
	WarningNoStationStopUpdate = "no_station_stop_update"
	WarningNoArrivalTime       = "no_arrival_time"
	WarningNoVehiclePosition   = "no_vehicle_position"
	WarningNoLatLon            = "no_lat_lon"
)

// warningInfo holds aggregated information about a specific warning type
type warningInfo struct {
	count    int
	examples []string
}

// WarningAggregator collects live data gaps during conversion and outputs consolidated summaries
type WarningAggregator struct {
	warnings map[string]*warningInfo
}

// NewWarningAggregator creates a new warning aggregator
func NewWarningAggregator() *WarningAggregator {
	return &WarningAggregator{
		warnings: make(map[string]*warningInfo),
	}
}

// Add records a warning occurrence with an example trip id
func (w *WarningAggregator) Add(warningType, exampleID string) {
	if w.warnings[warningType] == nil {
		w.warnings[warningType] = &warningInfo{
			examples: make([]string, 0, 3),
		}
	}

	info := w.warnings[warningType]
	info.count++

	// Store up to 3 examples
	if len(info.examples) < 3 {
		info.examples = append(info.examples, exampleID)
	}
}

// Count returns how often warningType was added
func (w *WarningAggregator) Count(warningType string) int {
	if info := w.warnings[warningType]; info != nil {
		return info.count
	}
	return 0
}

// LogAll outputs all collected warnings at debug level, in a stable order
func (w *WarningAggregator) LogAll(date string) {
	for _, warningType := range w.types() {
		log.Debug().Msg(w.formatWarningMessage(warningType, date, w.warnings[warningType]))
	}
}

// Record adds the collected counts to m
func (w *WarningAggregator) Record(m *metrics.Collector) {
	for _, warningType := range w.types() {
		m.LiveMiss(warningType, w.warnings[warningType].count)
	}
}

func (w *WarningAggregator) types() []string {
	types := make([]string, 0, len(w.warnings))
	for t := range w.warnings {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// formatWarningMessage creates a human-readable warning message
func (w *WarningAggregator) formatWarningMessage(warningType, date string, info *warningInfo) string {
	var description, action string

	switch warningType {
	case WarningNoTripUpdate:
		description = "departures with no trip update"
		action = "Showing no live arrival or position"
	case WarningNoStationStopUpdate:
		description = "trip updates with no stop time update at the station"
		action = "Showing no live arrival"
	case WarningNoArrivalTime:
		description = "station stop time updates with no arrival time"
		action = "Showing no live arrival"
	case WarningNoVehiclePosition:
		description = "trips with no vehicle position"
		action = "Showing no live position"
	case WarningNoLatLon:
		description = "vehicle positions with no lat/lon"
		action = "Showing no live position"
	default:
		description = "unknown issue"
		action = "Showing no live data"
	}

	examplesStr := strings.Join(info.examples, ", ")

	return fmt.Sprintf("Board for %s has %s (%d occurrences). %s. Examples: %s",
		date, description, info.count, action, examplesStr)
}
