package gtfsrt

// TripDescriptor identifies the trip a live record refers to
type TripDescriptor struct {
	TripID               string `json:"tripId,omitempty"`
	RouteID              string `json:"routeId,omitempty"`
	StartTime            string `json:"startTime,omitempty"`
	StartDate            string `json:"startDate,omitempty"`
	ScheduleRelationship string `json:"scheduleRelationship,omitempty"`
}

type VehicleDescriptor struct {
	ID    string `json:"id,omitempty"`
	Label string `json:"label,omitempty"`
}

// StopTimeEvent is a predicted arrival or departure. Time is epoch seconds.
type StopTimeEvent struct {
	Delay       *int32 `json:"delay,omitempty"`
	Time        *int64 `json:"time,omitempty"`
	Uncertainty *int32 `json:"uncertainty,omitempty"`
}

type StopTimeUpdate struct {
	StopSequence         uint32         `json:"stopSequence,omitempty"`
	StopID               string         `json:"stopId,omitempty"`
	Arrival              *StopTimeEvent `json:"arrival,omitempty"`
	Departure            *StopTimeEvent `json:"departure,omitempty"`
	ScheduleRelationship string         `json:"scheduleRelationship,omitempty"`
}

// TripUpdate carries the predictions for one trip, stop time updates in feed order
type TripUpdate struct {
	Trip            TripDescriptor     `json:"trip"`
	Vehicle         *VehicleDescriptor `json:"vehicle,omitempty"`
	StopTimeUpdates []StopTimeUpdate   `json:"stopTimeUpdate,omitempty"`
	Timestamp       uint64             `json:"timestamp,omitempty"`
}

type Position struct {
	Latitude  float32  `json:"latitude"`
	Longitude float32  `json:"longitude"`
	Bearing   *float32 `json:"bearing,omitempty"`
}

// VehiclePosition is the last reported location of the vehicle serving a trip
type VehiclePosition struct {
	Trip          TripDescriptor     `json:"trip"`
	Vehicle       *VehicleDescriptor `json:"vehicle,omitempty"`
	Position      *Position          `json:"position,omitempty"`
	StopID        string             `json:"stopId,omitempty"`
	CurrentStatus string             `json:"currentStatus,omitempty"`
	Timestamp     uint64             `json:"timestamp,omitempty"`
}

// LiveData is everything fetched for one board
type LiveData struct {
	TripUpdates      []TripUpdate
	VehiclePositions []VehiclePosition
}
