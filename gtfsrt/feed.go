package gtfsrt

import (
	"bytes"
	"fmt"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"

	"github.com/uqlakes/busboard/gtfs"
)

var jsonOptions = protojson.UnmarshalOptions{DiscardUnknown: true, AllowPartial: true}

// DecodeFeed parses a feed body. Bodies starting with '{' are read as the JSON
// rendering of FeedMessage, anything else as binary protobuf.
func DecodeFeed(body []byte) (*gtfsrtpb.FeedMessage, error) {
	fm := &gtfsrtpb.FeedMessage{}
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '{' {
		if err := jsonOptions.Unmarshal(trimmed, fm); err != nil {
			return nil, fmt.Errorf("failed to decode JSON feed: %w", err)
		}
		return fm, nil
	}
	if err := proto.Unmarshal(body, fm); err != nil {
		return nil, fmt.Errorf("failed to decode protobuf feed: %w", err)
	}
	return fm, nil
}

// TripUpdatesFromFeed extracts trip updates whose route is in routes, in entity order
func TripUpdatesFromFeed(fm *gtfsrtpb.FeedMessage, routes gtfs.IDSet) []TripUpdate {
	out := []TripUpdate{}
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil || !routes.Has(tu.GetTrip().GetRouteId()) {
			continue
		}
		rec := TripUpdate{
			Trip:      tripDescriptor(tu.GetTrip()),
			Vehicle:   vehicleDescriptor(tu.GetVehicle()),
			Timestamp: tu.GetTimestamp(),
		}
		for _, stu := range tu.GetStopTimeUpdate() {
			u := StopTimeUpdate{
				StopSequence: stu.GetStopSequence(),
				StopID:       stu.GetStopId(),
				Arrival:      stopTimeEvent(stu.GetArrival()),
				Departure:    stopTimeEvent(stu.GetDeparture()),
			}
			if stu.ScheduleRelationship != nil {
				u.ScheduleRelationship = stu.GetScheduleRelationship().String()
			}
			rec.StopTimeUpdates = append(rec.StopTimeUpdates, u)
		}
		out = append(out, rec)
	}
	return out
}

// VehiclePositionsFromFeed extracts vehicle positions whose route is in routes, in entity order
func VehiclePositionsFromFeed(fm *gtfsrtpb.FeedMessage, routes gtfs.IDSet) []VehiclePosition {
	out := []VehiclePosition{}
	for _, e := range fm.GetEntity() {
		vp := e.GetVehicle()
		if vp == nil || !routes.Has(vp.GetTrip().GetRouteId()) {
			continue
		}
		rec := VehiclePosition{
			Trip:      tripDescriptor(vp.GetTrip()),
			Vehicle:   vehicleDescriptor(vp.GetVehicle()),
			StopID:    vp.GetStopId(),
			Timestamp: vp.GetTimestamp(),
		}
		if p := vp.GetPosition(); p != nil {
			rec.Position = &Position{
				Latitude:  p.GetLatitude(),
				Longitude: p.GetLongitude(),
				Bearing:   p.Bearing,
			}
		}
		if vp.CurrentStatus != nil {
			rec.CurrentStatus = vp.GetCurrentStatus().String()
		}
		out = append(out, rec)
	}
	return out
}

func tripDescriptor(td *gtfsrtpb.TripDescriptor) TripDescriptor {
	if td == nil {
		return TripDescriptor{}
	}
	d := TripDescriptor{
		TripID:    td.GetTripId(),
		RouteID:   td.GetRouteId(),
		StartTime: td.GetStartTime(),
		StartDate: td.GetStartDate(),
	}
	if td.ScheduleRelationship != nil {
		d.ScheduleRelationship = td.GetScheduleRelationship().String()
	}
	return d
}

func vehicleDescriptor(vd *gtfsrtpb.VehicleDescriptor) *VehicleDescriptor {
	if vd == nil {
		return nil
	}
	return &VehicleDescriptor{ID: vd.GetId(), Label: vd.GetLabel()}
}

func stopTimeEvent(ev *gtfsrtpb.TripUpdate_StopTimeEvent) *StopTimeEvent {
	if ev == nil {
		return nil
	}
	return &StopTimeEvent{Delay: ev.Delay, Time: ev.Time, Uncertainty: ev.Uncertainty}
}
