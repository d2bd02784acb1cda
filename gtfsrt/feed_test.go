package gtfsrt

import (
	"os"
	"path/filepath"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/uqlakes/busboard/gtfs"
)

var stationRoutes = gtfs.IDSet{"R1": {}, "R3": {}}

// testFeed builds a feed holding one trip update and one vehicle for each of R1 and R2
func testFeed() *gtfsrtpb.FeedMessage {
	return &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1704063300),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("TU1"),
				TripUpdate: &gtfsrtpb.TripUpdate{
					Trip: &gtfsrtpb.TripDescriptor{TripId: proto.String("T1"), RouteId: proto.String("R1")},
					StopTimeUpdate: []*gtfsrtpb.TripUpdate_StopTimeUpdate{
						{
							StopSequence: proto.Uint32(2),
							StopId:       proto.String("S1"),
							Arrival:      &gtfsrtpb.TripUpdate_StopTimeEvent{Time: proto.Int64(1704064320)},
						},
					},
				},
			},
			{
				Id: proto.String("TU2"),
				TripUpdate: &gtfsrtpb.TripUpdate{
					Trip: &gtfsrtpb.TripDescriptor{TripId: proto.String("T2"), RouteId: proto.String("R2")},
				},
			},
			{
				Id: proto.String("VP1"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Trip:          &gtfsrtpb.TripDescriptor{TripId: proto.String("T1"), RouteId: proto.String("R1")},
					Position:      &gtfsrtpb.Position{Latitude: proto.Float32(-27.4975), Longitude: proto.Float32(153.0172)},
					CurrentStatus: gtfsrtpb.VehiclePosition_STOPPED_AT.Enum(),
				},
			},
			{
				Id: proto.String("VP2"),
				Vehicle: &gtfsrtpb.VehiclePosition{
					Trip:     &gtfsrtpb.TripDescriptor{TripId: proto.String("T2"), RouteId: proto.String("R2")},
					Position: &gtfsrtpb.Position{Latitude: proto.Float32(-27.47), Longitude: proto.Float32(153.02)},
				},
			},
		},
	}
}

func readFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	require.NoError(t, err)
	return data
}

func TestDecodeFeedJSON(t *testing.T) {
	fm, err := DecodeFeed(readFixture(t, "trip_updates.json"))
	require.NoError(t, err)

	assert.Equal(t, uint64(1704063300), fm.GetHeader().GetTimestamp())
	require.Len(t, fm.GetEntity(), 2)

	updates := TripUpdatesFromFeed(fm, stationRoutes)
	require.Len(t, updates, 1, "R2 is not a station route")

	tu := updates[0]
	assert.Equal(t, "T1", tu.Trip.TripID)
	assert.Equal(t, "20240101", tu.Trip.StartDate)
	assert.Equal(t, "SCHEDULED", tu.Trip.ScheduleRelationship)
	assert.Equal(t, "V42", tu.Vehicle.ID)
	assert.Equal(t, uint64(1704063290), tu.Timestamp)

	require.Len(t, tu.StopTimeUpdates, 2)
	assert.Equal(t, "S2", tu.StopTimeUpdates[0].StopID)
	assert.Nil(t, tu.StopTimeUpdates[0].Arrival)
	arrival := tu.StopTimeUpdates[1].Arrival
	require.NotNil(t, arrival)
	assert.Equal(t, int64(1704064320), *arrival.Time)
	assert.Equal(t, int32(120), *arrival.Delay)
}

func TestDecodeFeedVehicleJSON(t *testing.T) {
	fm, err := DecodeFeed(readFixture(t, "vehicle_positions.json"))
	require.NoError(t, err)

	positions := VehiclePositionsFromFeed(fm, stationRoutes)
	require.Len(t, positions, 1, "foreign route and trip-less vehicles are dropped")

	vp := positions[0]
	assert.Equal(t, "T1", vp.Trip.TripID)
	assert.Equal(t, "IN_TRANSIT_TO", vp.CurrentStatus)
	assert.Equal(t, "S2", vp.StopID)
	require.NotNil(t, vp.Position)
	assert.Equal(t, float32(-27.4975), vp.Position.Latitude)
	assert.Equal(t, float32(153.0172), vp.Position.Longitude)
	require.NotNil(t, vp.Position.Bearing)
	assert.Equal(t, float32(90), *vp.Position.Bearing)
}

func TestDecodeFeedProtobuf(t *testing.T) {
	body, err := proto.Marshal(testFeed())
	require.NoError(t, err)

	fm, err := DecodeFeed(body)
	require.NoError(t, err)

	updates := TripUpdatesFromFeed(fm, stationRoutes)
	require.Len(t, updates, 1)
	assert.Equal(t, int64(1704064320), *updates[0].StopTimeUpdates[0].Arrival.Time)

	positions := VehiclePositionsFromFeed(fm, stationRoutes)
	require.Len(t, positions, 1)
	assert.Equal(t, "STOPPED_AT", positions[0].CurrentStatus)
	assert.Nil(t, positions[0].Vehicle)
}

func TestDecodeFeedErrors(t *testing.T) {
	tests := []struct {
		name    string
		body    []byte
		wantErr string
	}{
		{"broken json", []byte(`{"entity": [`), "failed to decode JSON feed"},
		{"wrong json type", []byte(`{"entity": "nope"}`), "failed to decode JSON feed"},
		{"garbage bytes", []byte{0xff, 0xff, 0xff, 0xff}, "failed to decode protobuf feed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeFeed(tt.body)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestFromFeedEmptyRouteSet(t *testing.T) {
	fm := testFeed()
	assert.Empty(t, TripUpdatesFromFeed(fm, gtfs.IDSet{}))
	assert.Empty(t, VehiclePositionsFromFeed(fm, nil))
}
