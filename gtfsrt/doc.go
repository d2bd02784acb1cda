// Package gtfsrt fetches the GTFS-Realtime feeds that carry live data for a station.
//
// It supports two feed types:
//   - Trip Updates: real-time arrival/departure predictions
//   - Vehicle Positions: current vehicle locations
//
// Feeds are decoded with the MobilityData bindings from either the JSON
// rendering (protojson) or the binary protobuf encoding, reduced to the
// entities whose trip belongs to one of the station's routes, and cached
// through cache.Store. The main type is Fetcher.
package gtfsrt
