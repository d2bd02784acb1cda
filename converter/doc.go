// Package converter joins scheduled departures with live GTFS-Realtime data.
//
// # Overview
//
// The converter combines three inputs:
//   - the station's stop ids, via gtfs.Dataset.StopIDs
//   - live trip updates and vehicle positions, via gtfsrt.LiveData
//   - matched departures, via schedule.Result
//
// Each schedule.Row becomes a BoardRow carrying a live arrival time and
// vehicle position, or NoLiveData where nothing usable exists.
//
// # Usage
//
//	conv := converter.NewConverter(ds.StopIDs(), live, converter.Options{Location: loc})
//	rows := conv.Convert(query.Date, result)
//
// # Matching
//
// Live data is only applied when the requested date falls on today's
// weekday. Rows are joined to live records by trip id; a row's arrival is the
// first stop time update at any station stop, and its position is the vehicle
// record for the same trip.
//
// Rows that end up without live data are tallied per reason and logged once
// per Convert call at debug level.
package converter
