/*
Package gtfs loads the GTFS static tables relevant to one station.

Loading is a chain of foreign-key filters, each stage narrowing the next:

	stops      (parent_station == station)
	stop_times (stop_id in stops)
	trips      (trip_id in stop_times)
	routes     (route_id in trips)
	calendar   (service_id in trips)

Rows are never modified, only excluded, and keep their source file order.

# Sources

The tables are read through an fs.FS, so a directory, a local zip or a
downloaded zip all work the same way:

	fsys, closeFn, err := gtfs.OpenSource(ctx, "static-data")
	if err != nil {
	    log.Fatal().Err(err).Send()
	}
	defer closeFn()

	dataset, err := gtfs.NewLoader(fsys, "place_uqlksa").Load()

Any failure to read or parse a table is returned; there is no partial dataset.
*/
package gtfs
