// Package busboard answers "when does the next bus leave this station, and
// where is it now?" for one GTFS parent station.
//
// A Board is built once at startup. It loads the station's static GTFS tables,
// fetches live trip updates and vehicle positions for the station's routes
// (through a five minute file cache), and then serves any number of searches:
//
//	cfg, err := config.LoadAppConfig("")
//	board, err := busboard.New(ctx, cfg)
//	routes, err := board.SelectRoutes("66")
//	rows, err := board.Search(schedule.Query{Date: date, Time: clock, Routes: routes})
//
// Static data problems are fatal. Live data problems are logged and the
// board carries on, showing "No Live Data" in the live columns.
package busboard
