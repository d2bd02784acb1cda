package formatter

import (
	"fmt"
	"io"

	"github.com/rodaine/table"

	"github.com/uqlakes/busboard"
	"github.com/uqlakes/busboard/converter"
)

// Column headers of the departure table
var Headers = []any{
	"Route Short Name",
	"Route Long Name",
	"Service ID",
	"Heading Sign",
	"Scheduled Arrival Time",
	"Live Arrival Time",
	"Live Vehicle Position",
}

// WriteTable prints rows as an aligned table, or a notice when there are none
func WriteTable(w io.Writer, rows []converter.BoardRow) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No departures in the next 10 minutes.")
		return
	}

	tbl := table.New(Headers...).WithWriter(w)
	for _, r := range rows {
		tbl.AddRow(r.RouteShortName, r.RouteLongName, r.ServiceID, r.Headsign, r.ScheduledTime, r.LiveArrival, r.LivePosition)
	}
	tbl.Print()
}

// WriteRouteMenu prints the numbered route menu
func WriteRouteMenu(w io.Writer, choices []busboard.RouteChoice) {
	tbl := table.New("#", "Route", "Name").WithWriter(w)
	for _, c := range choices {
		tbl.AddRow(c.Position, c.Key, c.Label)
	}
	tbl.Print()
}
