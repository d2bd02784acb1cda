package formatter

import (
	"time"

	"github.com/uqlakes/busboard/converter"
	"github.com/uqlakes/busboard/schedule"
)

// BoardResponse is the envelope around one search's rows
type BoardResponse struct {
	Station     string               `json:"station"`
	Date        string               `json:"date"`
	Time        string               `json:"time"`
	Routes      []string             `json:"routes"`
	GeneratedAt string               `json:"generatedAt"`
	Departures  []converter.BoardRow `json:"departures"`
}

// WrapBoard builds a BoardResponse. generatedAt is rendered in RFC 3339.
func WrapBoard(station string, q schedule.Query, rows []converter.BoardRow, generatedAt time.Time) *BoardResponse {
	routes := make([]string, 0, len(q.Routes))
	for _, r := range q.Routes {
		routes = append(routes, r.ShortName)
	}
	if rows == nil {
		rows = []converter.BoardRow{}
	}
	return &BoardResponse{
		Station:     station,
		Date:        q.Date.Format(schedule.DateLayout),
		Time:        q.Time.String(),
		Routes:      routes,
		GeneratedAt: generatedAt.Format(time.RFC3339),
		Departures:  rows,
	}
}
