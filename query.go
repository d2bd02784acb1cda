package busboard

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/uqlakes/busboard/gtfs"
	"github.com/uqlakes/busboard/schedule"
)

// AllRoutesKey selects every route serving the station
const AllRoutesKey = "all"

// QueryError reports a search the board cannot answer as asked
type QueryError struct{ Msg string }

func (e *QueryError) Error() string { return e.Msg }

// RouteChoice is one entry of the route menu. Position is the number shown
// to the user; Key is what SelectRoutes resolves.
type RouteChoice struct {
	Position int    `json:"position"`
	Key      string `json:"key"`
	Label    string `json:"label"`
}

// routeMenu maps choice keys to the loaded routes they stand for
type routeMenu struct {
	choices []RouteChoice
	byKey   map[string][]gtfs.Route
}

// newRouteMenu keys routes by short name (route id when blank) in load order.
// Routes sharing a short name are one choice.
func newRouteMenu(routes []gtfs.Route) routeMenu {
	m := routeMenu{
		choices: []RouteChoice{{Position: 1, Key: AllRoutesKey, Label: "Show all routes"}},
		byKey:   map[string][]gtfs.Route{AllRoutesKey: routes},
	}
	for _, r := range routes {
		key := r.ShortName
		if key == "" {
			key = r.ID
		}
		norm := strings.ToLower(key)
		if _, ok := m.byKey[norm]; !ok {
			m.choices = append(m.choices, RouteChoice{Position: len(m.choices) + 1, Key: key, Label: r.LongName})
		}
		m.byKey[norm] = append(m.byKey[norm], r)
	}
	return m
}

// resolve maps a route key, or failing that a menu position, to routes
func (m routeMenu) resolve(input string) ([]gtfs.Route, error) {
	key := strings.ToLower(strings.TrimSpace(input))
	if key == "" {
		return nil, &QueryError{Msg: "No route given"}
	}
	routes, ok := m.byKey[key]
	if !ok {
		n, err := strconv.Atoi(key)
		if err != nil || n < 1 || n > len(m.choices) {
			return nil, &QueryError{Msg: fmt.Sprintf("No such route: %s (choose one of %s)", input, strings.Join(m.sortedKeys(), ", "))}
		}
		routes = m.byKey[strings.ToLower(m.choices[n-1].Key)]
	}
	if len(routes) == 0 {
		return nil, &QueryError{Msg: "No routes serve this station"}
	}
	return routes, nil
}

// ParseQuery validates raw date, time and route inputs into a search
func (b *Board) ParseQuery(date, clock, route string) (schedule.Query, error) {
	d, err := schedule.ParseDate(date, b.Location)
	if err != nil {
		return schedule.Query{}, &QueryError{Msg: err.Error()}
	}
	c, err := schedule.ParseClock(clock)
	if err != nil {
		return schedule.Query{}, &QueryError{Msg: err.Error()}
	}
	routes, err := b.SelectRoutes(route)
	if err != nil {
		return schedule.Query{}, err
	}
	return schedule.Query{Date: d, Time: c, Routes: routes}, nil
}

// sortedKeys lists the selectable route keys, for error messages
func (m routeMenu) sortedKeys() []string {
	keys := make([]string, 0, len(m.choices))
	for _, c := range m.choices {
		keys = append(keys, c.Key)
	}
	sort.Strings(keys)
	return keys
}
