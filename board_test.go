package busboard

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/uqlakes/busboard/config"
	"github.com/uqlakes/busboard/converter"
	"github.com/uqlakes/busboard/gtfs"

	_ "time/tzdata"
)

// feedServer serves the gtfsrt JSON fixtures, or status when it is not 200
func feedServer(t *testing.T, status int) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if status != http.StatusOK {
			w.WriteHeader(status)
			return
		}
		body, err := os.ReadFile(filepath.Join("gtfsrt", "testdata", filepath.Base(r.URL.Path)))
		if err != nil {
			http.NotFound(w, r)
			return
		}
		w.Write(body)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(t *testing.T, srv *httptest.Server) config.AppConfig {
	t.Helper()
	cfg := config.Default()
	cfg.Station.Timezone = "Australia/Brisbane"
	cfg.GTFS.StaticSource = filepath.Join("gtfs", "testdata", "static")
	cfg.GTFSRT.TripUpdatesURL = srv.URL + "/trip_updates.json"
	cfg.GTFSRT.VehiclePositionsURL = srv.URL + "/vehicle_positions.json"
	cfg.Cache.Dir = t.TempDir()
	return cfg
}

// newTestBoard builds a board whose "today" is Monday 2024-01-08 12:00 in Brisbane
func newTestBoard(t *testing.T, status int) *Board {
	t.Helper()
	b, err := New(context.Background(), testConfig(t, feedServer(t, status)))
	require.NoError(t, err)
	b.now = func() time.Time { return time.Date(2024, 1, 8, 12, 0, 0, 0, b.Location) }
	return b
}

func TestNewBoard(t *testing.T) {
	b := newTestBoard(t, http.StatusOK)

	assert.Equal(t, "Australia/Brisbane", b.Location.String())
	assert.Len(t, b.Dataset.Stops, 2)
	assert.Len(t, b.Dataset.Routes, 2)
	require.Len(t, b.Live.TripUpdates, 1, "feed is reduced to the station's routes")
	require.Len(t, b.Live.VehiclePositions, 1)

	for _, st := range b.CacheStatus() {
		assert.True(t, st.Present, st.File)
		assert.True(t, st.Fresh, st.File)
	}
}

func TestBoardSearch(t *testing.T) {
	b := newTestBoard(t, http.StatusOK)

	q, err := b.ParseQuery("2024-01-01", "09:00", "66")
	require.NoError(t, err)

	rows, err := b.Search(q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "66", rows[0].RouteShortName)
	assert.Equal(t, "RBWH - UQ Lakes", rows[0].RouteLongName)
	assert.Equal(t, "SV1", rows[0].ServiceID)
	assert.Equal(t, "UQ Lakes", rows[0].Headsign)
	assert.Equal(t, "09:10:00", rows[0].ScheduledTime)
	assert.Equal(t, "9:12:00", rows[0].LiveArrival)
	assert.Equal(t, "-27.4975, 153.0172", rows[0].LivePosition)
}

func TestBoardSearchOtherWeekday(t *testing.T) {
	b := newTestBoard(t, http.StatusOK)

	q, err := b.ParseQuery("2024-01-02", "09:00", "all")
	require.NoError(t, err)

	rows, err := b.Search(q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, converter.NoLiveData, rows[0].LiveArrival)
	assert.Equal(t, converter.NoLiveData, rows[0].LivePosition)
}

func TestBoardDegradesWithoutLiveData(t *testing.T) {
	b := newTestBoard(t, http.StatusInternalServerError)

	assert.Empty(t, b.Live.TripUpdates)
	assert.Empty(t, b.Live.VehiclePositions)

	q, err := b.ParseQuery("2024-01-01", "09:00", "66")
	require.NoError(t, err)
	rows, err := b.Search(q)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, converter.NoLiveData, rows[0].LiveArrival)

	for _, st := range b.CacheStatus() {
		assert.False(t, st.Present, "failed fetches are not cached")
	}
}

func TestNewBoardStaticFailure(t *testing.T) {
	cfg := testConfig(t, feedServer(t, http.StatusOK))
	cfg.GTFS.StaticSource = filepath.Join(t.TempDir(), "missing")

	_, err := New(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to open GTFS directory")

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, gtfs.StopsFile), []byte("stop_id,parent_station\nS1,place_uqlksa\n"), 0o644))
	cfg.GTFS.StaticSource = dir
	_, err = New(context.Background(), cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "stop_times.txt")
}

func TestBoardRouteSelection(t *testing.T) {
	b := newTestBoard(t, http.StatusOK)

	choices := b.RouteChoices()
	require.Len(t, choices, 3)
	assert.Equal(t, RouteChoice{Position: 1, Key: AllRoutesKey, Label: "Show all routes"}, choices[0])
	assert.Equal(t, RouteChoice{Position: 2, Key: "66", Label: "RBWH - UQ Lakes"}, choices[1])
	assert.Equal(t, RouteChoice{Position: 3, Key: "169", Label: "Eight Mile Plains - UQ Lakes"}, choices[2])

	tests := []struct {
		input string
		want  []string
	}{
		{"66", []string{"R1"}},
		{" 169 ", []string{"R3"}},
		{"ALL", []string{"R1", "R3"}},
		{"1", []string{"R1", "R3"}},
		{"2", []string{"R1"}},
		{"3", []string{"R3"}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			routes, err := b.SelectRoutes(tt.input)
			require.NoError(t, err)
			ids := []string{}
			for _, r := range routes {
				ids = append(ids, r.ID)
			}
			assert.Equal(t, tt.want, ids)
		})
	}

	for _, bad := range []string{"", "4", "0", "29", "sixty-six"} {
		_, err := b.SelectRoutes(bad)
		var qe *QueryError
		assert.True(t, errors.As(err, &qe), "input %q", bad)
	}
}

func TestRouteMenuKeysBeforePositions(t *testing.T) {
	menu := newRouteMenu([]gtfs.Route{
		{ID: "R1", ShortName: "3"},
		{ID: "R2", ShortName: "3"},
		{ID: "R9"},
	})

	require.Len(t, menu.choices, 3, "routes sharing a short name are one choice")
	assert.Equal(t, "R9", menu.choices[2].Key, "blank short names fall back to the route id")

	routes, err := menu.resolve("3")
	require.NoError(t, err)
	assert.Len(t, routes, 2, "a route key wins over menu position 3")

	routes, err = menu.resolve("2")
	require.NoError(t, err)
	assert.Len(t, routes, 2)

	emptyMenu := newRouteMenu(nil)
	_, err = emptyMenu.resolve("all")
	assert.EqualError(t, err, "No routes serve this station")
}

func TestBoardQueryErrors(t *testing.T) {
	b := newTestBoard(t, http.StatusOK)

	tests := []struct {
		name                string
		date, clock, routes string
		wantErr             string
	}{
		{"bad date", "01/01/2024", "09:00", "66", "use YYYY-MM-DD"},
		{"bad time", "2024-01-01", "9am", "66", "use HH:mm"},
		{"unknown route", "2024-01-01", "09:00", "29", "No such route: 29"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.ParseQuery(tt.date, tt.clock, tt.routes)
			var qe *QueryError
			require.True(t, errors.As(err, &qe))
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	q, err := b.ParseQuery("2024-01-01", "09:00", "all")
	require.NoError(t, err)
	q.Routes = nil
	_, err = b.Search(q)
	assert.EqualError(t, err, "No routes selected")
}

func TestBoardClose(t *testing.T) {
	b := newTestBoard(t, http.StatusOK)
	b.Config.Metrics.Textfile = filepath.Join(t.TempDir(), "busboard.prom")

	q, err := b.ParseQuery("2024-01-01", "09:00", "66")
	require.NoError(t, err)
	_, err = b.Search(q)
	require.NoError(t, err)
	require.NoError(t, b.Close())

	data, err := os.ReadFile(b.Config.Metrics.Textfile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "busboard_searches_total 1")
	assert.Contains(t, string(data), `busboard_cache_lookups_total{feed="trip_updates",result="miss"} 1`)
}
