package busboard

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/uqlakes/busboard/cache"
	"github.com/uqlakes/busboard/config"
	"github.com/uqlakes/busboard/converter"
	"github.com/uqlakes/busboard/gtfs"
	"github.com/uqlakes/busboard/gtfsrt"
	"github.com/uqlakes/busboard/metrics"
	"github.com/uqlakes/busboard/schedule"
)

// Board holds everything loaded at startup for one station
type Board struct {
	Config   config.AppConfig
	Dataset  *gtfs.Dataset
	Live     gtfsrt.LiveData
	Location *time.Location
	Metrics  *metrics.Collector

	store *cache.Store
	menu  routeMenu
	now   func() time.Time
}

// New loads static data for the configured station and fetches live data for its routes.
// Static load failures are returned; live fetch failures are logged and leave Live empty.
func New(ctx context.Context, cfg config.AppConfig) (*Board, error) {
	loc := time.Local
	if cfg.Station.Timezone != "" {
		l, err := time.LoadLocation(cfg.Station.Timezone)
		if err != nil {
			return nil, fmt.Errorf("failed to load timezone %s: %w", cfg.Station.Timezone, err)
		}
		loc = l
	}

	fsys, closeFn, err := gtfs.OpenSource(ctx, cfg.GTFS.StaticSource)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := closeFn(); err != nil {
			log.Warn().Err(err).Str("source", cfg.GTFS.StaticSource).Msg("Failed to close GTFS source")
		}
	}()

	ds, err := gtfs.NewLoader(fsys, cfg.Station.ParentStation).Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load static GTFS from %s: %w", cfg.GTFS.StaticSource, err)
	}
	if len(ds.Stops) == 0 {
		log.Warn().Str("station", cfg.Station.ParentStation).Msg("No stops found for station")
	}

	m := metrics.NewCollector()
	store := cache.NewStore(cfg.Cache.Dir)
	fetcher := gtfsrt.NewFetcher(
		gtfsrt.NewClient(time.Duration(cfg.GTFSRT.TimeoutMS)*time.Millisecond),
		store,
		gtfsrt.Endpoints{
			TripUpdatesURL:      cfg.GTFSRT.TripUpdatesURL,
			VehiclePositionsURL: cfg.GTFSRT.VehiclePositionsURL,
			TripUpdatesKey:      cfg.Cache.TripUpdatesFile,
			VehiclePositionsKey: cfg.Cache.VehiclePositionsFile,
		},
		m,
	)

	live, err := fetcher.Fetch(ctx, ds.RouteIDs())
	if err != nil {
		log.Warn().Err(err).Msg("Live data unavailable, continuing with schedule only")
	}
	log.Info().
		Int("tripUpdates", len(live.TripUpdates)).
		Int("vehiclePositions", len(live.VehiclePositions)).
		Msg("Loaded live data")

	return &Board{
		Config:   cfg,
		Dataset:  ds,
		Live:     live,
		Location: loc,
		Metrics:  m,
		store:    store,
		menu:     newRouteMenu(ds.Routes),
		now:      time.Now,
	}, nil
}

// RouteChoices lists the route menu, "all" first
func (b *Board) RouteChoices() []RouteChoice {
	return b.menu.choices
}

// SelectRoutes resolves a route key or menu position
func (b *Board) SelectRoutes(input string) ([]gtfs.Route, error) {
	return b.menu.resolve(input)
}

// Search matches scheduled departures and joins live data
func (b *Board) Search(q schedule.Query) ([]converter.BoardRow, error) {
	if len(q.Routes) == 0 {
		return nil, &QueryError{Msg: "No routes selected"}
	}

	res, err := schedule.Match(b.Dataset, q)
	if err != nil {
		return nil, &QueryError{Msg: err.Error()}
	}

	conv := converter.NewConverter(b.Dataset.StopIDs(), b.Live, converter.Options{
		Location: b.Location,
		Now:      b.now,
		Metrics:  b.Metrics,
	})
	rows := conv.Convert(q.Date, res)
	b.Metrics.SearchServed(len(rows))
	return rows, nil
}

// Now is the board's current time in its location
func (b *Board) Now() time.Time {
	return b.now().In(b.Location)
}

// CacheStatus describes one live feed cache file
type CacheStatus struct {
	File    string
	Present bool
	Fresh   bool
	Age     time.Duration
}

// CacheStatus reports the state of both live feed cache files
func (b *Board) CacheStatus() []CacheStatus {
	keys := []string{b.Config.Cache.TripUpdatesFile, b.Config.Cache.VehiclePositionsFile}
	out := make([]CacheStatus, 0, len(keys))
	for _, key := range keys {
		st := CacheStatus{File: b.store.Path(key)}
		if age, ok := b.store.Age(key); ok {
			st.Present = true
			st.Age = age
			st.Fresh = age < cache.FreshnessWindow
		}
		out = append(out, st)
	}
	return out
}

// Close flushes metrics to the configured textfile
func (b *Board) Close() error {
	if err := b.Metrics.WriteTextfile(b.Config.Metrics.Textfile); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
