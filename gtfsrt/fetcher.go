package gtfsrt

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/uqlakes/busboard/cache"
	"github.com/uqlakes/busboard/gtfs"
	"github.com/uqlakes/busboard/metrics"
)

// Feed names used in logs and metrics
const (
	FeedTripUpdates      = "trip_updates"
	FeedVehiclePositions = "vehicle_positions"
)

// Endpoints locates each feed and its cache key
type Endpoints struct {
	TripUpdatesURL      string
	VehiclePositionsURL string
	TripUpdatesKey      string
	VehiclePositionsKey string
}

// Fetcher serves live records for the station routes, from cache when fresh
type Fetcher struct {
	client    *Client
	store     *cache.Store
	endpoints Endpoints
	metrics   *metrics.Collector
}

// NewFetcher creates a fetcher. m may be nil.
func NewFetcher(client *Client, store *cache.Store, endpoints Endpoints, m *metrics.Collector) *Fetcher {
	return &Fetcher{
		client:    client,
		store:     store,
		endpoints: endpoints,
		metrics:   m,
	}
}

// TripUpdates returns the trip updates for routes
func (f *Fetcher) TripUpdates(ctx context.Context, routes gtfs.IDSet) ([]TripUpdate, error) {
	var updates []TripUpdate
	err := f.load(ctx, FeedTripUpdates, f.endpoints.TripUpdatesURL, f.endpoints.TripUpdatesKey, &updates, func(body []byte) (any, error) {
		fm, err := DecodeFeed(body)
		if err != nil {
			return nil, err
		}
		updates = TripUpdatesFromFeed(fm, routes)
		return updates, nil
	})
	if err != nil {
		return nil, err
	}
	f.metrics.SetFeedRecords(FeedTripUpdates, len(updates))
	return updates, nil
}

// VehiclePositions returns the vehicle positions for routes
func (f *Fetcher) VehiclePositions(ctx context.Context, routes gtfs.IDSet) ([]VehiclePosition, error) {
	var positions []VehiclePosition
	err := f.load(ctx, FeedVehiclePositions, f.endpoints.VehiclePositionsURL, f.endpoints.VehiclePositionsKey, &positions, func(body []byte) (any, error) {
		fm, err := DecodeFeed(body)
		if err != nil {
			return nil, err
		}
		positions = VehiclePositionsFromFeed(fm, routes)
		return positions, nil
	})
	if err != nil {
		return nil, err
	}
	f.metrics.SetFeedRecords(FeedVehiclePositions, len(positions))
	return positions, nil
}

// Fetch loads both feeds independently. Whatever succeeded is returned
// alongside the joined errors of what did not.
func (f *Fetcher) Fetch(ctx context.Context, routes gtfs.IDSet) (LiveData, error) {
	var live LiveData
	tu, tuErr := f.TripUpdates(ctx, routes)
	if tuErr == nil {
		live.TripUpdates = tu
	}
	vp, vpErr := f.VehiclePositions(ctx, routes)
	if vpErr == nil {
		live.VehiclePositions = vp
	}
	return live, errors.Join(tuErr, vpErr)
}

// load serves key from cache into dst, or fetches url, parses it and caches the result
func (f *Fetcher) load(ctx context.Context, feed, url, key string, dst any, parse func([]byte) (any, error)) error {
	if f.store.Read(key, dst) {
		f.metrics.CacheHit(feed)
		log.Debug().Str("feed", feed).Str("file", f.store.Path(key)).Msg("Serving live feed from cache")
		return nil
	}
	f.metrics.CacheMiss(feed)

	body, err := f.client.Fetch(ctx, url)
	if err != nil {
		f.metrics.FetchError(feed)
		return fmt.Errorf("%s: %w", feed, err)
	}
	records, err := parse(body)
	if err != nil {
		f.metrics.FetchError(feed)
		return fmt.Errorf("%s: %w", feed, err)
	}

	f.store.Write(key, records)
	log.Debug().Str("feed", feed).Str("url", url).Int("bytes", len(body)).Msg("Fetched live feed")
	return nil
}
