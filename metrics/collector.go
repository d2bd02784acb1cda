// Package metrics counts cache, feed and search activity for one board run.
//
// A run is short lived, so the registry is exported as a node_exporter
// textfile rather than served over HTTP. All methods accept a nil *Collector.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Cache lookup results
const (
	ResultHit  = "hit"
	ResultMiss = "miss"
)

type Collector struct {
	reg *prometheus.Registry

	CacheLookups *prometheus.CounterVec // feed, result labels
	FetchErrors  *prometheus.CounterVec // feed label
	FeedRecords  *prometheus.GaugeVec   // feed label

	Searches   prometheus.Counter
	BoardRows  prometheus.Counter
	LiveMisses *prometheus.CounterVec // reason label
}

func NewCollector() *Collector {
	reg := prometheus.NewRegistry()

	c := &Collector{
		reg: reg,
		CacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busboard_cache_lookups_total",
			Help: "Live feed cache lookups by result.",
		}, []string{"feed", "result"}),
		FetchErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busboard_fetch_errors_total",
			Help: "Failed live feed fetches.",
		}, []string{"feed"}),
		FeedRecords: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "busboard_feed_records",
			Help: "Live records kept for the station routes.",
		}, []string{"feed"}),
		Searches: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busboard_searches_total",
			Help: "Departure searches served.",
		}),
		BoardRows: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "busboard_board_rows_total",
			Help: "Rows returned across all searches.",
		}),
		LiveMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "busboard_live_misses_total",
			Help: "Board rows shown without live data, by reason.",
		}, []string{"reason"}),
	}

	reg.MustRegister(
		c.CacheLookups, c.FetchErrors, c.FeedRecords,
		c.Searches, c.BoardRows, c.LiveMisses,
	)

	return c
}

// Registry exposes the underlying registry
func (c *Collector) Registry() *prometheus.Registry {
	if c == nil {
		return nil
	}
	return c.reg
}

func (c *Collector) CacheHit(feed string) {
	if c == nil {
		return
	}
	c.CacheLookups.WithLabelValues(feed, ResultHit).Inc()
}

func (c *Collector) CacheMiss(feed string) {
	if c == nil {
		return
	}
	c.CacheLookups.WithLabelValues(feed, ResultMiss).Inc()
}

func (c *Collector) FetchError(feed string) {
	if c == nil {
		return
	}
	c.FetchErrors.WithLabelValues(feed).Inc()
}

func (c *Collector) SetFeedRecords(feed string, n int) {
	if c == nil {
		return
	}
	c.FeedRecords.WithLabelValues(feed).Set(float64(n))
}

// SearchServed records one completed search returning rows rows
func (c *Collector) SearchServed(rows int) {
	if c == nil {
		return
	}
	c.Searches.Inc()
	c.BoardRows.Add(float64(rows))
}

func (c *Collector) LiveMiss(reason string, n int) {
	if c == nil || n == 0 {
		return
	}
	c.LiveMisses.WithLabelValues(reason).Add(float64(n))
}

// WriteTextfile writes the registry in text exposition format to path.
// An empty path is a no-op.
func (c *Collector) WriteTextfile(path string) error {
	if c == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, c.reg)
}
