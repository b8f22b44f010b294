package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/chainmap-go/pkg/hashmap"
)

// StatsSource is anything that can report table statistics, such as a
// *hashmap.Map or a *dictionary.Dictionary.
type StatsSource interface {
	Stats() hashmap.Stats
}

// TableCollector exports the current shape of one table.
//
// Stats are read on every scrape. hashmap.Map is not safe for concurrent
// use, so the caller must serialize scrapes with writers through lock.
type TableCollector struct {
	source StatsSource
	lock   func() func()

	size          *prometheus.Desc
	capacity      *prometheus.Desc
	loadFactor    *prometheus.Desc
	usedBuckets   *prometheus.Desc
	longestBucket *prometheus.Desc
	rehashes      *prometheus.Desc
}

// NewCollector creates a collector for source labelled with table.
// lock, if non-nil, is called before reading stats and the function it
// returns is called afterwards.
func NewCollector(table string, source StatsSource, lock func() func()) *TableCollector {
	labels := prometheus.Labels{"table": table}
	desc := func(name, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(Namespace, "table", name), help, nil, labels)
	}
	return &TableCollector{
		source:        source,
		lock:          lock,
		size:          desc("size", "Number of stored pairs"),
		capacity:      desc("capacity", "Number of buckets"),
		loadFactor:    desc("load_factor", "Pairs per bucket"),
		usedBuckets:   desc("used_buckets", "Number of non-empty buckets"),
		longestBucket: desc("longest_bucket", "Length of the longest bucket"),
		rehashes:      desc("rehashes_total", "Rehashes since creation"),
	}
}

// Describe implements prometheus.Collector.
func (c *TableCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.size
	ch <- c.capacity
	ch <- c.loadFactor
	ch <- c.usedBuckets
	ch <- c.longestBucket
	ch <- c.rehashes
}

// Collect implements prometheus.Collector.
func (c *TableCollector) Collect(ch chan<- prometheus.Metric) {
	if c.lock != nil {
		unlock := c.lock()
		defer unlock()
	}
	s := c.source.Stats()

	ch <- prometheus.MustNewConstMetric(c.size, prometheus.GaugeValue, float64(s.Size))
	ch <- prometheus.MustNewConstMetric(c.capacity, prometheus.GaugeValue, float64(s.Capacity))
	ch <- prometheus.MustNewConstMetric(c.loadFactor, prometheus.GaugeValue, s.LoadFactor)
	ch <- prometheus.MustNewConstMetric(c.usedBuckets, prometheus.GaugeValue, float64(s.UsedBuckets))
	ch <- prometheus.MustNewConstMetric(c.longestBucket, prometheus.GaugeValue, float64(s.LongestBucket))
	ch <- prometheus.MustNewConstMetric(c.rehashes, prometheus.CounterValue, float64(s.Rehashes))
}
