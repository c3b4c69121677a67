// Package metrics exposes the shape of an rtree.RTree and its operation
// counters to Prometheus.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/spatial-index/rtree"
)

// Collector is a prometheus.Collector reporting rtree.Stats.
//
// The tree is not safe for concurrent use, so the Collector never touches it
// directly. It calls the snapshot function on every scrape; callers that
// mutate the tree from other goroutines should take their lock inside it.
type Collector struct {
	snapshot func() rtree.Stats

	elements *prometheus.Desc
	nodes    *prometheus.Desc
	leaves   *prometheus.Desc
	height   *prometheus.Desc

	inserts    *prometheus.Desc
	removals   *prometheus.Desc
	splits     *prometheus.Desc
	reinserted *prometheus.Desc
}

// NewCollector creates a Collector whose metric names are prefixed by
// namespace and the "rtree" subsystem.
func NewCollector(namespace string, snapshot func() rtree.Stats) *Collector {
	name := func(n string) string {
		return prometheus.BuildFQName(namespace, "rtree", n)
	}
	return &Collector{
		snapshot: snapshot,
		elements: prometheus.NewDesc(name("elements"), "Number of elements in the tree.", nil, nil),
		nodes:    prometheus.NewDesc(name("nodes"), "Number of nodes in the tree.", nil, nil),
		leaves:   prometheus.NewDesc(name("leaves"), "Number of leaf nodes in the tree.", nil, nil),
		height:   prometheus.NewDesc(name("height"), "Number of levels in the tree.", nil, nil),

		inserts:    prometheus.NewDesc(name("inserts_total"), "Elements inserted.", nil, nil),
		removals:   prometheus.NewDesc(name("removals_total"), "Elements removed.", nil, nil),
		splits:     prometheus.NewDesc(name("splits_total"), "Overflowing nodes split in two.", []string{"node"}, nil),
		reinserted: prometheus.NewDesc(name("reinserted_total"), "Elements moved by reinsertion passes.", nil, nil),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.elements
	ch <- c.nodes
	ch <- c.leaves
	ch <- c.height
	ch <- c.inserts
	ch <- c.removals
	ch <- c.splits
	ch <- c.reinserted
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	s := c.snapshot()
	ch <- prometheus.MustNewConstMetric(c.elements, prometheus.GaugeValue, float64(s.Elements))
	ch <- prometheus.MustNewConstMetric(c.nodes, prometheus.GaugeValue, float64(s.Nodes))
	ch <- prometheus.MustNewConstMetric(c.leaves, prometheus.GaugeValue, float64(s.Leaves))
	ch <- prometheus.MustNewConstMetric(c.height, prometheus.GaugeValue, float64(s.Height))
	ch <- prometheus.MustNewConstMetric(c.inserts, prometheus.CounterValue, float64(s.Inserts))
	ch <- prometheus.MustNewConstMetric(c.removals, prometheus.CounterValue, float64(s.Removals))
	ch <- prometheus.MustNewConstMetric(c.splits, prometheus.CounterValue, float64(s.LeafSplits), "leaf")
	ch <- prometheus.MustNewConstMetric(c.splits, prometheus.CounterValue, float64(s.InnerSplits), "inner")
	ch <- prometheus.MustNewConstMetric(c.reinserted, prometheus.CounterValue, float64(s.Reinserted))
}
