// Package ringmetrics exposes the occupancy and counters of a logring log as
// Prometheus metrics.
package ringmetrics

import (
	"context"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/luhtfiimanal/go-logring"
)

const namespace = "logring"

// SnapshotFunc returns the current state of a log.
type SnapshotFunc func(ctx context.Context) (logring.Snapshot, error)

// FromRing reads snapshots straight from r. Only use it when scrapes cannot
// overlap with Push/Shift, e.g. when the owner calls Gather itself.
func FromRing(r *logring.Ring) SnapshotFunc {
	return func(context.Context) (logring.Snapshot, error) {
		return r.Snapshot(), nil
	}
}

// FromQueue reads snapshots through the queue worker, so scrapes are
// serialized with every other operation.
func FromQueue(q *logring.Queue) SnapshotFunc {
	return q.Snapshot
}

// Collector implements prometheus.Collector for one log.
type Collector struct {
	source  SnapshotFunc
	timeout time.Duration

	limit        *prometheus.Desc
	used         *prometheus.Desc
	free         *prometheus.Desc
	full         *prometheus.Desc
	pushes       *prometheus.Desc
	shifts       *prometheus.Desc
	evictions    *prometheus.Desc
	bytesWritten *prometheus.Desc
	bytesRead    *prometheus.Desc
}

// NewCollector describes the log identified by name (exported as the "log"
// label).
func NewCollector(name string, source SnapshotFunc) *Collector {
	labels := prometheus.Labels{"log": name}
	desc := func(metric, help string) *prometheus.Desc {
		return prometheus.NewDesc(prometheus.BuildFQName(namespace, "", metric), help, nil, labels)
	}
	return &Collector{
		source:  source,
		timeout: 5 * time.Second,

		limit:        desc("limit_bytes", "Total size of the log file, header included."),
		used:         desc("used_bytes", "Bytes of the data region occupied by unread records."),
		free:         desc("free_bytes", "Bytes of the data region not occupied, reserved byte included."),
		full:         desc("full", "1 when the next push has to evict."),
		pushes:       desc("pushes_total", "Records appended since open."),
		shifts:       desc("shifts_total", "Records consumed since open."),
		evictions:    desc("evictions_total", "Records evicted to make room since open."),
		bytesWritten: desc("written_bytes_total", "Data region bytes written since open."),
		bytesRead:    desc("read_bytes_total", "Data region bytes read since open."),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range c.descs() {
		ch <- d
	}
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	ctx, cancel := context.WithTimeout(context.Background(), c.timeout)
	defer cancel()

	s, err := c.source(ctx)
	if err != nil {
		for _, d := range c.descs() {
			ch <- prometheus.NewInvalidMetric(d, err)
		}
		return
	}

	full := 0.0
	if s.Full {
		full = 1
	}
	ch <- prometheus.MustNewConstMetric(c.limit, prometheus.GaugeValue, float64(s.Limit))
	ch <- prometheus.MustNewConstMetric(c.used, prometheus.GaugeValue, float64(s.Used))
	ch <- prometheus.MustNewConstMetric(c.free, prometheus.GaugeValue, float64(s.Free))
	ch <- prometheus.MustNewConstMetric(c.full, prometheus.GaugeValue, full)
	ch <- prometheus.MustNewConstMetric(c.pushes, prometheus.CounterValue, float64(s.Stats.Pushes))
	ch <- prometheus.MustNewConstMetric(c.shifts, prometheus.CounterValue, float64(s.Stats.Shifts))
	ch <- prometheus.MustNewConstMetric(c.evictions, prometheus.CounterValue, float64(s.Stats.Evictions))
	ch <- prometheus.MustNewConstMetric(c.bytesWritten, prometheus.CounterValue, float64(s.Stats.BytesWritten))
	ch <- prometheus.MustNewConstMetric(c.bytesRead, prometheus.CounterValue, float64(s.Stats.BytesRead))
}

func (c *Collector) descs() []*prometheus.Desc {
	return []*prometheus.Desc{
		c.limit, c.used, c.free, c.full,
		c.pushes, c.shifts, c.evictions, c.bytesWritten, c.bytesRead,
	}
}
