// Package metrics exports channel statistics to Prometheus.
package metrics

import (
	"net/http"
	"sort"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"m7s.live/replicast/common"
	"m7s.live/replicast/util"
)

const namespace = "replicast"

var (
	capacityDesc  = desc("capacity", "Slots in the channel buffer.")
	readersDesc   = desc("readers", "Registered readers.")
	sequenceDesc  = desc("sequence", "Sequence number of the next message.")
	maxLagDesc    = desc("max_lag", "Pending messages of the slowest reader.")
	publishedDesc = desc("published_total", "Messages accepted into the buffer.")
	rejectedDesc  = desc("rejected_total", "TryPublish calls refused on a full buffer.")
	blockedDesc   = desc("blocked_total", "Publish calls that waited for a reader.")
	consumedDesc  = desc("consumed_total", "Messages delivered to readers, summed over readers.")
)

func desc(name, help string) *prometheus.Desc {
	return prometheus.NewDesc(prometheus.BuildFQName(namespace, "channel", name), help, []string{"channel"}, nil)
}

// Collector reads Stats from every registered source at scrape time.
type Collector struct {
	sources util.Map[string, common.StatsSource]
}

func NewCollector() *Collector {
	c := &Collector{}
	c.sources.Init()
	return c
}

// Register adds src under name. It returns false if name is taken.
func (c *Collector) Register(name string, src common.StatsSource) bool {
	return c.sources.Add(name, src)
}

func (c *Collector) Unregister(name string) bool {
	return c.sources.Delete(name)
}

func (c *Collector) Len() int {
	return c.sources.Len()
}

// Snapshot returns the stats of every registered source ordered by name.
func (c *Collector) Snapshot() []common.Stats {
	list := make([]common.Stats, 0, c.sources.Len())
	c.sources.Range(func(_ string, src common.StatsSource) {
		list = append(list, src.Stats())
	})
	sort.Slice(list, func(i, j int) bool {
		return list[i].Name < list[j].Name
	})
	return list
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	for _, d := range []*prometheus.Desc{capacityDesc, readersDesc, sequenceDesc, maxLagDesc, publishedDesc, rejectedDesc, blockedDesc, consumedDesc} {
		ch <- d
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	c.sources.Range(func(name string, src common.StatsSource) {
		st := src.Stats()
		gauge := func(d *prometheus.Desc, v float64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.GaugeValue, v, name)
		}
		counter := func(d *prometheus.Desc, v uint64) {
			ch <- prometheus.MustNewConstMetric(d, prometheus.CounterValue, float64(v), name)
		}
		gauge(capacityDesc, float64(st.Capacity))
		gauge(readersDesc, float64(st.Readers))
		gauge(sequenceDesc, float64(st.Sequence))
		gauge(maxLagDesc, float64(st.MaxLag))
		counter(publishedDesc, st.Published)
		counter(rejectedDesc, st.Rejected)
		counter(blockedDesc, st.Blocked)
		counter(consumedDesc, st.Consumed)
	})
}

// Handler serves the collector, plus Go runtime and process metrics, from a
// private registry.
func (c *Collector) Handler() http.Handler {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		c,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
}
