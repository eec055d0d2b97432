// Package exporter exposes the softnet counters over HTTP for a
// Prometheus server to scrape. Every scrape re-reads and re-parses the
// proc file, so each sample set is an independent snapshot; nothing is
// accumulated between scrapes.
package exporter

import (
	"fmt"
	"log"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kernelstats/softnet-stat/pkg/procfile"
	"github.com/kernelstats/softnet-stat/softnet"
)

const namespace = "softnet"

var cpuLabelNames = []string{"cpu"}

type metricInfo struct {
	Desc *prometheus.Desc
	Type prometheus.ValueType
}

func newPerCPUMetric(metricName string, docString string, t prometheus.ValueType, value func(*softnet.SoftnetStat) uint32) perCPUMetric {
	return perCPUMetric{
		metricInfo: metricInfo{
			Desc: prometheus.NewDesc(
				prometheus.BuildFQName(namespace, "", metricName),
				docString,
				cpuLabelNames,
				nil,
			),
			Type: t,
		},
		value: value,
	}
}

type perCPUMetric struct {
	metricInfo
	value func(*softnet.SoftnetStat) uint32
}

// Collector implements prometheus.Collector over the softnet_stat file
// at a fixed path.
type Collector struct {
	path string

	up      *prometheus.Desc
	metrics []perCPUMetric
}

func NewCollector(path string) *Collector {
	return &Collector{
		path: path,
		up: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "up"),
			"Whether the last softnet_stat read and parse succeeded.",
			nil, nil,
		),
		metrics: []perCPUMetric{
			newPerCPUMetric("frames_processed", "Number of network frames processed.", prometheus.CounterValue,
				func(s *softnet.SoftnetStat) uint32 { return s.Processed }),
			newPerCPUMetric("frames_dropped", "Number of frames dropped off the backlog queue.", prometheus.CounterValue,
				func(s *softnet.SoftnetStat) uint32 { return s.Dropped }),
			newPerCPUMetric("time_squeeze", "Number of times net_rx_action exhausted its budget with work left.", prometheus.CounterValue,
				func(s *softnet.SoftnetStat) uint32 { return s.TimeSqueeze }),
			newPerCPUMetric("cpu_collisions", "Number of transmit device-lock collisions.", prometheus.CounterValue,
				func(s *softnet.SoftnetStat) uint32 { return s.CPUCollision }),
			newPerCPUMetric("received_rps", "Number of inter-processor interrupt wakeups for packet processing.", prometheus.CounterValue,
				func(s *softnet.SoftnetStat) uint32 { return opt(s.ReceivedRPS) }),
			newPerCPUMetric("flow_limit_count", "Number of times the RPS flow limit was reached.", prometheus.CounterValue,
				func(s *softnet.SoftnetStat) uint32 { return opt(s.FlowLimitCount) }),
			newPerCPUMetric("backlog_len", "Current backlog queue length.", prometheus.GaugeValue,
				func(s *softnet.SoftnetStat) uint32 { return opt(s.BacklogLen) }),
		},
	}
}

func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.up
	for _, m := range c.metrics {
		ch <- m.Desc
	}
}

func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	raw, err := procfile.Read(c.path)
	if err != nil {
		log.Println("E! failed to read:", c.path, "error:", err)
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		return
	}

	stats, err := softnet.Parse(raw)
	if err != nil {
		log.Println("E! failed to parse:", c.path, "error:", err)
		ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 0)
		return
	}

	ch <- prometheus.MustNewConstMetric(c.up, prometheus.GaugeValue, 1)

	for i := range stats {
		stat := &stats[i]
		cpu := fmt.Sprintf("cpu%d", stat.CPU(i))
		for _, m := range c.metrics {
			ch <- prometheus.MustNewConstMetric(m.Desc, m.Type, float64(m.value(stat)), cpu)
		}
	}
}

func opt(v *uint32) uint32 {
	if v == nil {
		return 0
	}
	return *v
}
