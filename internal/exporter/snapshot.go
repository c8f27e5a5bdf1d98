package exporter

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/KonishchevDmitry/diskstats-metrics/internal/diskstats"
)

// Snapshot accumulates readings of a poll and exposes readings of the last committed one to Prometheus.
type Snapshot struct {
	pending []diskstats.Reading

	lock      sync.Mutex
	committed []diskstats.Reading
}

var _ diskstats.Emitter = &Snapshot{}
var _ prometheus.Collector = &Snapshot{}

func NewSnapshot() *Snapshot {
	return &Snapshot{}
}

// Begin starts a new batch dropping the readings of an uncommitted one.
func (s *Snapshot) Begin() {
	s.pending = nil
}

func (s *Snapshot) Emit(reading diskstats.Reading) {
	s.pending = append(s.pending, reading)
}

func (s *Snapshot) Commit() {
	readings := s.pending
	s.pending = nil

	s.lock.Lock()
	defer s.lock.Unlock()

	s.committed = readings
}

func (s *Snapshot) Readings() []diskstats.Reading {
	s.lock.Lock()
	defer s.lock.Unlock()
	return s.committed
}

func (s *Snapshot) Describe(descs chan<- *prometheus.Desc) {
	descs <- currentMetric
	descs <- intervalDeltaMetric
	descs <- totalMetric
}

func (s *Snapshot) Collect(metrics chan<- prometheus.Metric) {
	for _, reading := range s.Readings() {
		desc, valueType := currentMetric, prometheus.GaugeValue

		switch reading.Kind {
		case diskstats.IntervalDelta:
			desc = intervalDeltaMetric
		case diskstats.Counter:
			desc, valueType = totalMetric, prometheus.CounterValue
		}

		metrics <- prometheus.MustNewConstMetric(
			desc, valueType, float64(reading.Value), reading.Device, reading.Field.String())
	}
}
