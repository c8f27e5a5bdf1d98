package exporter

import (
	"github.com/KonishchevDmitry/diskstats-metrics/internal/metrics"
)

var metricBuilder = metrics.MakeDescBuilder("diskstats").WithLabels("device")

var currentMetric = metricBuilder.Build(
	"current", "Instantaneous /proc/diskstats values.", []string{"field"})

var intervalDeltaMetric = metricBuilder.Build(
	"interval_delta", "/proc/diskstats counters increase over the last poll interval.", []string{"field"})

var totalMetric = metricBuilder.Build(
	"total", "Raw /proc/diskstats counters.", []string{"field"})
