package exporter

import (
	"strings"
	"testing"

	"github.com/MakeNowJust/heredoc"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/KonishchevDmitry/diskstats-metrics/internal/diskstats"
)

func TestSnapshot(t *testing.T) {
	snapshot := NewSnapshot()
	require.Equal(t, 0, testutil.CollectAndCount(snapshot))

	snapshot.Begin()
	snapshot.Emit(diskstats.Reading{Kind: diskstats.Current, Device: "sda", Field: diskstats.IOInProgress, Value: 2})
	snapshot.Emit(diskstats.Reading{Kind: diskstats.IntervalDelta, Device: "sda", Field: diskstats.ReadsCompleted, Value: 50})
	snapshot.Emit(diskstats.Reading{Kind: diskstats.Counter, Device: "sdb", Field: diskstats.SectorsWritten, Value: 4294967295})

	// Nothing is visible until commit
	require.Equal(t, 0, testutil.CollectAndCount(snapshot))
	snapshot.Commit()

	require.NoError(t, testutil.CollectAndCompare(snapshot, strings.NewReader(heredoc.Doc(`
		# HELP server_diskstats_current Instantaneous /proc/diskstats values.
		# TYPE server_diskstats_current gauge
		server_diskstats_current{device="sda",field="io_inprogress"} 2
		# HELP server_diskstats_interval_delta /proc/diskstats counters increase over the last poll interval.
		# TYPE server_diskstats_interval_delta gauge
		server_diskstats_interval_delta{device="sda",field="reads_completed"} 50
		# HELP server_diskstats_total Raw /proc/diskstats counters.
		# TYPE server_diskstats_total counter
		server_diskstats_total{device="sdb",field="sectors_written"} 4.294967295e+09
	`))))
}

func TestSnapshotUncommittedBatch(t *testing.T) {
	snapshot := NewSnapshot()

	snapshot.Begin()
	snapshot.Emit(diskstats.Reading{Kind: diskstats.Current, Device: "sda", Field: diskstats.IOInProgress, Value: 1})
	snapshot.Commit()

	// A failed poll leaves its batch uncommitted: the next one must not inherit its readings
	snapshot.Begin()
	snapshot.Emit(diskstats.Reading{Kind: diskstats.IntervalDelta, Device: "sda", Field: diskstats.ReadsCompleted, Value: 7})

	require.Equal(t, []diskstats.Reading{
		{Kind: diskstats.Current, Device: "sda", Field: diskstats.IOInProgress, Value: 1},
	}, snapshot.Readings())

	snapshot.Begin()
	snapshot.Emit(diskstats.Reading{Kind: diskstats.Current, Device: "sda", Field: diskstats.IOInProgress, Value: 3})
	snapshot.Commit()

	require.Equal(t, []diskstats.Reading{
		{Kind: diskstats.Current, Device: "sda", Field: diskstats.IOInProgress, Value: 3},
	}, snapshot.Readings())
}
