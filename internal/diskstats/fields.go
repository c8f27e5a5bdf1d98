package diskstats

import "fmt"

// Field is an index of a tracked /proc/diskstats counter. Its value N corresponds to the N+2 (zero-based)
// column of a diskstats line.
type Field int

const (
	ReadsCompleted Field = iota + 1
	ReadsMerged
	SectorsRead
	ReadingMilliseconds
	WritesCompleted
	WritesMerged
	SectorsWritten
	WritingMilliseconds
	IOInProgress
	IOMilliseconds
	IOMillisecondsWeighted
)

const (
	firstField = ReadsCompleted
	lastField  = IOMillisecondsWeighted

	fieldOffset = 2
	lineColumns = int(lastField) + fieldOffset + 1
)

var fieldNames = map[Field]string{
	ReadsCompleted:         "reads_completed",
	ReadsMerged:            "reads_merged",
	SectorsRead:            "sectors_read",
	ReadingMilliseconds:    "reading_milliseconds",
	WritesCompleted:        "writes_completed",
	WritesMerged:           "writes_merged",
	SectorsWritten:         "sectors_written",
	WritingMilliseconds:    "writing_milliseconds",
	IOInProgress:           "io_inprogress",
	IOMilliseconds:         "io_milliseconds",
	IOMillisecondsWeighted: "io_milliseconds_weighted",
}

func (f Field) String() string {
	if name, ok := fieldNames[f]; ok {
		return name
	}
	return fmt.Sprintf("field#%d", int(f))
}

// Skipped fields are never reported.
func (f Field) skipped() bool {
	return f == WritesMerged
}

// Gauge fields hold an instantaneous value rather than a monotonic counter.
func (f Field) gauge() bool {
	return f == IOInProgress
}

func (f Field) column() int {
	return int(f) + fieldOffset
}
