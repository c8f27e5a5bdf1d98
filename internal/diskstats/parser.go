package diskstats

import (
	"strconv"
	"strings"

	"golang.org/x/xerrors"
)

const deviceColumn = 2

type counters [lastField + 1]uint64

// splitLine splits a diskstats line into columns and checks whether it has the supported format.
func splitLine(line string) ([]string, bool) {
	columns := strings.Fields(line)
	return columns, len(columns) == lineColumns
}

func parseCounters(columns []string) (counters, error) {
	var values counters

	for field := firstField; field <= lastField; field++ {
		if field.skipped() {
			continue
		}

		value, err := strconv.ParseUint(columns[field.column()], 10, 64)
		if err != nil {
			return counters{}, xerrors.Errorf("Invalid %s value: %q", field, columns[field.column()])
		}
		values[field] = value
	}

	return values, nil
}
