// Package diskstats converts /proc/diskstats block device counters of the monitored disks into readings:
// either locally computed per-interval deltas or raw counters left for the consumer to differentiate.
package diskstats

import (
	"context"
	"io"

	logging "github.com/KonishchevDmitry/go-easy-logging"
	"github.com/samber/mo"
	"golang.org/x/xerrors"

	"github.com/KonishchevDmitry/diskstats-metrics/internal/config"
	"github.com/KonishchevDmitry/diskstats-metrics/internal/util"
)

const DefaultSource = "/proc/diskstats"

// CounterModulus is the wrap point of the kernel counters. It's fixed regardless of the platform integer
// width.
const CounterModulus uint64 = 1 << 32

// Engine holds the monitored disk set and the previous counter values. It must be configured before the first
// Poll() and polls must be serialized by the caller.
type Engine struct {
	source string

	disks          []string
	monitored      map[string]struct{}
	deltaPerSecond bool

	previous map[string]map[Field]uint64
}

func NewEngine(source string) *Engine {
	return &Engine{
		source:    source,
		monitored: make(map[string]struct{}),
		previous:  make(map[string]map[Field]uint64),
	}
}

func (e *Engine) Source() string {
	return e.source
}

// AddDisk adds the disk to the monitored set. Returns false if it's already there.
func (e *Engine) AddDisk(name string) bool {
	if _, ok := e.monitored[name]; ok {
		return false
	}

	e.disks = append(e.disks, name)
	e.monitored[name] = struct{}{}

	if _, ok := e.previous[name]; !ok {
		e.previous[name] = make(map[Field]uint64)
	}

	return true
}

func (e *Engine) SetDeltaPerSecond(enabled bool) {
	e.deltaPerSecond = enabled
}

func (e *Engine) Configure(directives ...config.Directive) error {
	for _, directive := range directives {
		switch directive := directive.(type) {
		case config.AddDisk:
			e.AddDisk(directive.Name)
		case config.SetDeltaPerSecond:
			e.SetDeltaPerSecond(directive.Enabled)
		default:
			return xerrors.Errorf("Got an unsupported configuration directive: %T", directive)
		}
	}
	return nil
}

// Disks returns the monitored disks in the order they have been added.
func (e *Engine) Disks() []string {
	return append([]string{}, e.disks...)
}

func (e *Engine) DeltaPerSecond() bool {
	return e.deltaPerSecond
}

// Poll reads the source once and emits readings for the monitored disks. Lines of unknown format are reported
// as warnings and skipped, but an unreadable source or an unparseable counter fails the whole poll.
func (e *Engine) Poll(ctx context.Context, emitter Emitter) error {
	if len(e.disks) == 0 {
		return nil
	}

	return util.ReadFile(e.source, func(file io.Reader) error {
		return e.process(ctx, file, emitter)
	})
}

func (e *Engine) process(ctx context.Context, reader io.Reader, emitter Emitter) error {
	return util.ParseFile(reader, func(line string) error {
		columns, ok := splitLine(line)
		if !ok {
			logging.L(ctx).Warnf("Format of %s is not recognized: %q.", e.source, line)
			return nil
		}

		device := columns[deviceColumn]
		if _, ok := e.monitored[device]; !ok {
			return nil
		}

		values, err := parseCounters(columns)
		if err != nil {
			return xerrors.Errorf("Got an unexpected %q device stat line: %q: %w", device, line, err)
		}

		e.record(device, values, emitter)
		return nil
	})
}

func (e *Engine) record(device string, values counters, emitter Emitter) {
	for field := firstField; field <= lastField; field++ {
		if field.skipped() {
			continue
		}

		value := values[field]
		emit := func(kind Kind, value uint64) {
			emitter.Emit(Reading{Kind: kind, Device: device, Field: field, Value: value})
		}

		if field.gauge() {
			emit(Current, value)
			continue
		}

		if e.deltaPerSecond {
			emit(Counter, value)
			continue
		}

		previous, ok := e.previousValue(device, field).Get()
		e.previous[device][field] = value

		if ok {
			emit(IntervalDelta, Delta(previous, value))
		}
	}
}

func (e *Engine) previousValue(device string, field Field) mo.Option[uint64] {
	if value, ok := e.previous[device][field]; ok {
		return mo.Some(value)
	}
	return mo.None[uint64]()
}

// Delta returns the counter increase between two consecutive readings, assuming that the counter wraps at
// CounterModulus.
func Delta(previous uint64, current uint64) uint64 {
	if previous > current {
		return CounterModulus - previous + current
	}
	return current - previous
}
