package diskstats

// Kind tells the consumer how to interpret a reading value.
type Kind int

const (
	// Current is an instantaneous value.
	Current Kind = iota
	// IntervalDelta is the counter increase since the previous poll.
	IntervalDelta
	// Counter is a raw monotonic counter: rate computation is left to the consumer.
	Counter
)

func (k Kind) String() string {
	switch k {
	case Current:
		return "current"
	case IntervalDelta:
		return "interval delta"
	case Counter:
		return "counter"
	default:
		return "unknown"
	}
}

type Reading struct {
	Kind   Kind
	Device string
	Field  Field
	Value  uint64
}

type Emitter interface {
	Emit(reading Reading)
}

// EmitterFunc adapts an ordinary function to Emitter.
type EmitterFunc func(reading Reading)

func (f EmitterFunc) Emit(reading Reading) {
	f(reading)
}
