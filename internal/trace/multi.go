package trace

import "errors"

// MultiTracer writes every event to several outputs, e.g. a text log for
// humans and an NDJSON file for tooling. Disabled outputs are dropped when
// the tracer is built.
type MultiTracer struct {
	outs  []Tracer
	level Level
}

// NewMultiTracer combines outs under a single level.
func NewMultiTracer(level Level, outs ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, out := range outs {
		if out != nil && out.Enabled() {
			m.outs = append(m.outs, out)
		}
	}
	return m
}

func (m *MultiTracer) Emit(ev *Event) {
	for _, out := range m.outs {
		out.Emit(ev)
	}
}

// Flush and Close visit every output and join their errors.
func (m *MultiTracer) Flush() error {
	var errs []error
	for _, out := range m.outs {
		errs = append(errs, out.Flush())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Close() error {
	var errs []error
	for _, out := range m.outs {
		errs = append(errs, out.Close())
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level { return m.level }

// Enabled is false when no output survived construction.
func (m *MultiTracer) Enabled() bool {
	return m.level > LevelOff && len(m.outs) > 0
}
