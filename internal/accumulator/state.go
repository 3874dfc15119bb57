package accumulator

import "errors"

type phase int

const (
	phaseUnresolved phase = iota
	phaseResolved
	phaseFailed
)

// state is the engine lifecycle. It only ever moves from unresolved to
// resolved or to failed.
type state struct {
	phase  phase
	result *Result
	err    error
}

func (s *state) resolve(result *Result) {
	s.phase = phaseResolved
	s.result = result
	s.err = nil
}

func (s *state) fail(err error) {
	s.phase = phaseFailed
	s.result = nil
	s.err = err
}

func (s *state) read() (*Result, error) {
	switch s.phase {
	case phaseResolved:
		return s.result, nil
	case phaseFailed:
		return nil, errors.Join(ErrEngineFailed, s.err)
	default:
		return nil, nil
	}
}
