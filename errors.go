package gimgen

import (
	"errors"
	"fmt"
)

var (
	ErrNilSignal     = errors.New("gimgen: awaited a nil signal")
	ErrNilCompletion = errors.New("gimgen: signal created a nil completion")
	ErrNoSuchMethod  = errors.New("gimgen: signal has no such method")
	ErrStopped       = errors.New("gimgen: sequential procedure stopped")
	ErrNilProcedure  = errors.New("gimgen: procedure factory returned a nil procedure")
	ErrInvalidStep   = errors.New("gimgen: procedure returned a zero Step")
)

// SignalError is the error a composite signal rejects with when one of its
// child signals is the first to settle and does so with an error.
type SignalError struct {
	Signal Signal
	Err    error
}

func (e *SignalError) Error() string {
	return fmt.Sprintf("gimgen: signal %v: %v", e.Signal, e.Err)
}

func (e *SignalError) Unwrap() error {
	return e.Err
}

// RaceError is the error [FirstResolved] rejects with when the first
// completion to settle is rejected.
type RaceError struct {
	Completion *Completion
	Err        error
}

func (e *RaceError) Error() string {
	return fmt.Sprintf("gimgen: race lost to rejection: %v", e.Err)
}

func (e *RaceError) Unwrap() error {
	return e.Err
}
