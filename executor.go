package gimgen

import (
	"errors"
	"sync"
)

// An Executor runs functions spawned from any goroutine, one at a time, in
// the order they were spawned.
//
// Completions, signals and coroutines are not safe for concurrent use.
// An Executor is how code running in other goroutines (timers, I/O) gets
// to settle them: spawn a function that does it.
//
// Manually calling the Run method is usually not desired.
// One would instead use the Autorun method to set up an autorun function to
// calling the Run method automatically whenever a function is spawned.
// The Executor never calls the autorun function twice at the same time.
//
// The Spawn method is a [RunStrategy]. Passing it to [ChangeRunStrategy]
// defers every coroutine resumption to the executor's queue.
type Executor struct {
	mu      sync.Mutex
	queue   []func()
	running bool
	autorun func()
	faults  []error
}

// Autorun sets up an autorun function to calling the Run method
// automatically whenever a function is spawned.
//
// One must pass a function that calls the Run method.
//
// If f blocks, the Spawn method may block too.
// The best practice is not to block.
func (e *Executor) Autorun(f func()) {
	e.mu.Lock()
	e.autorun = f
	e.mu.Unlock()
}

// Run pops and runs every function in the queue until the queue is emptied.
//
// A spawned function that panics does not stop Run. After the queue is
// emptied, Run panics with all of the captured panics joined together.
//
// Run must not be called twice at the same time.
func (e *Executor) Run() {
	e.mu.Lock()
	e.running = true

	for len(e.queue) != 0 {
		f := e.queue[0]
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.mu.Unlock()
		if err := try(f); err != nil {
			e.faults = append(e.faults, err)
		}
		e.mu.Lock()
	}

	e.queue = nil
	e.running = false
	faults := e.faults
	e.faults = nil
	e.mu.Unlock()

	switch len(faults) {
	case 0:
	case 1:
		panic(faults[0])
	default:
		panic(errors.Join(faults...))
	}
}

// Spawn adds f to the queue. To run it, either call the Run method, or
// call the Autorun method to set up an autorun function beforehand.
//
// Spawn is safe for concurrent use.
func (e *Executor) Spawn(f func()) {
	var autorun func()

	e.mu.Lock()

	if !e.running && e.autorun != nil {
		e.running = true
		autorun = e.autorun
	}

	e.queue = append(e.queue, f)
	e.mu.Unlock()

	if autorun != nil {
		autorun()
	}
}

// Len returns the number of functions waiting in the queue.
func (e *Executor) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.queue)
}
