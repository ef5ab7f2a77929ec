package submit

import (
	"context"
	"sync"
)

// State is the lifecycle position of an Attempt. Aborted, Succeeded and
// Failed are terminal.
type State int

const (
	StateIdle State = iota
	StateValidating
	StateAborted
	StateSending
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateValidating:
		return "validating"
	case StateAborted:
		return "aborted"
	case StateSending:
		return "sending"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition can happen.
func (s State) Terminal() bool {
	return s == StateAborted || s == StateSucceeded || s == StateFailed
}

// Attempt tracks one submission. It resolves at most once.
type Attempt struct {
	mu     sync.Mutex
	state  State
	errors []string
	result Result
	done   chan struct{}
	once   sync.Once
}

func newAttempt() *Attempt {
	return &Attempt{state: StateIdle, done: make(chan struct{})}
}

// State returns the current lifecycle state.
func (a *Attempt) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Errors returns the validation errors that aborted the attempt.
func (a *Attempt) Errors() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string(nil), a.errors...)
}

// Done is closed once the attempt reaches a terminal state.
func (a *Attempt) Done() <-chan struct{} {
	return a.done
}

// Result returns the outcome once the request completed.
func (a *Attempt) Result() (Result, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.result, a.result.Resolved()
}

// Wait blocks until the attempt finishes or ctx ends. It returns ErrAborted
// when validation stopped the attempt. Waiting never cancels the request.
func (a *Attempt) Wait(ctx context.Context) (Result, error) {
	select {
	case <-a.done:
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state == StateAborted {
		return Result{}, ErrAborted
	}
	return a.result, nil
}

func (a *Attempt) transition(to State) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Terminal() {
		return
	}
	a.state = to
}

func (a *Attempt) abort(errs []string) {
	a.mu.Lock()
	if a.state.Terminal() {
		a.mu.Unlock()
		return
	}
	a.state = StateAborted
	a.errors = append([]string(nil), errs...)
	a.mu.Unlock()
	a.finish()
}

// resolve records the outcome. Done stays open until finish so a callback can
// run before waiters wake up.
func (a *Attempt) resolve(r Result) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.state.Terminal() {
		return
	}
	a.result = r
	if r.OK() {
		a.state = StateSucceeded
	} else {
		a.state = StateFailed
	}
}

func (a *Attempt) finish() {
	a.once.Do(func() { close(a.done) })
}
