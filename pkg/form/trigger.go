package form

import "sync"

// Trigger is the control whose activation starts a submission. It is disabled
// while a request is in flight.
type Trigger interface {
	SetDisabled(disabled bool)
	Disabled() bool
}

// Button is an in-memory Trigger that counts its transitions.
type Button struct {
	Label string

	mu       sync.Mutex
	disabled bool
	disables int
	enables  int
}

// SetDisabled implements Trigger.
func (b *Button) SetDisabled(disabled bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.disabled = disabled
	if disabled {
		b.disables++
	} else {
		b.enables++
	}
}

// Disabled implements Trigger.
func (b *Button) Disabled() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disabled
}

// Transitions reports how many times the button was disabled and re-enabled.
func (b *Button) Transitions() (disables, enables int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.disables, b.enables
}
