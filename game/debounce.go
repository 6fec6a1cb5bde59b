package game

import "time"

// Debouncer turns the noisy button level into commit events. A press counts
// only if the button is still low after Window has elapsed on the clock.
type Debouncer struct {
	Button Button
	Clock  Clock
	Window time.Duration
}

func (debouncer *Debouncer) Pressed() bool {
	if debouncer.Button.Level() {
		return false
	}

	debouncer.Clock.Sleep(debouncer.Window)

	return !debouncer.Button.Level()
}
