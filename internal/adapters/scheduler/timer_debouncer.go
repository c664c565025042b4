package scheduler_adapter

import (
	"time"

	"property-search-service/internal/core/port"
)

// TimerDebouncer - реализация DebouncerPort поверх time.AfterFunc.
// Окно задержки фиксируется при создании.
type TimerDebouncer struct {
	delay time.Duration
}

func NewTimerDebouncer(delay time.Duration) *TimerDebouncer {
	return &TimerDebouncer{delay: delay}
}

func (d *TimerDebouncer) Schedule(fn func()) port.CancelFunc {
	timer := time.AfterFunc(d.delay, fn)
	return func() { timer.Stop() }
}
