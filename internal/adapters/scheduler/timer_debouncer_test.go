package scheduler_adapter

import (
	"testing"
	"time"
)

func TestScheduleFiresAfterDelay(t *testing.T) {
	debouncer := NewTimerDebouncer(10 * time.Millisecond)
	fired := make(chan struct{})

	debouncer.Schedule(func() { close(fired) })

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("scheduled task never fired")
	}
}

func TestCancelPreventsFiring(t *testing.T) {
	debouncer := NewTimerDebouncer(50 * time.Millisecond)
	fired := make(chan struct{}, 1)

	cancel := debouncer.Schedule(func() { fired <- struct{}{} })
	cancel()

	select {
	case <-fired:
		t.Fatal("cancelled task fired anyway")
	case <-time.After(150 * time.Millisecond):
	}
}
