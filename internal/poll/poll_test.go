package poll

import (
	"testing"
	"time"
)

func TestUntil(t *testing.T) {
	t.Run("immediate success", func(t *testing.T) {
		calls := 0
		ok := Until(func() bool {
			calls++
			return true
		}, &Options{Timeout: time.Second, Interval: time.Millisecond})
		if !ok {
			t.Fatal("Until() = false for an immediately true condition")
		}
		if calls != 1 {
			t.Errorf("condition evaluated %d times, want 1", calls)
		}
	})

	t.Run("eventual success", func(t *testing.T) {
		calls := 0
		ok := Until(func() bool {
			calls++
			return calls >= 3
		}, &Options{Timeout: time.Second, Interval: time.Millisecond})
		if !ok {
			t.Fatal("Until() = false for a condition that became true")
		}
		if calls != 3 {
			t.Errorf("condition evaluated %d times, want 3", calls)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		start := time.Now()
		ok := Until(func() bool { return false },
			&Options{Timeout: 20 * time.Millisecond, Interval: time.Millisecond})
		if ok {
			t.Fatal("Until() = true for a never-true condition")
		}
		if elapsed := time.Since(start); elapsed < 20*time.Millisecond {
			t.Errorf("returned after %v, before the %v timeout", elapsed, 20*time.Millisecond)
		}
	})

	t.Run("condition checked at least once with zero timeout", func(t *testing.T) {
		calls := 0
		Until(func() bool {
			calls++
			return false
		}, &Options{Timeout: time.Nanosecond, Interval: time.Millisecond})
		if calls == 0 {
			t.Error("condition was never evaluated")
		}
	})

	t.Run("nil options use defaults", func(t *testing.T) {
		if !Until(func() bool { return true }, nil) {
			t.Error("Until() = false with nil options and true condition")
		}
	})
}
