package clock

import (
	"testing"
	"time"
)

func TestRealClock_Now(t *testing.T) {
	var clk Clock = RealClock{}

	before := time.Now()
	actual := clk.Now()
	after := time.Now()

	if actual.Before(before) || actual.After(after) {
		t.Errorf("RealClock.Now() = %v, want between %v and %v", actual, before, after)
	}
}

func TestFakeClock(t *testing.T) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	clk := NewFakeClock(start)

	t.Run("returns fixed time", func(t *testing.T) {
		if got := clk.Now(); !got.Equal(start) {
			t.Errorf("Now() = %v, want %v", got, start)
		}
		if got := clk.Now(); !got.Equal(start) {
			t.Errorf("second Now() = %v, want %v", got, start)
		}
	})

	t.Run("advance moves forward", func(t *testing.T) {
		clk.Advance(90 * time.Second)
		want := start.Add(90 * time.Second)
		if got := clk.Now(); !got.Equal(want) {
			t.Errorf("Now() after Advance = %v, want %v", got, want)
		}
	})
}
