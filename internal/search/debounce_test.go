package search

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestDebouncer_RunsLastTrigger(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var got atomic.Int64
	var runs atomic.Int32

	for i := int64(1); i <= 5; i++ {
		v := i
		d.Trigger(func() {
			got.Store(v)
			runs.Add(1)
		})
	}
	if !d.Pending() {
		t.Fatalf("Pending = false right after Trigger")
	}

	time.Sleep(80 * time.Millisecond)
	if runs.Load() != 1 {
		t.Fatalf("runs = %d, want 1", runs.Load())
	}
	if got.Load() != 5 {
		t.Fatalf("ran trigger %d, want 5", got.Load())
	}
	if d.Pending() {
		t.Fatalf("Pending = true after firing")
	}
}

func TestDebouncer_RestartExtendsQuietPeriod(t *testing.T) {
	d := NewDebouncer(40 * time.Millisecond)
	var runs atomic.Int32

	d.Trigger(func() { runs.Add(1) })
	time.Sleep(20 * time.Millisecond)
	d.Trigger(func() { runs.Add(1) })
	time.Sleep(25 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatalf("fired before quiet period elapsed")
	}

	time.Sleep(60 * time.Millisecond)
	if runs.Load() != 1 {
		t.Fatalf("runs = %d, want 1", runs.Load())
	}
}

func TestDebouncer_Cancel(t *testing.T) {
	d := NewDebouncer(20 * time.Millisecond)
	var runs atomic.Int32

	if d.Cancel() {
		t.Fatalf("Cancel on idle debouncer reported pending")
	}
	d.Trigger(func() { runs.Add(1) })
	if !d.Cancel() {
		t.Fatalf("Cancel did not report pending trigger")
	}

	time.Sleep(50 * time.Millisecond)
	if runs.Load() != 0 {
		t.Fatalf("cancelled trigger ran")
	}
}
