package timer

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestManager_OneShotFires(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	fired := make(chan struct{})
	m.AddTimer(50*time.Millisecond, 0, func() {
		close(fired)
	})

	select {
	case <-fired:
	case <-time.After(2 * time.Second):
		t.Fatal("One-shot timer did not fire")
	}
}

func TestManager_RemoveCancelsPending(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired int32
	id := m.AddTimer(300*time.Millisecond, 0, func() {
		atomic.AddInt32(&fired, 1)
	})
	m.RemoveTimer(id)

	time.Sleep(600 * time.Millisecond)
	if atomic.LoadInt32(&fired) != 0 {
		t.Error("Cancelled timer should not fire")
	}
}

func TestManager_IntervalReschedules(t *testing.T) {
	m := NewManager()
	defer m.Stop()

	var fired int32
	m.AddTimer(50*time.Millisecond, 100*time.Millisecond, func() {
		atomic.AddInt32(&fired, 1)
	})

	time.Sleep(600 * time.Millisecond)
	if atomic.LoadInt32(&fired) < 2 {
		t.Errorf("Interval timer should fire repeatedly, fired %d times", atomic.LoadInt32(&fired))
	}
}
