package timer

import (
	"sync"
	"testing"
	"time"
)

// recorder is a Sink capturing fire order.
type recorder struct {
	mutex sync.Mutex
	fired []string
}

func (r *recorder) sink() Sink {
	return func(fn func()) { fn() }
}

func (r *recorder) mark(label string) func() {
	return func() {
		r.mutex.Lock()
		defer r.mutex.Unlock()
		r.fired = append(r.fired, label)
	}
}

func (r *recorder) snapshot() []string {
	r.mutex.Lock()
	defer r.mutex.Unlock()
	return append([]string(nil), r.fired...)
}

func TestScheduler_FiresInDeadlineOrder(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec.sink())
	defer s.Stop()

	s.Schedule(60*time.Millisecond, rec.mark("second"))
	s.Schedule(20*time.Millisecond, rec.mark("first"))

	time.Sleep(150 * time.Millisecond)

	fired := rec.snapshot()
	if len(fired) != 2 {
		t.Fatalf("expected 2 fired tasks, got %d", len(fired))
	}
	if fired[0] != "first" || fired[1] != "second" {
		t.Errorf("fire order = %v, want [first second]", fired)
	}
}

func TestScheduler_Cancel(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec.sink())
	defer s.Stop()

	id := s.Schedule(50*time.Millisecond, rec.mark("canceled"))
	s.Cancel(id)

	time.Sleep(120 * time.Millisecond)

	if fired := rec.snapshot(); len(fired) != 0 {
		t.Errorf("canceled task fired: %v", fired)
	}
}

func TestScheduler_CancelUnknownID(t *testing.T) {
	s := NewScheduler(nil)
	defer s.Stop()

	// must be a no-op, not a panic
	s.Cancel(12345)
}

func TestScheduler_Repeat(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec.sink())
	defer s.Stop()

	id := s.ScheduleRepeat(20*time.Millisecond, 20*time.Millisecond, rec.mark("tick"))
	time.Sleep(120 * time.Millisecond)
	s.Cancel(id)
	count := len(rec.snapshot())
	if count < 3 {
		t.Errorf("expected at least 3 ticks, got %d", count)
	}

	time.Sleep(80 * time.Millisecond)
	if after := len(rec.snapshot()); after > count+1 {
		t.Errorf("repeat kept firing after cancel: %d -> %d", count, after)
	}
}

func TestScheduler_CancelAll(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec.sink())
	defer s.Stop()

	s.Schedule(40*time.Millisecond, rec.mark("a"))
	s.Schedule(50*time.Millisecond, rec.mark("b"))
	s.ScheduleRepeat(30*time.Millisecond, 30*time.Millisecond, rec.mark("c"))
	s.CancelAll()

	time.Sleep(120 * time.Millisecond)

	if fired := rec.snapshot(); len(fired) != 0 {
		t.Errorf("tasks fired after CancelAll: %v", fired)
	}
}

func TestScheduler_StopDropsEverything(t *testing.T) {
	rec := &recorder{}
	s := NewScheduler(rec.sink())

	s.Schedule(30*time.Millisecond, rec.mark("late"))
	s.Stop()

	if id := s.Schedule(10*time.Millisecond, rec.mark("after stop")); id != 0 {
		t.Errorf("Schedule after Stop returned id %d, want 0", id)
	}

	time.Sleep(100 * time.Millisecond)
	if fired := rec.snapshot(); len(fired) != 0 {
		t.Errorf("tasks fired after Stop: %v", fired)
	}

	// Stop must be idempotent
	s.Stop()
}
