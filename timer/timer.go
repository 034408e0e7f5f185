// timer/timer.go
package timer

import (
	"container/heap"
	"sync"
	"time"
)

type task struct {
	id       int64
	execute  time.Time
	interval time.Duration
	callback func()
	index    int
}

type taskQueue []*task

func (q taskQueue) Len() int { return len(q) }

func (q taskQueue) Less(i, j int) bool {
	return q[i].execute.Before(q[j].execute)
}

func (q taskQueue) Swap(i, j int) {
	q[i], q[j] = q[j], q[i]
	q[i].index = i
	q[j].index = j
}

func (q *taskQueue) Push(x interface{}) {
	n := len(*q)
	t := x.(*task)
	t.index = n
	*q = append(*q, t)
}

func (q *taskQueue) Pop() interface{} {
	old := *q
	n := len(old)
	t := old[n-1]
	t.index = -1
	*q = old[0 : n-1]
	return t
}

// Sink receives fired callbacks. The owner decides where they run; a room
// uses it to serialize timer callbacks with command handling.
type Sink func(func())

// Scheduler 是单个房间的定时任务队列。所有延迟转换（倒计时、
// 播放节拍、窗口超时、销毁）都挂在这里，保证 reset/销毁时可以
// 一次性取消。
type Scheduler struct {
	mutex  sync.Mutex
	queue  taskQueue
	nextID int64
	sink   Sink
	wake   chan struct{}
	done   chan struct{}
	closed bool
}

// NewScheduler creates a scheduler delivering fired callbacks to sink.
// A nil sink runs callbacks on the scheduler's own goroutine.
func NewScheduler(sink Sink) *Scheduler {
	if sink == nil {
		sink = func(fn func()) { fn() }
	}
	s := &Scheduler{
		queue:  make(taskQueue, 0),
		nextID: 1,
		sink:   sink,
		wake:   make(chan struct{}, 1),
		done:   make(chan struct{}),
	}
	heap.Init(&s.queue)
	go s.run()
	return s
}

// Schedule runs callback once after delay and returns a cancelable id.
func (s *Scheduler) Schedule(delay time.Duration, callback func()) int64 {
	return s.add(delay, 0, callback)
}

// ScheduleRepeat runs callback after delay and then every interval until
// canceled.
func (s *Scheduler) ScheduleRepeat(delay, interval time.Duration, callback func()) int64 {
	return s.add(delay, interval, callback)
}

func (s *Scheduler) add(delay, interval time.Duration, callback func()) int64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return 0
	}

	t := &task{
		id:       s.nextID,
		execute:  time.Now().Add(delay),
		interval: interval,
		callback: callback,
	}
	s.nextID++

	heap.Push(&s.queue, t)
	s.notify()
	return t.id
}

// Cancel removes a pending task. Canceling an unknown or already fired id
// is a no-op.
func (s *Scheduler) Cancel(id int64) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for i, t := range s.queue {
		if t.id == id {
			heap.Remove(&s.queue, i)
			break
		}
	}
	s.notify()
}

// CancelAll drops every pending task. Used by reset and destruction so no
// stale transition fires against the room afterwards.
func (s *Scheduler) CancelAll() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.queue = s.queue[:0]
	s.notify()
}

// Stop cancels everything and shuts the scheduler down for good.
func (s *Scheduler) Stop() {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.closed {
		return
	}
	s.closed = true
	s.queue = s.queue[:0]
	close(s.done)
}

func (s *Scheduler) notify() {
	select {
	case s.wake <- struct{}{}:
	default:
	}
}

func (s *Scheduler) run() {
	timer := time.NewTimer(time.Hour)
	defer timer.Stop()

	for {
		s.mutex.Lock()
		now := time.Now()
		var fired []func()
		for s.queue.Len() > 0 {
			t := s.queue[0]
			if t.execute.After(now) {
				break
			}
			heap.Pop(&s.queue)
			fired = append(fired, t.callback)

			if t.interval > 0 {
				t.execute = now.Add(t.interval)
				heap.Push(&s.queue, t)
			}
		}
		wait := time.Hour
		if s.queue.Len() > 0 {
			wait = time.Until(s.queue[0].execute)
		}
		s.mutex.Unlock()

		for _, callback := range fired {
			s.sink(callback)
		}

		if !timer.Stop() {
			select {
			case <-timer.C:
			default:
			}
		}
		timer.Reset(wait)

		select {
		case <-timer.C:
		case <-s.wake:
		case <-s.done:
			return
		}
	}
}
