package scheduler

import (
	"container/heap"
	"errors"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

var (
	ErrPastTrigger  = errors.New("scheduler: trigger instant is in the past")
	ErrInvalidClock = errors.New("scheduler: invalid wall-clock time")
	ErrStopped      = errors.New("scheduler: engine stopped")
)

// Notification is a scheduled reminder delivery. One-shot notifications fire
// once at TriggerAt; daily notifications repeat at Hour:Minute every day.
// Handle is the opaque token callers hold for cancellation.
type Notification struct {
	Handle    string
	Title     string
	Body      string
	Payload   map[string]string
	TriggerAt time.Time
	Daily     bool
	Hour      int
	Minute    int
}

type queueItem struct {
	notification Notification
}

type priorityQueue []queueItem

func (pq priorityQueue) Len() int { return len(pq) }

func (pq priorityQueue) Less(i, j int) bool {
	return pq[i].notification.TriggerAt.Before(pq[j].notification.TriggerAt)
}

func (pq priorityQueue) Swap(i, j int) {
	pq[i], pq[j] = pq[j], pq[i]
}

func (pq *priorityQueue) Push(x any) {
	*pq = append(*pq, x.(queueItem))
}

func (pq *priorityQueue) Pop() any {
	old := *pq
	n := len(old)
	item := old[n-1]
	*pq = old[0 : n-1]
	return item
}

// Engine keeps a min-heap of pending triggers drained by a single timer
// loop. Fired notifications are emitted on C(); a slow consumer loses events
// rather than blocking the loop.
type Engine struct {
	mu        sync.Mutex
	queue     priorityQueue
	cancelled map[string]struct{}
	out       chan Notification
	wakeup    chan struct{}
	stopCh    chan struct{}
	doneCh    chan struct{}
	started   bool
	stopped   bool
	dropped   uint64
	now       func() time.Time
}

func NewEngine(bufferSize int) *Engine {
	if bufferSize <= 0 {
		bufferSize = 1
	}
	return &Engine{
		queue:     make(priorityQueue, 0),
		cancelled: make(map[string]struct{}),
		out:       make(chan Notification, bufferSize),
		wakeup:    make(chan struct{}, 1),
		stopCh:    make(chan struct{}),
		doneCh:    make(chan struct{}),
		now:       time.Now,
	}
}

func (e *Engine) C() <-chan Notification {
	return e.out
}

func (e *Engine) Start() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.started {
		return
	}
	e.started = true
	heap.Init(&e.queue)
	go e.loop()
}

func (e *Engine) Stop() {
	e.mu.Lock()
	if !e.started || e.stopped {
		e.mu.Unlock()
		return
	}
	e.stopped = true
	close(e.stopCh)
	e.mu.Unlock()
	<-e.doneCh
}

// ScheduleOneShot registers a single delivery at the given instant and
// returns its handle. Instants at or before now are rejected: the caller
// records "no reminder scheduled" instead.
func (e *Engine) ScheduleOneShot(at time.Time, title, body string, payload map[string]string) (string, error) {
	if !at.After(e.now()) {
		return "", ErrPastTrigger
	}
	n := Notification{
		Handle:    uuid.NewString(),
		Title:     title,
		Body:      body,
		Payload:   payload,
		TriggerAt: at,
	}
	if err := e.enqueue(n); err != nil {
		return "", err
	}
	return n.Handle, nil
}

// ScheduleDaily registers a delivery repeating every day at hour:minute,
// starting at the next occurrence of that wall-clock time.
func (e *Engine) ScheduleDaily(hour, minute int, title, body string, payload map[string]string) (string, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return "", ErrInvalidClock
	}
	n := Notification{
		Handle:    uuid.NewString(),
		Title:     title,
		Body:      body,
		Payload:   payload,
		TriggerAt: NextClockOccurrence(e.now(), hour, minute),
		Daily:     true,
		Hour:      hour,
		Minute:    minute,
	}
	if err := e.enqueue(n); err != nil {
		return "", err
	}
	return n.Handle, nil
}

// Cancel withdraws a pending notification. Unknown or already-fired handles
// are a no-op.
func (e *Engine) Cancel(handle string) {
	if handle == "" {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.cancelled[handle] = struct{}{}
	e.signalWakeup()
}

func (e *Engine) Dropped() uint64 {
	return atomic.LoadUint64(&e.dropped)
}

func (e *Engine) enqueue(n Notification) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.stopped {
		return ErrStopped
	}
	heap.Push(&e.queue, queueItem{notification: n})
	e.signalWakeup()
	return nil
}

func (e *Engine) loop() {
	defer close(e.doneCh)
	defer close(e.out)

	var timer *time.Timer
	for {
		next, hasNext := e.peek()
		if !hasNext {
			select {
			case <-e.wakeup:
				continue
			case <-e.stopCh:
				return
			}
		}

		wait := time.Until(next.TriggerAt)
		if wait < 0 {
			wait = 0
		}
		timer = resetTimer(timer, wait)

		select {
		case <-timer.C:
			due := e.popDue(e.now())
			for _, n := range due {
				select {
				case e.out <- n:
				default:
					atomic.AddUint64(&e.dropped, 1)
				}
			}
		case <-e.wakeup:
			continue
		case <-e.stopCh:
			if timer != nil {
				stopTimer(timer)
			}
			return
		}
	}
}

func (e *Engine) signalWakeup() {
	select {
	case e.wakeup <- struct{}{}:
	default:
	}
}

func (e *Engine) peek() (Notification, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if len(e.queue) == 0 {
		return Notification{}, false
	}
	return e.queue[0].notification, true
}

// popDue removes every trigger at or before now. Cancelled entries are
// discarded; daily entries are re-queued for the next calendar day.
func (e *Engine) popDue(now time.Time) []Notification {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]Notification, 0)
	for len(e.queue) > 0 {
		next := e.queue[0].notification
		if next.TriggerAt.After(now) {
			break
		}
		item := heap.Pop(&e.queue).(queueItem)
		fired := item.notification
		if _, skip := e.cancelled[fired.Handle]; skip {
			delete(e.cancelled, fired.Handle)
			continue
		}
		out = append(out, fired)
		if fired.Daily {
			repeat := fired
			repeat.TriggerAt = NextClockOccurrence(fired.TriggerAt, fired.Hour, fired.Minute)
			heap.Push(&e.queue, queueItem{notification: repeat})
		}
	}
	return out
}

// NextClockOccurrence returns the first instant strictly after "after" whose
// wall clock reads hour:minute in after's location.
func NextClockOccurrence(after time.Time, hour, minute int) time.Time {
	y, m, d := after.Date()
	candidate := time.Date(y, m, d, hour, minute, 0, 0, after.Location())
	if !candidate.After(after) {
		candidate = candidate.AddDate(0, 0, 1)
	}
	return candidate
}

func resetTimer(timer *time.Timer, d time.Duration) *time.Timer {
	if timer == nil {
		return time.NewTimer(d)
	}
	stopTimer(timer)
	timer.Reset(d)
	return timer
}

func stopTimer(timer *time.Timer) {
	if timer == nil {
		return
	}
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
}
