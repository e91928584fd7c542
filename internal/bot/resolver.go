package bot

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

const laneIdleTimeout = time.Minute

// Resolver runs actions concurrently across lanes while keeping the order
// of actions within one lane. Commands use a per-channel lane and board
// reactions a per-message lane, so moves on one board resolve in arrival
// order without one slow game stalling the others.
type Resolver struct {
	mu     sync.Mutex
	lanes  map[string]*laneQueue
	wg     sync.WaitGroup
	idle   time.Duration
	closed bool
}

// laneQueue holds one lane's backlog. The queue is guarded by the resolver
// mutex; wake carries at most one signal to the lane's worker.
type laneQueue struct {
	queue []func()
	wake  chan struct{}
}

// signal wakes the lane's worker without blocking. One pending signal is
// enough: the worker re-reads the queue every time it wakes.
func (l *laneQueue) signal() {
	select {
	case l.wake <- struct{}{}:
	default:
	}
}

// NewResolver creates an empty resolver.
func NewResolver() *Resolver {
	return &Resolver{
		lanes: make(map[string]*laneQueue),
		idle:  laneIdleTimeout,
	}
}

// Do enqueues fn on the given lane, spawning its worker if needed. Do never
// blocks, so a stalled lane cannot hold up callers or other lanes. Actions
// enqueued after Close are dropped.
func (r *Resolver) Do(lane string, fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		log.Debug().Str("lane", lane).Msg("resolver closed, action dropped")
		return
	}
	l, ok := r.lanes[lane]
	if !ok {
		l = &laneQueue{wake: make(chan struct{}, 1)}
		r.lanes[lane] = l
		r.wg.Add(1)
		go r.run(lane, l)
	}
	l.queue = append(l.queue, fn)
	l.signal()
}

// Close stops accepting work, runs everything already enqueued, and waits
// for all lanes to drain.
func (r *Resolver) Close() {
	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		return
	}
	r.closed = true
	for _, l := range r.lanes {
		l.signal()
	}
	r.mu.Unlock()
	r.wg.Wait()
}

func (r *Resolver) run(lane string, l *laneQueue) {
	defer r.wg.Done()
	timer := time.NewTimer(r.idle)
	defer timer.Stop()

	for {
		r.mu.Lock()
		if len(l.queue) > 0 {
			fn := l.queue[0]
			l.queue = l.queue[1:]
			r.mu.Unlock()
			fn()
			continue
		}
		if r.closed {
			r.mu.Unlock()
			return
		}
		r.mu.Unlock()

		resetTimer(timer, r.idle)
		select {
		case <-l.wake:
		case <-timer.C:
			r.mu.Lock()
			if len(l.queue) == 0 {
				delete(r.lanes, lane)
				r.mu.Unlock()
				return
			}
			r.mu.Unlock()
		}
	}
}

// resetTimer rearms a timer whose previous state is unknown. Only the lane
// worker touches the timer, so the drain cannot race a receive.
func resetTimer(t *time.Timer, d time.Duration) {
	if !t.Stop() {
		select {
		case <-t.C:
		default:
		}
	}
	t.Reset(d)
}
