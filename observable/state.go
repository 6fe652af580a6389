package observable

import (
	"sync"

	"github.com/google/uuid"
)

// SubscriptionID identifies one subscription on a State.
type SubscriptionID uuid.UUID

// String returns the canonical UUID text of the id.
func (id SubscriptionID) String() string {
	return uuid.UUID(id).String()
}

// State holds a value of type T and notifies subscribers of every change.
// The zero value is not usable; create states with New.
type State[T any] struct {
	mu    sync.RWMutex
	value T
	subs  map[SubscriptionID]*subscription[T]
}

// New creates a State holding initial.
func New[T any](initial T) *State[T] {
	return &State[T]{
		value: initial,
		subs:  make(map[SubscriptionID]*subscription[T]),
	}
}

// Value returns the current value.
func (s *State[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Len returns the number of live subscriptions.
func (s *State[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}

// Subscribe registers fn and schedules fn(current value) on exec. A nil exec
// selects Main(). The caller keeps the returned id and must Unsubscribe
// before discarding fn.
func (s *State[T]) Subscribe(exec Executor, fn func(T)) SubscriptionID {
	if exec == nil {
		exec = Main()
	}
	id := SubscriptionID(uuid.New())
	sub := &subscription[T]{exec: exec, fn: fn, active: true}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[id] = sub
	sub.enqueue(s.value)
	return id
}

// Unsubscribe removes the subscription and drops its undelivered values, so
// no later Next reaches fn. A callback that has already been dequeued may
// still run. Unknown ids are ignored.
func (s *State[T]) Unsubscribe(id SubscriptionID) {
	s.mu.Lock()
	sub, ok := s.subs[id]
	delete(s.subs, id)
	s.mu.Unlock()
	if ok {
		sub.cancel()
	}
}

// Next replaces the value and schedules its delivery to every subscriber.
// Equal values are delivered again.
func (s *State[T]) Next(v T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = v
	for _, sub := range s.subs {
		sub.enqueue(v)
	}
}

// subscription is a per-subscriber mailbox. Every enqueued value schedules
// one task on the executor, and each task delivers the head of the mailbox,
// so a serial executor sees deliveries in publish order across states.
// busy keeps callbacks of one subscription from overlapping on executors
// that run tasks concurrently; a task that finds the mailbox busy leaves its
// delivery to the running one.
type subscription[T any] struct {
	exec Executor
	fn   func(T)

	mu      sync.Mutex
	pending []T
	busy    bool
	owed    int
	active  bool
}

func (sub *subscription[T]) enqueue(v T) {
	sub.mu.Lock()
	if !sub.active {
		sub.mu.Unlock()
		return
	}
	sub.pending = append(sub.pending, v)
	sub.mu.Unlock()
	sub.exec.Execute(sub.deliver)
}

func (sub *subscription[T]) deliver() {
	sub.mu.Lock()
	if sub.busy {
		sub.owed++
		sub.mu.Unlock()
		return
	}
	sub.busy = true
	defer sub.release()

	for {
		if !sub.active || len(sub.pending) == 0 {
			sub.owed = 0
			sub.mu.Unlock()
			return
		}
		var zero T
		v := sub.pending[0]
		sub.pending[0] = zero
		sub.pending = sub.pending[1:]
		sub.mu.Unlock()

		sub.fn(v)

		sub.mu.Lock()
		if sub.owed == 0 {
			sub.mu.Unlock()
			return
		}
		sub.owed--
	}
}

// release clears busy once deliver returns or panics. Deliveries owed to
// tasks that ran meanwhile are rescheduled.
func (sub *subscription[T]) release() {
	sub.mu.Lock()
	sub.busy = false
	owed := sub.owed
	sub.owed = 0
	if !sub.active {
		owed = 0
	}
	sub.mu.Unlock()
	for ; owed > 0; owed-- {
		sub.exec.Execute(sub.deliver)
	}
}

func (sub *subscription[T]) cancel() {
	sub.mu.Lock()
	sub.active = false
	sub.pending = nil
	sub.mu.Unlock()
}
