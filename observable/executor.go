package observable

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/kbukum/airlinerank/logger"
)

// Executor runs tasks in some execution context. Execute must not block and
// must not run the task on the caller's goroutine.
type Executor interface {
	Execute(task func())
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(task func())

// Execute calls f(task).
func (f ExecutorFunc) Execute(task func()) { f(task) }

// Serial runs tasks one at a time in FIFO order on a single worker goroutine.
// The queue is unbounded. A panicking task is logged and the worker moves on.
type Serial struct {
	name    string
	mu      sync.Mutex
	queue   []func()
	running bool
}

// NewSerial creates a serial executor. The name only appears in logs.
func NewSerial(name string) *Serial {
	return &Serial{name: name}
}

// Execute appends task to the queue, starting the worker if it is idle.
func (s *Serial) Execute(task func()) {
	s.mu.Lock()
	s.queue = append(s.queue, task)
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()
	go s.run()
}

// Len returns the number of tasks waiting to run.
func (s *Serial) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}

// Sync blocks until every task queued before the call has run.
// It must not be called from a task running on s.
func (s *Serial) Sync() {
	done := make(chan struct{})
	s.Execute(func() { close(done) })
	<-done
}

func (s *Serial) run() {
	for {
		s.mu.Lock()
		if len(s.queue) == 0 {
			s.running = false
			s.queue = nil
			s.mu.Unlock()
			return
		}
		task := s.queue[0]
		s.queue[0] = nil
		s.queue = s.queue[1:]
		s.mu.Unlock()

		runTask(s.name, task)
	}
}

// Goroutine runs every task on a fresh goroutine. Tasks may run concurrently
// with each other; subscriptions still receive their values one at a time.
var Goroutine Executor = ExecutorFunc(func(task func()) {
	go runTask("goroutine", task)
})

var (
	mainExec *Serial
	mainOnce sync.Once
)

// Main returns the process-wide serial executor used when a subscriber does
// not name one.
func Main() *Serial {
	mainOnce.Do(func() {
		mainExec = NewSerial("main")
	})
	return mainExec
}

func runTask(executor string, task func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Get(logger.ComponentObservable).Error("Task panicked", map[string]interface{}{
				"executor": executor,
				"panic":    fmt.Sprint(r),
				"stack":    string(debug.Stack()),
			})
		}
	}()
	task()
}
