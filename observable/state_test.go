package observable

import (
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

const waitTimeout = 2 * time.Second

// recorder collects delivered values and signals each delivery.
type recorder[T any] struct {
	mu     sync.Mutex
	values []T
	ch     chan T
}

func newRecorder[T any]() *recorder[T] {
	return &recorder[T]{ch: make(chan T, 1024)}
}

func (r *recorder[T]) fn(v T) {
	r.mu.Lock()
	r.values = append(r.values, v)
	r.mu.Unlock()
	r.ch <- v
}

func (r *recorder[T]) next(t *testing.T) T {
	t.Helper()
	select {
	case v := <-r.ch:
		return v
	case <-time.After(waitTimeout):
		t.Fatal("timed out waiting for delivery")
	}
	var zero T
	return zero
}

func (r *recorder[T]) snapshot() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]T(nil), r.values...)
}

func TestNewAndValue(t *testing.T) {
	s := New(42)
	if s.Value() != 42 {
		t.Errorf("expected 42, got %d", s.Value())
	}
	if s.Len() != 0 {
		t.Errorf("expected no subscribers, got %d", s.Len())
	}
}

func TestSubscribe_ReplaysCurrentValue(t *testing.T) {
	s := New("initial")
	s.Next("current")

	rec := newRecorder[string]()
	id := s.Subscribe(NewSerial("test"), rec.fn)
	defer s.Unsubscribe(id)

	if got := rec.next(t); got != "current" {
		t.Errorf("expected replay of current value, got %q", got)
	}
}

func TestSubscribe_ReplayIsAsynchronous(t *testing.T) {
	s := New(1)
	var tasks []func()
	exec := ExecutorFunc(func(task func()) { tasks = append(tasks, task) })

	called := false
	id := s.Subscribe(exec, func(int) { called = true })
	defer s.Unsubscribe(id)

	if called {
		t.Fatal("callback ran inside Subscribe")
	}
	if len(tasks) != 1 {
		t.Fatalf("expected one scheduled task, got %d", len(tasks))
	}
	tasks[0]()
	if !called {
		t.Error("expected the scheduled task to deliver the replay")
	}
}

func TestSubscribe_NilExecutorUsesMain(t *testing.T) {
	s := New(7)
	rec := newRecorder[int]()
	id := s.Subscribe(nil, rec.fn)
	defer s.Unsubscribe(id)
	if got := rec.next(t); got != 7 {
		t.Errorf("expected 7, got %d", got)
	}
}

func TestSubscriptionIDsAreUnique(t *testing.T) {
	s := New(0)
	seen := make(map[SubscriptionID]bool)
	for i := 0; i < 100; i++ {
		id := s.Subscribe(NewSerial("ids"), func(int) {})
		if seen[id] {
			t.Fatalf("duplicate id %s", id)
		}
		seen[id] = true
	}
	if s.Len() != 100 {
		t.Errorf("expected 100 subscribers, got %d", s.Len())
	}
	for id := range seen {
		s.Unsubscribe(id)
	}
	if s.Len() != 0 {
		t.Errorf("expected 0 subscribers, got %d", s.Len())
	}
}

func TestNext_OrderedDeliveryPerSubscriber(t *testing.T) {
	executors := map[string]Executor{
		"serial":    NewSerial("ordered"),
		"goroutine": Goroutine,
		"main":      Main(),
	}
	for name, exec := range executors {
		t.Run(name, func(t *testing.T) {
			s := New(0)
			rec := newRecorder[int]()
			id := s.Subscribe(exec, rec.fn)
			defer s.Unsubscribe(id)

			const n = 200
			for i := 1; i <= n; i++ {
				s.Next(i)
			}
			for i := 0; i <= n; i++ {
				if got := rec.next(t); got != i {
					t.Fatalf("delivery %d: expected %d, got %d", i, i, got)
				}
			}
		})
	}
}

func TestNext_DeliveriesNeverOverlap(t *testing.T) {
	s := New(0)
	var inFlight, maxInFlight int32
	done := make(chan struct{})
	const n = 100

	id := s.Subscribe(Goroutine, func(v int) {
		cur := atomic.AddInt32(&inFlight, 1)
		for {
			old := atomic.LoadInt32(&maxInFlight)
			if cur <= old || atomic.CompareAndSwapInt32(&maxInFlight, old, cur) {
				break
			}
		}
		time.Sleep(100 * time.Microsecond)
		atomic.AddInt32(&inFlight, -1)
		if v == n {
			close(done)
		}
	})
	defer s.Unsubscribe(id)

	for i := 1; i <= n; i++ {
		s.Next(i)
	}
	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("timed out")
	}
	if peak := atomic.LoadInt32(&maxInFlight); peak != 1 {
		t.Errorf("expected serialized delivery, saw %d concurrent callbacks", peak)
	}
}

func TestNext_NoDeduplication(t *testing.T) {
	s := New(false)
	rec := newRecorder[bool]()
	id := s.Subscribe(NewSerial("dedup"), rec.fn)
	defer s.Unsubscribe(id)

	s.Next(false)
	s.Next(false)
	for i := 0; i < 3; i++ {
		if rec.next(t) != false {
			t.Fatal("expected false")
		}
	}
}

func TestNext_ConcurrentProducers(t *testing.T) {
	s := New(0)
	rec := newRecorder[int]()
	id := s.Subscribe(NewSerial("producers"), rec.fn)
	defer s.Unsubscribe(id)
	rec.next(t)

	var wg sync.WaitGroup
	for p := 0; p < 8; p++ {
		wg.Add(1)
		go func(p int) {
			defer wg.Done()
			for i := 0; i < 50; i++ {
				s.Next(p*1000 + i)
			}
		}(p)
	}
	wg.Wait()

	for i := 0; i < 400; i++ {
		rec.next(t)
	}
	// The last delivery matches the final value.
	got := rec.snapshot()
	if got[len(got)-1] != s.Value() {
		t.Errorf("last delivery %d does not match value %d", got[len(got)-1], s.Value())
	}
}

func TestUnsubscribe_StopsDelivery(t *testing.T) {
	s := New(0)
	exec := NewSerial("unsubscribe")
	rec := newRecorder[int]()
	id := s.Subscribe(exec, rec.fn)
	rec.next(t)

	s.Unsubscribe(id)
	s.Next(1)
	s.Next(2)
	exec.Sync()

	if got := rec.snapshot(); len(got) != 1 {
		t.Errorf("expected only the replay, got %v", got)
	}
	if s.Len() != 0 {
		t.Errorf("expected 0 subscribers, got %d", s.Len())
	}
}

func TestUnsubscribe_DropsPendingDeliveries(t *testing.T) {
	s := New(0)
	exec := NewSerial("pending")
	release := make(chan struct{})
	// Block the executor so the deliveries below stay queued.
	exec.Execute(func() { <-release })

	var calls int32
	id := s.Subscribe(exec, func(int) { atomic.AddInt32(&calls, 1) })
	s.Next(1)
	s.Next(2)
	s.Unsubscribe(id)
	close(release)
	exec.Sync()

	if n := atomic.LoadInt32(&calls); n != 0 {
		t.Errorf("expected no deliveries after unsubscribe, got %d", n)
	}
}

func TestUnsubscribe_UnknownIDIsNoop(t *testing.T) {
	s := New(0)
	rec := newRecorder[int]()
	id := s.Subscribe(NewSerial("noop"), rec.fn)
	defer s.Unsubscribe(id)

	s.Unsubscribe(SubscriptionID{})
	s.Unsubscribe(id)
	s.Unsubscribe(id)
	if s.Len() != 0 {
		t.Errorf("expected 0 subscribers, got %d", s.Len())
	}
}

func TestUnsubscribe_FromInsideCallback(t *testing.T) {
	s := New(0)
	exec := NewSerial("self")
	var id SubscriptionID
	var calls int32
	ready := make(chan struct{})

	exec.Execute(func() { <-ready })
	id = s.Subscribe(exec, func(int) {
		atomic.AddInt32(&calls, 1)
		s.Unsubscribe(id)
	})
	s.Next(1)
	close(ready)
	exec.Sync()

	if n := atomic.LoadInt32(&calls); n != 1 {
		t.Errorf("expected exactly one delivery, got %d", n)
	}
}

func TestMultipleSubscribersEachReceiveEveryValue(t *testing.T) {
	s := New("a")
	recs := []*recorder[string]{newRecorder[string](), newRecorder[string](), newRecorder[string]()}
	execs := []Executor{NewSerial("one"), Goroutine, Main()}
	for i, rec := range recs {
		id := s.Subscribe(execs[i], rec.fn)
		defer s.Unsubscribe(id)
	}
	s.Next("b")
	s.Next("c")

	for i, rec := range recs {
		for _, want := range []string{"a", "b", "c"} {
			if got := rec.next(t); got != want {
				t.Errorf("subscriber %d: expected %q, got %q", i, want, got)
			}
		}
	}
}

func TestPanickingSubscriberKeepsReceiving(t *testing.T) {
	s := New(0)
	rec := newRecorder[int]()
	id := s.Subscribe(NewSerial("panics"), func(v int) {
		rec.fn(v)
		if v == 1 {
			panic("boom")
		}
	})
	defer s.Unsubscribe(id)

	s.Next(1)
	s.Next(2)
	for _, want := range []int{0, 1, 2} {
		if got := rec.next(t); got != want {
			t.Errorf("expected %d, got %d", want, got)
		}
	}
}

func TestNext_SharedSerialKeepsPublishOrderAcrossStates(t *testing.T) {
	loading := New(false)
	result := New(0)
	exec := NewSerial("shared")

	var mu sync.Mutex
	var got []string
	record := func(s string) {
		mu.Lock()
		got = append(got, s)
		mu.Unlock()
	}

	release := make(chan struct{})
	exec.Execute(func() { <-release })

	loadingID := loading.Subscribe(exec, func(v bool) {
		if v {
			record("L=true")
		} else {
			record("L=false")
		}
	})
	defer loading.Unsubscribe(loadingID)
	resultID := result.Subscribe(exec, func(v int) {
		record("R=" + strconv.Itoa(v))
	})
	defer result.Unsubscribe(resultID)

	for n := 1; n <= 2; n++ {
		loading.Next(true)
		result.Next(n)
		loading.Next(false)
	}
	close(release)
	exec.Sync()

	want := []string{
		"L=false", "R=0",
		"L=true", "R=1", "L=false",
		"L=true", "R=2", "L=false",
	}
	mu.Lock()
	defer mu.Unlock()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("delivery %d: expected %v, got %v", i, want, got)
		}
	}
}

func TestNext_GoroutineOwedDeliveriesArrive(t *testing.T) {
	s := New(0)
	rec := newRecorder[int]()
	gate := make(chan struct{})
	id := s.Subscribe(Goroutine, func(v int) {
		if v == 0 {
			<-gate
		}
		rec.fn(v)
	})
	defer s.Unsubscribe(id)

	// Values published while the replay callback is blocked are owed to it.
	for i := 1; i <= 5; i++ {
		s.Next(i)
	}
	close(gate)
	for want := 0; want <= 5; want++ {
		if got := rec.next(t); got != want {
			t.Fatalf("expected %d, got %d", want, got)
		}
	}
}
