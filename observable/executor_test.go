package observable

import (
	"sync"
	"testing"
	"time"
)

func TestSerial_FIFO(t *testing.T) {
	exec := NewSerial("fifo")
	var mu sync.Mutex
	var got []int
	for i := 0; i < 100; i++ {
		i := i
		exec.Execute(func() {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
		})
	}
	exec.Sync()

	mu.Lock()
	defer mu.Unlock()
	if len(got) != 100 {
		t.Fatalf("expected 100 tasks, got %d", len(got))
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("task %d ran at position %d", v, i)
		}
	}
}

func TestSerial_OneAtATime(t *testing.T) {
	exec := NewSerial("exclusive")
	var mu sync.Mutex
	running, peak := 0, 0
	for i := 0; i < 50; i++ {
		exec.Execute(func() {
			mu.Lock()
			running++
			if running > peak {
				peak = running
			}
			mu.Unlock()
			time.Sleep(50 * time.Microsecond)
			mu.Lock()
			running--
			mu.Unlock()
		})
	}
	exec.Sync()
	if peak != 1 {
		t.Errorf("expected at most one running task, saw %d", peak)
	}
}

func TestSerial_ExecuteDoesNotRunInline(t *testing.T) {
	exec := NewSerial("inline")
	release := make(chan struct{})
	started := make(chan struct{})
	exec.Execute(func() {
		close(started)
		<-release
	})
	<-started

	ran := false
	exec.Execute(func() { ran = true })
	if ran {
		t.Error("task ran on the caller's goroutine")
	}
	if exec.Len() != 1 {
		t.Errorf("expected 1 queued task, got %d", exec.Len())
	}
	close(release)
	exec.Sync()
	if !ran {
		t.Error("queued task never ran")
	}
}

func TestSerial_RecoversFromPanic(t *testing.T) {
	exec := NewSerial("recover")
	exec.Execute(func() { panic("boom") })
	done := make(chan struct{})
	exec.Execute(func() { close(done) })
	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("worker stopped after a panic")
	}
}

func TestSerial_RestartsAfterIdle(t *testing.T) {
	exec := NewSerial("idle")
	for round := 0; round < 3; round++ {
		done := make(chan struct{})
		exec.Execute(func() { close(done) })
		select {
		case <-done:
		case <-time.After(waitTimeout):
			t.Fatalf("round %d: task never ran", round)
		}
		exec.Sync()
	}
}

func TestMain_IsSingleton(t *testing.T) {
	if Main() != Main() {
		t.Error("expected Main to return the same executor")
	}
}

func TestGoroutine_RunsTask(t *testing.T) {
	done := make(chan struct{})
	Goroutine.Execute(func() { close(done) })
	select {
	case <-done:
	case <-time.After(waitTimeout):
		t.Fatal("task never ran")
	}
}

func TestExecutorFunc(t *testing.T) {
	var got func()
	exec := ExecutorFunc(func(task func()) { got = task })
	called := false
	exec.Execute(func() { called = true })
	if got == nil {
		t.Fatal("task not passed through")
	}
	got()
	if !called {
		t.Error("expected the adapted task to run")
	}
}
