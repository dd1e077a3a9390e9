package parallel

import (
	"math"
	"sync/atomic"
	"testing"
)

func TestWorkerPoolOverflow(t *testing.T) {
	_, err := NewWorkerPool(math.MaxInt)
	if err == nil {
		t.Error("Expected error for too many workers")
	}
}

func TestWorkerPoolDefaultWorkers(t *testing.T) {
	for _, n := range []int{0, -5} {
		pool, err := NewWorkerPool(n)
		if err != nil {
			t.Fatalf("NewWorkerPool(%d) failed: %v", n, err)
		}
		if pool.Workers() != DefaultWorkers() {
			t.Errorf("Expected %d workers for input %d, got %d", DefaultWorkers(), n, pool.Workers())
		}
		pool.Close()
	}
}

func TestWorkerPoolConcurrentSubmissions(t *testing.T) {
	pool, _ := NewWorkerPool(8)

	var counter int64
	for i := 0; i < 200; i++ {
		if !pool.Submit(func() { atomic.AddInt64(&counter, 1) }) {
			t.Fatal("Task submission failed")
		}
	}
	pool.Wait()

	if counter != 200 {
		t.Errorf("Expected 200 tasks executed, got %d", counter)
	}
}

func TestWorkerPoolSubmitAfterClose(t *testing.T) {
	pool, _ := NewWorkerPool(2)
	pool.Close()

	if pool.Submit(func() {}) {
		t.Error("Expected Submit to fail on a closed pool")
	}

	// Closing twice must not panic.
	pool.Close()
}

func TestWorkerPoolWaitRepanics(t *testing.T) {
	pool, _ := NewWorkerPool(2)

	var ran int64
	pool.Submit(func() { panic("boom") })
	pool.Submit(func() { atomic.AddInt64(&ran, 1) })

	defer func() {
		r := recover()
		if r != "boom" {
			t.Errorf("Expected re-panic with boom, got %v", r)
		}
		if atomic.LoadInt64(&ran) != 1 {
			t.Error("Expected the healthy task to run despite the panic")
		}
	}()
	pool.Wait()
}
