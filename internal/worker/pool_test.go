package worker

import (
	"context"
	"sync/atomic"
	"testing"
)

type countJob struct {
	counter *int64
}

type countResult struct {
	err error
}

func (r *countResult) GetError() error { return r.err }

func (j *countJob) Execute(ctx context.Context) Result {
	atomic.AddInt64(j.counter, 1)
	return &countResult{}
}

func TestPool_RunsAllJobs(t *testing.T) {
	var counter int64

	pool := NewPool(4)
	pool.Start()

	const jobs = 20
	for i := 0; i < jobs; i++ {
		pool.Submit(&countJob{counter: &counter})
	}

	results := pool.Wait()

	if len(results) != jobs {
		t.Errorf("got %d results, want %d", len(results), jobs)
	}
	if n := atomic.LoadInt64(&counter); n != jobs {
		t.Errorf("executed %d jobs, want %d", n, jobs)
	}
}

func TestPool_ZeroWorkersDefaultsToOne(t *testing.T) {
	var counter int64

	pool := NewPool(0)
	pool.Start()
	pool.Submit(&countJob{counter: &counter})

	if results := pool.Wait(); len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestPool_Shutdown(t *testing.T) {
	pool := NewPool(2)
	pool.Start()
	pool.Shutdown()

	// Submitting after shutdown must not block or panic.
	var counter int64
	pool.Submit(&countJob{counter: &counter})

	if n := atomic.LoadInt64(&counter); n != 0 {
		t.Errorf("job ran after shutdown")
	}
}
