package worker

import (
	"context"
	"sync"
)

// Job produces one result of type R. Jobs must be safe to run
// concurrently; the pipeline submits one job per source document.
type Job[R any] func(ctx context.Context) R

// Pool fans a batch of jobs out over a fixed number of goroutines and
// gathers their results. Completion order is nondeterministic; callers
// that need a stable ordering sort the collected results themselves.
type Pool[R any] struct {
	workers int
	jobs    chan Job[R]
	out     chan R
	wg      sync.WaitGroup
	ctx     context.Context
	cancel  context.CancelFunc
	once    sync.Once
}

// NewPool returns a pool that runs at most workers jobs at once.
func NewPool[R any](workers int) *Pool[R] {
	if workers < 1 {
		workers = 1
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Pool[R]{
		workers: workers,
		jobs:    make(chan Job[R], workers*2),
		out:     make(chan R, workers*2),
		ctx:     ctx,
		cancel:  cancel,
	}
}

// Start launches the worker goroutines.
func (p *Pool[R]) Start() {
	for i := 0; i < p.workers; i++ {
		p.wg.Add(1)
		go p.run()
	}
}

func (p *Pool[R]) run() {
	defer p.wg.Done()
	for {
		select {
		case <-p.ctx.Done():
			return
		case job, ok := <-p.jobs:
			if !ok {
				return
			}
			r := job(p.ctx)
			select {
			case p.out <- r:
			case <-p.ctx.Done():
				return
			}
		}
	}
}

// Submit queues a job. Submitting after Shutdown is a no-op.
func (p *Pool[R]) Submit(job Job[R]) {
	select {
	case <-p.ctx.Done():
	case p.jobs <- job:
	}
}

// Wait closes the queue, waits for in-flight jobs to finish, and
// returns every result produced.
func (p *Pool[R]) Wait() []R {
	close(p.jobs)

	go func() {
		p.wg.Wait()
		p.closeOut()
	}()

	var results []R
	for r := range p.out {
		results = append(results, r)
	}
	return results
}

// Shutdown cancels in-flight jobs and releases the workers.
func (p *Pool[R]) Shutdown() {
	p.cancel()
	p.wg.Wait()
	p.closeOut()
}

func (p *Pool[R]) closeOut() {
	p.once.Do(func() { close(p.out) })
}
