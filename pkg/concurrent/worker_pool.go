package concurrent

import (
	"context"
	"sync"
)

type JobFunc[T any, G any] func(ctx context.Context, job T) G

// WorkerPool. fixed number of workers consuming jobs from a queue. results arrive in completion order.
type WorkerPool[T any, G any] struct {
	numWorkers int
	jobQueue   chan T
	results    chan G
	wg         sync.WaitGroup
}

func NewWorkerPool[T any, G any](numWorkers, jobQueueSize int) *WorkerPool[T, G] {
	if numWorkers < 1 {
		numWorkers = 1
	}
	return &WorkerPool[T, G]{
		numWorkers: numWorkers,
		jobQueue:   make(chan T, jobQueueSize),
		results:    make(chan G, jobQueueSize),
	}
}

func (wp *WorkerPool[T, G]) worker(ctx context.Context, jobFunc JobFunc[T, G]) {
	defer wp.wg.Done()
	for job := range wp.jobQueue {
		wp.results <- jobFunc(ctx, job)
	}
}

func (wp *WorkerPool[T, G]) Start(ctx context.Context, jobFunc JobFunc[T, G]) {
	for i := 0; i < wp.numWorkers; i++ {
		wp.wg.Add(1)
		go wp.worker(ctx, jobFunc)
	}
}

// Wait. blocks until every worker has returned, Close must be called first.
func (wp *WorkerPool[T, G]) Wait() {
	wp.wg.Wait()
	close(wp.results)
}

func (wp *WorkerPool[T, G]) AddJob(job T) {
	wp.jobQueue <- job
}

func (wp *WorkerPool[T, G]) CollectResults() chan G {
	return wp.results
}

func (wp *WorkerPool[T, G]) Close() {
	close(wp.jobQueue)
}

type indexed[T any] struct {
	idx int
	val T
}

// RunAll. runs jobFunc over every job on numWorkers workers and returns the results in job order.
func RunAll[T any, G any](ctx context.Context, numWorkers int, jobs []T, jobFunc JobFunc[T, G]) []G {
	wp := NewWorkerPool[indexed[T], indexed[G]](min(numWorkers, len(jobs)), len(jobs))
	wp.Start(ctx, func(ctx context.Context, job indexed[T]) indexed[G] {
		return indexed[G]{idx: job.idx, val: jobFunc(ctx, job.val)}
	})

	for i, job := range jobs {
		wp.AddJob(indexed[T]{idx: i, val: job})
	}
	wp.Close()
	wp.Wait()

	results := make([]G, len(jobs))
	for res := range wp.CollectResults() {
		results[res.idx] = res.val
	}
	return results
}
