package concurrent

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPool(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 100)
	wp.Start(context.Background(), func(ctx context.Context, job int) int {
		return job * job
	})

	for i := 1; i <= 100; i++ {
		wp.AddJob(i)
	}
	wp.Close()
	wp.Wait()

	sum := 0
	count := 0
	for res := range wp.CollectResults() {
		sum += res
		count++
	}
	assert.Equal(t, 100, count)
	assert.Equal(t, 338350, sum)
}

func TestRunAllKeepsJobOrder(t *testing.T) {
	jobs := []string{"Markt 1, Aachen", "Templergraben 55, Aachen", "Pontstraße 1, Aachen"}

	var running atomic.Int32
	results := RunAll(context.Background(), 2, jobs, func(ctx context.Context, job string) int {
		running.Add(1)
		return len(job)
	})

	assert.Equal(t, []int{len(jobs[0]), len(jobs[1]), len(jobs[2])}, results)
	assert.Equal(t, int32(3), running.Load())
}

func TestRunAllPassesContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results := RunAll(ctx, 4, []int{1, 2}, func(ctx context.Context, job int) error {
		return ctx.Err()
	})
	for _, err := range results {
		assert.ErrorIs(t, err, context.Canceled)
	}
}

func TestRunAllEmpty(t *testing.T) {
	results := RunAll(context.Background(), 4, []int{}, func(ctx context.Context, job int) int {
		return job
	})
	assert.Empty(t, results)
}
