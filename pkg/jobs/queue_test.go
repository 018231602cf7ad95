package jobs

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueueProcessesJobs(t *testing.T) {
	var mu sync.Mutex
	seen := make([]string, 0)
	done := make(chan struct{}, 3)

	q := NewQueue[string]("exports", func(_ context.Context, job Job[string]) error {
		mu.Lock()
		seen = append(seen, job.Payload)
		mu.Unlock()
		done <- struct{}{}
		return nil
	}, QueueConfig{Workers: 2})
	q.Start(context.Background())
	defer q.Stop()

	for _, p := range []string{"a", "b", "c"} {
		require.NoError(t, q.Enqueue(Job[string]{ID: p, Payload: p}))
	}
	for i := 0; i < 3; i++ {
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for jobs")
		}
	}

	mu.Lock()
	defer mu.Unlock()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, seen)
}

func TestQueueRetriesThenReportsExhaustion(t *testing.T) {
	var calls atomic.Int32
	exhausted := make(chan Job[int], 1)

	q := NewQueue[int]("exports", func(_ context.Context, _ Job[int]) error {
		calls.Add(1)
		return errors.New("render failed")
	}, QueueConfig{MaxRetries: 2, RetryDelay: 5 * time.Millisecond})
	q.OnExhausted(func(_ context.Context, job Job[int], err error) {
		exhausted <- job
	})
	q.Start(context.Background())
	defer q.Stop()

	require.NoError(t, q.Enqueue(Job[int]{ID: "job-1", Payload: 7}))

	select {
	case job := <-exhausted:
		assert.Equal(t, 3, job.Attempt)
		assert.Equal(t, 7, job.Payload)
	case <-time.After(2 * time.Second):
		t.Fatal("job never exhausted")
	}
	assert.EqualValues(t, 3, calls.Load())
}

func TestEnqueueBeforeStartFails(t *testing.T) {
	q := NewQueue[int]("exports", func(context.Context, Job[int]) error { return nil }, QueueConfig{})
	assert.Error(t, q.Enqueue(Job[int]{ID: "x"}))
	q.Stop()
}
