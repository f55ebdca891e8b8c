package resilience

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSingleFlight_Do(t *testing.T) {
	var g SingleFlight[[]byte]
	var counter int32

	const workers = 20
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			got, _, err := g.Do(context.Background(), "raw/all_results_2025-01-05.csv", func() ([]byte, error) {
				atomic.AddInt32(&counter, 1)
				time.Sleep(20 * time.Millisecond)
				return []byte("ok"), nil
			})
			assert.NoError(t, err)
			assert.Equal(t, "ok", string(got))
		}()
	}

	close(start)
	wg.Wait()

	assert.EqualValues(t, 1, atomic.LoadInt32(&counter))
}

func TestSingleFlight_WaiterCancelled(t *testing.T) {
	var g SingleFlight[string]
	release := make(chan struct{})
	started := make(chan struct{})

	leaderDone := make(chan string)
	go func() {
		v, shared, err := g.Do(context.Background(), "k", func() (string, error) {
			close(started)
			<-release
			return "v", nil
		})
		assert.NoError(t, err)
		assert.False(t, shared)
		leaderDone <- v
	}()
	<-started

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, shared, err := g.Do(ctx, "k", func() (string, error) {
		t.Fatal("waiter must not run its own call")
		return "", nil
	})
	require.ErrorIs(t, err, context.Canceled)
	assert.True(t, shared)

	close(release)
	assert.Equal(t, "v", <-leaderDone)

	v, shared, err := g.Do(context.Background(), "k", func() (string, error) { return "again", nil })
	require.NoError(t, err)
	assert.False(t, shared)
	assert.Equal(t, "again", v)
}
