package cache

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/thought/pkg/entry"
)

func record(day int) []byte {
	return []byte(fmt.Sprintf(`{"day": %d, "title": "Day %d", "html": "<p>%d</p>"}`, day, day, day))
}

type countingFetcher struct {
	calls atomic.Int32
	fn    func(ctx context.Context, day int) ([]byte, error)
}

func (f *countingFetcher) Fetch(ctx context.Context, day int) ([]byte, error) {
	f.calls.Add(1)
	return f.fn(ctx, day)
}

func okFetcher() *countingFetcher {
	return &countingFetcher{fn: func(_ context.Context, day int) ([]byte, error) {
		return record(day), nil
	}}
}

func TestGetIsIdempotent(t *testing.T) {
	f := okFetcher()
	c := New(f)
	ctx := context.Background()

	assert.Equal(t, Absent, c.State(4))
	first, err := c.Get(ctx, 4)
	require.NoError(t, err)
	assert.Equal(t, Ready, c.State(4))

	for i := 0; i < 3; i++ {
		again, err := c.Get(ctx, 4)
		require.NoError(t, err)
		assert.Same(t, first, again)
	}
	assert.Equal(t, int32(1), f.calls.Load())
	assert.Equal(t, "Day 4", first.Title)
	assert.Equal(t, "<p>4</p>", first.Body)
}

func TestConcurrentGetsShareOneFetch(t *testing.T) {
	release := make(chan struct{})
	f := &countingFetcher{fn: func(_ context.Context, day int) ([]byte, error) {
		<-release
		return record(day), nil
	}}
	c := New(f)

	const callers = 8
	results := make([]*entry.Entry, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			e, err := c.Get(context.Background(), 9)
			if err == nil {
				results[i] = e
			}
		}(i)
	}

	require.Eventually(t, func() bool { return c.State(9) == Pending }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), f.calls.Load())
	for i := 1; i < callers; i++ {
		require.NotNil(t, results[i])
		assert.Same(t, results[0], results[i])
	}
}

func TestFailureIsRetried(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	f := &countingFetcher{fn: func(_ context.Context, day int) ([]byte, error) {
		if fail.Load() {
			return nil, errors.New("boom")
		}
		return record(day), nil
	}}
	c := New(f)
	ctx := context.Background()

	_, err := c.Get(ctx, 3)
	var le *EntryLoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, 3, le.Day)
	assert.Equal(t, Failed, c.State(3))

	fail.Store(false)
	e, err := c.Get(ctx, 3)
	require.NoError(t, err)
	assert.Equal(t, 3, e.Day)
	assert.Equal(t, Ready, c.State(3))
	assert.Equal(t, int32(2), f.calls.Load())
}

func TestMalformedAndMismatchedRecords(t *testing.T) {
	payloads := map[int]string{
		1: `{"day": 1, "title": "x"`,
		2: `{"day": 5, "title": "wrong", "html": "<p/>"}`,
		3: `{"day": 3, "title": "no body"}`,
	}
	c := New(FetcherFunc(func(_ context.Context, day int) ([]byte, error) {
		return []byte(payloads[day]), nil
	}))
	for day := range payloads {
		_, err := c.Get(context.Background(), day)
		var le *EntryLoadError
		require.ErrorAs(t, err, &le, "day %d", day)
		assert.Equal(t, Failed, c.State(day))
	}

	_, err := c.Get(context.Background(), 2)
	assert.ErrorIs(t, err, entry.ErrMalformed)
}

func TestCancelledWaiterDoesNotPoisonOthers(t *testing.T) {
	release := make(chan struct{})
	f := &countingFetcher{fn: func(ctx context.Context, day int) ([]byte, error) {
		select {
		case <-release:
			return record(day), nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}}
	c := New(f)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() {
		_, err := c.Get(ctx, 6)
		errc <- err
	}()
	require.Eventually(t, func() bool { return c.State(6) == Pending }, time.Second, time.Millisecond)

	done := make(chan *entry.Entry, 1)
	go func() {
		e, _ := c.Get(context.Background(), 6)
		done <- e
	}()

	cancel()
	assert.ErrorIs(t, <-errc, context.Canceled)
	close(release)

	select {
	case e := <-done:
		require.NotNil(t, e)
		assert.Equal(t, 6, e.Day)
	case <-time.After(time.Second):
		t.Fatal("second waiter never completed")
	}
	assert.Equal(t, Ready, c.State(6))
}

func TestPreloadSwallowsErrors(t *testing.T) {
	c := New(FetcherFunc(func(context.Context, int) ([]byte, error) {
		return nil, errors.New("offline")
	}))
	c.Preload(context.Background(), 2)
	assert.Equal(t, Failed, c.State(2))
}

func TestWarmLoadsAllDays(t *testing.T) {
	f := okFetcher()
	c := New(f)
	c.Warm(context.Background(), 1, 2, 3)
	for _, d := range []int{1, 2, 3} {
		assert.Equal(t, Ready, c.State(d))
	}

	c.Warm(context.Background(), 1, 2, 3)
	assert.Equal(t, int32(3), f.calls.Load())
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "pending", Pending.String())
	assert.Equal(t, "state(9)", State(9).String())
}
