package pool

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestRunJobsCollectsResults(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(&Config{MaxWorkers: 10, QueueDepth: 10})

	fn := func(_ context.Context, payload interface{}) (interface{}, error) {
		i := payload.(int)
		if i == 3 {
			return []byte{0x01, 0x02}, nil
		}
		return nil, nil
	}
	payloads := []interface{}{1, 2, 3, 4, 5}

	results, errs, err := p.RunJobs(context.Background(), payloads, fn)
	require.NoError(t, err)
	assert.Nil(t, errs)
	require.Len(t, results, 1)
	assert.Equal(t, []byte{0x01, 0x02}, results[0])
}

func TestRunJobsNoResults(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(&Config{MaxWorkers: 10, QueueDepth: 10})
	fn := func(_ context.Context, _ interface{}) (interface{}, error) { return nil, nil }

	results, errs, err := p.RunJobs(context.Background(), []interface{}{1, 2, 3, 4, 5}, fn)
	assert.Nil(t, results)
	assert.Nil(t, errs)
	assert.NoError(t, err)
}

func TestRunJobsMultipleErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(&Config{MaxWorkers: 10, QueueDepth: 10})
	sentinel := fmt.Errorf("blerg")
	fn := func(_ context.Context, _ interface{}) (interface{}, error) { return nil, sentinel }

	results, errs, err := p.RunJobs(context.Background(), []interface{}{1, 2, 3, 4, 5}, fn)
	assert.Nil(t, results)
	require.Len(t, errs, 5)
	for _, e := range errs {
		assert.Equal(t, sentinel, e)
	}
	assert.NoError(t, err)
}

func TestRunJobsExceedsQueueDepth(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(&Config{MaxWorkers: 10, QueueDepth: 3})
	fn := func(_ context.Context, _ interface{}) (interface{}, error) { return nil, nil }

	_, _, err := p.RunJobs(context.Background(), []interface{}{1, 2, 3, 4, 5}, fn)
	assert.Error(t, err)
}

func TestRunJobsCancellation(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(&Config{MaxWorkers: 1, QueueDepth: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	fn := func(ctx context.Context, _ interface{}) (interface{}, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	}

	_, _, err := p.RunJobs(ctx, []interface{}{1, 2, 3}, fn)
	assert.Error(t, err)
}

func TestRunJobsErrCombinesErrors(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := NewPool(&Config{MaxWorkers: 10, QueueDepth: 10})
	sentinel := fmt.Errorf("boom")
	fn := func(_ context.Context, payload interface{}) (interface{}, error) {
		if payload.(int)%2 == 0 {
			return nil, sentinel
		}
		return nil, nil
	}

	_, err := p.RunJobsErr(context.Background(), []interface{}{1, 2, 3, 4}, fn)
	require.Error(t, err)
}
