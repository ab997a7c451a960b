package worker

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPoolRunsAllJobsBeforeStop(t *testing.T) {
	p := NewPool(3)
	var n atomic.Int64
	for i := 0; i < 100; i++ {
		require.NoError(t, p.Submit(func() { n.Add(1) }))
	}
	p.Stop()
	assert.Equal(t, int64(100), n.Load())
}

func TestSubmitAfterStop(t *testing.T) {
	p := NewPool(1)
	p.Stop()
	p.Stop()
	assert.ErrorIs(t, p.Submit(func() {}), ErrStopped)
}

func TestTrySubmitDoesNotWaitForSlot(t *testing.T) {
	p := NewPoolWithQueue(1, 1)
	started, release := make(chan struct{}), make(chan struct{})
	require.NoError(t, p.TrySubmit(func() {
		close(started)
		<-release
	}))
	<-started

	require.NoError(t, p.TrySubmit(func() {}))
	assert.ErrorIs(t, p.TrySubmit(func() {}), ErrQueueFull)

	close(release)
	p.Stop()
	assert.ErrorIs(t, p.TrySubmit(func() {}), ErrStopped)
}
