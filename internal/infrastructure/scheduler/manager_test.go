package scheduler

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/moderation/internal/shared/logger"
)

type countingFlusher struct {
	calls atomic.Int32
}

func (f *countingFlusher) Flush(ctx context.Context) {
	f.calls.Add(1)
}

func TestSchedulerManager_SnapshotFlush(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewLogger())
	require.NoError(t, err)

	flusher := &countingFlusher{}
	require.NoError(t, m.RegisterSnapshotFlushJob(flusher, 20*time.Millisecond))
	require.Len(t, m.Jobs(), 1)
	assert.Equal(t, "snapshot-flush", m.Jobs()[0].Name())

	m.Start()
	assert.True(t, m.IsStarted())

	assert.Eventually(t, func() bool { return flusher.calls.Load() >= 2 },
		2*time.Second, 10*time.Millisecond)

	require.NoError(t, m.Stop())
	assert.False(t, m.IsStarted())
}

func TestSchedulerManager_StopWithoutStart(t *testing.T) {
	m, err := NewSchedulerManager(logger.NewLogger())
	require.NoError(t, err)
	assert.NoError(t, m.Stop())
}
