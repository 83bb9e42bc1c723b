package scheduler

import (
	"context"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingRefresher struct {
	calls atomic.Int64
}

func (c *countingRefresher) Refresh(_ context.Context) error {
	c.calls.Add(1)
	return nil
}

func TestScheduler_TriggersRefresh(t *testing.T) {
	r := &countingRefresher{}
	s, err := New(r, 50*time.Millisecond, time.Second, slog.Default())
	require.NoError(t, err)

	s.Start()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return r.calls.Load() >= 2
	}, 2*time.Second, 20*time.Millisecond)
}
