package cron

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestScheduler() *Scheduler {
	return NewScheduler(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRunOnceExecutesEveryJob(t *testing.T) {
	s := newTestScheduler()

	var first, second atomic.Int32
	s.AddJob("first", time.Hour, func(ctx context.Context) error {
		first.Add(1)
		return nil
	})
	s.AddJob("second", time.Hour, func(ctx context.Context) error {
		second.Add(1)
		return errors.New("boom")
	})

	s.RunOnce(context.Background())
	assert.EqualValues(t, 1, first.Load())
	assert.EqualValues(t, 1, second.Load())
}

func TestStartRunsImmediatelyAndStopWaits(t *testing.T) {
	s := newTestScheduler()

	var runs atomic.Int32
	done := make(chan struct{})
	s.AddJob("sweep", time.Hour, func(ctx context.Context) error {
		if runs.Add(1) == 1 {
			close(done)
		}
		return nil
	})

	s.Start()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("job did not run on start")
	}
	s.Stop()

	// One immediate run; the hour ticker never fired.
	assert.EqualValues(t, 1, runs.Load())
}
