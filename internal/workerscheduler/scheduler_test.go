package workerscheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRunner struct {
	calls   int32
	block   chan struct{}
	err     error
	runID   string
}

func (s *stubRunner) Run(ctx context.Context) (string, error) {
	atomic.AddInt32(&s.calls, 1)
	if s.block != nil {
		<-s.block
	}
	return s.runID, s.err
}

func TestRunNow_DelegatesToRunner(t *testing.T) {
	runner := &stubRunner{runID: "run-123"}
	sched := New(runner)

	id, err := sched.RunNow(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "run-123", id)
	assert.EqualValues(t, 1, runner.calls)
}

func TestRunNow_RejectsWhenAlreadyRunning(t *testing.T) {
	runner := &stubRunner{block: make(chan struct{})}
	sched := New(runner)

	done := make(chan struct{})
	go func() {
		sched.RunNow(context.Background())
		close(done)
	}()

	// Give the first call time to take the running flag.
	time.Sleep(20 * time.Millisecond)

	_, err := sched.RunNow(context.Background())
	assert.Error(t, err)

	close(runner.block)
	<-done
}

func TestRunNow_PropagatesRunnerError(t *testing.T) {
	runner := &stubRunner{err: errors.New("boom")}
	sched := New(runner)

	_, err := sched.RunNow(context.Background())
	assert.EqualError(t, err, "boom")
}

func TestStart_RejectsInvalidCronExpression(t *testing.T) {
	runner := &stubRunner{}
	sched := New(runner)

	err := sched.Start(context.Background(), "not a cron expression")
	assert.Error(t, err)
}
