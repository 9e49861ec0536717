package playback

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/testutil"
)

type tickLog struct {
	mu     sync.Mutex
	states []domain.PlaybackState
}

func (l *tickLog) record(s domain.PlaybackState) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.states = append(l.states, s)
}

func (l *tickLog) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.states)
}

func (l *tickLog) last() domain.PlaybackState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.states[len(l.states)-1]
}

type failingAdvancer struct{}

func (failingAdvancer) Tick(float64) (domain.PlaybackState, error) {
	return domain.PlaybackState{Playing: true}, testutil.ErrMockCallback
}

func newTestRunner(t *testing.T, target Advancer, fps int) (*Runner, *testutil.FakeClock, *tickLog) {
	t.Helper()
	clk := testutil.NewFakeClock(time.Unix(0, 0))
	log := &tickLog{}
	r, err := NewRunner(target, RunnerConfig{
		FPS:    fps,
		Clock:  clk,
		OnTick: log.record,
		Logger: zerolog.Nop(),
	})
	require.NoError(t, err)
	return r, clk, log
}

func TestNewRunner_RejectsBadFPS(t *testing.T) {
	_, err := NewRunner(failingAdvancer{}, RunnerConfig{FPS: 0})
	require.ErrorIs(t, err, errors.ErrInvalidFPS)
}

func TestRunner_Interval(t *testing.T) {
	r, _, _ := newTestRunner(t, failingAdvancer{}, 25)
	assert.Equal(t, 40*time.Millisecond, r.Interval())
}

func TestRunner_IntervalOverride(t *testing.T) {
	r, err := NewRunner(failingAdvancer{}, RunnerConfig{FPS: 30, Interval: time.Second})
	require.NoError(t, err)
	assert.Equal(t, time.Second, r.Interval())
}

func TestRunner_AutoStopsAtEnd(t *testing.T) {
	tr, err := NewTransport(1, 10)
	require.NoError(t, err)
	tr.Play()

	r, clk, log := newTestRunner(t, tr, 10)
	require.NoError(t, r.Start(context.Background()))

	clk.Advance(time.Second)
	require.NoError(t, r.Wait())

	assert.False(t, r.Running())
	assert.Equal(t, 10, log.len())
	assert.False(t, log.last().Playing)
	assert.InDelta(t, 0.0, tr.State().CurrentTime, 0)
	assert.Equal(t, 0, clk.Tickers())
}

func TestRunner_NoCallbacksAfterStop(t *testing.T) {
	tr, err := NewTransport(100, 10)
	require.NoError(t, err)
	tr.Play()

	r, clk, log := newTestRunner(t, tr, 10)
	require.NoError(t, r.Start(context.Background()))

	clk.Advance(300 * time.Millisecond)
	require.Eventually(t, func() bool { return log.len() == 3 }, time.Second, time.Millisecond)

	require.NoError(t, r.Stop())
	assert.False(t, r.Running())

	clk.Advance(time.Second)
	assert.Equal(t, 3, log.len())
	assert.Equal(t, 0, clk.Tickers())
	assert.InDelta(t, 0.3, tr.State().CurrentTime, 1e-9)
}

func TestRunner_StartTwice(t *testing.T) {
	tr, err := NewTransport(100, 10)
	require.NoError(t, err)
	tr.Play()

	r, _, _ := newTestRunner(t, tr, 10)
	require.NoError(t, r.Start(context.Background()))
	t.Cleanup(func() { _ = r.Stop() })

	assert.ErrorIs(t, r.Start(context.Background()), errors.ErrRunnerStarted)
}

func TestRunner_RestartAfterStop(t *testing.T) {
	tr, err := NewTransport(100, 10)
	require.NoError(t, err)
	tr.Play()

	r, clk, log := newTestRunner(t, tr, 10)
	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Stop())
	require.NoError(t, r.Stop())

	require.NoError(t, r.Start(context.Background()))
	clk.Advance(100 * time.Millisecond)
	require.Eventually(t, func() bool { return log.len() == 1 }, time.Second, time.Millisecond)
	require.NoError(t, r.Stop())
}

func TestRunner_ContextCancel(t *testing.T) {
	tr, err := NewTransport(100, 10)
	require.NoError(t, err)
	tr.Play()

	r, _, log := newTestRunner(t, tr, 10)
	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, r.Start(ctx))

	cancel()
	require.NoError(t, r.Wait())
	assert.False(t, r.Running())
	assert.Equal(t, 0, log.len())
}

func TestRunner_TickErrorEndsLoop(t *testing.T) {
	r, clk, log := newTestRunner(t, failingAdvancer{}, 10)
	require.NoError(t, r.Start(context.Background()))

	clk.Advance(100 * time.Millisecond)
	err := r.Wait()
	require.ErrorIs(t, err, testutil.ErrMockCallback)
	assert.Equal(t, 0, log.len())
}
