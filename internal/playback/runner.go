package playback

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/mrz1836/cutline/internal/clock"
	"github.com/mrz1836/cutline/internal/domain"
	"github.com/mrz1836/cutline/internal/errors"
	"github.com/mrz1836/cutline/internal/timescale"
)

// Advancer is anything whose playhead can be moved forward by dt seconds.
// Transport and session.Session both implement it.
type Advancer interface {
	Tick(dt float64) (domain.PlaybackState, error)
}

// RunnerConfig configures a Runner.
type RunnerConfig struct {
	// FPS is the tick rate; each tick advances the target by 1/FPS.
	FPS int
	// Interval overrides the wall-clock spacing between ticks. Each tick
	// still advances 1/FPS of media time. Zero means one frame period.
	Interval time.Duration
	// Clock supplies the ticker. Defaults to clock.RealClock.
	Clock clock.Clock
	// OnTick, if set, receives the state after every tick. It runs on the
	// runner goroutine and must not call Stop.
	OnTick func(domain.PlaybackState)
	// Logger receives lifecycle events.
	Logger zerolog.Logger
}

// Runner calls Advancer.Tick once per frame until stopped or until the
// target reports it is no longer playing.
type Runner struct {
	target   Advancer
	interval time.Duration
	dt       float64
	clock    clock.Clock
	onTick   func(domain.PlaybackState)
	logger   zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	group  *errgroup.Group
	done   chan struct{}
}

// NewRunner validates cfg and returns an idle runner.
func NewRunner(target Advancer, cfg RunnerConfig) (*Runner, error) {
	if err := timescale.ValidateFPS("NewRunner", cfg.FPS); err != nil {
		return nil, err
	}
	clk := cfg.Clock
	if clk == nil {
		clk = clock.RealClock{}
	}
	interval := cfg.Interval
	if interval <= 0 {
		interval = time.Second / time.Duration(cfg.FPS)
	}
	return &Runner{
		target:   target,
		interval: interval,
		dt:       1 / float64(cfg.FPS),
		clock:    clk,
		onTick:   cfg.OnTick,
		logger:   cfg.Logger.With().Str("component", "playback").Logger(),
	}, nil
}

// Interval returns the wall-clock time between ticks.
func (r *Runner) Interval() time.Duration {
	return r.interval
}

// Running reports whether the tick loop is active.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.runningLocked()
}

func (r *Runner) runningLocked() bool {
	if r.done == nil {
		return false
	}
	select {
	case <-r.done:
		return false
	default:
		return true
	}
}

// Start begins ticking. The loop ends when ctx is canceled, Stop is called,
// the target stops playing, or Tick returns an error.
func (r *Runner) Start(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.runningLocked() {
		return errors.ErrRunnerStarted
	}
	if r.cancel != nil {
		r.cancel()
	}

	runCtx, cancel := context.WithCancel(ctx)
	g, gctx := errgroup.WithContext(runCtx)
	ticker := r.clock.NewTicker(r.interval)
	done := make(chan struct{})

	r.cancel, r.group, r.done = cancel, g, done

	g.Go(func() error {
		defer close(done)
		return r.loop(gctx, ticker)
	})

	r.logger.Debug().Dur("interval", r.interval).Msg("playback runner started")
	return nil
}

func (r *Runner) loop(ctx context.Context, ticker clock.Ticker) error {
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C():
			// A tick may be ready in the same instant Stop cancels; cancellation wins.
			if ctx.Err() != nil {
				return nil
			}
			state, err := r.target.Tick(r.dt)
			if err != nil {
				return errors.Wrap(err, "playback tick")
			}
			if r.onTick != nil {
				r.onTick(state)
			}
			if !state.Playing {
				r.logger.Debug().Float64("current_time", state.CurrentTime).Msg("playback reached a stop")
				return nil
			}
		}
	}
}

// Wait blocks until the loop exits and returns its error, if any.
func (r *Runner) Wait() error {
	r.mu.Lock()
	g := r.group
	r.mu.Unlock()

	if g == nil {
		return nil
	}
	return g.Wait()
}

// Stop cancels the loop and waits for it to exit. Once Stop returns no
// further OnTick calls are made. Stop is idempotent.
func (r *Runner) Stop() error {
	r.mu.Lock()
	cancel, g := r.cancel, r.group
	r.cancel, r.group = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return nil
	}
	cancel()
	err := g.Wait()
	r.logger.Debug().Msg("playback runner stopped")
	return err
}
