package engine

import (
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/parameter"
)

// Clock drives World.Tick on a fixed interval from its own goroutine.
// Handles pause without busy-wait and corrects for drift; when the loop falls
// more than parameter.MaxTickLag intervals behind it resynchronizes instead
// of running catch-up ticks.
type Clock struct {
	world    *World
	interval time.Duration

	paused   atomic.Bool
	running  atomic.Bool
	ticks    atomic.Uint64
	stopChan chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup

	log *zap.Logger
}

// NewClock creates a clock for the world. A non-positive interval falls back
// to parameter.DefaultTickInterval.
func NewClock(world *World, interval time.Duration) *Clock {
	if interval <= 0 {
		interval = parameter.DefaultTickInterval
	}
	return &Clock{
		world:    world,
		interval: interval,
		stopChan: make(chan struct{}),
		log:      world.Logger().Named("clock"),
	}
}

// Interval returns the fixed tick interval.
func (c *Clock) Interval() time.Duration {
	return c.interval
}

// Start begins the tick loop. Calling Start on a running clock is a no-op.
func (c *Clock) Start() {
	if c.running.CompareAndSwap(false, true) {
		c.wg.Add(1)
		core.Go(c.log, c.loop)
		c.log.Info("clock started", zap.Duration("interval", c.interval))
	}
}

// Stop halts the tick loop and waits for the in-flight tick to finish.
// Stop on a clock that was never started is a no-op; a stopped clock cannot
// be restarted.
func (c *Clock) Stop() {
	if !c.running.CompareAndSwap(true, false) {
		return
	}
	c.stopOnce.Do(func() {
		close(c.stopChan)
	})
	c.wg.Wait()
	c.log.Info("clock stopped", zap.Uint64("ticks", c.ticks.Load()))
}

// Pause suspends ticking. The loop keeps polling at a slow interval.
func (c *Clock) Pause() {
	c.paused.Store(true)
}

// Resume restarts ticking after Pause.
func (c *Clock) Resume() {
	c.paused.Store(false)
}

// IsPaused reports whether the clock is paused.
func (c *Clock) IsPaused() bool {
	return c.paused.Load()
}

// TickCount returns the number of completed ticks.
func (c *Clock) TickCount() uint64 {
	return c.ticks.Load()
}

func (c *Clock) loop() {
	defer c.wg.Done()

	deadline := time.Now().Add(c.interval)

	timer := time.NewTimer(0)
	if !timer.Stop() {
		select {
		case <-timer.C:
		default:
		}
	}
	defer timer.Stop()

	for {
		select {
		case <-c.stopChan:
			return
		default:
		}

		var sleep time.Duration

		if c.paused.Load() {
			sleep = parameter.PausedPollInterval
		} else {
			now := time.Now()
			if !now.Before(deadline) {
				c.world.Tick(c.interval)
				c.ticks.Add(1)

				deadline = deadline.Add(c.interval)
				if now.Sub(deadline) > time.Duration(parameter.MaxTickLag)*c.interval {
					// Too far behind, resync instead of bursting catch-up ticks
					deadline = now.Add(c.interval)
				}
				sleep = time.Until(deadline)
				if sleep < 0 {
					sleep = 0
				}
			} else {
				sleep = deadline.Sub(now)
			}
		}

		if sleep > 0 {
			timer.Reset(sleep)
			select {
			case <-timer.C:
			case <-c.stopChan:
				if !timer.Stop() {
					select {
					case <-timer.C:
					default:
					}
				}
				return
			}
		}
	}
}
