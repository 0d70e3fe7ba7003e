// Headless simulation sandbox. Spawns pooled projectiles with a lifetime
// timer, runs the built-in systems on a fixed tick, and reports pool and
// event activity on shutdown.
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/scenecore/component"
	"github.com/lixenwraith/scenecore/config"
	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/engine"
	"github.com/lixenwraith/scenecore/event"
	"github.com/lixenwraith/scenecore/jobs"
	"github.com/lixenwraith/scenecore/parameter"
	"github.com/lixenwraith/scenecore/snapshot"
	"github.com/lixenwraith/scenecore/spawn"
	"github.com/lixenwraith/scenecore/system"
	"github.com/lixenwraith/scenecore/vmath"
)

const projectileTemplate = "projectile"

// spawnerSystem acquires a pooled projectile every interval.
type spawnerSystem struct {
	manager  *spawn.Manager
	interval time.Duration
	elapsed  time.Duration
	rng      *rand.Rand
}

func (s *spawnerSystem) Name() string  { return "spawner" }
func (s *spawnerSystem) Priority() int { return parameter.PriorityGameplay }

func (s *spawnerSystem) Update(w *engine.World, dt time.Duration) {
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed -= s.interval

	e, err := s.manager.Acquire(projectileTemplate)
	if err != nil {
		w.Logger().Warn("spawn skipped", zap.Error(err))
		return
	}
	velocities := engine.GetStore[component.Velocity](w)
	velocities.Set(e, component.Velocity{Vel: vmath.Vec3F{
		X: s.rng.Float64()*2 - 1,
		Y: s.rng.Float64()*2 - 1,
	}})
}

// centroidSystem periodically submits a background job computing the mean
// position of all live projectiles. Component values are copied on the tick
// goroutine; the worker only sees the copy, and the result comes back through
// the dispatcher on a later flush.
type centroidSystem struct {
	runner    *jobs.Runner
	positions *engine.Store[component.Position]
	interval  time.Duration
	elapsed   time.Duration
}

func (s *centroidSystem) Name() string  { return "centroid" }
func (s *centroidSystem) Priority() int { return parameter.PriorityGameplay + 10 }

func (s *centroidSystem) Update(w *engine.World, dt time.Duration) {
	s.elapsed += dt
	if s.elapsed < s.interval {
		return
	}
	s.elapsed -= s.interval

	points := make([]vmath.Vec3F, 0, s.positions.Count())
	s.positions.Each(func(_ core.Entity, p component.Position) {
		points = append(points, p.Pos)
	})
	if len(points) == 0 {
		return
	}

	err := s.runner.Submit("centroid", func() (any, error) {
		var sum vmath.Vec3F
		for _, p := range points {
			sum = vmath.V3FAdd(sum, p)
		}
		return vmath.V3FScale(sum, 1/float64(len(points))), nil
	})
	if err != nil {
		w.Logger().Warn("centroid job not submitted", zap.Error(err))
	}
}

// recycleSystem intercepts expired projectiles before the death system and
// returns them to their pool instead of letting them be destroyed.
type recycleSystem struct {
	manager *spawn.Manager
	deaths  *engine.Store[component.Death]
}

func (s *recycleSystem) Name() string  { return "recycle" }
func (s *recycleSystem) Priority() int { return parameter.PriorityDeath - 10 }

func (s *recycleSystem) Update(w *engine.World, dt time.Duration) {
	s.deaths.Each(func(e core.Entity, _ component.Death) {
		if !s.manager.Owns(projectileTemplate, e) {
			return
		}
		s.deaths.Remove(e)
		if err := s.manager.Release(e); err != nil {
			w.Logger().Warn("recycle failed", zap.Stringer("entity", e), zap.Error(err))
		}
	})
}

func run() error {
	var configPath string
	var duration time.Duration
	var snapshotPath string
	flag.StringVar(&configPath, "config", "", "path to TOML config file")
	flag.DurationVar(&duration, "duration", 10*time.Second, "how long to run before exiting")
	flag.StringVar(&snapshotPath, "snapshot", "", "write a world snapshot to this file on exit")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log, err := config.NewLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer log.Sync()

	w := engine.NewWorld(log)
	manager := spawn.NewManager(w)

	projectile := spawn.NewBlueprint()
	spawn.With(projectile, component.Position{})
	spawn.With(projectile, component.Velocity{})
	spawn.With(projectile, component.Timer{Remaining: 2 * time.Second})
	if err := manager.RegisterTemplate(projectileTemplate, cfg.PoolConfig(projectileTemplate), projectile); err != nil {
		return err
	}

	w.AddSystem(system.NewMovementSystem(w))
	w.AddSystem(system.NewTimerSystem(w))
	w.AddSystem(system.NewDeathSystem(w))
	w.AddSystem(&recycleSystem{
		manager: manager,
		deaths:  engine.GetStore[component.Death](w),
	})
	w.AddSystem(&spawnerSystem{
		manager:  manager,
		interval: 200 * time.Millisecond,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	})

	var destroyed uint64
	event.Subscribe(w.Dispatcher(), func(d system.Destroyed) {
		destroyed++
		log.Debug("entity destroyed", zap.Stringer("entity", d.Entity))
	})

	runner, err := jobs.NewRunner(cfg.Jobs.Workers, w.Dispatcher(), log)
	if err != nil {
		return err
	}
	defer runner.Close()

	w.AddSystem(&centroidSystem{
		runner:    runner,
		positions: engine.GetStore[component.Position](w),
		interval:  time.Second,
	})
	event.Subscribe(w.Dispatcher(), func(c jobs.Completed) {
		if centroid, ok := c.Result.(vmath.Vec3F); ok {
			log.Info("projectile centroid",
				zap.String("job", c.Name),
				zap.Float64("x", centroid.X),
				zap.Float64("y", centroid.Y))
		}
	})

	clock := engine.NewClock(w, cfg.Engine.TickInterval.Duration)
	clock.Start()
	if cfg.Engine.StartPaused {
		clock.Pause()
	}

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-sig:
		log.Info("signal received, shutting down")
	case <-time.After(duration):
		log.Info("run complete")
	}
	clock.Stop()

	stats, _ := manager.Stats(projectileTemplate)
	log.Info("pool stats",
		zap.Int("total_created", stats.TotalCreated),
		zap.Int("active", stats.CurrentlyActive),
		zap.Int("pooled", stats.CurrentlyPooled),
		zap.Int("peak_active", stats.PeakActive),
		zap.Int("acquires", stats.AcquireCount),
		zap.Int("releases", stats.ReleaseCount),
		zap.Int("expands", stats.ExpandCount),
		zap.Int("exhausted", stats.ExhaustedCount))
	log.Info("world totals",
		zap.Uint64("ticks", clock.TickCount()),
		zap.Int("alive", w.Alive()),
		zap.Uint64("destroy_events", destroyed))

	if snapshotPath != "" {
		snap := snapshot.Take(w)
		data, err := snap.Encode()
		if err != nil {
			return fmt.Errorf("encode snapshot: %w", err)
		}
		if err := os.WriteFile(snapshotPath, data, 0o644); err != nil {
			return fmt.Errorf("write snapshot: %w", err)
		}
		log.Info("snapshot written", zap.String("path", snapshotPath), zap.Int("entities", len(snap.Entities)))
	}

	return nil
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "scenecore-sim:", err)
		os.Exit(1)
	}
}
