package engine

import (
	"sync"
	"time"
)

// Sweeper is end-of-tick cleanup work that runs after the event flush and the
// world's own deferred-destroy pass. The spawn manager registers itself here.
type Sweeper interface {
	Sweep()
}

// Scheduler holds the ordered system list and drives the tick pipeline:
// all systems in priority order, then the event flush, then deferred
// destruction. Systems never see same-tick events mid-pipeline; queued events
// only reach listeners once every system of the tick has run.
type Scheduler struct {
	mu       sync.RWMutex
	systems  []System
	sweepers []Sweeper
}

// NewScheduler creates an empty scheduler.
func NewScheduler() *Scheduler {
	return &Scheduler{
		systems: make([]System, 0),
	}
}

// Add inserts a system, keeping the list sorted by priority.
func (s *Scheduler) Add(system System) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.systems = append(s.systems, system)

	// Sort by priority (bubble sort, small N)
	for i := 0; i < len(s.systems)-1; i++ {
		for j := 0; j < len(s.systems)-i-1; j++ {
			if s.systems[j].Priority() > s.systems[j+1].Priority() {
				s.systems[j], s.systems[j+1] = s.systems[j+1], s.systems[j]
			}
		}
	}
}

// Remove drops a system from the schedule by name.
// A system is either scheduled every tick or not at all; there is no
// mid-tick cancellation.
func (s *Scheduler) Remove(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i, system := range s.systems {
		if system.Name() == name {
			s.systems = append(s.systems[:i], s.systems[i+1:]...)
			return true
		}
	}
	return false
}

// Systems returns a copy of the ordered system list.
func (s *Scheduler) Systems() []System {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := make([]System, len(s.systems))
	copy(result, s.systems)
	return result
}

// AddSweeper registers end-of-tick cleanup, run after the event flush.
func (s *Scheduler) AddSweeper(sw Sweeper) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sweepers = append(s.sweepers, sw)
}

// Tick runs one full frame against the world:
//  1. every system in priority order
//  2. dispatcher flush: events enqueued by systems this tick are delivered
//  3. the world's deferred-destroy pass
//  4. registered sweepers (spawn manager deferred work)
//
// Callers normally go through World.Tick, which serializes ticks.
func (s *Scheduler) Tick(w *World, dt time.Duration) {
	for _, system := range s.Systems() {
		system.Update(w, dt)
	}

	w.Dispatcher().Flush()
	w.applyDeferredDestroys()

	s.mu.RLock()
	sweepers := make([]Sweeper, len(s.sweepers))
	copy(sweepers, s.sweepers)
	s.mu.RUnlock()
	for _, sw := range sweepers {
		sw.Sweep()
	}
}
