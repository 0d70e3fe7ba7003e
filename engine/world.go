package engine

import (
	"reflect"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/event"
)

// World binds the entity registry, the component stores, the event
// dispatcher and the scheduler into one simulation context.
//
// Ownership model: the world belongs to a single simulation thread for the
// duration of a tick. Other threads interact only through the dispatcher's
// enqueue path, or between ticks under an external synchronization of their
// own.
type World struct {
	registry   *Registry
	dispatcher *event.Dispatcher
	scheduler  *Scheduler

	storeMu   sync.RWMutex
	stores    map[reflect.Type]AnyStore
	storeList []AnyStore

	pendingMu      sync.Mutex
	pendingDestroy []core.Entity
	pendingSet     map[core.Entity]struct{}

	// Time is advanced once per tick before systems run
	Time *TimeResource

	updateMu sync.Mutex
	log      *zap.Logger
}

// NewWorld creates an ECS world. A nil logger falls back to a no-op logger;
// production callers inject the logger built by config.NewLogger.
func NewWorld(log *zap.Logger) *World {
	if log == nil {
		log = zap.NewNop()
	}
	return &World{
		registry:   NewRegistry(),
		dispatcher: event.NewDispatcher(log.Named("event")),
		scheduler:  NewScheduler(),
		stores:     make(map[reflect.Type]AnyStore),
		pendingSet: make(map[core.Entity]struct{}),
		Time:       &TimeResource{},
		log:        log,
	}
}

// Logger returns the world's logger for subsystems built around this world.
func (w *World) Logger() *zap.Logger {
	return w.log
}

// Dispatcher returns the world's event dispatcher.
func (w *World) Dispatcher() *event.Dispatcher {
	return w.dispatcher
}

// Scheduler returns the world's system scheduler.
func (w *World) Scheduler() *Scheduler {
	return w.scheduler
}

// CreateEntity allocates a new entity with no components.
func (w *World) CreateEntity() core.Entity {
	return w.registry.Create()
}

// DestroyEntity immediately invalidates the handle and removes every
// component the entity holds. From the caller's perspective the removal is
// atomic: after the call returns, no store lookup for the handle succeeds.
// Returns false for stale handles.
func (w *World) DestroyEntity(e core.Entity) bool {
	if !w.registry.Destroy(e) {
		w.log.Debug("destroy of stale handle ignored", zap.Stringer("entity", e))
		return false
	}
	for _, store := range w.allStores() {
		store.Remove(e)
	}
	return true
}

// DestroyDeferred marks the entity for destruction at the end of the current
// tick, after the event flush. This is the mandatory path when destruction is
// requested from inside system iteration over the entity's storage. Requests
// for stale handles and duplicate requests are no-ops.
func (w *World) DestroyDeferred(e core.Entity) {
	if !w.registry.IsValid(e) {
		w.log.Debug("deferred destroy of stale handle ignored", zap.Stringer("entity", e))
		return
	}

	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	if _, dup := w.pendingSet[e]; dup {
		w.log.Debug("duplicate deferred destroy ignored", zap.Stringer("entity", e))
		return
	}
	w.pendingSet[e] = struct{}{}
	w.pendingDestroy = append(w.pendingDestroy, e)
}

// PendingDestroys returns the number of entities awaiting the end-of-tick
// destroy pass.
func (w *World) PendingDestroys() int {
	w.pendingMu.Lock()
	defer w.pendingMu.Unlock()
	return len(w.pendingDestroy)
}

// applyDeferredDestroys destroys everything marked this tick, in request
// order. Runs inside the tick pipeline after the event flush; marks made
// during flush delivery are included.
func (w *World) applyDeferredDestroys() {
	w.pendingMu.Lock()
	pending := w.pendingDestroy
	w.pendingDestroy = nil
	w.pendingSet = make(map[core.Entity]struct{})
	w.pendingMu.Unlock()

	for _, e := range pending {
		w.DestroyEntity(e)
	}
}

// IsValid reports whether the handle refers to a live entity.
func (w *World) IsValid(e core.Entity) bool {
	return w.registry.IsValid(e)
}

// Alive returns the number of live entities.
func (w *World) Alive() int {
	return w.registry.Alive()
}

// EachEntity calls fn for every live entity (snapshot semantics).
func (w *World) EachEntity(fn func(core.Entity)) {
	w.registry.Each(fn)
}

// AddSystem schedules a system, keeping priority order.
func (w *World) AddSystem(system System) {
	w.scheduler.Add(system)
}

// RegisterSweeper adds end-of-tick cleanup work (see Scheduler.Tick).
func (w *World) RegisterSweeper(s Sweeper) {
	w.scheduler.AddSweeper(s)
}

// Tick advances the simulation by dt: time resource, systems in order, event
// flush, deferred destruction, sweepers. Ticks are serialized; a second
// caller blocks until the current tick completes.
func (w *World) Tick(dt time.Duration) {
	w.updateMu.Lock()
	defer w.updateMu.Unlock()

	w.Time.Advance(dt)
	w.scheduler.Tick(w, dt)
}

// Clear removes all entities, components and pending work, keeping
// registered stores, systems and subscriptions in place.
func (w *World) Clear() {
	w.updateMu.Lock()
	defer w.updateMu.Unlock()

	w.pendingMu.Lock()
	w.pendingDestroy = nil
	w.pendingSet = make(map[core.Entity]struct{})
	w.pendingMu.Unlock()

	for _, store := range w.allStores() {
		store.Clear()
	}
	w.registry.Clear()
}
