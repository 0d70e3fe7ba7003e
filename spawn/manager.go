// Package spawn implements pooled entity templates: prefab blueprints,
// acquire/release reuse, and the deferred destruction sweep that runs once
// per tick after the event flush.
//
// Pooling trades generation churn for reuse of component-storage
// allocations: releasing an entity back to its pool clears the
// blueprint-owned components but keeps the registry slot alive, so the next
// acquire reuses both the handle and the storage map entries. Destroying a
// pooled entity (deferred path) gives the slot back to the registry like any
// other entity.
package spawn

import (
	"fmt"
	"sync"

	"go.uber.org/zap"

	"github.com/lixenwraith/scenecore/component"
	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/engine"
)

// Manager owns the template table and every pool built from it.
// It registers itself as an end-of-tick sweeper with the world.
type Manager struct {
	world  *engine.World
	pooled *engine.Store[component.Pooled]
	log    *zap.Logger

	mu    sync.Mutex
	pools map[string]*pool

	pendingMu  sync.Mutex
	pending    []core.Entity
	pendingSet map[core.Entity]struct{}
}

// NewManager creates a spawn manager bound to the world and hooks its sweep
// into the world's tick pipeline.
func NewManager(w *engine.World) *Manager {
	m := &Manager{
		world:      w,
		pooled:     engine.GetStore[component.Pooled](w),
		log:        w.Logger().Named("spawn"),
		pools:      make(map[string]*pool),
		pendingSet: make(map[core.Entity]struct{}),
	}
	w.RegisterSweeper(m)
	return m
}

// RegisterTemplate adds a named prefab blueprint with its pool tuning.
// A zero Config gets DefaultConfig. Warms the pool when configured to.
func (m *Manager) RegisterTemplate(name string, cfg Config, bp *Blueprint) error {
	if bp == nil {
		return fmt.Errorf("register template %q: nil blueprint", name)
	}
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}

	m.mu.Lock()
	if _, exists := m.pools[name]; exists {
		m.mu.Unlock()
		return fmt.Errorf("register template %q: %w", name, ErrDuplicateTemplate)
	}
	p := newPool(name, cfg, bp)
	m.pools[name] = p
	m.mu.Unlock()

	if p.cfg.WarmOnInit && p.cfg.InitialSize > 0 {
		m.Warm(name, p.cfg.InitialSize)
	}

	m.log.Info("template registered",
		zap.String("template", name),
		zap.Int("components", bp.Len()),
		zap.Int("max_size", p.cfg.MaxSize),
	)
	return nil
}

// Acquire pulls a free pooled entity for the template, or creates one when
// allowed, applies the blueprint's component values and marks it active.
func (m *Manager) Acquire(name string) (core.Entity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pools[name]
	if !ok {
		return core.Nil, fmt.Errorf("acquire %q: %w", name, ErrUnknownTemplate)
	}

	if len(p.free) == 0 {
		if !p.cfg.AutoExpand || !p.canGrow() {
			p.stats.ExhaustedCount++
			m.log.Warn("pool exhausted",
				zap.String("template", name),
				zap.Int("active", len(p.active)),
				zap.Int("max_size", p.cfg.MaxSize),
			)
			return core.Nil, fmt.Errorf("acquire %q: %w", name, ErrPoolExhausted)
		}
		m.expandLocked(p, p.room(p.cfg.GrowthSize))
	}

	e := p.free[0]
	p.free = p.free[1:]

	p.nextID++
	p.active[e] = p.nextID
	p.blueprint.Apply(m.world, e)
	m.pooled.Set(e, component.Pooled{
		Pool:      name,
		Active:    true,
		AcquireID: p.nextID,
	})

	p.stats.AcquireCount++
	p.stats.CurrentlyActive = len(p.active)
	p.stats.CurrentlyPooled = len(p.free)
	if len(p.active) > p.stats.PeakActive {
		p.stats.PeakActive = len(p.active)
	}
	return e, nil
}

// Release returns an active pooled entity to its pool: blueprint-owned
// components are cleared, the registry slot and remaining components stay.
// Stale handles return engine.ErrStaleHandle; double release and foreign
// entities are logged no-ops.
func (m *Manager) Release(e core.Entity) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.world.IsValid(e) {
		m.log.Warn("release of stale entity ignored", zap.Stringer("entity", e))
		return fmt.Errorf("release %s: %w", e, engine.ErrStaleHandle)
	}
	tag, ok := m.pooled.Get(e)
	if !ok {
		m.log.Warn("release of non-pooled entity ignored", zap.Stringer("entity", e))
		return nil
	}
	p, ok := m.pools[tag.Pool]
	if !ok {
		m.log.Warn("release for unknown pool ignored", zap.Stringer("entity", e), zap.String("template", tag.Pool))
		return nil
	}
	if _, isActive := p.active[e]; !isActive {
		m.log.Warn("double release ignored", zap.Stringer("entity", e), zap.String("template", tag.Pool))
		return nil
	}

	delete(p.active, e)
	p.blueprint.ClearOwned(m.world, e)
	tag.Active = false
	m.pooled.Set(e, tag)
	p.free = append(p.free, e)

	p.stats.ReleaseCount++
	p.stats.CurrentlyActive = len(p.active)
	p.stats.CurrentlyPooled = len(p.free)
	return nil
}

// DestroyDeferred marks a pooled entity for real destruction (registry slot
// included) at the end of the current tick, after the event flush. The
// mandatory path when destruction is requested during system iteration.
// Duplicate or stale requests are logged no-ops.
func (m *Manager) DestroyDeferred(e core.Entity) {
	if !m.world.IsValid(e) {
		m.log.Warn("deferred destroy of stale entity ignored", zap.Stringer("entity", e))
		return
	}

	m.pendingMu.Lock()
	defer m.pendingMu.Unlock()
	if _, dup := m.pendingSet[e]; dup {
		m.log.Debug("duplicate deferred destroy ignored", zap.Stringer("entity", e))
		return
	}
	m.pendingSet[e] = struct{}{}
	m.pending = append(m.pending, e)
}

// Sweep processes the pending-destroy set, then prunes bookkeeping for pool
// members destroyed behind the manager's back (a pooled entity handed to the
// world's deferred destroy, e.g. by the death system). Runs once per tick
// from the scheduler, after the world's own destroy pass; also callable
// directly in tests.
func (m *Manager) Sweep() {
	m.pendingMu.Lock()
	pending := m.pending
	m.pending = nil
	m.pendingSet = make(map[core.Entity]struct{})
	m.pendingMu.Unlock()

	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range pending {
		m.destroyLocked(e)
	}
	for _, p := range m.pools {
		m.pruneLocked(p)
	}
}

// pruneLocked drops active and free entries whose handles are no longer
// valid, so externally destroyed members neither inflate the stats nor hold a
// capped pool at its limit.
func (m *Manager) pruneLocked(p *pool) {
	pruned := 0
	for e := range p.active {
		if !m.world.IsValid(e) {
			delete(p.active, e)
			pruned++
		}
	}
	write := 0
	for _, e := range p.free {
		if m.world.IsValid(e) {
			p.free[write] = e
			write++
		} else {
			pruned++
		}
	}
	p.free = p.free[:write]

	if pruned > 0 {
		p.stats.CurrentlyActive = len(p.active)
		p.stats.CurrentlyPooled = len(p.free)
		m.log.Debug("pruned externally destroyed pool members",
			zap.String("template", p.name),
			zap.Int("count", pruned),
		)
	}
}

func (m *Manager) destroyLocked(e core.Entity) {
	if tag, ok := m.pooled.Get(e); ok {
		if p, exists := m.pools[tag.Pool]; exists {
			delete(p.active, e)
			p.dropFree(e)
			p.stats.CurrentlyActive = len(p.active)
			p.stats.CurrentlyPooled = len(p.free)
		}
	}
	m.world.DestroyEntity(e)
}

// Warm pre-creates up to count free entities for the template, respecting
// the pool's hard cap.
func (m *Manager) Warm(name string, count int) int {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pools[name]
	if !ok {
		return 0
	}
	return m.expandLocked(p, p.room(count))
}

// expandLocked creates count fresh entities into the free list.
// Pooled tag only; blueprint values are applied at acquire time.
func (m *Manager) expandLocked(p *pool, count int) int {
	for i := 0; i < count; i++ {
		e := m.world.CreateEntity()
		m.pooled.Set(e, component.Pooled{Pool: p.name, Active: false})
		p.free = append(p.free, e)
		p.stats.TotalCreated++
	}
	if count > 0 {
		p.stats.ExpandCount++
		p.stats.CurrentlyPooled = len(p.free)
	}
	return count
}

// Owns reports whether the entity is an active member of the named pool.
func (m *Manager) Owns(name string, e core.Entity) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pools[name]
	if !ok {
		return false
	}
	_, isActive := p.active[e]
	return isActive
}

// Stats returns a copy of the pool's runtime statistics.
func (m *Manager) Stats(name string) (Stats, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pools[name]
	if !ok {
		return Stats{}, false
	}
	return p.stats, true
}

// ClearPooled destroys the free entities of the template; active entities
// are untouched.
func (m *Manager) ClearPooled(name string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.pools[name]
	if !ok {
		return
	}
	for _, e := range p.free {
		m.world.DestroyEntity(e)
	}
	p.free = p.free[:0]
	p.stats.CurrentlyPooled = 0
}

// Templates returns the registered template names.
func (m *Manager) Templates() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	names := make([]string, 0, len(m.pools))
	for name := range m.pools {
		names = append(names, name)
	}
	return names
}
