package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/scenecore/event"
)

type recordingSystem struct {
	name     string
	priority int
	update   func(w *World, dt time.Duration)
}

func (s *recordingSystem) Name() string  { return s.name }
func (s *recordingSystem) Priority() int { return s.priority }
func (s *recordingSystem) Update(w *World, dt time.Duration) {
	if s.update != nil {
		s.update(w, dt)
	}
}

type recordingSweeper struct {
	fn func()
}

func (s *recordingSweeper) Sweep() { s.fn() }

func TestSchedulerOrdersByPriority(t *testing.T) {
	w := NewWorld(nil)
	var order []string
	record := func(name string) func(*World, time.Duration) {
		return func(*World, time.Duration) { order = append(order, name) }
	}

	w.AddSystem(&recordingSystem{name: "late", priority: 900, update: record("late")})
	w.AddSystem(&recordingSystem{name: "early", priority: 0, update: record("early")})
	w.AddSystem(&recordingSystem{name: "mid", priority: 100, update: record("mid")})

	w.Tick(time.Millisecond)
	assert.Equal(t, []string{"early", "mid", "late"}, order)
}

func TestSchedulerRemoveByName(t *testing.T) {
	s := NewScheduler()
	s.Add(&recordingSystem{name: "a", priority: 1})
	s.Add(&recordingSystem{name: "b", priority: 2})

	require.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	require.Len(t, s.Systems(), 1)
	assert.Equal(t, "b", s.Systems()[0].Name())
}

func TestTickFlushesAfterSystems(t *testing.T) {
	type ping struct{ N int }

	w := NewWorld(nil)
	var delivered []int
	event.Subscribe(w.Dispatcher(), func(p ping) {
		delivered = append(delivered, p.N)
	})

	var depthDuringLastSystem int
	w.AddSystem(&recordingSystem{name: "producer", priority: 0, update: func(w *World, _ time.Duration) {
		event.Enqueue(w.Dispatcher(), ping{N: 1})
		event.Enqueue(w.Dispatcher(), ping{N: 2})
	}})
	w.AddSystem(&recordingSystem{name: "observer", priority: 100, update: func(w *World, _ time.Duration) {
		depthDuringLastSystem = w.Dispatcher().Pending()
		assert.Empty(t, delivered, "no delivery while systems are still running")
	}})

	w.Tick(time.Millisecond)

	assert.Equal(t, 2, depthDuringLastSystem)
	assert.Equal(t, []int{1, 2}, delivered)
	assert.Equal(t, 0, w.Dispatcher().Pending())
}

func TestTickDestroysAfterFlushThenSweeps(t *testing.T) {
	type died struct{}

	w := NewWorld(nil)
	victim := w.CreateEntity()

	var stages []string
	event.Subscribe(w.Dispatcher(), func(died) {
		stages = append(stages, "flush")
		assert.True(t, w.IsValid(victim), "deferred destroy applies after the flush, not during")
	})
	w.AddSystem(&recordingSystem{name: "killer", priority: 0, update: func(w *World, _ time.Duration) {
		stages = append(stages, "system")
		w.DestroyDeferred(victim)
		event.Enqueue(w.Dispatcher(), died{})
		assert.True(t, w.IsValid(victim), "entity stays live for the rest of the tick")
	}})
	w.RegisterSweeper(&recordingSweeper{fn: func() {
		stages = append(stages, "sweep")
		assert.False(t, w.IsValid(victim), "destroy pass precedes sweepers")
	}})

	w.Tick(time.Millisecond)

	assert.Equal(t, []string{"system", "flush", "sweep"}, stages)
	assert.False(t, w.IsValid(victim))
}

func TestTimeResourceAdvances(t *testing.T) {
	w := NewWorld(nil)
	w.Tick(10 * time.Millisecond)
	w.Tick(15 * time.Millisecond)

	assert.Equal(t, int64(2), w.Time.Tick)
	assert.Equal(t, 15*time.Millisecond, w.Time.Delta)
	assert.Equal(t, 25*time.Millisecond, w.Time.Elapsed)
}
