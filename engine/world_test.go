package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/scenecore/core"
)

func TestWorldDestroyRemovesAllComponents(t *testing.T) {
	w := NewWorld(nil)
	healths := GetStore[health](w)
	tags := GetStore[tag](w)

	e := w.CreateEntity()
	healths.Set(e, health{Current: 10})
	tags.Set(e, tag{})

	require.True(t, w.DestroyEntity(e))
	assert.False(t, w.IsValid(e))
	assert.False(t, healths.Has(e))
	assert.False(t, tags.Has(e))
	assert.Equal(t, 0, w.Alive())
}

func TestWorldDestroyStaleHandleIsNoop(t *testing.T) {
	w := NewWorld(nil)
	healths := GetStore[health](w)

	old := w.CreateEntity()
	require.True(t, w.DestroyEntity(old))

	reused := w.CreateEntity()
	healths.Set(reused, health{Current: 1})

	// The stale handle shares the slot index but must not reach the new entity
	assert.False(t, w.DestroyEntity(old))
	assert.True(t, w.IsValid(reused))
	assert.True(t, healths.Has(reused))
}

func TestWorldStaleHandleReadsMiss(t *testing.T) {
	w := NewWorld(nil)
	healths := GetStore[health](w)

	e := w.CreateEntity()
	healths.Set(e, health{Current: 4})
	w.DestroyEntity(e)

	_, ok := healths.Get(e)
	assert.False(t, ok)
	assert.False(t, healths.Has(e))
}

func TestWorldDeferredDestroyDedupes(t *testing.T) {
	w := NewWorld(nil)
	e := w.CreateEntity()

	w.DestroyDeferred(e)
	w.DestroyDeferred(e)
	assert.Equal(t, 1, w.PendingDestroys())

	w.DestroyDeferred(core.MakeEntity(99, 0))
	assert.Equal(t, 1, w.PendingDestroys(), "stale handles are not queued")

	w.Tick(time.Millisecond)
	assert.False(t, w.IsValid(e))
	assert.Equal(t, 0, w.PendingDestroys())
}

func TestWorldGetStoreReturnsSameInstance(t *testing.T) {
	w := NewWorld(nil)
	first := GetStore[health](w)
	second := GetStore[health](w)
	assert.Same(t, first, second)

	other := GetStore[tag](w)
	assert.Equal(t, 2, w.StoreCount())
	assert.NotEqual(t, first.Name(), other.Name())
}

func TestWorldEachStorePreservesRegistrationOrder(t *testing.T) {
	w := NewWorld(nil)
	GetStore[health](w)
	GetStore[tag](w)
	GetStore[label](w)

	var names []string
	w.EachStore(func(s AnyStore) {
		names = append(names, s.Name())
	})
	require.Len(t, names, 3)
	assert.Equal(t, GetStore[health](w).Name(), names[0])
	assert.Equal(t, GetStore[label](w).Name(), names[2])
}

func TestWorldClearKeepsStoresAndSystems(t *testing.T) {
	w := NewWorld(nil)
	healths := GetStore[health](w)
	w.AddSystem(&recordingSystem{name: "noop", priority: 0})

	e := w.CreateEntity()
	healths.Set(e, health{Current: 2})
	w.DestroyDeferred(e)

	w.Clear()
	assert.Equal(t, 0, w.Alive())
	assert.Equal(t, 0, healths.Count())
	assert.Equal(t, 0, w.PendingDestroys())
	assert.Equal(t, 1, w.StoreCount(), "registered stores survive a clear")
	assert.Len(t, w.Scheduler().Systems(), 1)
	assert.False(t, w.IsValid(e))
}
