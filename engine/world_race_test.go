package engine

import (
	"sync"
	"testing"
	"time"

	"github.com/lixenwraith/scenecore/core"
	"github.com/lixenwraith/scenecore/event"
)

// Exercises the cross-thread surface under the race detector: the tick loop
// on one goroutine, readers and enqueuers on others.
func TestWorldConcurrentAccess(t *testing.T) {
	type sample struct{ N int }

	w := NewWorld(nil)
	healths := GetStore[health](w)
	w.AddSystem(&recordingSystem{name: "churn", priority: 0, update: func(w *World, _ time.Duration) {
		e := w.CreateEntity()
		healths.Set(e, health{Current: 1})
		w.DestroyDeferred(e)
	}})
	event.Subscribe(w.Dispatcher(), func(sample) {})

	c := NewClock(w, time.Millisecond)
	c.Start()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				event.Enqueue(w.Dispatcher(), sample{N: i})
				_ = w.Alive()
				_ = healths.Count()
			}
		}()
	}
	wg.Wait()

	c.Stop()
	w.Dispatcher().Flush()
}

func TestStoreConcurrentReadWrite(t *testing.T) {
	s := NewStore[health]("health")

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func(base uint32) {
			defer wg.Done()
			for i := uint32(0); i < 200; i++ {
				e := core.MakeEntity(base*1000+i+1, 0)
				s.Set(e, health{Current: int(i)})
				s.Get(e)
				s.Remove(e)
			}
		}(uint32(g))
	}
	wg.Wait()
}
