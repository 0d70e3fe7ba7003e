// Package event provides the typed pub/sub dispatcher shared by all game
// systems.
//
// Systems communicate by enqueueing events instead of calling each other or
// mutating shared flags. Enqueued events are held until the flush point at
// the end of the tick, after every system has run; nothing is delivered
// reentrantly into a running system. Publish exists for the rare case where
// synchronous delivery is wanted (startup wiring, tests).
//
// The enqueue path is the single locked entry point into the simulation:
// background workers marshal their results back by enqueueing, never by
// touching component storage.
package event

import (
	"reflect"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/lixenwraith/scenecore/parameter"
)

// Subscription is the handle returned by Subscribe, used to unsubscribe.
// The zero value is inert.
type Subscription struct {
	key reflect.Type
	id  uint64
}

// listener is one subscription record: callback plus liveness token.
// Delivery iterates snapshots and checks the token, so unsubscribing never
// mutates a collection mid-iteration.
type listener struct {
	id    uint64
	alive atomic.Bool
	fn    func(any)
}

// queuedEvent carries a deferred payload together with the closure that
// knows how to redeliver it. Owned by the dispatcher until flushed.
type queuedEvent struct {
	deliver func()
}

// Dispatcher is a typed pub/sub hub with a deferred queue flushed once per
// tick in FIFO enqueue order across all event types.
type Dispatcher struct {
	subMu     sync.RWMutex
	listeners map[reflect.Type][]*listener
	nextID    atomic.Uint64

	queueMu sync.Mutex
	pending []queuedEvent

	log *zap.Logger
}

// NewDispatcher creates an empty dispatcher.
func NewDispatcher(log *zap.Logger) *Dispatcher {
	if log == nil {
		log = zap.NewNop()
	}
	return &Dispatcher{
		listeners: make(map[reflect.Type][]*listener),
		log:       log,
	}
}

// Subscribe registers fn for events of type T and returns its handle.
// Listeners for one type are invoked in subscription order.
func Subscribe[T any](d *Dispatcher, fn func(T)) Subscription {
	key := reflect.TypeOf((*T)(nil)).Elem()

	rec := &listener{
		id: d.nextID.Add(1),
		fn: func(payload any) {
			fn(payload.(T))
		},
	}
	rec.alive.Store(true)

	d.subMu.Lock()
	d.listeners[key] = append(d.listeners[key], rec)
	d.subMu.Unlock()

	return Subscription{key: key, id: rec.id}
}

// Unsubscribe invalidates the subscription. The listener is guaranteed not
// to run for events delivered after Unsubscribe returns; a flush already in
// progress may still skip it mid-batch. Unknown or reused handles are no-ops.
func (d *Dispatcher) Unsubscribe(sub Subscription) {
	if sub.key == nil {
		return
	}

	d.subMu.Lock()
	defer d.subMu.Unlock()

	records := d.listeners[sub.key]
	for i, rec := range records {
		if rec.id == sub.id {
			rec.alive.Store(false)
			d.listeners[sub.key] = append(records[:i], records[i+1:]...)
			return
		}
	}
}

// Publish delivers the event synchronously to current listeners, in
// subscription order. Publishing with zero listeners is a silent no-op.
func Publish[T any](d *Dispatcher, payload T) {
	key := reflect.TypeOf((*T)(nil)).Elem()
	d.dispatch(key, payload)
}

// Enqueue defers the event until the next Flush. Safe to call from any
// thread; this is the one locked entry point for cross-thread input.
func Enqueue[T any](d *Dispatcher, payload T) {
	key := reflect.TypeOf((*T)(nil)).Elem()

	d.queueMu.Lock()
	d.pending = append(d.pending, queuedEvent{
		deliver: func() {
			d.dispatch(key, payload)
		},
	})
	depth := len(d.pending)
	d.queueMu.Unlock()

	if depth == parameter.PendingEventWarn {
		d.log.Warn("pending event backlog, flush may be stalled",
			zap.Int("depth", depth),
			zap.String("type", NameOf(key)),
		)
	}
}

// Flush swaps the pending queue under a short critical section, then
// delivers each queued event outside the lock in FIFO enqueue order across
// types. Listeners may enqueue further events during delivery; those land in
// the next flush. Returns the number of events delivered.
func (d *Dispatcher) Flush() int {
	d.queueMu.Lock()
	batch := d.pending
	d.pending = nil
	d.queueMu.Unlock()

	for _, q := range batch {
		q.deliver()
	}
	return len(batch)
}

// Pending returns the current depth of the deferred queue.
func (d *Dispatcher) Pending() int {
	d.queueMu.Lock()
	defer d.queueMu.Unlock()
	return len(d.pending)
}

// ListenerCount returns the number of live listeners for event type T.
func ListenerCount[T any](d *Dispatcher) int {
	key := reflect.TypeOf((*T)(nil)).Elem()
	d.subMu.RLock()
	defer d.subMu.RUnlock()
	return len(d.listeners[key])
}

// dispatch invokes every live listener for key with the payload.
// A panicking listener is logged and isolated; remaining listeners still run.
func (d *Dispatcher) dispatch(key reflect.Type, payload any) {
	d.subMu.RLock()
	records := d.listeners[key]
	snapshot := make([]*listener, len(records))
	copy(snapshot, records)
	d.subMu.RUnlock()

	for _, rec := range snapshot {
		if !rec.alive.Load() {
			continue
		}
		d.invoke(key, rec, payload)
	}
}

func (d *Dispatcher) invoke(key reflect.Type, rec *listener, payload any) {
	defer func() {
		if r := recover(); r != nil {
			d.log.Error("event listener panic",
				zap.String("type", NameOf(key)),
				zap.Uint64("listener", rec.id),
				zap.Any("panic", r),
			)
		}
	}()
	rec.fn(payload)
}
