// Package jobs runs background work off the simulation thread.
//
// Workers must never touch component storage; the only way results reach the
// simulation is the dispatcher's enqueue path, delivered at the next tick's
// flush. This keeps the world single-writer per tick without locking any
// store.
package jobs

import (
	"fmt"
	"time"

	cmap "github.com/orcaman/concurrent-map/v2"
	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/lixenwraith/scenecore/event"
	"github.com/lixenwraith/scenecore/parameter"
)

// Completed is enqueued on the dispatcher when a job finishes successfully.
type Completed struct {
	// Name is the submit name of the job
	Name string

	// Result is whatever the task returned; consumers assert the type
	Result any
}

// Failed is enqueued on the dispatcher when a job returns an error.
type Failed struct {
	Name string
	Err  error
}

func init() {
	event.RegisterName("JobCompleted", Completed{})
	event.RegisterName("JobFailed", Failed{})
}

// Runner owns a worker pool and the bookkeeping of in-flight jobs.
type Runner struct {
	pool       *ants.Pool
	dispatcher *event.Dispatcher
	inflight   cmap.ConcurrentMap[string, time.Time]
	log        *zap.Logger
}

// NewRunner creates a runner with the given worker count (<= 0 uses the
// default). Submit blocks when every worker is busy.
func NewRunner(workers int, d *event.Dispatcher, log *zap.Logger) (*Runner, error) {
	if workers <= 0 {
		workers = parameter.DefaultJobWorkers
	}
	if log == nil {
		log = zap.NewNop()
	}

	pool, err := ants.NewPool(workers)
	if err != nil {
		return nil, fmt.Errorf("jobs: create pool: %w", err)
	}

	return &Runner{
		pool:       pool,
		dispatcher: d,
		inflight:   cmap.New[time.Time](),
		log:        log.Named("jobs"),
	}, nil
}

// Submit schedules the task on a worker. On completion a Completed or
// Failed event is enqueued on the dispatcher, so the simulation sees the
// result at the next flush point, never mid-tick.
func (r *Runner) Submit(name string, task func() (any, error)) error {
	r.inflight.Set(name, time.Now())

	err := r.pool.Submit(func() {
		defer r.inflight.Remove(name)

		result, err := task()
		if err != nil {
			r.log.Warn("job failed", zap.String("job", name), zap.Error(err))
			event.Enqueue(r.dispatcher, Failed{Name: name, Err: err})
			return
		}
		event.Enqueue(r.dispatcher, Completed{Name: name, Result: result})
	})
	if err != nil {
		r.inflight.Remove(name)
		return fmt.Errorf("jobs: submit %q: %w", name, err)
	}
	return nil
}

// InFlight returns the number of jobs currently running or queued.
func (r *Runner) InFlight() int {
	return r.inflight.Count()
}

// InFlightNames returns the names of the jobs currently tracked.
func (r *Runner) InFlightNames() []string {
	return r.inflight.Keys()
}

// Workers returns the pool's worker capacity.
func (r *Runner) Workers() int {
	return r.pool.Cap()
}

// Close releases the worker pool. Pending tasks are abandoned.
func (r *Runner) Close() {
	r.pool.Release()
}
