package spawn

import (
	"errors"

	"github.com/lixenwraith/scenecore/core"
)

var (
	// ErrUnknownTemplate is returned when acquiring from an unregistered name.
	ErrUnknownTemplate = errors.New("unknown spawn template")

	// ErrDuplicateTemplate is returned when registering a name twice.
	ErrDuplicateTemplate = errors.New("spawn template already registered")

	// ErrPoolExhausted is returned when the pool is empty and its
	// configuration forbids growing. Callers decide retry or backoff.
	ErrPoolExhausted = errors.New("spawn pool exhausted")
)

// Config tunes one entity pool.
type Config struct {
	// InitialSize is the number of entities pre-created when WarmOnInit is set
	InitialSize int `toml:"initial_size"`

	// MaxSize is the hard cap on pool entities, active plus free (0 = unlimited).
	// An acquire against a full, empty pool fails with ErrPoolExhausted.
	MaxSize int `toml:"max_size"`

	// GrowthSize is how many entities an expansion creates at once
	GrowthSize int `toml:"growth_size"`

	// AutoExpand allows the pool to grow past the warmed set when empty.
	// When false an empty pool behaves as capped regardless of MaxSize.
	AutoExpand bool `toml:"auto_expand"`

	// WarmOnInit pre-creates InitialSize entities at registration
	WarmOnInit bool `toml:"warm_on_init"`
}

// DefaultConfig returns the pool tuning used when a zero Config is given.
func DefaultConfig() Config {
	return Config{
		InitialSize: 8,
		MaxSize:     0,
		GrowthSize:  4,
		AutoExpand:  true,
		WarmOnInit:  true,
	}
}

func (c Config) normalized() Config {
	if c.GrowthSize < 1 {
		c.GrowthSize = 1
	}
	if c.InitialSize < 0 {
		c.InitialSize = 0
	}
	return c
}

// Stats is the runtime bookkeeping of one pool.
type Stats struct {
	TotalCreated    int // entities ever created for this pool
	CurrentlyActive int // acquired and not yet released
	CurrentlyPooled int // sitting in the free list
	PeakActive      int // maximum simultaneous active
	AcquireCount    int
	ReleaseCount    int
	ExpandCount     int
	ExhaustedCount  int // acquires that failed with ErrPoolExhausted
}

// pool holds the per-template state. All access is serialized by the
// manager's mutex.
type pool struct {
	name      string
	cfg       Config
	blueprint *Blueprint

	free   []core.Entity // FIFO
	active map[core.Entity]uint64
	nextID uint64

	stats Stats
}

func newPool(name string, cfg Config, bp *Blueprint) *pool {
	return &pool{
		name:      name,
		cfg:       cfg.normalized(),
		blueprint: bp,
		active:    make(map[core.Entity]uint64),
	}
}

func (p *pool) total() int {
	return len(p.free) + len(p.active)
}

// canGrow reports whether another entity may be created for this pool.
func (p *pool) canGrow() bool {
	if p.cfg.MaxSize > 0 && p.total() >= p.cfg.MaxSize {
		return false
	}
	return true
}

// room returns how many entities may still be created (bounded by n).
func (p *pool) room(n int) int {
	if p.cfg.MaxSize <= 0 {
		return n
	}
	left := p.cfg.MaxSize - p.total()
	if left < n {
		n = left
	}
	if n < 0 {
		return 0
	}
	return n
}

func (p *pool) dropFree(e core.Entity) bool {
	for i, fe := range p.free {
		if fe == e {
			p.free = append(p.free[:i], p.free[i+1:]...)
			return true
		}
	}
	return false
}
