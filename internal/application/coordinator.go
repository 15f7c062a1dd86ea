package application

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// State is the lifecycle state of the asset index
type State int

const (
	StateUninitialized State = iota
	StateLoading
	StateReady
	StateEmpty
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateEmpty:
		return "empty"
	default:
		return "unknown"
	}
}

// snapshot is one installed index. It is replaced wholesale, never mutated;
// the memo belongs to it and is dropped with it.
type snapshot struct {
	index       *domain.Index
	mappingPath string
	generation  uint64
	loadedAt    time.Time
	memo        *lru.Cache[string, domain.Resolution]
}

func (s *snapshot) resolve(token string) domain.Resolution {
	if s.memo == nil {
		return s.index.Resolve(token)
	}
	if r, ok := s.memo.Get(token); ok {
		return r
	}
	r := s.index.Resolve(token)
	s.memo.Add(token, r)
	return r
}

// Coordinator owns the current asset index for one project root. It
// reloads on mapping events, coalesces events that arrive mid-load into a
// single follow-up load, and makes resolutions issued during a load wait
// for it to finish.
type Coordinator struct {
	root      string
	source    ports.MappingSource
	logger    *slog.Logger
	cacheSize int

	current atomic.Pointer[snapshot]

	mu         sync.Mutex
	state      State
	epoch      uint64        // bumped on delete; loads from an older epoch are discarded
	pending    bool          // a change arrived while loading
	done       chan struct{} // closed when the in-flight load finishes
	generation uint64
	ctx        context.Context
}

// CoordinatorOptions configures a Coordinator
type CoordinatorOptions struct {
	Root      string
	Source    ports.MappingSource
	Logger    *slog.Logger
	CacheSize int // Per-snapshot resolution memo; 0 disables it
}

// NewCoordinator creates a coordinator in the Uninitialized state.
// Call Start to run the first load.
func NewCoordinator(opts CoordinatorOptions) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	c := &Coordinator{
		root:      opts.Root,
		source:    opts.Source,
		logger:    logger,
		cacheSize: opts.CacheSize,
		done:      make(chan struct{}),
		ctx:       context.Background(),
	}
	c.current.Store(c.newSnapshot(domain.EmptyIndex(), "", 0))
	return c
}

// Start begins the first load. ctx bounds every load the coordinator runs.
// Calling Start more than once is an invalid operation.
func (c *Coordinator) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateUninitialized {
		return &StateError{Op: "start", State: c.state}
	}
	c.ctx = ctx
	c.beginLoadLocked()
	return nil
}

// HandleEvent applies a mapping change notification
func (c *Coordinator) HandleEvent(ev domain.MappingEvent) {
	switch ev.Kind {
	case domain.MappingChanged:
		c.Reload(false)
	case domain.MappingCreated:
		c.Reload(true)
	case domain.MappingDeleted:
		c.Clear()
	}
	c.logger.Debug("mapping event", "kind", ev.Kind, "path", ev.Path)
}

// Reload requests a fresh load. A request while a load is in flight is
// folded into one follow-up load. Without force, a reload is ignored in the
// Empty state, which only a creation event leaves.
func (c *Coordinator) Reload(force bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	switch c.state {
	case StateUninitialized:
		return
	case StateLoading:
		c.pending = true
	case StateEmpty:
		if !force {
			return
		}
		c.beginLoadLocked()
	case StateReady:
		c.beginLoadLocked()
	}
}

// Clear drops the index after the mapping document was deleted. Any
// in-flight load is abandoned and its waiters released with the empty index.
func (c *Coordinator) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state == StateUninitialized {
		return
	}

	c.epoch++
	c.pending = false
	c.generation++
	c.current.Store(c.newSnapshot(domain.EmptyIndex(), "", c.generation))

	if c.state == StateLoading {
		close(c.done)
		c.done = make(chan struct{})
	}
	c.state = StateEmpty
	c.logger.Info("asset index cleared", "root", c.root)
}

// Wait blocks until no load is in flight or ctx is done
func (c *Coordinator) Wait(ctx context.Context) error {
	c.mu.Lock()
	busy := c.state == StateUninitialized || c.state == StateLoading
	done := c.done
	c.mu.Unlock()

	if !busy {
		return nil
	}

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Resolve resolves a reference token against the current index, waiting
// first for any in-flight load. The only error is ctx ending the wait.
func (c *Coordinator) Resolve(ctx context.Context, token string) (domain.Resolution, error) {
	if c == nil {
		return domain.Unresolved, ErrNoCoordinator
	}
	if err := c.Wait(ctx); err != nil {
		return domain.Unresolved, err
	}
	return c.current.Load().resolve(token), nil
}

// Index returns the current index after waiting for any in-flight load
func (c *Coordinator) Index(ctx context.Context) (*domain.Index, error) {
	if c == nil {
		return nil, ErrNoCoordinator
	}
	if err := c.Wait(ctx); err != nil {
		return nil, err
	}
	return c.current.Load().index, nil
}

// Root returns the project root the coordinator serves
func (c *Coordinator) Root() string {
	return c.root
}

// State returns the current lifecycle state
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Generation counts installed indexes, including cleared ones
func (c *Coordinator) Generation() uint64 {
	return c.current.Load().generation
}

// MappingPath returns the document the current index was built from, or ""
func (c *Coordinator) MappingPath() string {
	return c.current.Load().mappingPath
}

// LoadedAt returns when the current index was installed
func (c *Coordinator) LoadedAt() time.Time {
	return c.current.Load().loadedAt
}

// beginLoadLocked moves to Loading and starts a load goroutine.
// c.mu must be held.
func (c *Coordinator) beginLoadLocked() {
	c.state = StateLoading
	c.pending = false
	go c.run(c.epoch, c.done)
}

func (c *Coordinator) run(epoch uint64, done chan struct{}) {
	for {
		start := time.Now()
		idx, mappingPath := c.load()

		c.mu.Lock()
		if epoch != c.epoch {
			// Cleared while loading; Clear already released the waiters
			c.mu.Unlock()
			c.logger.Info("discarded stale asset load", "mapping", mappingPath)
			return
		}

		c.generation++
		c.current.Store(c.newSnapshot(idx, mappingPath, c.generation))
		c.logger.Info("asset index loaded",
			"mapping", mappingPath,
			"entries", idx.Len(),
			"generation", c.generation,
			"elapsed", time.Since(start),
		)

		close(done)
		done = make(chan struct{})
		c.done = done

		if c.pending {
			c.pending = false
			c.mu.Unlock()
			continue
		}

		c.state = StateReady
		c.mu.Unlock()
		return
	}
}

// load runs locate → read → parse → build. Every failure collapses to an
// empty index.
func (c *Coordinator) load() (*domain.Index, string) {
	if c.root == "" || c.source == nil {
		return domain.EmptyIndex(), ""
	}

	mappingPath, ok := c.source.Locate(c.ctx, c.root)
	if !ok {
		c.logger.Info("no asset mapping found", "root", c.root)
		return domain.EmptyIndex(), ""
	}

	text, err := c.source.Read(c.ctx, mappingPath)
	if err != nil {
		c.logger.Warn("asset mapping unreadable", "mapping", mappingPath, "err", err)
		return domain.EmptyIndex(), mappingPath
	}

	return domain.BuildIndex(domain.ParseMapping(text)), mappingPath
}

func (c *Coordinator) newSnapshot(idx *domain.Index, mappingPath string, gen uint64) *snapshot {
	s := &snapshot{
		index:       idx,
		mappingPath: mappingPath,
		generation:  gen,
		loadedAt:    time.Now(),
	}
	if c.cacheSize > 0 {
		// Only fails on a non-positive size
		s.memo, _ = lru.New[string, domain.Resolution](c.cacheSize)
	}
	return s
}
