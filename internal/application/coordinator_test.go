package application

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbxasset/internal/domain"
	"rbxasset/internal/logging"
)

// fakeSource serves a mutable mapping text. When gate is set, every Read
// blocks until a value is sent on it.
type fakeSource struct {
	mu    sync.Mutex
	text  string
	found bool
	err   error
	gate  chan struct{}
	reads atomic.Int32
}

func newFakeSource(text string) *fakeSource {
	return &fakeSource{text: text, found: true}
}

func (f *fakeSource) set(text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.text = text
}

func (f *fakeSource) Locate(_ context.Context, root string) (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return root + "/assetMap.ts", f.found
}

func (f *fakeSource) Read(ctx context.Context, _ string) (string, error) {
	f.reads.Add(1)
	if f.gate != nil {
		select {
		case <-f.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.text, f.err
}

const (
	mappingA = `"assets/icons/logo.png": "rbxassetid://111"`
	mappingC = `"assets/icons/logo.png": "rbxassetid://111", "assets/other/logo.png": "rbxassetid://222"`
)

func newTestCoordinator(src *fakeSource) *Coordinator {
	return NewCoordinator(CoordinatorOptions{
		Root:      "/project",
		Source:    src,
		Logger:    logging.Discard(),
		CacheSize: 16,
	})
}

func startAndWait(t *testing.T, c *Coordinator) {
	t.Helper()
	require.NoError(t, c.Start(context.Background()))
	require.NoError(t, c.Wait(context.Background()))
}

func resolve(t *testing.T, c *Coordinator, token string) domain.Resolution {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	r, err := c.Resolve(ctx, token)
	require.NoError(t, err)
	return r
}

func TestCoordinator_Scenarios(t *testing.T) {
	t.Run("A exact path", func(t *testing.T) {
		c := newTestCoordinator(newFakeSource(mappingA))
		startAndWait(t, c)

		r := resolve(t, c, "assets/icons/logo.png")
		require.True(t, r.Resolved)
		assert.Equal(t, domain.AssetEntry{Path: "assets/icons/logo.png", ID: "111"}, r.Entry)
		assert.Equal(t, StateReady, c.State())
	})

	t.Run("B filename shorthand", func(t *testing.T) {
		c := newTestCoordinator(newFakeSource(mappingA))
		startAndWait(t, c)

		r := resolve(t, c, "logo.png")
		require.True(t, r.Resolved)
		assert.Equal(t, "assets/icons/logo.png", r.Entry.Path)
		assert.Equal(t, "111", r.Entry.ID)
	})

	t.Run("C ambiguous filename", func(t *testing.T) {
		c := newTestCoordinator(newFakeSource(mappingC))
		startAndWait(t, c)

		assert.False(t, resolve(t, c, "logo.png").Resolved)
	})

	t.Run("D deleted after load", func(t *testing.T) {
		c := newTestCoordinator(newFakeSource(mappingA))
		startAndWait(t, c)
		require.True(t, resolve(t, c, "logo.png").Resolved)

		c.HandleEvent(domain.MappingEvent{Kind: domain.MappingDeleted})

		assert.Equal(t, StateEmpty, c.State())
		assert.False(t, resolve(t, c, "logo.png").Resolved)
		assert.False(t, resolve(t, c, "assets/icons/logo.png").Resolved)
	})

	t.Run("E no mapping anywhere", func(t *testing.T) {
		src := newFakeSource("")
		src.found = false
		c := newTestCoordinator(src)
		startAndWait(t, c)

		assert.False(t, resolve(t, c, "assets/x.png").Resolved)
		assert.Equal(t, StateReady, c.State())
		assert.Equal(t, "", c.MappingPath())
	})
}

func TestCoordinator_ResolveWaitsForFirstLoad(t *testing.T) {
	src := newFakeSource(mappingA)
	src.gate = make(chan struct{})
	c := newTestCoordinator(src)

	results := make(chan domain.Resolution, 1)
	go func() {
		r, _ := c.Resolve(context.Background(), "logo.png")
		results <- r
	}()

	// Resolution issued before Start still waits for the first load
	select {
	case <-results:
		t.Fatal("resolve returned before the first load")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, c.Start(context.Background()))
	assert.Equal(t, StateLoading, c.State())
	src.gate <- struct{}{}

	select {
	case r := <-results:
		assert.True(t, r.Resolved)
	case <-time.After(2 * time.Second):
		t.Fatal("resolve never returned")
	}
}

func TestCoordinator_ResolveHonoursContextWhileWaiting(t *testing.T) {
	src := newFakeSource(mappingA)
	src.gate = make(chan struct{})
	c := newTestCoordinator(src)
	require.NoError(t, c.Start(context.Background()))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.Resolve(ctx, "logo.png")
	assert.True(t, errors.Is(err, context.DeadlineExceeded))

	src.gate <- struct{}{}
	require.NoError(t, c.Wait(context.Background()))
}

func TestCoordinator_ChangeReloads(t *testing.T) {
	src := newFakeSource(mappingA)
	c := newTestCoordinator(src)
	startAndWait(t, c)
	gen := c.Generation()

	src.set(mappingC)
	c.HandleEvent(domain.MappingEvent{Kind: domain.MappingChanged})
	require.NoError(t, c.Wait(context.Background()))

	assert.False(t, resolve(t, c, "logo.png").Resolved, "memo from the previous index must not leak")
	assert.Greater(t, c.Generation(), gen)
}

func TestCoordinator_CoalescesChangesDuringLoad(t *testing.T) {
	src := newFakeSource(mappingA)
	src.gate = make(chan struct{})
	c := newTestCoordinator(src)
	require.NoError(t, c.Start(context.Background()))

	for range 5 {
		c.HandleEvent(domain.MappingEvent{Kind: domain.MappingChanged})
	}

	src.gate <- struct{}{} // first load
	src.set(mappingC)
	src.gate <- struct{}{} // the single follow-up load

	require.Eventually(t, func() bool { return c.State() == StateReady }, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, int32(2), src.reads.Load())
	assert.False(t, resolve(t, c, "logo.png").Resolved)
}

func TestCoordinator_EmptyIgnoresChangeUntilCreate(t *testing.T) {
	src := newFakeSource(mappingA)
	c := newTestCoordinator(src)
	startAndWait(t, c)

	c.HandleEvent(domain.MappingEvent{Kind: domain.MappingDeleted})
	c.HandleEvent(domain.MappingEvent{Kind: domain.MappingChanged})
	assert.Equal(t, StateEmpty, c.State())
	assert.False(t, resolve(t, c, "logo.png").Resolved)

	c.HandleEvent(domain.MappingEvent{Kind: domain.MappingCreated})
	require.NoError(t, c.Wait(context.Background()))
	assert.Equal(t, StateReady, c.State())
	assert.True(t, resolve(t, c, "logo.png").Resolved)
}

func TestCoordinator_DeleteDuringLoadDiscardsResult(t *testing.T) {
	src := newFakeSource(mappingA)
	src.gate = make(chan struct{})
	c := newTestCoordinator(src)
	require.NoError(t, c.Start(context.Background()))

	c.HandleEvent(domain.MappingEvent{Kind: domain.MappingDeleted})
	assert.Equal(t, StateEmpty, c.State())

	// Waiters are released by the delete, not by the abandoned load
	require.NoError(t, c.Wait(context.Background()))

	src.gate <- struct{}{}
	time.Sleep(20 * time.Millisecond)

	assert.Equal(t, StateEmpty, c.State())
	assert.False(t, resolve(t, c, "logo.png").Resolved)
}

func TestCoordinator_ReadErrorYieldsEmptyIndex(t *testing.T) {
	src := newFakeSource(mappingA)
	src.err = errors.New("permission denied")
	c := newTestCoordinator(src)
	startAndWait(t, c)

	assert.False(t, resolve(t, c, "logo.png").Resolved)
	assert.Equal(t, StateReady, c.State())
}

func TestCoordinator_NoTornReads(t *testing.T) {
	// Each mapping maps both paths to the same id, so any resolution that
	// mixes two loads would show two different ids.
	mappings := []string{
		`"a/x.png": "rbxassetid://1", "b/y.png": "rbxassetid://1"`,
		`"a/x.png": "rbxassetid://2", "b/y.png": "rbxassetid://2"`,
	}
	src := newFakeSource(mappings[0])
	c := newTestCoordinator(src)
	startAndWait(t, c)

	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for i := 0; ctx.Err() == nil; i++ {
			src.set(mappings[i%2])
			c.Reload(false)
			time.Sleep(time.Millisecond)
		}
	}()

	for ctx.Err() == nil {
		idx, err := c.Index(context.Background())
		require.NoError(t, err)
		x, _ := idx.Lookup("a/x.png")
		y := idx.Resolve("y.png")
		require.True(t, y.Resolved)
		require.Equal(t, x, y.Entry.ID)
	}
	wg.Wait()
}

func TestCoordinator_StartTwice(t *testing.T) {
	c := newTestCoordinator(newFakeSource(mappingA))
	startAndWait(t, c)

	err := c.Start(context.Background())
	assert.ErrorIs(t, err, ErrInvalidOperation)
}

func TestCoordinator_NilReceiver(t *testing.T) {
	var c *Coordinator
	_, err := c.Resolve(context.Background(), "x")
	assert.ErrorIs(t, err, ErrNoCoordinator)
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "uninitialized", StateUninitialized.String())
	assert.Equal(t, "loading", StateLoading.String())
	assert.Equal(t, "ready", StateReady.String())
	assert.Equal(t, "empty", StateEmpty.String())
}
