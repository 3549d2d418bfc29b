package world

import (
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"github.com/alitto/pond/v2"

	"voxelgen/internal/profiling"
)

// ChunkGenerator produces the chunk at a chunk-grid location.
type ChunkGenerator interface {
	GenerateChunk(location Vec3i) (*Chunk, error)
}

// RingOrder reports whether a should be spawned before b around center.
type RingOrder func(center, a, b Vec3i) bool

// RingDistance is the horizontal Chebyshev distance between two chunk locations.
func RingDistance(center, c Vec3i) int {
	return max(abs(c.X-center.X), abs(c.Z-center.Z))
}

// NearestRingFirst orders by ring distance, then by y, x and z.
func NearestRingFirst(center, a, b Vec3i) bool {
	da, db := RingDistance(center, a), RingDistance(center, b)
	if da != db {
		return da < db
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	if a.X != b.X {
		return a.X < b.X
	}
	return a.Z < b.Z
}

// ChunkStreamer decides which chunks to spawn or despawn around a center
// and generates spawned chunks asynchronously into a store.
type ChunkStreamer struct {
	store         *ChunkStore
	gen           ChunkGenerator
	pool          pond.Pool
	order         RingOrder
	verticalRange int
	maxPending    int
	log           *slog.Logger

	// window the caller currently wants; results outside it are dropped
	mu     sync.Mutex
	center Vec3i
	radius int
	wg     sync.WaitGroup

	// held for reading while submitting so Close cannot stop the pool mid-batch
	life   sync.RWMutex
	closed bool
}

// StreamerOption customizes a ChunkStreamer.
type StreamerOption func(*ChunkStreamer)

// WithRingOrder replaces the spawn ordering.
func WithRingOrder(o RingOrder) StreamerOption {
	return func(cs *ChunkStreamer) { cs.order = o }
}

// WithVerticalRange sets how many chunk layers, starting at y=0, each column spawns.
func WithVerticalRange(n int) StreamerOption {
	return func(cs *ChunkStreamer) { cs.verticalRange = max(n, 1) }
}

// WithMaxPending caps the number of in-flight chunks. Zero means no cap.
func WithMaxPending(n int) StreamerOption {
	return func(cs *ChunkStreamer) { cs.maxPending = n }
}

// WithWorkers sets the generation concurrency.
func WithWorkers(n int) StreamerOption {
	return func(cs *ChunkStreamer) { cs.pool = pond.NewPool(max(n, 1)) }
}

// NewChunkStreamer creates a streamer over store using gen.
func NewChunkStreamer(store *ChunkStore, gen ChunkGenerator, log *slog.Logger, opts ...StreamerOption) *ChunkStreamer {
	if log == nil {
		log = slog.Default()
	}
	cs := &ChunkStreamer{
		store:         store,
		gen:           gen,
		order:         NearestRingFirst,
		verticalRange: 2,
		maxPending:    16384,
		log:           log,
		radius:        -1,
	}
	for _, o := range opts {
		o(cs)
	}
	if cs.pool == nil {
		cs.pool = pond.NewPool(max(runtime.NumCPU(), 1))
	}
	return cs
}

// ChunksToSpawn lists every location within radius of center that is neither
// stored nor pending, in spawn order.
func (cs *ChunkStreamer) ChunksToSpawn(center Vec3i, radius int) []Vec3i {
	var out []Vec3i
	for x := center.X - radius; x <= center.X+radius; x++ {
		for z := center.Z - radius; z <= center.Z+radius; z++ {
			for y := 0; y < cs.verticalRange; y++ {
				c := Vec3i{X: x, Y: y, Z: z}
				if cs.store.HasChunk(c) || cs.store.IsPending(c) {
					continue
				}
				out = append(out, c)
			}
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return cs.order(center, out[i], out[j]) })
	return out
}

// ChunksToDespawn lists stored locations outside radius of center.
func (cs *ChunkStreamer) ChunksToDespawn(center Vec3i, radius int) []Vec3i {
	var out []Vec3i
	for _, c := range cs.store.Coords() {
		if RingDistance(center, c) > radius {
			out = append(out, c)
		}
	}
	return out
}

// StreamAround records the wanted window and queues generation for missing
// chunks in spawn order. It returns the number of queued chunks, which is
// zero once the streamer is closed.
func (cs *ChunkStreamer) StreamAround(center Vec3i, radius int) int {
	defer profiling.Track("world.StreamAround")()
	cs.life.RLock()
	defer cs.life.RUnlock()
	if cs.closed {
		cs.log.Warn("stream request after close", "center", center, "radius", radius)
		return 0
	}

	cs.mu.Lock()
	cs.center, cs.radius = center, radius
	cs.mu.Unlock()

	queued := 0
	for _, c := range cs.ChunksToSpawn(center, radius) {
		if cs.maxPending > 0 && cs.store.PendingLen() >= cs.maxPending {
			break
		}
		if !cs.store.Claim(c) {
			continue
		}
		c := c
		cs.wg.Add(1)
		cs.pool.Submit(func() {
			defer cs.wg.Done()
			cs.generate(c)
		})
		queued++
	}
	return queued
}

// StreamAroundSync generates every missing chunk in the window on the calling goroutine.
func (cs *ChunkStreamer) StreamAroundSync(center Vec3i, radius int) {
	cs.mu.Lock()
	cs.center, cs.radius = center, radius
	cs.mu.Unlock()
	for _, c := range cs.ChunksToSpawn(center, radius) {
		if cs.store.Claim(c) {
			cs.generate(c)
		}
	}
}

func (cs *ChunkStreamer) generate(c Vec3i) {
	chunk, err := cs.gen.GenerateChunk(c)
	if err != nil {
		cs.store.Release(c)
		cs.log.Error("chunk generation failed", "location", c, "error", err)
		return
	}
	// no cancellation of in-flight work; drop results that left the window
	if !cs.wanted(c) {
		cs.store.Release(c)
		cs.log.Debug("dropping unwanted chunk", "location", c)
		return
	}
	cs.store.Add(chunk)
}

func (cs *ChunkStreamer) wanted(c Vec3i) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	return cs.radius >= 0 && RingDistance(cs.center, c) <= cs.radius
}

// EvictFarChunks removes the stored chunks ChunksToDespawn reports and
// returns how many were removed.
func (cs *ChunkStreamer) EvictFarChunks(center Vec3i, radius int) int {
	defer profiling.Track("world.EvictFarChunks")()
	removed := 0
	for _, c := range cs.ChunksToDespawn(center, radius) {
		if cs.store.Remove(c) {
			removed++
		}
	}
	if removed > 0 {
		cs.log.Debug("evicted chunks", "count", removed, "center", center)
	}
	return removed
}

// Wait blocks until every queued chunk has finished.
func (cs *ChunkStreamer) Wait() {
	cs.wg.Wait()
}

// Close waits for queued work and stops the workers. Later StreamAround
// calls queue nothing.
func (cs *ChunkStreamer) Close() {
	cs.life.Lock()
	if cs.closed {
		cs.life.Unlock()
		return
	}
	cs.closed = true
	cs.life.Unlock()
	cs.pool.StopAndWait()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
