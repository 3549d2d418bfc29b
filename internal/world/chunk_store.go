package world

import (
	"sort"
	"sync"
)

// ChunkStore tracks generated chunks and chunks whose generation is in flight.
type ChunkStore struct {
	mu       sync.RWMutex
	chunks   map[Vec3i]*Chunk
	pending  map[Vec3i]struct{}
	modCount uint64 // Increases on any chunk add/remove
}

// NewChunkStore creates an empty store.
func NewChunkStore() *ChunkStore {
	return &ChunkStore{
		chunks:  make(map[Vec3i]*Chunk),
		pending: make(map[Vec3i]struct{}),
	}
}

// Get returns the chunk at a chunk-grid coordinate, or nil.
func (cs *ChunkStore) Get(coord Vec3i) *Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.chunks[coord]
}

// HasChunk checks if a chunk has been generated.
func (cs *ChunkStore) HasChunk(coord Vec3i) bool {
	cs.mu.RLock()
	_, ok := cs.chunks[coord]
	cs.mu.RUnlock()
	return ok
}

// IsPending reports whether generation of coord has been claimed but not finished.
func (cs *ChunkStore) IsPending(coord Vec3i) bool {
	cs.mu.RLock()
	_, ok := cs.pending[coord]
	cs.mu.RUnlock()
	return ok
}

// Claim marks coord as pending. It returns false when the chunk is already
// stored or already claimed. The check and the mark happen under one lock.
func (cs *ChunkStore) Claim(coord Vec3i) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; ok {
		return false
	}
	if _, ok := cs.pending[coord]; ok {
		return false
	}
	cs.pending[coord] = struct{}{}
	return true
}

// Release drops a pending claim without storing anything.
func (cs *ChunkStore) Release(coord Vec3i) {
	cs.mu.Lock()
	delete(cs.pending, coord)
	cs.mu.Unlock()
}

// Add stores a generated chunk and clears its pending claim.
// It returns false if a chunk was already stored at that location.
func (cs *ChunkStore) Add(chunk *Chunk) bool {
	coord := chunk.Location()
	cs.mu.Lock()
	defer cs.mu.Unlock()
	delete(cs.pending, coord)
	if _, ok := cs.chunks[coord]; ok {
		return false
	}
	cs.chunks[coord] = chunk
	cs.modCount++
	return true
}

// Remove deletes a chunk. It returns false if nothing was stored there.
func (cs *ChunkStore) Remove(coord Vec3i) bool {
	cs.mu.Lock()
	defer cs.mu.Unlock()
	if _, ok := cs.chunks[coord]; !ok {
		return false
	}
	delete(cs.chunks, coord)
	cs.modCount++
	return true
}

// Len returns the number of stored chunks.
func (cs *ChunkStore) Len() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.chunks)
}

// PendingLen returns the number of in-flight claims.
func (cs *ChunkStore) PendingLen() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return len(cs.pending)
}

// Coords returns the stored chunk locations sorted by (y, z, x).
func (cs *ChunkStore) Coords() []Vec3i {
	cs.mu.RLock()
	out := make([]Vec3i, 0, len(cs.chunks))
	for c := range cs.chunks {
		out = append(out, c)
	}
	cs.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Y != b.Y {
			return a.Y < b.Y
		}
		if a.Z != b.Z {
			return a.Z < b.Z
		}
		return a.X < b.X
	})
	return out
}

// Solid looks up a global voxel in the stored chunks laid out on a grid of
// the given size. ok is false when the containing chunk has not been
// generated or was stored with a different size.
func (cs *ChunkStore) Solid(global, size Vec3i) (solid, ok bool) {
	c := cs.Get(GlobalToChunk(global, size))
	if c == nil || c.Size() != size {
		return false, false
	}
	return c.Voxel(GlobalToLocal(global, c.Size())).Solid, true
}

// GetModCount returns the current modification count of the chunk map.
func (cs *ChunkStore) GetModCount() uint64 {
	cs.mu.RLock()
	defer cs.mu.RUnlock()
	return cs.modCount
}

// Source returns a ChunkGenerator that serves stored chunks and falls back to
// gen for missing ones. Fallback results are not stored. Every chunk it
// returns resolves neighbours from stored chunks first.
func (cs *ChunkStore) Source(gen ChunkGenerator) ChunkGenerator {
	return storeSource{store: cs, gen: gen}
}

type storeSource struct {
	store *ChunkStore
	gen   ChunkGenerator
}

func (s storeSource) GenerateChunk(location Vec3i) (*Chunk, error) {
	c := s.store.Get(location)
	if c == nil {
		var err error
		if c, err = s.gen.GenerateChunk(location); err != nil {
			return nil, err
		}
	}
	return c.WithSampler(s.store.Sampler(c.Size(), c.sampler)), nil
}

// Sampler returns a VoxelSampler that reads stored chunks of the given size
// and defers to fallback for the rest. A nil fallback reports empty.
func (cs *ChunkStore) Sampler(size Vec3i, fallback VoxelSampler) VoxelSampler {
	return storeSampler{store: cs, size: size, fallback: fallback}
}

type storeSampler struct {
	store    *ChunkStore
	size     Vec3i
	fallback VoxelSampler
}

func (s storeSampler) GenerateVoxel(global Vec3i) bool {
	if solid, ok := s.store.Solid(global, s.size); ok {
		return solid
	}
	if s.fallback == nil {
		return false
	}
	return s.fallback.GenerateVoxel(global)
}
