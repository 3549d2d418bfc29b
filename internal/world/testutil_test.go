package world

import (
	"crypto/sha256"
	"io"
	"log/slog"
	"testing"

	"voxelgen/internal/config"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestGenerator(t testing.TB, mutate func(*config.WorldGen)) *Generator {
	t.Helper()
	cfg := config.DefaultWorldGen()
	if mutate != nil {
		mutate(&cfg)
	}
	g, err := NewGenerator(cfg, discardLogger())
	if err != nil {
		t.Fatalf("NewGenerator: %v", err)
	}
	return g
}

// hashChunkVoxels computes a SHA-256 hash of all voxels in a chunk
func hashChunkVoxels(c *Chunk) [32]byte {
	h := sha256.New()
	buf := make([]byte, c.Len())
	for i := range buf {
		if c.VoxelAt(i).Solid {
			buf[i] = 1
		}
	}
	h.Write(buf)
	var result [32]byte
	copy(result[:], h.Sum(nil))
	return result
}
