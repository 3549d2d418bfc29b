package export

import (
	"io"
	"log/slog"
	"testing"

	"voxelgen/internal/config"
	"voxelgen/internal/world"
)

func newGenerator(t *testing.T) *world.Generator {
	t.Helper()
	g, err := world.NewGenerator(config.DefaultWorldGen(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatal(err)
	}
	return g
}
