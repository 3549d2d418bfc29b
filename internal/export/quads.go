package export

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/klauspost/compress/zstd"

	"voxelgen/internal/meshing"
	"voxelgen/internal/world"
)

// QuadRecord is one line of a quad dump.
type QuadRecord struct {
	Batch     string     `json:"batch,omitempty"`
	Chunk     [3]int     `json:"chunk"`
	Voxel     [3]int     `json:"voxel"`
	Direction string     `json:"dir"`
	Min       [3]float32 `json:"min"`
}

func newRecord(batch string, chunk world.Vec3i, q meshing.VoxelQuad) QuadRecord {
	m := q.Min()
	return QuadRecord{
		Batch:     batch,
		Chunk:     [3]int{chunk.X, chunk.Y, chunk.Z},
		Voxel:     [3]int{q.Voxel.X, q.Voxel.Y, q.Voxel.Z},
		Direction: q.Direction.String(),
		Min:       [3]float32{m.X(), m.Y(), m.Z()},
	}
}

// QuadWriter writes zstd-compressed JSONL quad records.
type QuadWriter struct {
	mu    sync.Mutex
	enc   *zstd.Encoder
	w     *bufio.Writer
	count int
}

// NewQuadWriter wraps dst. Close must be called to flush the frame; it does not close dst.
func NewQuadWriter(dst io.Writer) (*QuadWriter, error) {
	enc, err := zstd.NewWriter(dst, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		return nil, err
	}
	return &QuadWriter{enc: enc, w: bufio.NewWriterSize(enc, 128*1024)}, nil
}

// WriteResult appends every quad of a mesh result. Failed results are skipped.
func (qw *QuadWriter) WriteResult(res meshing.MeshResult) error {
	if res.Err != nil {
		return nil
	}
	return qw.WriteChunk(res.Batch, res.Coord, res.Quads)
}

// WriteChunk appends the quads of one chunk.
func (qw *QuadWriter) WriteChunk(batch string, chunk world.Vec3i, quads []meshing.VoxelQuad) error {
	qw.mu.Lock()
	defer qw.mu.Unlock()
	if qw.enc == nil {
		return errors.New("export: quad writer closed")
	}
	for _, q := range quads {
		b, err := json.Marshal(newRecord(batch, chunk, q))
		if err != nil {
			return err
		}
		if _, err := qw.w.Write(b); err != nil {
			return err
		}
		if err := qw.w.WriteByte('\n'); err != nil {
			return err
		}
		qw.count++
	}
	return nil
}

// Count returns the number of records written.
func (qw *QuadWriter) Count() int {
	qw.mu.Lock()
	defer qw.mu.Unlock()
	return qw.count
}

// Close flushes buffered records and ends the zstd stream.
func (qw *QuadWriter) Close() error {
	qw.mu.Lock()
	defer qw.mu.Unlock()
	if qw.enc == nil {
		return nil
	}
	flushErr := qw.w.Flush()
	closeErr := qw.enc.Close()
	qw.enc = nil
	qw.w = nil
	return errors.Join(flushErr, closeErr)
}

// ReadQuads decodes a dump produced by QuadWriter.
func ReadQuads(src io.Reader) ([]QuadRecord, error) {
	dec, err := zstd.NewReader(src)
	if err != nil {
		return nil, err
	}
	defer dec.Close()

	var out []QuadRecord
	sc := bufio.NewScanner(dec)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for line := 1; sc.Scan(); line++ {
		var r QuadRecord
		if err := json.Unmarshal(sc.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("quad dump line %d: %w", line, err)
		}
		out = append(out, r)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
