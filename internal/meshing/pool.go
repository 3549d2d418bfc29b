package meshing

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/alitto/pond/v2"
	"github.com/google/uuid"

	"voxelgen/internal/world"
)

// MeshJob requests generation and meshing of one chunk.
type MeshJob struct {
	Coord world.Vec3i
	// Result channel - will be sent the result when done. Use a buffered
	// channel; an unread unbuffered send holds a goroutine until Shutdown.
	ResultChan chan MeshResult
}

// MeshResult contains the result of a generate+mesh job
type MeshResult struct {
	Batch string
	Coord world.Vec3i
	Quads []VoxelQuad
	Empty bool
	Err   error
}

// WorkerPool runs independent generate+mesh jobs on a bounded set of goroutines.
// A failing job, including one that panics, never affects other jobs.
type WorkerPool struct {
	gen    world.ChunkGenerator
	pool   pond.ResultPool[MeshResult]
	ctx    context.Context
	cancel context.CancelFunc
	log    *slog.Logger
}

// NewWorkerPool creates a pool with the given number of workers.
func NewWorkerPool(gen world.ChunkGenerator, workers int, log *slog.Logger) *WorkerPool {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &WorkerPool{
		gen:    gen,
		pool:   pond.NewResultPool[MeshResult](max(workers, 1)),
		ctx:    ctx,
		cancel: cancel,
		log:    log,
	}
}

func (p *WorkerPool) process(ctx context.Context, batch string, coord world.Vec3i) MeshResult {
	res := MeshResult{Batch: batch, Coord: coord}
	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}
	chunk, err := p.gen.GenerateChunk(coord)
	if err != nil {
		res.Err = fmt.Errorf("mesh chunk %v: %w", coord, err)
		return res
	}
	res.Empty = chunk.IsEmpty()
	if !res.Empty {
		res.Quads = Extract(chunk)
	}
	return res
}

func (p *WorkerPool) submit(ctx context.Context, batch string, coord world.Vec3i) pond.Result[MeshResult] {
	return p.pool.Submit(func() MeshResult {
		return p.process(ctx, batch, coord)
	})
}

// collect waits for a task, turning a recovered panic into a per-job error.
func (p *WorkerPool) collect(task pond.Result[MeshResult], batch string, coord world.Vec3i) MeshResult {
	res, err := task.Wait()
	if err != nil {
		res = MeshResult{Batch: batch, Coord: coord, Err: fmt.Errorf("mesh chunk %v: %w", coord, err)}
	}
	if res.Err != nil {
		p.log.Warn("mesh job failed", "batch", batch, "coord", coord, "error", res.Err)
	}
	return res
}

// Run generates and meshes every coordinate and returns the results in input order.
// Jobs that have not started when ctx is cancelled report ctx.Err().
func (p *WorkerPool) Run(ctx context.Context, coords []world.Vec3i) []MeshResult {
	batch := uuid.NewString()
	p.log.Debug("mesh batch started", "batch", batch, "chunks", len(coords))

	tasks := make([]pond.Result[MeshResult], len(coords))
	for i, c := range coords {
		tasks[i] = p.submit(ctx, batch, c)
	}
	out := make([]MeshResult, len(coords))
	for i, t := range tasks {
		out[i] = p.collect(t, batch, coords[i])
	}
	return out
}

// SubmitJob queues a job whose result is delivered on job.ResultChan.
// Callers that may not read the result should pass a channel with capacity
// for it; otherwise delivery waits until Shutdown and the result is dropped.
// Returns false if the pool has been shut down.
func (p *WorkerPool) SubmitJob(job MeshJob) bool {
	if p.pool.Stopped() || p.ctx.Err() != nil {
		return false
	}
	batch := uuid.NewString()
	task := p.submit(p.ctx, batch, job.Coord)
	go func() {
		res := p.collect(task, batch, job.Coord)
		select {
		case job.ResultChan <- res:
		case <-p.ctx.Done():
		}
	}()
	return true
}

// Shutdown cancels queued jobs and waits for running ones.
func (p *WorkerPool) Shutdown() {
	p.cancel()
	p.pool.StopAndWait()
}

// GetQueueLength returns the number of jobs waiting for a worker.
func (p *WorkerPool) GetQueueLength() int {
	return int(p.pool.WaitingTasks())
}
