package client

import (
	"context"
	"log/slog"
	"runtime"
	"sync"

	"voxelcore/internal/meshing"
	"voxelcore/internal/profiling"
	"voxelcore/internal/world"
)

// MeshJob is a snapshot of one chunk plus its up-to-six neighbors, queued
// for a mesh worker. All chunk data is copied in under the cache's read
// lock before the job is enqueued, so the mesher never races with net
// updates.
type MeshJob struct {
	Coord     world.ChunkCoord
	Target    meshing.ChunkSnapshot
	Neighbors meshing.Neighbors
}

// MeshResult is what a worker produces for one job.
type MeshResult struct {
	Coord world.ChunkCoord
	Mesh  meshing.Mesh
}

// MeshWorkerCount is min(4, hardware_concurrency), the pipeline's default
// worker count.
func MeshWorkerCount() int {
	if n := runtime.NumCPU(); n < 4 {
		return n
	}
	return 4
}

// MeshPipeline is stage B of the client chunk pipeline: a fixed pool of
// worker goroutines draining a pending-job queue and pushing finished
// meshes onto a completed queue for the render thread to drain.
type MeshPipeline struct {
	atlas   meshing.AtlasLookup
	log     *slog.Logger
	pending chan *MeshJob

	mu        sync.Mutex
	completed []MeshResult

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMeshPipeline starts workers worker goroutines pulling from a pending
// queue of the given capacity.
func NewMeshPipeline(workers, queueCapacity int, atlas meshing.AtlasLookup, log *slog.Logger) *MeshPipeline {
	if log == nil {
		log = slog.Default()
	}
	ctx, cancel := context.WithCancel(context.Background())
	p := &MeshPipeline{
		atlas:   atlas,
		log:     log,
		pending: make(chan *MeshJob, queueCapacity),
		ctx:     ctx,
		cancel:  cancel,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	return p
}

// Submit enqueues a mesh job. The pending queue holds queueCapacity jobs;
// when it is full, Submit blocks until a worker takes a job or the
// pipeline shuts down.
func (p *MeshPipeline) Submit(job MeshJob) {
	select {
	case p.pending <- &job:
	case <-p.ctx.Done():
	}
}

func (p *MeshPipeline) worker(id int) {
	defer p.wg.Done()
	for {
		select {
		case job, ok := <-p.pending:
			if !ok {
				return
			}
			p.runJob(*job)
		case <-p.ctx.Done():
			return
		}
	}
}

func (p *MeshPipeline) runJob(job MeshJob) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("client: mesh worker panic, skipping chunk", "coord", job.Coord.String(), "panic", r)
		}
	}()
	defer profiling.Track("meshing.BuildMesh")()
	mesh := meshing.BuildMesh(job.Target, job.Neighbors, p.atlas)
	p.mu.Lock()
	p.completed = append(p.completed, MeshResult{Coord: job.Coord, Mesh: mesh})
	p.mu.Unlock()
}

// Drain pops up to k completed meshes for the render thread to hand to the
// GPU sink, bounding per-frame latency.
func (p *MeshPipeline) Drain(k int) []MeshResult {
	p.mu.Lock()
	defer p.mu.Unlock()
	if k > len(p.completed) {
		k = len(p.completed)
	}
	out := p.completed[:k]
	p.completed = append([]MeshResult(nil), p.completed[k:]...)
	return out
}

// DiscardAll drops every pending and completed item, used when the client
// disconnects and is about to reconnect.
func (p *MeshPipeline) DiscardAll() {
	for {
		select {
		case <-p.pending:
		default:
			p.mu.Lock()
			p.completed = nil
			p.mu.Unlock()
			return
		}
	}
}

// Shutdown stops all workers and waits for them to exit.
func (p *MeshPipeline) Shutdown() {
	p.cancel()
	p.wg.Wait()
}
