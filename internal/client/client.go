package client

import (
	"fmt"
	"log/slog"
	"net"

	"voxelcore/internal/config"
	"voxelcore/internal/meshing"
	"voxelcore/internal/protocol"
	"voxelcore/internal/registry"
)

// atlasCols is the fixed grid width used to lay out the default block atlas.
const atlasCols = 4

func defaultClientAtlas() meshing.AtlasLookup {
	return registry.NewAtlas(atlasCols)
}

// Client wires the cache, mesh pipeline, net loop, and GPU sink together: it
// is the render thread's single point of contact with the rest of the
// pipeline. The render thread calls DrainToGPU once per frame; every other
// stage runs on its own goroutine.
type Client struct {
	conn     net.Conn
	cache    *ChunkCache
	pipeline *MeshPipeline
	netLoop  *NetLoop
	gpu      GPUSink
	log      *slog.Logger
}

// Dial connects to addr, completes the join handshake, and starts the mesh
// pipeline and net loop. name is truncated to 31 bytes plus a NUL terminator
// on the wire.
func Dial(addr, name string, gpu GPUSink, log *slog.Logger) (*Client, error) {
	if log == nil {
		log = slog.Default()
	}
	conn, err := net.Dial("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("client: dial %s: %w", addr, err)
	}

	cache := NewChunkCache()
	atlas := defaultClientAtlas()
	pipeline := NewMeshPipeline(config.MeshWorkerCount(), 256, atlas, log)
	netLoop := NewNetLoop(conn, cache, pipeline, log)

	c := &Client{conn: conn, cache: cache, pipeline: pipeline, netLoop: netLoop, gpu: gpu, log: log}

	if err := netLoop.Join(name, protocol.ProtocolVersion); err != nil {
		pipeline.Shutdown()
		conn.Close()
		return nil, fmt.Errorf("client: join handshake: %w", err)
	}

	go func() {
		if err := netLoop.Run(); err != nil {
			log.Warn("client: net loop exited", "err", err)
		}
	}()

	return c, nil
}

// DrainToGPU pops up to config.UploadDrainK completed meshes and uploads
// them, then releases every chunk the server has unloaded since the last
// call, bounding how much per-frame latency a burst of chunk arrivals or
// unloads can cause. Call once per render frame from the render thread.
func (c *Client) DrainToGPU() {
	for _, result := range c.pipeline.Drain(config.UploadDrainK()) {
		c.gpu.UploadChunk(result.Coord, result.Mesh)
	}
	for _, coord := range c.netLoop.DrainEvictions() {
		c.gpu.EvictChunk(coord)
	}
}

// SendMove forwards the local player's latest transform to the server.
func (c *Client) SendMove(m protocol.PlayerMove) error {
	return protocol.WritePlayerMove(c.conn, m)
}

// SendBlockPlace requests placing a block; the server is authoritative and
// may reject it silently per the wire protocol's failure semantics.
func (c *Client) SendBlockPlace(m protocol.BlockPlace) error {
	return protocol.WriteBlockPlace(c.conn, m)
}

// SendBlockBreak requests breaking a block.
func (c *Client) SendBlockBreak(m protocol.BlockBreak) error {
	return protocol.WriteBlockBreak(c.conn, m)
}

// Close discards pending pipeline work, stops the workers, and closes the
// connection.
func (c *Client) Close() error {
	c.pipeline.DiscardAll()
	c.pipeline.Shutdown()
	return c.conn.Close()
}
