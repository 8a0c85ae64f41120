package client

import (
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"

	"voxelcore/internal/meshing"
	"voxelcore/internal/protocol"
	"voxelcore/internal/world"
)

// NetLoop is stage A of the client chunk pipeline: it owns the connection to
// the server, decodes inbound frames, and feeds the cache and mesh pipeline.
// It never touches the GPU; that happens on the render thread draining the
// pipeline's completed queue.
type NetLoop struct {
	conn     net.Conn
	cache    *ChunkCache
	pipeline *MeshPipeline
	log      *slog.Logger

	onBlockUpdate  func(protocol.BlockUpdate)
	onPlayerSpawn  func(protocol.PlayerSpawn)
	onPlayerMoved  func(protocol.PlayerPositionUpdate)
	onPlayerRemove func(protocol.PlayerRemove)

	evictMu sync.Mutex
	evicted []world.ChunkCoord
}

// NewNetLoop wires a connection to a cache and mesh pipeline. The four
// callbacks are optional hooks a higher-level client struct can set to react
// to player presence/position events; nil callbacks are simply skipped.
func NewNetLoop(conn net.Conn, cache *ChunkCache, pipeline *MeshPipeline, log *slog.Logger) *NetLoop {
	if log == nil {
		log = slog.Default()
	}
	return &NetLoop{conn: conn, cache: cache, pipeline: pipeline, log: log}
}

// Join sends the handshake frame. Must be called before Run.
func (n *NetLoop) Join(name string, clientVersion uint32) error {
	var nameBytes [32]byte
	copy(nameBytes[:len(nameBytes)-1], name)
	return protocol.WriteClientJoin(n.conn, protocol.ClientJoin{Name: nameBytes, ClientVersion: clientVersion})
}

// Run reads frames until the connection closes or a Disconnect arrives,
// dispatching each to the appropriate handler. It is meant to run on its own
// goroutine.
func (n *NetLoop) Run() error {
	for {
		header, err := protocol.ReadHeader(n.conn)
		if err != nil {
			return fmt.Errorf("client: net loop: %w", err)
		}
		switch header.Type {
		case protocol.MsgChunkData:
			msg, err := protocol.ReadChunkData(n.conn)
			if err != nil {
				return fmt.Errorf("client: read ChunkData: %w", err)
			}
			n.handleChunkData(msg)
		case protocol.MsgChunkUnload:
			msg, err := protocol.ReadChunkUnload(n.conn)
			if err != nil {
				return fmt.Errorf("client: read ChunkUnload: %w", err)
			}
			n.cache.Remove(msg.Coord)
			n.queueEviction(msg.Coord)
		case protocol.MsgBlockUpdate:
			msg, err := protocol.ReadBlockUpdate(n.conn)
			if err != nil {
				return fmt.Errorf("client: read BlockUpdate: %w", err)
			}
			n.handleBlockUpdate(msg)
		case protocol.MsgPlayerSpawn:
			msg, err := protocol.ReadPlayerSpawn(n.conn)
			if err != nil {
				return fmt.Errorf("client: read PlayerSpawn: %w", err)
			}
			if n.onPlayerSpawn != nil {
				n.onPlayerSpawn(msg)
			}
		case protocol.MsgPlayerPositionUpdate:
			msg, err := protocol.ReadPlayerPositionUpdate(n.conn)
			if err != nil {
				return fmt.Errorf("client: read PlayerPositionUpdate: %w", err)
			}
			if n.onPlayerMoved != nil {
				n.onPlayerMoved(msg)
			}
		case protocol.MsgPlayerRemove:
			msg, err := protocol.ReadPlayerRemove(n.conn)
			if err != nil {
				return fmt.Errorf("client: read PlayerRemove: %w", err)
			}
			if n.onPlayerRemove != nil {
				n.onPlayerRemove(msg)
			}
		case protocol.MsgDisconnect:
			_, _ = protocol.ReadDisconnect(n.conn, header.PayloadSize)
			return nil
		case protocol.MsgKeepAlive:
			if _, err := protocol.ReadKeepAlive(n.conn); err != nil {
				return fmt.Errorf("client: read KeepAlive: %w", err)
			}
		default:
			n.log.Warn("client: dropping unrecognized frame type", "type", header.Type)
			if _, err := io.CopyN(io.Discard, n.conn, int64(header.PayloadSize)); err != nil {
				return fmt.Errorf("client: skip unrecognized frame: %w", err)
			}
		}
	}
}

// queueEviction records a coord whose GPU resources the render thread must
// release. GPU calls only ever happen from DrainToGPU on the render thread,
// so an unload arriving on this net goroutine is queued rather than applied
// directly, mirroring how completed meshes flow through MeshPipeline.Drain.
func (n *NetLoop) queueEviction(coord world.ChunkCoord) {
	n.evictMu.Lock()
	n.evicted = append(n.evicted, coord)
	n.evictMu.Unlock()
}

// DrainEvictions returns and clears every coord queued by queueEviction.
// Call once per render frame, alongside MeshPipeline.Drain.
func (n *NetLoop) DrainEvictions() []world.ChunkCoord {
	n.evictMu.Lock()
	defer n.evictMu.Unlock()
	out := n.evicted
	n.evicted = nil
	return out
}

// handleChunkData decodes the RLE payload, stores the chunk, and enqueues
// mesh jobs for it and its six neighbors: a newly arrived chunk can change
// the visible face set of everything already touching it.
func (n *NetLoop) handleChunkData(msg protocol.ChunkData) {
	blocks, err := world.DecodeRLE(msg.RLEPayload)
	if err != nil {
		n.log.Error("client: rejecting malformed chunk payload", "coord", msg.Coord.String(), "err", err)
		return
	}
	c := &world.Chunk{Coord: msg.Coord, Blocks: *blocks}
	n.cache.Put(c)

	n.enqueueMesh(msg.Coord)
	for _, off := range neighborOffsets {
		n.enqueueMesh(msg.Coord.Add(off[0], off[1], off[2]))
	}
}

func (n *NetLoop) enqueueMesh(coord world.ChunkCoord) {
	target, ok, neighbors := n.cache.Snapshot(coord)
	if !ok {
		return
	}
	job := MeshJob{Coord: coord, Target: meshing.SnapshotOf(target), Neighbors: toSnapshotNeighbors(neighbors)}
	n.pipeline.Submit(job)
}

func toSnapshotNeighbors(chunks [6]*world.Chunk) meshing.Neighbors {
	var out meshing.Neighbors
	for i, c := range chunks {
		if c == nil {
			continue
		}
		snap := meshing.SnapshotOf(c)
		out[i] = &snap
	}
	return out
}

func (n *NetLoop) handleBlockUpdate(msg protocol.BlockUpdate) {
	coord, lx, ly, lz := world.ChunkCoordFromWorld(msg.Position.X, msg.Position.Y, msg.Position.Z)
	c, ok := n.cache.Get(coord)
	if !ok {
		return
	}
	c.SetBlock(lx, ly, lz, world.Block{Type: world.BlockType(msg.BlockType)})
	n.enqueueMesh(coord)
	for _, off := range neighborOffsets {
		n.enqueueMesh(coord.Add(off[0], off[1], off[2]))
	}
	if n.onBlockUpdate != nil {
		n.onBlockUpdate(msg)
	}
}
