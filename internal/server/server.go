// Package server implements the authoritative game server: a TCP listener,
// one goroutine per connection translating wire frames into queued events,
// and a single fixed-rate tick goroutine that is the only mutator of world
// and session state.
package server

import (
	"fmt"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"voxelcore/internal/config"
	"voxelcore/internal/physics"
	"voxelcore/internal/protocol"
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// spawnPosition is where every new player appears. Player-state persistence
// across sessions is out of scope; everyone spawns here.
var spawnPosition = mgl32.Vec3{0, 5, 0}

// eventKind discriminates the netEvent union.
type eventKind int

const (
	eventConnect eventKind = iota
	eventDisconnect
	eventPlayerMove
	eventBlockPlace
	eventBlockBreak
)

// netEvent is one queued occurrence from a connection goroutine, consumed
// only by the tick loop so all world and session mutation happens on a
// single goroutine.
type netEvent struct {
	kind     eventKind
	playerID uint32
	session  *Session // set only on eventConnect
	move     protocol.PlayerMove
	place    protocol.BlockPlace
	brk      protocol.BlockBreak
}

// Server owns the world, every connected session, and the event queue
// bridging network goroutines to the tick loop.
type Server struct {
	world    *world.World
	worldDir string
	log      *slog.Logger

	listener net.Listener
	running  atomic.Bool
	nextID   atomic.Uint32

	events chan netEvent

	mu       sync.Mutex
	sessions map[uint32]*Session

	tickCount int64
	doneCh    chan struct{}
}

// New creates a server around an already-constructed world.
func New(w *world.World, worldDir string, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{
		world:    w,
		worldDir: worldDir,
		log:      log,
		events:   make(chan netEvent, 256),
		sessions: make(map[uint32]*Session),
		doneCh:   make(chan struct{}),
	}
}

// Start binds addr, loads the eager spawn volume, and launches the accept
// and tick goroutines. It returns once the listener is bound.
func (s *Server) Start(addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("server: listen %s: %w", addr, err)
	}
	s.listener = ln
	s.running.Store(true)

	s.loadSpawnVolume()

	go s.acceptLoop()
	go s.runTickLoop()

	s.log.Info("server: listening", "addr", addr)
	return nil
}

// Stop requests cooperative shutdown: the tick loop finishes its current
// iteration, performs a final save, and closes doneCh.
func (s *Server) Stop() {
	s.running.Store(false)
	if s.listener != nil {
		s.listener.Close()
	}
}

// Wait blocks until the tick loop has exited after Stop.
func (s *Server) Wait() {
	<-s.doneCh
}

// loadSpawnVolume eagerly loads the 3x3x3 chunk volume around spawn so the
// first player to connect never waits on disk I/O or generation mid-stream.
func (s *Server) loadSpawnVolume() {
	center, _, _, _ := world.ChunkCoordFromWorld(0, 5, 0)
	count := 0
	for dx := int32(-1); dx <= 1; dx++ {
		for dy := int32(-1); dy <= 1; dy++ {
			for dz := int32(-1); dz <= 1; dz++ {
				s.world.LoadChunk(s.worldDir, center.Add(dx, dy, dz))
				count++
			}
		}
	}
	s.log.Info("server: eager-loaded spawn volume", "chunks", count)
}

func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			if !s.running.Load() {
				return
			}
			s.log.Warn("server: accept error", "err", err)
			continue
		}
		go s.handleConn(conn)
	}
}

// handleConn performs the join handshake synchronously, then reads frames
// for the lifetime of the connection, translating each into a netEvent.
func (s *Server) handleConn(conn net.Conn) {
	header, err := protocol.ReadHeader(conn)
	if err != nil || header.Type != protocol.MsgClientJoin {
		conn.Close()
		return
	}
	join, err := protocol.ReadClientJoin(conn)
	if err != nil {
		conn.Close()
		return
	}
	if join.ClientVersion != protocol.ProtocolVersion {
		protocol.WriteDisconnect(conn, protocol.Disconnect{Reason: "protocol version mismatch"})
		conn.Close()
		return
	}

	id := s.nextID.Add(1)
	name := nameFromFixed(join.Name)
	sess := NewSession(id, name, conn, spawnPosition)
	s.events <- netEvent{kind: eventConnect, playerID: id, session: sess}

	defer func() {
		s.events <- netEvent{kind: eventDisconnect, playerID: id}
		conn.Close()
	}()

	for {
		header, err := protocol.ReadHeader(conn)
		if err != nil {
			return
		}
		switch header.Type {
		case protocol.MsgPlayerMove:
			move, err := protocol.ReadPlayerMove(conn)
			if err != nil {
				return
			}
			s.events <- netEvent{kind: eventPlayerMove, playerID: id, move: move}
		case protocol.MsgBlockPlace:
			place, err := protocol.ReadBlockPlace(conn)
			if err != nil {
				return
			}
			s.events <- netEvent{kind: eventBlockPlace, playerID: id, place: place}
		case protocol.MsgBlockBreak:
			brk, err := protocol.ReadBlockBreak(conn)
			if err != nil {
				return
			}
			s.events <- netEvent{kind: eventBlockBreak, playerID: id, brk: brk}
		case protocol.MsgKeepAlive:
			if _, err := protocol.ReadKeepAlive(conn); err != nil {
				return
			}
		case protocol.MsgDisconnect:
			protocol.ReadDisconnect(conn, header.PayloadSize)
			return
		default:
			s.log.Warn("server: dropping unrecognized frame type", "type", header.Type, "player", id)
			if _, err := discard(conn, int(header.PayloadSize)); err != nil {
				return
			}
		}
	}
}

func discard(conn net.Conn, n int) (int, error) {
	buf := make([]byte, n)
	total := 0
	for total < n {
		k, err := conn.Read(buf[total:])
		total += k
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

func nameFromFixed(raw [32]byte) string {
	n := 0
	for n < len(raw) && raw[n] != 0 {
		n++
	}
	return string(raw[:n])
}

// sessionSnapshot returns a stable slice of every currently connected
// session, safe to range over without holding the server lock.
func (s *Server) sessionSnapshot() []*Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]*Session, 0, len(s.sessions))
	for _, sess := range s.sessions {
		out = append(out, sess)
	}
	return out
}

// broadcast sends a message to every session except excludeID (0 to
// exclude none).
func (s *Server) broadcast(excludeID uint32, fn func(net.Conn) error) {
	for _, sess := range s.sessionSnapshot() {
		if sess.PlayerID == excludeID {
			continue
		}
		if err := sess.Write(fn); err != nil {
			s.log.Warn("server: broadcast send failed", "player", sess.PlayerID, "err", err)
		}
	}
}

func vec3FromProtocol(v protocol.Vec3) mgl32.Vec3 { return mgl32.Vec3{v.X, v.Y, v.Z} }
func vec3ToProtocol(v mgl32.Vec3) protocol.Vec3 {
	return protocol.Vec3{X: v.X(), Y: v.Y(), Z: v.Z()}
}

// validateEdit checks a BlockPlace/BlockBreak request's distance against
// config.MaxEditReach. It does not check whether the target chunk is
// loaded; the edit handlers reject unloaded targets through
// World.GetBlockAt.
func validateEdit(sess *Session, pos [3]int32) error {
	if !physics.WithinReach(sess.Position, pos, config.MaxEditReach()) {
		return fmt.Errorf("server: edit at %v exceeds reach from player %d", pos, sess.PlayerID)
	}
	return nil
}
