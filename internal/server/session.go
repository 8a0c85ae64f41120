package server

import (
	"net"
	"sync"

	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// Session is the server's record of one connected player: identity,
// current position, and the set of chunks it has been told about. The
// symmetric difference of LoadedChunks against the player's desired radius
// set drives streaming.
type Session struct {
	PlayerID              uint32
	Name                  string
	Conn                  net.Conn
	Position              mgl32.Vec3
	LastStreamedPosition  mgl32.Vec3
	LoadedChunks          map[world.ChunkCoord]struct{}

	writeMu sync.Mutex // serializes writes to Conn across goroutines
}

// NewSession creates a session at spawn, with no chunks loaded yet.
func NewSession(id uint32, name string, conn net.Conn, spawn mgl32.Vec3) *Session {
	return &Session{
		PlayerID:             id,
		Name:                 name,
		Conn:                 conn,
		Position:             spawn,
		LastStreamedPosition: spawn,
		LoadedChunks:         make(map[world.ChunkCoord]struct{}),
	}
}

// Write serializes concurrent writers (the tick goroutine broadcasting, and
// any future direct reply path) onto one connection.
func (s *Session) Write(fn func(net.Conn) error) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	return fn(s.Conn)
}
