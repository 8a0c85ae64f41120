package server

import (
	"net"

	"voxelcore/internal/config"
	"voxelcore/internal/protocol"
	"voxelcore/internal/world"

	"github.com/go-gl/mathgl/mgl32"
)

// streamSession recomputes what chunks a session should have loaded and
// brings it up to date: unloads what fell outside the radius, sends what's
// newly in range. This is the symmetric-difference algorithm driving all
// chunk traffic: the initial burst on connect and every later recompute walk
// the same path.
func (s *Server) streamSession(sess *Session) {
	center := coordOfPosition(sess.Position)
	desired := world.ChunksInRadius(center, config.LoadRadius())

	desiredSet := make(map[world.ChunkCoord]struct{}, len(desired))
	for _, c := range desired {
		desiredSet[c] = struct{}{}
	}

	var toUnload []world.ChunkCoord
	for c := range sess.LoadedChunks {
		if _, ok := desiredSet[c]; !ok {
			toUnload = append(toUnload, c)
		}
	}
	var toSend []world.ChunkCoord
	for c := range desiredSet {
		if _, ok := sess.LoadedChunks[c]; !ok {
			toSend = append(toSend, c)
		}
	}

	for _, coord := range toUnload {
		msg := protocol.ChunkUnload{Coord: coord}
		if err := sess.Write(func(w net.Conn) error { return protocol.WriteChunkUnload(w, msg) }); err != nil {
			s.log.Warn("server: chunk unload send failed", "player", sess.PlayerID, "coord", coord.String(), "err", err)
			continue
		}
		delete(sess.LoadedChunks, coord)
	}

	for _, coord := range toSend {
		c := s.world.LoadChunk(s.worldDir, coord)
		payload := world.EncodeRLE(&c.Blocks)
		msg := protocol.ChunkData{Coord: coord, CompressedSize: uint32(len(payload)), RLEPayload: payload}
		if err := sess.Write(func(w net.Conn) error { return protocol.WriteChunkData(w, msg) }); err != nil {
			s.log.Warn("server: chunk data send failed", "player", sess.PlayerID, "coord", coord.String(), "err", err)
			continue
		}
		sess.LoadedChunks[coord] = struct{}{}
	}

	sess.LastStreamedPosition = sess.Position
}

// streamAll recomputes streaming for every connected session. The tick
// loop calls it on the periodic streaming pass, right before
// evictDistantChunks.
func (s *Server) streamAll() {
	sessions := s.sessionSnapshot()
	for _, sess := range sessions {
		s.streamSession(sess)
	}
}

// movedPastRestreamThreshold reports whether sess has moved far enough from
// its last streamed position to warrant an early recompute.
func movedPastRestreamThreshold(sess *Session) bool {
	return sess.Position.Sub(sess.LastStreamedPosition).Len() >= config.RestreamThreshold()
}

func coordOfPosition(pos mgl32.Vec3) world.ChunkCoord {
	c, _, _, _ := world.ChunkCoordFromWorld(int32(pos.X()), int32(pos.Y()), int32(pos.Z()))
	return c
}
