package server

import (
	"net"
	"time"

	"voxelcore/internal/config"
	"voxelcore/internal/profiling"
	"voxelcore/internal/protocol"
	"voxelcore/internal/world"
)

// runTickLoop is the server's single authoritative goroutine: it drains
// queued network events, advances the world, and periodically restreams and
// autosaves, at a fixed rate. It is grounded on the teacher ecosystem's
// time.Ticker-driven game loop shape, generalized to this engine's streaming
// and autosave cadence.
func (s *Server) runTickLoop() {
	defer close(s.doneCh)

	interval := time.Second / time.Duration(config.TickRateHz())
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for s.running.Load() {
		<-ticker.C
		profiling.ResetFrame()

		func() {
			defer profiling.Track("tick.drainEvents")()
			s.drainEvents()
		}()
		func() {
			defer profiling.Track("tick.worldUpdate")()
			s.world.Update(0)
		}()
		s.tickCount++

		if s.tickCount%config.StreamIntervalTicks() == 0 {
			func() {
				defer profiling.Track("tick.streamAll")()
				s.streamAll()
				s.evictDistantChunks()
			}()
		}
		if s.tickCount%config.AutosaveIntervalTicks() == 0 {
			n := s.world.SaveWorld(s.worldDir)
			s.log.Info("server: autosave complete", "chunksWritten", n, "tick", s.tickCount)
		}
		if s.tickCount%int64(config.TickRateHz()) == 0 {
			s.log.Debug("server: tick profile", "top", profiling.TopNCurrentFrame(3))
		}
	}

	n := s.world.SaveWorld(s.worldDir)
	s.log.Info("server: final save before shutdown", "chunksWritten", n)
}

// drainEvents processes every event currently queued without blocking,
// leaving later arrivals for the next tick.
func (s *Server) drainEvents() {
	for {
		select {
		case ev := <-s.events:
			s.handleEvent(ev)
		default:
			return
		}
	}
}

func (s *Server) handleEvent(ev netEvent) {
	switch ev.kind {
	case eventConnect:
		s.handleConnect(ev.session)
	case eventDisconnect:
		s.handleDisconnect(ev.playerID)
	case eventPlayerMove:
		s.handlePlayerMove(ev.playerID, ev.move)
	case eventBlockPlace:
		s.handleBlockPlace(ev.playerID, ev.place)
	case eventBlockBreak:
		s.handleBlockBreak(ev.playerID, ev.brk)
	}
}

func (s *Server) handleConnect(sess *Session) {
	s.mu.Lock()
	existing := make([]*Session, 0, len(s.sessions))
	for _, other := range s.sessions {
		existing = append(existing, other)
	}
	s.sessions[sess.PlayerID] = sess
	s.mu.Unlock()

	nameBytes := fixedNameBytes(sess.Name)
	spawnMsg := protocol.PlayerSpawn{PlayerID: sess.PlayerID, Spawn: vec3ToProtocol(sess.Position), Name: nameBytes}
	s.broadcast(sess.PlayerID, func(w net.Conn) error { return protocol.WritePlayerSpawn(w, spawnMsg) })

	for _, other := range existing {
		msg := protocol.PlayerSpawn{PlayerID: other.PlayerID, Spawn: vec3ToProtocol(other.Position), Name: fixedNameBytes(other.Name)}
		if err := sess.Write(func(w net.Conn) error { return protocol.WritePlayerSpawn(w, msg) }); err != nil {
			s.log.Warn("server: failed to announce existing player to newcomer", "player", sess.PlayerID, "err", err)
		}
	}

	s.streamSession(sess)
	s.log.Info("server: player connected", "player", sess.PlayerID, "name", sess.Name)
}

func (s *Server) handleDisconnect(id uint32) {
	s.mu.Lock()
	_, ok := s.sessions[id]
	delete(s.sessions, id)
	s.mu.Unlock()
	if !ok {
		return
	}
	s.broadcast(0, func(w net.Conn) error { return protocol.WritePlayerRemove(w, protocol.PlayerRemove{PlayerID: id}) })
	s.log.Info("server: player disconnected", "player", id)
}

func (s *Server) handlePlayerMove(id uint32, move protocol.PlayerMove) {
	sess := s.sessionByID(id)
	if sess == nil {
		return
	}
	sess.Position = vec3FromProtocol(move.Position)

	posMsg := protocol.PlayerPositionUpdate{PlayerID: id, Position: move.Position, Yaw: move.Yaw, Pitch: move.Pitch}
	s.broadcast(id, func(w net.Conn) error { return protocol.WritePlayerPositionUpdate(w, posMsg) })

	if movedPastRestreamThreshold(sess) {
		s.streamSession(sess)
	}
}

func (s *Server) handleBlockPlace(id uint32, req protocol.BlockPlace) {
	sess := s.sessionByID(id)
	if sess == nil {
		return
	}
	pos := [3]int32{req.Position.X, req.Position.Y, req.Position.Z}
	if err := validateEdit(sess, pos); err != nil {
		s.log.Debug("server: rejected block place", "err", err)
		return
	}
	existing, ok := s.world.GetBlockAt(pos[0], pos[1], pos[2])
	if !ok || existing.IsSolid() {
		return
	}
	if !s.world.SetBlockAt(pos[0], pos[1], pos[2], world.Block{Type: world.BlockType(req.BlockType)}) {
		return
	}
	msg := protocol.BlockUpdate{Position: req.Position, BlockType: req.BlockType}
	s.broadcast(0, func(w net.Conn) error { return protocol.WriteBlockUpdate(w, msg) })
}

func (s *Server) handleBlockBreak(id uint32, req protocol.BlockBreak) {
	sess := s.sessionByID(id)
	if sess == nil {
		return
	}
	pos := [3]int32{req.Position.X, req.Position.Y, req.Position.Z}
	if err := validateEdit(sess, pos); err != nil {
		s.log.Debug("server: rejected block break", "err", err)
		return
	}
	existing, ok := s.world.GetBlockAt(pos[0], pos[1], pos[2])
	if !ok || !existing.IsSolid() {
		return
	}
	if !s.world.SetBlockAt(pos[0], pos[1], pos[2], world.Block{Type: world.BlockTypeAir}) {
		return
	}
	msg := protocol.BlockUpdate{Position: req.Position, BlockType: uint16(world.BlockTypeAir)}
	s.broadcast(0, func(w net.Conn) error { return protocol.WriteBlockUpdate(w, msg) })
}

// evictDistantChunks unloads every chunk outside load_radius+2 of every
// connected player, run on the same cadence as streamAll so a chunk only
// just streamed to someone is never evicted out from under them.
func (s *Server) evictDistantChunks() {
	sessions := s.sessionSnapshot()
	positions := make([]world.ChunkCoord, len(sessions))
	for i, sess := range sessions {
		positions[i] = coordOfPosition(sess.Position)
	}
	removed := s.world.UnloadDistant(positions, config.EvictRadius())
	if removed > 0 {
		s.log.Debug("server: evicted distant chunks", "count", removed)
	}
}

func (s *Server) sessionByID(id uint32) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.sessions[id]
}

func fixedNameBytes(name string) [32]byte {
	var out [32]byte
	copy(out[:], name)
	return out
}
