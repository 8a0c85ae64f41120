// Package protocol implements voxelcore's wire format: a framed,
// length-prefixed message catalogue exchanged over a reliable, in-order
// connection (an ENet reliable channel or a TCP stream).
package protocol

import "voxelcore/internal/world"

// MessageType identifies the payload that follows a Header on the wire.
type MessageType uint8

const (
	// Client -> Server
	MsgClientJoin MessageType = 0
	MsgPlayerMove MessageType = 1
	MsgBlockPlace MessageType = 2
	MsgBlockBreak MessageType = 3

	// Server -> Client
	MsgChunkData            MessageType = 10
	MsgChunkUnload          MessageType = 11
	MsgBlockUpdate          MessageType = 12
	MsgPlayerSpawn          MessageType = 13
	MsgPlayerPositionUpdate MessageType = 14
	MsgPlayerRemove         MessageType = 15

	// Bidirectional
	MsgDisconnect MessageType = 20
	MsgKeepAlive  MessageType = 21
)

// ProtocolVersion is the current wire protocol version. A ClientJoin
// carrying any other value is a soft reject: the server sends Disconnect
// with a version-mismatch reason and closes the connection.
const ProtocolVersion uint32 = 1

// Vec3 is three consecutive IEEE-754 float32s, little-endian on the wire.
type Vec3 struct {
	X, Y, Z float32
}

// IVec3 is three little-endian int32 block coordinates.
type IVec3 struct {
	X, Y, Z int32
}

// ClientJoin is the client's handshake: a 32-byte name and the client's
// protocol version.
type ClientJoin struct {
	Name          [32]byte
	ClientVersion uint32
}

// PlayerMove reports the client's latest position, velocity, and look
// angles, plus an input bitfield (forward/back/left/right/jump/...).
type PlayerMove struct {
	Position   Vec3
	Velocity   Vec3
	Yaw        float32
	Pitch      float32
	InputFlags uint8
}

// BlockPlace requests placing a block at a world position.
type BlockPlace struct {
	Position  IVec3
	BlockType uint16
}

// BlockBreak requests breaking the block at a world position.
type BlockBreak struct {
	Position IVec3
}

// ChunkData carries an RLE-compressed chunk payload. RLEPayload's length
// equals CompressedSize; the payload follows the fixed header fields on
// the wire.
type ChunkData struct {
	Coord          world.ChunkCoord
	CompressedSize uint32
	RLEPayload     []byte
}

// ChunkUnload tells the client to evict a chunk it was previously sent.
type ChunkUnload struct {
	Coord world.ChunkCoord
}

// BlockUpdate is a single authoritative block change, broadcast on the
// reliable channel so its arrival order is globally consistent.
type BlockUpdate struct {
	Position  IVec3
	BlockType uint16
}

// PlayerSpawn announces a new player (or, for the joining client, every
// existing player) at a spawn position.
type PlayerSpawn struct {
	PlayerID uint32
	Spawn    Vec3
	Name     [32]byte
}

// PlayerPositionUpdate is an unreliable-channel-acceptable position sample
// for a player other than the recipient.
type PlayerPositionUpdate struct {
	PlayerID uint32
	Position Vec3
	Yaw      float32
	Pitch    float32
}

// PlayerRemove tells clients a player disconnected.
type PlayerRemove struct {
	PlayerID uint32
}

// KeepAlive carries a millisecond timestamp for RTT measurement, sent in
// either direction.
type KeepAlive struct {
	TimestampMillis uint64
}

// Disconnect carries a human-readable reason and closes the connection
// after delivery.
type Disconnect struct {
	Reason string
}
