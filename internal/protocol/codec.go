package protocol

import (
	"encoding/binary"
	"fmt"
	"io"

	"voxelcore/internal/world"
)

// headerSize is the wire size of {type: u8, payload_size: u32}.
const headerSize = 1 + 4

// maxPayloadSize bounds a single frame's payload, guarding against a
// corrupt or hostile length field driving an enormous allocation.
const maxPayloadSize = 8 * 1024 * 1024

// Header is the fixed framing prefix on every message.
type Header struct {
	Type        MessageType
	PayloadSize uint32
}

// WriteHeader writes a frame header to w.
func WriteHeader(w io.Writer, h Header) error {
	var buf [headerSize]byte
	buf[0] = byte(h.Type)
	binary.LittleEndian.PutUint32(buf[1:5], h.PayloadSize)
	_, err := w.Write(buf[:])
	return err
}

// ReadHeader reads a frame header from r. A short read is reported as an
// error so the caller can drop the message and keep the connection, per
// the malformed-inbound-message failure policy.
func ReadHeader(r io.Reader) (Header, error) {
	var buf [headerSize]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Header{}, fmt.Errorf("protocol: read header: %w", err)
	}
	h := Header{Type: MessageType(buf[0]), PayloadSize: binary.LittleEndian.Uint32(buf[1:5])}
	if h.PayloadSize > maxPayloadSize {
		return Header{}, fmt.Errorf("protocol: header payload size %d exceeds limit %d", h.PayloadSize, maxPayloadSize)
	}
	return h, nil
}

func writeVec3(w io.Writer, v Vec3) error {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], floatBits(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], floatBits(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], floatBits(v.Z))
	_, err := w.Write(buf[:])
	return err
}

func readVec3(r io.Reader) (Vec3, error) {
	var buf [12]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return Vec3{}, err
	}
	return Vec3{
		X: floatFromBits(binary.LittleEndian.Uint32(buf[0:4])),
		Y: floatFromBits(binary.LittleEndian.Uint32(buf[4:8])),
		Z: floatFromBits(binary.LittleEndian.Uint32(buf[8:12])),
	}, nil
}

func writeIVec3(w io.Writer, v IVec3) error {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(v.X))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(v.Y))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(v.Z))
	_, err := w.Write(buf[:])
	return err
}

func readIVec3(r io.Reader) (IVec3, error) {
	var buf [12]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return IVec3{}, err
	}
	return IVec3{
		X: int32(binary.LittleEndian.Uint32(buf[0:4])),
		Y: int32(binary.LittleEndian.Uint32(buf[4:8])),
		Z: int32(binary.LittleEndian.Uint32(buf[8:12])),
	}, nil
}

func writeChunkCoord(w io.Writer, c world.ChunkCoord) error {
	var buf [12]byte
	binary.LittleEndian.PutUint32(buf[0:4], uint32(c.X))
	binary.LittleEndian.PutUint32(buf[4:8], uint32(c.Y))
	binary.LittleEndian.PutUint32(buf[8:12], uint32(c.Z))
	_, err := w.Write(buf[:])
	return err
}

func readChunkCoord(r io.Reader) (world.ChunkCoord, error) {
	var buf [12]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return world.ChunkCoord{}, err
	}
	return world.ChunkCoord{
		X: int32(binary.LittleEndian.Uint32(buf[0:4])),
		Y: int32(binary.LittleEndian.Uint32(buf[4:8])),
		Z: int32(binary.LittleEndian.Uint32(buf[8:12])),
	}, nil
}

// WriteClientJoin writes a framed ClientJoin message.
func WriteClientJoin(w io.Writer, m ClientJoin) error {
	if err := WriteHeader(w, Header{Type: MsgClientJoin, PayloadSize: 32 + 4}); err != nil {
		return err
	}
	if _, err := w.Write(m.Name[:]); err != nil {
		return err
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], m.ClientVersion)
	_, err := w.Write(buf[:])
	return err
}

// ReadClientJoin reads a fixed-size ClientJoin payload (the header has
// already been consumed by the caller).
func ReadClientJoin(r io.Reader) (ClientJoin, error) {
	var m ClientJoin
	if _, err := io.ReadFull(r, m.Name[:]); err != nil {
		return m, fmt.Errorf("protocol: read ClientJoin name: %w", err)
	}
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return m, fmt.Errorf("protocol: read ClientJoin version: %w", err)
	}
	m.ClientVersion = binary.LittleEndian.Uint32(buf[:])
	return m, nil
}

// WritePlayerMove writes a framed PlayerMove message.
func WritePlayerMove(w io.Writer, m PlayerMove) error {
	if err := WriteHeader(w, Header{Type: MsgPlayerMove, PayloadSize: 12 + 12 + 4 + 4 + 1}); err != nil {
		return err
	}
	if err := writeVec3(w, m.Position); err != nil {
		return err
	}
	if err := writeVec3(w, m.Velocity); err != nil {
		return err
	}
	var buf [9]byte
	binary.LittleEndian.PutUint32(buf[0:4], floatBits(m.Yaw))
	binary.LittleEndian.PutUint32(buf[4:8], floatBits(m.Pitch))
	buf[8] = m.InputFlags
	_, err := w.Write(buf[:])
	return err
}

// ReadPlayerMove reads a PlayerMove payload.
func ReadPlayerMove(r io.Reader) (PlayerMove, error) {
	var m PlayerMove
	var err error
	if m.Position, err = readVec3(r); err != nil {
		return m, err
	}
	if m.Velocity, err = readVec3(r); err != nil {
		return m, err
	}
	var buf [9]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return m, err
	}
	m.Yaw = floatFromBits(binary.LittleEndian.Uint32(buf[0:4]))
	m.Pitch = floatFromBits(binary.LittleEndian.Uint32(buf[4:8]))
	m.InputFlags = buf[8]
	return m, nil
}

// WriteBlockPlace writes a framed BlockPlace message.
func WriteBlockPlace(w io.Writer, m BlockPlace) error {
	if err := WriteHeader(w, Header{Type: MsgBlockPlace, PayloadSize: 12 + 2}); err != nil {
		return err
	}
	if err := writeIVec3(w, m.Position); err != nil {
		return err
	}
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], m.BlockType)
	_, err := w.Write(buf[:])
	return err
}

// ReadBlockPlace reads a BlockPlace payload.
func ReadBlockPlace(r io.Reader) (BlockPlace, error) {
	var m BlockPlace
	var err error
	if m.Position, err = readIVec3(r); err != nil {
		return m, err
	}
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return m, err
	}
	m.BlockType = binary.LittleEndian.Uint16(buf[:])
	return m, nil
}

// WriteBlockBreak writes a framed BlockBreak message.
func WriteBlockBreak(w io.Writer, m BlockBreak) error {
	if err := WriteHeader(w, Header{Type: MsgBlockBreak, PayloadSize: 12}); err != nil {
		return err
	}
	return writeIVec3(w, m.Position)
}

// ReadBlockBreak reads a BlockBreak payload.
func ReadBlockBreak(r io.Reader) (BlockBreak, error) {
	pos, err := readIVec3(r)
	return BlockBreak{Position: pos}, err
}

// WriteChunkData writes a framed ChunkData message. len(m.RLEPayload) must
// equal m.CompressedSize.
func WriteChunkData(w io.Writer, m ChunkData) error {
	if uint32(len(m.RLEPayload)) != m.CompressedSize {
		return fmt.Errorf("protocol: ChunkData compressed size %d does not match payload length %d", m.CompressedSize, len(m.RLEPayload))
	}
	if err := WriteHeader(w, Header{Type: MsgChunkData, PayloadSize: 12 + 4 + m.CompressedSize}); err != nil {
		return err
	}
	if err := writeChunkCoord(w, m.Coord); err != nil {
		return err
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], m.CompressedSize)
	if _, err := w.Write(buf[:]); err != nil {
		return err
	}
	_, err := w.Write(m.RLEPayload)
	return err
}

// ReadChunkData reads a ChunkData payload.
func ReadChunkData(r io.Reader) (ChunkData, error) {
	var m ChunkData
	var err error
	if m.Coord, err = readChunkCoord(r); err != nil {
		return m, err
	}
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return m, err
	}
	m.CompressedSize = binary.LittleEndian.Uint32(buf[:])
	if m.CompressedSize > maxPayloadSize {
		return m, fmt.Errorf("protocol: ChunkData compressed size %d exceeds limit", m.CompressedSize)
	}
	m.RLEPayload = make([]byte, m.CompressedSize)
	if _, err := io.ReadFull(r, m.RLEPayload); err != nil {
		return m, err
	}
	return m, nil
}

// WriteChunkUnload writes a framed ChunkUnload message.
func WriteChunkUnload(w io.Writer, m ChunkUnload) error {
	if err := WriteHeader(w, Header{Type: MsgChunkUnload, PayloadSize: 12}); err != nil {
		return err
	}
	return writeChunkCoord(w, m.Coord)
}

// ReadChunkUnload reads a ChunkUnload payload.
func ReadChunkUnload(r io.Reader) (ChunkUnload, error) {
	coord, err := readChunkCoord(r)
	return ChunkUnload{Coord: coord}, err
}

// WriteBlockUpdate writes a framed BlockUpdate message.
func WriteBlockUpdate(w io.Writer, m BlockUpdate) error {
	if err := WriteHeader(w, Header{Type: MsgBlockUpdate, PayloadSize: 12 + 2}); err != nil {
		return err
	}
	if err := writeIVec3(w, m.Position); err != nil {
		return err
	}
	var buf [2]byte
	binary.LittleEndian.PutUint16(buf[:], m.BlockType)
	_, err := w.Write(buf[:])
	return err
}

// ReadBlockUpdate reads a BlockUpdate payload.
func ReadBlockUpdate(r io.Reader) (BlockUpdate, error) {
	var m BlockUpdate
	var err error
	if m.Position, err = readIVec3(r); err != nil {
		return m, err
	}
	var buf [2]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return m, err
	}
	m.BlockType = binary.LittleEndian.Uint16(buf[:])
	return m, nil
}

// WritePlayerSpawn writes a framed PlayerSpawn message.
func WritePlayerSpawn(w io.Writer, m PlayerSpawn) error {
	if err := WriteHeader(w, Header{Type: MsgPlayerSpawn, PayloadSize: 4 + 12 + 32}); err != nil {
		return err
	}
	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], m.PlayerID)
	if _, err := w.Write(idBuf[:]); err != nil {
		return err
	}
	if err := writeVec3(w, m.Spawn); err != nil {
		return err
	}
	_, err := w.Write(m.Name[:])
	return err
}

// ReadPlayerSpawn reads a PlayerSpawn payload.
func ReadPlayerSpawn(r io.Reader) (PlayerSpawn, error) {
	var m PlayerSpawn
	var idBuf [4]byte
	if _, err := io.ReadFull(r, idBuf[:]); err != nil {
		return m, err
	}
	m.PlayerID = binary.LittleEndian.Uint32(idBuf[:])
	var err error
	if m.Spawn, err = readVec3(r); err != nil {
		return m, err
	}
	if _, err := io.ReadFull(r, m.Name[:]); err != nil {
		return m, err
	}
	return m, nil
}

// WritePlayerPositionUpdate writes a framed PlayerPositionUpdate message.
func WritePlayerPositionUpdate(w io.Writer, m PlayerPositionUpdate) error {
	if err := WriteHeader(w, Header{Type: MsgPlayerPositionUpdate, PayloadSize: 4 + 12 + 4 + 4}); err != nil {
		return err
	}
	var idBuf [4]byte
	binary.LittleEndian.PutUint32(idBuf[:], m.PlayerID)
	if _, err := w.Write(idBuf[:]); err != nil {
		return err
	}
	if err := writeVec3(w, m.Position); err != nil {
		return err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint32(buf[0:4], floatBits(m.Yaw))
	binary.LittleEndian.PutUint32(buf[4:8], floatBits(m.Pitch))
	_, err := w.Write(buf[:])
	return err
}

// ReadPlayerPositionUpdate reads a PlayerPositionUpdate payload.
func ReadPlayerPositionUpdate(r io.Reader) (PlayerPositionUpdate, error) {
	var m PlayerPositionUpdate
	var idBuf [4]byte
	if _, err := io.ReadFull(r, idBuf[:]); err != nil {
		return m, err
	}
	m.PlayerID = binary.LittleEndian.Uint32(idBuf[:])
	var err error
	if m.Position, err = readVec3(r); err != nil {
		return m, err
	}
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return m, err
	}
	m.Yaw = floatFromBits(binary.LittleEndian.Uint32(buf[0:4]))
	m.Pitch = floatFromBits(binary.LittleEndian.Uint32(buf[4:8]))
	return m, nil
}

// WritePlayerRemove writes a framed PlayerRemove message.
func WritePlayerRemove(w io.Writer, m PlayerRemove) error {
	if err := WriteHeader(w, Header{Type: MsgPlayerRemove, PayloadSize: 4}); err != nil {
		return err
	}
	var buf [4]byte
	binary.LittleEndian.PutUint32(buf[:], m.PlayerID)
	_, err := w.Write(buf[:])
	return err
}

// ReadPlayerRemove reads a PlayerRemove payload.
func ReadPlayerRemove(r io.Reader) (PlayerRemove, error) {
	var buf [4]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return PlayerRemove{}, err
	}
	return PlayerRemove{PlayerID: binary.LittleEndian.Uint32(buf[:])}, nil
}

// WriteKeepAlive writes a framed KeepAlive message.
func WriteKeepAlive(w io.Writer, m KeepAlive) error {
	if err := WriteHeader(w, Header{Type: MsgKeepAlive, PayloadSize: 8}); err != nil {
		return err
	}
	var buf [8]byte
	binary.LittleEndian.PutUint64(buf[:], m.TimestampMillis)
	_, err := w.Write(buf[:])
	return err
}

// ReadKeepAlive reads a KeepAlive payload.
func ReadKeepAlive(r io.Reader) (KeepAlive, error) {
	var buf [8]byte
	if _, err := io.ReadFull(r, buf[:]); err != nil {
		return KeepAlive{}, err
	}
	return KeepAlive{TimestampMillis: binary.LittleEndian.Uint64(buf[:])}, nil
}

// WriteDisconnect writes a framed Disconnect message.
func WriteDisconnect(w io.Writer, m Disconnect) error {
	reason := []byte(m.Reason)
	if err := WriteHeader(w, Header{Type: MsgDisconnect, PayloadSize: uint32(len(reason))}); err != nil {
		return err
	}
	_, err := w.Write(reason)
	return err
}

// ReadDisconnect reads a Disconnect payload of the given size.
func ReadDisconnect(r io.Reader, size uint32) (Disconnect, error) {
	buf := make([]byte, size)
	if _, err := io.ReadFull(r, buf); err != nil {
		return Disconnect{}, err
	}
	return Disconnect{Reason: string(buf)}, nil
}
