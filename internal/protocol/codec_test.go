package protocol

import (
	"bytes"
	"testing"

	"voxelcore/internal/world"
)

func TestHeaderRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Header{Type: MsgBlockPlace, PayloadSize: 14}
	if err := WriteHeader(&buf, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	got, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestReadHeaderRejectsOversizedPayload(t *testing.T) {
	var buf bytes.Buffer
	WriteHeader(&buf, Header{Type: MsgChunkData, PayloadSize: maxPayloadSize + 1})
	if _, err := ReadHeader(&buf); err == nil {
		t.Fatalf("expected rejection of oversized payload")
	}
}

func TestClientJoinRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	var name [32]byte
	copy(name[:], "miner42")
	want := ClientJoin{Name: name, ClientVersion: ProtocolVersion}

	if err := WriteClientJoin(&buf, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := ReadHeader(&buf); err != nil {
		t.Fatalf("read header: %v", err)
	}
	got, err := ReadClientJoin(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPlayerMoveRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := PlayerMove{
		Position:   Vec3{1.5, -2.25, 100},
		Velocity:   Vec3{0, -9.8, 0},
		Yaw:        90.5,
		Pitch:      -12.25,
		InputFlags: 0b0010101,
	}
	if err := WritePlayerMove(&buf, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	ReadHeader(&buf)
	got, err := ReadPlayerMove(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestChunkDataRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	coord := world.ChunkCoord{X: 3, Y: -1, Z: 7}
	payload := []byte{0xAA, 0xBB, 0xCC, 0xDD}
	want := ChunkData{Coord: coord, CompressedSize: uint32(len(payload)), RLEPayload: payload}

	if err := WriteChunkData(&buf, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	ReadHeader(&buf)
	got, err := ReadChunkData(&buf)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Coord != want.Coord || !bytes.Equal(got.RLEPayload, want.RLEPayload) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestWriteChunkDataRejectsSizeMismatch(t *testing.T) {
	var buf bytes.Buffer
	bad := ChunkData{Coord: world.ChunkCoord{}, CompressedSize: 99, RLEPayload: []byte{1, 2, 3}}
	if err := WriteChunkData(&buf, bad); err == nil {
		t.Fatalf("expected mismatch error")
	}
}

func TestDisconnectRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	want := Disconnect{Reason: "protocol version mismatch"}
	if err := WriteDisconnect(&buf, want); err != nil {
		t.Fatalf("write: %v", err)
	}
	header, err := ReadHeader(&buf)
	if err != nil {
		t.Fatalf("read header: %v", err)
	}
	got, err := ReadDisconnect(&buf, header.PayloadSize)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if got != want {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}
