package server

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestNewSessionStartsWithNoLoadedChunks(t *testing.T) {
	_, serverSide := pipeConn(t)
	sess := NewSession(1, "alice", serverSide, mgl32.Vec3{0, 5, 0})

	if len(sess.LoadedChunks) != 0 {
		t.Fatalf("expected a fresh session to have no loaded chunks")
	}
	if sess.Position != sess.LastStreamedPosition {
		t.Fatalf("expected initial position and last-streamed position to match")
	}
}
