package server

import (
	"bufio"
	"io"
	"strings"
)

// RunCLI reads line-oriented commands from r until r reaches EOF or a /stop
// command is read, dispatching /stop, /save, /help. It is meant to run on
// its own goroutine reading os.Stdin. /stop goes through Stop, the same
// entry point any other caller uses; /save calls World.SaveWorld directly
// from this goroutine.
func (s *Server) RunCLI(r io.Reader) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		switch line {
		case "/stop":
			s.log.Info("server: stop requested via console")
			s.Stop()
			return
		case "/save":
			n := s.world.SaveWorld(s.worldDir)
			s.log.Info("server: manual save complete", "chunksWritten", n)
		case "/help":
			s.log.Info("server: available commands: /stop /save /help")
		default:
			s.log.Info("server: unrecognized command, try /stop, /save, or /help", "input", line)
		}
	}
}
