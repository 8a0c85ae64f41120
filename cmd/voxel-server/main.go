// Command voxel-server runs the authoritative game server: it binds a TCP
// listener, loads (or creates) a world directory, and drives the fixed-rate
// tick loop until told to stop.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"voxelcore/internal/server"
	"voxelcore/internal/world"
)

func main() {
	addr := flag.String("addr", ":25565", "listen address")
	worldDir := flag.String("world", "./world", "world save directory")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	w := world.New(nil, log)
	loaded := w.LoadWorld(*worldDir)
	log.Info("server: loaded world from disk", "dir", *worldDir, "chunks", loaded)

	srv := server.New(w, *worldDir, log)
	if err := srv.Start(*addr); err != nil {
		log.Error("server: failed to start", "err", err)
		os.Exit(1)
	}

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		log.Info("server: signal received, shutting down")
		srv.Stop()
	}()

	go srv.RunCLI(os.Stdin)

	srv.Wait()
	log.Info("server: shutdown complete")
}
