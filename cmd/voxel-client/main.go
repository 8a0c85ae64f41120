// Command voxel-client connects to a voxel-server, keeps the chunk cache and
// mesh pipeline running, and logs streaming progress. It has no rendering
// backend of its own — GPUSink is the boundary where a real graphics client
// (GLFW/Vulkan, outside this module's scope) would plug in; here it runs
// with NoopGPUSink so the network and mesh pipeline can be exercised
// headlessly.
package main

import (
	"flag"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"voxelcore/internal/client"
)

func main() {
	addr := flag.String("addr", "localhost:25565", "server address")
	name := flag.String("name", "player", "player name")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stdout, nil))

	c, err := client.Dial(*addr, *name, client.NoopGPUSink{}, log)
	if err != nil {
		log.Error("client: failed to connect", "err", err)
		os.Exit(1)
	}
	defer c.Close()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-sigCh:
			log.Info("client: shutting down")
			return
		case <-ticker.C:
			c.DrainToGPU()
		}
	}
}
