// tbserver - HTTP/WebSocket server for tablebase queries
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/pkg/api"
	"github.com/yourusername/egtb/pkg/engine"
)

const version = "1.0.0"

func main() {
	host := flag.String("host", "localhost", "Host to bind to")
	port := flag.Int("port", 8080, "Port to listen on")
	dir := flag.String("dir", ".", "Directory holding table files")
	preload := flag.String("preload", "", "Comma-separated table IDs to load at startup (e.g. WQ,WR)")
	queryWorkers := flag.Int("query-workers", 100, "Max concurrent queries")
	buildWorkers := flag.Int("build-workers", 1, "Max concurrent builds")
	verbose := flag.Bool("v", false, "Verbose logging")
	flag.Parse()

	level := zerolog.InfoLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		Level(level).
		With().Timestamp().Logger()

	reg := engine.NewRegistry(engine.Options{Dir: *dir, Logger: log})
	if *preload != "" {
		for _, id := range strings.Split(*preload, ",") {
			spec, err := position.ParseID(strings.TrimSpace(id))
			if err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
			if _, err := reg.Load(spec, false); err != nil {
				fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", spec.ID(), err)
				os.Exit(1)
			}
		}
	}

	config := api.DefaultConfig()
	config.Host = *host
	config.Port = *port
	config.MaxQueryWorkers = *queryWorkers
	config.MaxBuildWorkers = *buildWorkers

	server := api.NewServer(reg, config, version)
	if err := server.ListenAndServeWithGracefulShutdown(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
